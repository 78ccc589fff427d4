package model

import "time"

// Preference holds a user's notification settings. One row per user,
// created lazily with defaults on first notification.
type Preference struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	// Channel toggles
	EmailEnabled bool `json:"email_enabled"`
	SMSEnabled   bool `json:"sms_enabled"`
	PushEnabled  bool `json:"push_enabled"`

	// Category toggles. Security and transactional are not user-optional;
	// the policy filter ignores them even if flipped off in storage.
	SecurityEnabled             bool `json:"security_enabled"`
	TransactionalEnabled        bool `json:"transactional_enabled"`
	AppointmentRemindersEnabled bool `json:"appointment_reminders_enabled"`
	MembershipEnabled           bool `json:"membership_notifications_enabled"`
	DocumentsEnabled            bool `json:"document_notifications_enabled"`
	MarketingEnabled            bool `json:"marketing_emails_enabled"`
	LifeCycleEnabled            bool `json:"life_cycle_enabled"`

	// Quiet hours as local time-of-day "HH:MM"; the window may wrap midnight.
	QuietHoursStart string `json:"quiet_hours_start"`
	QuietHoursEnd   string `json:"quiet_hours_end"`

	Locale   string `json:"locale"`
	Timezone string `json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
