package model

import "time"

// Delivery channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
	ChannelInApp = "in_app"
)

// Queue row statuses
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

type QueuedNotification struct {
	ID            string            `json:"id"`
	UserID        int64             `json:"user_id"`
	AppointmentID *int64            `json:"appointment_id,omitempty"`
	TriggerCode   string            `json:"trigger_code"`
	TemplateKey   string            `json:"template_key"`
	Channel       string            `json:"channel"`
	Status        string            `json:"status"`
	Priority      int               `json:"priority"`
	ScheduledFor  time.Time         `json:"scheduled_for"`
	SentAt        *time.Time        `json:"sent_at,omitempty"`
	RetryCount    int               `json:"retry_count"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	MergeData     map[string]string `json:"merge_data,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
