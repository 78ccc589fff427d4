package model

import "time"

// In-app notification kinds
const (
	InAppBanner = "banner"
	InAppInbox  = "inbox"
)

// In-app statuses
const (
	InAppDelivered = "delivered"
	InAppRead      = "read"
	InAppDismissed = "dismissed"
)

type InAppNotification struct {
	ID                 string     `json:"id"`
	UserID             int64      `json:"user_id"`
	AppointmentID      *int64     `json:"appointment_id,omitempty"`
	Type               string     `json:"type"`
	TriggerCode        string     `json:"trigger_code"`
	Title              string     `json:"title"`
	Message            string     `json:"message"`
	Priority           int        `json:"priority"`
	Style              string     `json:"style"`
	Persistent         bool       `json:"persistent"`
	AutoDismissSeconds int        `json:"auto_dismiss_seconds"`
	Status             string     `json:"status"`
	DeliveredAt        time.Time  `json:"delivered_at"`
	ReadAt             *time.Time `json:"read_at,omitempty"`
	DismissedAt        *time.Time `json:"dismissed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
