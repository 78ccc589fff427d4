package model

import "time"

// Audit event types
const (
	AuditScheduled  = "scheduled"
	AuditSuppressed = "suppressed"
	AuditSent       = "sent"
	AuditFailed     = "failed"
)

// Suppression reason codes recorded on audit entries.
const (
	ReasonCategoryDisabled    = "category_disabled"
	ReasonDuplicateProtection = "duplicate_protection"
	ReasonFrequencyCap        = "frequency_cap"
	ReasonPrioritySuppression = "priority_suppression"
)

// AuditEntry is an immutable record of a scheduling or delivery decision.
// Written once, never updated.
type AuditEntry struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"user_id"`
	AppointmentID *int64    `json:"appointment_id,omitempty"`
	EventType     string    `json:"event_type"`
	Channel       string    `json:"channel,omitempty"`
	TriggerCode   string    `json:"trigger_code"`
	Details       string    `json:"details,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
