package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doktu-co/notify/internal/model"
)

// AuditStore writes the append-only decision log. Entries are never updated.
type AuditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Record(e *model.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	var apptID sql.NullInt64
	if e.AppointmentID != nil {
		apptID = sql.NullInt64{Int64: *e.AppointmentID, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO notification_audit_log
		   (id, user_id, appointment_id, event_type, channel, trigger_code, details, error_message, ip_address, user_agent)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, apptID, e.EventType, e.Channel, e.TriggerCode,
		e.Details, e.ErrorMessage, e.IPAddress, e.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

func (s *AuditStore) ListByUser(userID int64, limit int) ([]model.AuditEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, appointment_id, event_type, channel, trigger_code,
		        details, error_message, ip_address, user_agent, created_at
		 FROM notification_audit_log
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var apptID sql.NullInt64
		var channel, details, errMsg, ip, ua sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &apptID, &e.EventType, &channel, &e.TriggerCode,
			&details, &errMsg, &ip, &ua, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if apptID.Valid {
			e.AppointmentID = &apptID.Int64
		}
		e.Channel = channel.String
		e.Details = details.String
		e.ErrorMessage = errMsg.String
		e.IPAddress = ip.String
		e.UserAgent = ua.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
