package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doktu-co/notify/internal/model"
)

type InAppStore struct {
	db *sql.DB
}

func NewInAppStore(db *sql.DB) *InAppStore {
	return &InAppStore{db: db}
}

const inAppCols = `id, user_id, appointment_id, type, trigger_code, title, message,
	priority, style, persistent, auto_dismiss_seconds, status,
	delivered_at, read_at, dismissed_at, created_at`

func scanInApp(scanner interface{ Scan(...any) error }) (*model.InAppNotification, error) {
	var n model.InAppNotification
	var apptID sql.NullInt64
	var readAt, dismissedAt sql.NullTime
	err := scanner.Scan(&n.ID, &n.UserID, &apptID, &n.Type, &n.TriggerCode, &n.Title, &n.Message,
		&n.Priority, &n.Style, &n.Persistent, &n.AutoDismissSeconds, &n.Status,
		&n.DeliveredAt, &readAt, &dismissedAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if apptID.Valid {
		n.AppointmentID = &apptID.Int64
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	if dismissedAt.Valid {
		t := dismissedAt.Time
		n.DismissedAt = &t
	}
	return &n, nil
}

func (s *InAppStore) Create(n *model.InAppNotification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	var apptID sql.NullInt64
	if n.AppointmentID != nil {
		apptID = sql.NullInt64{Int64: *n.AppointmentID, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO in_app_notifications
		   (id, user_id, appointment_id, type, trigger_code, title, message,
		    priority, style, persistent, auto_dismiss_seconds, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'delivered')`,
		n.ID, n.UserID, apptID, n.Type, n.TriggerCode, n.Title, n.Message,
		n.Priority, n.Style, n.Persistent, n.AutoDismissSeconds,
	)
	if err != nil {
		return fmt.Errorf("create in-app notification: %w", err)
	}
	return nil
}

// ListInbox returns the user's inbox entries, unread and read, newest first.
// Dismissed entries stay out.
func (s *InAppStore) ListInbox(userID int64, limit int) ([]model.InAppNotification, error) {
	rows, err := s.db.Query(
		`SELECT `+inAppCols+` FROM in_app_notifications
		 WHERE user_id = ? AND type = 'inbox' AND status != 'dismissed'
		 ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	defer rows.Close()
	return collectInApp(rows)
}

// ListActiveBanners returns undismissed banners for a user, most urgent first.
func (s *InAppStore) ListActiveBanners(userID int64) ([]model.InAppNotification, error) {
	rows, err := s.db.Query(
		`SELECT `+inAppCols+` FROM in_app_notifications
		 WHERE user_id = ? AND type = 'banner' AND status = 'delivered'
		 ORDER BY priority DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()
	return collectInApp(rows)
}

func (s *InAppStore) MarkRead(id string, userID int64, at time.Time) error {
	_, err := s.db.Exec(
		`UPDATE in_app_notifications SET status = 'read', read_at = ?
		 WHERE id = ? AND user_id = ? AND status = 'delivered'`,
		at.UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark in-app read: %w", err)
	}
	return nil
}

func (s *InAppStore) MarkDismissed(id string, userID int64, at time.Time) error {
	_, err := s.db.Exec(
		`UPDATE in_app_notifications SET status = 'dismissed', dismissed_at = ?
		 WHERE id = ? AND user_id = ? AND status != 'dismissed'`,
		at.UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark in-app dismissed: %w", err)
	}
	return nil
}

func (s *InAppStore) UnreadCount(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM in_app_notifications
		 WHERE user_id = ? AND type = 'inbox' AND status = 'delivered'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

func collectInApp(rows *sql.Rows) ([]model.InAppNotification, error) {
	var list []model.InAppNotification
	for rows.Next() {
		n, err := scanInApp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan in-app notification: %w", err)
		}
		list = append(list, *n)
	}
	return list, rows.Err()
}
