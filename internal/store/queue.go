package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doktu-co/notify/internal/model"
)

// QueueStore persists the durable dispatch queue. Rows are append-only
// history: they move pending -> sent or pending -> failed, never deleted.
type QueueStore struct {
	db *sql.DB
}

func NewQueueStore(db *sql.DB) *QueueStore {
	return &QueueStore{db: db}
}

const queueCols = `id, user_id, appointment_id, trigger_code, template_key, channel, status,
	priority, scheduled_for, sent_at, retry_count, error_message, merge_data, created_at`

func scanQueued(scanner interface{ Scan(...any) error }) (*model.QueuedNotification, error) {
	var n model.QueuedNotification
	var apptID sql.NullInt64
	var sentAt sql.NullTime
	var errMsg, mergeData sql.NullString
	err := scanner.Scan(&n.ID, &n.UserID, &apptID, &n.TriggerCode, &n.TemplateKey, &n.Channel,
		&n.Status, &n.Priority, &n.ScheduledFor, &sentAt, &n.RetryCount, &errMsg, &mergeData, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if apptID.Valid {
		n.AppointmentID = &apptID.Int64
	}
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}
	n.ErrorMessage = errMsg.String
	if mergeData.Valid && mergeData.String != "" {
		if err := json.Unmarshal([]byte(mergeData.String), &n.MergeData); err != nil {
			return nil, fmt.Errorf("decode merge data: %w", err)
		}
	}
	return &n, nil
}

// EnqueueParams describes one channel row to insert.
type EnqueueParams struct {
	UserID        int64
	AppointmentID *int64
	TriggerCode   string
	TemplateKey   string
	Channel       string
	Priority      int
	ScheduledFor  time.Time
	MergeData     map[string]string
}

// Enqueue inserts a pending row unless an equivalent row for the same
// (user, trigger, appointment, channel) was created inside the duplicate
// window. The guard runs inside the INSERT itself so concurrent schedulers
// for the same user cannot both get a row in.
// Returns the new row id, or "" if the insert was suppressed as a duplicate.
func (s *QueueStore) Enqueue(p EnqueueParams, dupWindow time.Duration) (string, error) {
	id := uuid.NewString()

	var mergeJSON []byte
	if p.MergeData != nil {
		var err error
		mergeJSON, err = json.Marshal(p.MergeData)
		if err != nil {
			return "", fmt.Errorf("encode merge data: %w", err)
		}
	}

	var apptID sql.NullInt64
	if p.AppointmentID != nil {
		apptID = sql.NullInt64{Int64: *p.AppointmentID, Valid: true}
	}

	windowStart := time.Now().UTC().Add(-dupWindow)

	result, err := s.db.Exec(
		`INSERT INTO notification_queue
		   (id, user_id, appointment_id, trigger_code, template_key, channel, status, priority, scheduled_for, merge_data)
		 SELECT ?, ?, ?, ?, ?, ?, 'pending', ?, ?, ?
		 WHERE NOT EXISTS (
		   SELECT 1 FROM notification_queue
		   WHERE user_id = ? AND trigger_code = ? AND appointment_id IS ? AND channel = ?
		     AND created_at >= ?
		     AND status IN ('pending', 'sent', 'failed')
		 )`,
		id, p.UserID, apptID, p.TriggerCode, p.TemplateKey, p.Channel, p.Priority,
		p.ScheduledFor.UTC(), string(mergeJSON),
		p.UserID, p.TriggerCode, apptID, p.Channel, windowStart,
	)
	if err != nil {
		return "", fmt.Errorf("enqueue notification: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("enqueue rows affected: %w", err)
	}
	if affected == 0 {
		return "", nil
	}
	return id, nil
}

// HasRecent reports whether any row for (user, trigger, appointment) was
// created inside the window with pending or failed status. Failed rows count
// because a retry may still be in flight.
func (s *QueueStore) HasRecent(userID int64, triggerCode string, appointmentID *int64, window time.Duration) (bool, error) {
	var apptID sql.NullInt64
	if appointmentID != nil {
		apptID = sql.NullInt64{Int64: *appointmentID, Valid: true}
	}

	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notification_queue
		 WHERE user_id = ? AND trigger_code = ? AND appointment_id IS ?
		   AND created_at >= ?
		   AND status IN ('pending', 'failed')`,
		userID, triggerCode, apptID, time.Now().UTC().Add(-window),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check recent notification: %w", err)
	}
	return count > 0, nil
}

// HasHigherPriorityPending reports whether the user has a pending row with
// strictly higher priority scheduled inside the overlap window around the
// candidate time.
func (s *QueueStore) HasHigherPriorityPending(userID int64, priority int, around time.Time, overlap time.Duration) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notification_queue
		 WHERE user_id = ? AND status = 'pending' AND priority > ?
		   AND scheduled_for BETWEEN ? AND ?`,
		userID, priority, around.UTC().Add(-overlap), around.UTC().Add(overlap),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check priority overlap: %w", err)
	}
	return count > 0, nil
}

// ListDue selects rows the worker should attempt now: pending rows whose
// scheduled time has arrived, plus failed rows that still have retries left.
// Highest priority first so urgent sends are never starved by backlog.
func (s *QueueStore) ListDue(now time.Time, maxRetries, limit int) ([]model.QueuedNotification, error) {
	rows, err := s.db.Query(
		`SELECT `+queueCols+` FROM notification_queue
		 WHERE (status = 'pending' AND scheduled_for <= ?)
		    OR (status = 'failed' AND retry_count < ?)
		 ORDER BY priority DESC, scheduled_for ASC
		 LIMIT ?`,
		now.UTC(), maxRetries, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	defer rows.Close()

	var due []model.QueuedNotification
	for rows.Next() {
		n, err := scanQueued(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due notification: %w", err)
		}
		due = append(due, *n)
	}
	return due, rows.Err()
}

// MarkSent transitions a row to its terminal success state.
func (s *QueueStore) MarkSent(id string, at time.Time) error {
	_, err := s.db.Exec(
		`UPDATE notification_queue SET status = 'sent', sent_at = ?, error_message = NULL
		 WHERE id = ? AND status != 'sent'`,
		at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed records a transient delivery failure. The retry count goes up
// by one; at the cap the row becomes terminally failed, otherwise it returns
// to pending so the next tick retries it.
func (s *QueueStore) MarkFailed(id string, errMsg string, maxRetries int) error {
	_, err := s.db.Exec(
		`UPDATE notification_queue
		 SET retry_count = retry_count + 1,
		     status = CASE WHEN retry_count + 1 >= ? THEN 'failed' ELSE 'pending' END,
		     error_message = ?
		 WHERE id = ? AND status != 'sent'`,
		maxRetries, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	return nil
}

// MarkPermanentFailure fails a row immediately without consuming retries:
// the retry count jumps to the cap so the polling predicate never selects
// it again.
func (s *QueueStore) MarkPermanentFailure(id string, errMsg string, maxRetries int) error {
	_, err := s.db.Exec(
		`UPDATE notification_queue SET status = 'failed', retry_count = ?, error_message = ?
		 WHERE id = ? AND status != 'sent'`,
		maxRetries, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("mark notification permanently failed: %w", err)
	}
	return nil
}

func (s *QueueStore) Get(id string) (*model.QueuedNotification, error) {
	row := s.db.QueryRow(`SELECT `+queueCols+` FROM notification_queue WHERE id = ?`, id)
	n, err := scanQueued(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func (s *QueueStore) ListByUser(userID int64, limit int) ([]model.QueuedNotification, error) {
	rows, err := s.db.Query(
		`SELECT `+queueCols+` FROM notification_queue
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications by user: %w", err)
	}
	defer rows.Close()

	var list []model.QueuedNotification
	for rows.Next() {
		n, err := scanQueued(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, *n)
	}
	return list, rows.Err()
}
