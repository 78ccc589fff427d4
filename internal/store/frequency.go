package store

import (
	"database/sql"
	"fmt"
	"time"
)

// FrequencyStore tracks per-user per-category weekly counters backing the
// frequency cap. Weeks are bucketed by their Monday (UTC).
type FrequencyStore struct {
	db *sql.DB
}

func NewFrequencyStore(db *sql.DB) *FrequencyStore {
	return &FrequencyStore{db: db}
}

// WeekStarting returns the Monday of the week containing t, as "2006-01-02".
func WeekStarting(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

func (s *FrequencyStore) CountForWeek(userID int64, category string, week string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT sent_count FROM notification_frequency
		 WHERE user_id = ? AND category = ? AND week_starting = ?`,
		userID, category, week,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count for week: %w", err)
	}
	return count, nil
}

func (s *FrequencyStore) Increment(userID int64, category string, week string) error {
	_, err := s.db.Exec(
		`INSERT INTO notification_frequency (user_id, category, week_starting, sent_count, last_sent_at)
		 VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id, category, week_starting)
		 DO UPDATE SET sent_count = sent_count + 1, last_sent_at = CURRENT_TIMESTAMP`,
		userID, category, week,
	)
	if err != nil {
		return fmt.Errorf("increment frequency: %w", err)
	}
	return nil
}
