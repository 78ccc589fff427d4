package store

import (
	"database/sql"
	"fmt"

	"github.com/doktu-co/notify/internal/model"
)

type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

const prefCols = `id, user_id, email_enabled, sms_enabled, push_enabled,
	security_enabled, transactional_enabled, appointment_reminders_enabled,
	membership_notifications_enabled, document_notifications_enabled,
	marketing_emails_enabled, life_cycle_enabled,
	quiet_hours_start, quiet_hours_end, locale, timezone, created_at, updated_at`

func scanPref(scanner interface{ Scan(...any) error }) (*model.Preference, error) {
	var p model.Preference
	err := scanner.Scan(&p.ID, &p.UserID, &p.EmailEnabled, &p.SMSEnabled, &p.PushEnabled,
		&p.SecurityEnabled, &p.TransactionalEnabled, &p.AppointmentRemindersEnabled,
		&p.MembershipEnabled, &p.DocumentsEnabled, &p.MarketingEnabled, &p.LifeCycleEnabled,
		&p.QuietHoursStart, &p.QuietHoursEnd, &p.Locale, &p.Timezone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PreferenceStore) Get(userID int64) (*model.Preference, error) {
	row := s.db.QueryRow(`SELECT `+prefCols+` FROM notification_preferences WHERE user_id = ?`, userID)
	p, err := scanPref(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return p, nil
}

// Resolve returns the user's preferences, creating the default row on first
// use. The insert ignores conflicts so two concurrent resolves for a new
// user converge on one row.
func (s *PreferenceStore) Resolve(userID int64) (*model.Preference, error) {
	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	// Column defaults carry the preference defaults: email on, SMS/push off,
	// all categories on except marketing, quiet hours 22:00-08:00 Europe/Paris.
	_, err = s.db.Exec(
		`INSERT INTO notification_preferences (user_id) VALUES (?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("create default preferences: %w", err)
	}

	p, err = s.Get(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("preferences missing after insert for user %d", userID)
	}
	return p, nil
}

// Update persists the mutable preference fields. Security and transactional
// flags are still written, but the policy filter does not consult them.
func (s *PreferenceStore) Update(p *model.Preference) error {
	_, err := s.db.Exec(
		`UPDATE notification_preferences SET
		   email_enabled = ?, sms_enabled = ?, push_enabled = ?,
		   appointment_reminders_enabled = ?, membership_notifications_enabled = ?,
		   document_notifications_enabled = ?, marketing_emails_enabled = ?, life_cycle_enabled = ?,
		   quiet_hours_start = ?, quiet_hours_end = ?, locale = ?, timezone = ?,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ?`,
		p.EmailEnabled, p.SMSEnabled, p.PushEnabled,
		p.AppointmentRemindersEnabled, p.MembershipEnabled,
		p.DocumentsEnabled, p.MarketingEnabled, p.LifeCycleEnabled,
		p.QuietHoursStart, p.QuietHoursEnd, p.Locale, p.Timezone,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}
