package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/doktu-co/notify/internal/model"
)

type AppointmentStore struct {
	db *sql.DB
}

func NewAppointmentStore(db *sql.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

// GetWithDoctor returns the appointment joined with its doctor's identity,
// as the context enricher needs it.
func (s *AppointmentStore) GetWithDoctor(id int64) (*model.AppointmentDetail, error) {
	var a model.AppointmentDetail
	var price, joinURL, specialty sql.NullString
	err := s.db.QueryRow(
		`SELECT a.id, a.patient_id, a.doctor_id, d.user_id, a.scheduled_at, a.duration_minutes,
		        a.status, a.price, a.join_url, u.first_name, u.last_name, d.specialty
		 FROM appointments a
		 JOIN doctors d ON d.id = a.doctor_id
		 JOIN users u ON u.id = d.user_id
		 WHERE a.id = ?`, id,
	).Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DoctorUserID, &a.ScheduledAt, &a.DurationMinutes,
		&a.Status, &price, &joinURL, &a.DoctorFirstName, &a.DoctorLastName, &specialty)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	a.Price = price.String
	a.JoinURL = joinURL.String
	a.DoctorSpecialty = specialty.String
	return &a, nil
}

// ListConfirmedBetween returns confirmed appointments starting inside
// [from, to). The reminder sweeper uses this to find upcoming consultations.
func (s *AppointmentStore) ListConfirmedBetween(from, to time.Time) ([]model.AppointmentDetail, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.patient_id, a.doctor_id, d.user_id, a.scheduled_at, a.duration_minutes,
		        a.status, a.price, a.join_url, u.first_name, u.last_name, d.specialty
		 FROM appointments a
		 JOIN doctors d ON d.id = a.doctor_id
		 JOIN users u ON u.id = d.user_id
		 WHERE a.status = 'confirmed' AND a.scheduled_at >= ? AND a.scheduled_at < ?
		 ORDER BY a.scheduled_at ASC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list confirmed appointments: %w", err)
	}
	defer rows.Close()

	var list []model.AppointmentDetail
	for rows.Next() {
		var a model.AppointmentDetail
		var price, joinURL, specialty sql.NullString
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DoctorUserID, &a.ScheduledAt,
			&a.DurationMinutes, &a.Status, &price, &joinURL,
			&a.DoctorFirstName, &a.DoctorLastName, &specialty); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.Price = price.String
		a.JoinURL = joinURL.String
		a.DoctorSpecialty = specialty.String
		list = append(list, a)
	}
	return list, rows.Err()
}
