package model

import "time"

// AppointmentDetail is an appointment joined with its doctor, as the
// context enricher consumes it.
type AppointmentDetail struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	DoctorID        int64     `json:"doctor_id"`
	DoctorUserID    int64     `json:"doctor_user_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Price           string    `json:"price,omitempty"`
	JoinURL         string    `json:"join_url,omitempty"`
	DoctorFirstName string    `json:"doctor_first_name"`
	DoctorLastName  string    `json:"doctor_last_name"`
	DoctorSpecialty string    `json:"doctor_specialty,omitempty"`
}
