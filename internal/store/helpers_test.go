package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/doktu-co/notify/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	result, err := db.Exec(
		`INSERT INTO users (email, first_name, last_name, phone) VALUES (?, 'Marie', 'Dupont', '+33612345678')`,
		email,
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

func seedAppointment(t *testing.T, db *sql.DB, patientID int64, at time.Time) int64 {
	t.Helper()
	result, err := db.Exec(`INSERT INTO users (email, first_name, last_name) VALUES (?, 'Anna', 'Laurent')`,
		"doctor-"+time.Now().Format("150405.000000")+"@example.com")
	if err != nil {
		t.Fatalf("seed doctor user: %v", err)
	}
	doctorUserID, _ := result.LastInsertId()

	result, err = db.Exec(`INSERT INTO doctors (user_id, specialty) VALUES (?, 'Dermatology')`, doctorUserID)
	if err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	doctorID, _ := result.LastInsertId()

	result, err = db.Exec(
		`INSERT INTO appointments (patient_id, doctor_id, scheduled_at, status, price, join_url)
		 VALUES (?, ?, ?, 'confirmed', '35.00', 'https://meet.example.com/j/42')`,
		patientID, doctorID, at.UTC(),
	)
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}
