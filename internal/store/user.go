package store

import (
	"database/sql"
	"fmt"

	"github.com/doktu-co/notify/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(id int64) (*model.User, error) {
	var u model.User
	var phone sql.NullString
	err := s.db.QueryRow(
		`SELECT id, email, phone, first_name, last_name, role, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &phone, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Phone = phone.String
	return &u, nil
}
