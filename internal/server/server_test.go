package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doktu-co/notify/internal/database"
	"github.com/doktu-co/notify/internal/engine"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(db, nil, nil, nil, engine.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestScheduleThroughRouter(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	if _, err := srv.db.Exec(
		`INSERT INTO users (email, first_name, last_name, phone) VALUES ('marie@example.com', 'Marie', 'Dupont', '')`,
	); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"user_id":      1,
		"trigger_code": "ACCOUNT_PASSWORD_CHANGED",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/schedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
