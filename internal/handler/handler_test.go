package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doktu-co/notify/internal/database"
	"github.com/doktu-co/notify/internal/engine"
	"github.com/doktu-co/notify/internal/store"
	"github.com/doktu-co/notify/internal/template"
)

type testEnv struct {
	db     *sql.DB
	engine *engine.Engine
	stores engine.Stores
}

func setupHandlerTest(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	renderer, err := template.NewRenderer()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}

	st := engine.Stores{
		Users:         store.NewUserStore(db),
		Preferences:   store.NewPreferenceStore(db),
		Appointments:  store.NewAppointmentStore(db),
		Queue:         store.NewQueueStore(db),
		InApp:         store.NewInAppStore(db),
		Audit:         store.NewAuditStore(db),
		Frequency:     store.NewFrequencyStore(db),
		Subscriptions: store.NewSubscriptionStore(db),
	}
	snd := engine.Senders{Renderer: renderer}

	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	eng := engine.NewEngine(engine.DefaultConfig(), st, snd, logger)

	return &testEnv{db: db, engine: eng, stores: st}
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

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
