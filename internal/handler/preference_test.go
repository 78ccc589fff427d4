package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/doktu-co/notify/internal/model"
)

func newPreferenceHandler(env *testEnv) *PreferenceHandler {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewPreferenceHandler(env.stores.Preferences, logger)
}

func TestPreferenceGetCreatesDefaults(t *testing.T) {
	env := setupHandlerTest(t)
	h := newPreferenceHandler(env)
	seedUser(t, env.db, "marie@example.com")

	rec := doJSON(t, h.Get, http.MethodGet, "/api/preferences?user_id=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var p model.Preference
	decodeResponse(t, rec, &p)
	if !p.EmailEnabled {
		t.Fatal("email should default on")
	}
	if p.SMSEnabled || p.MarketingEnabled {
		t.Fatal("sms and marketing should default off")
	}
	if p.QuietHoursStart != "22:00" || p.QuietHoursEnd != "08:00" {
		t.Fatalf("quiet hours = %s-%s, want 22:00-08:00", p.QuietHoursStart, p.QuietHoursEnd)
	}
}

func TestPreferencePartialUpdate(t *testing.T) {
	env := setupHandlerTest(t)
	h := newPreferenceHandler(env)
	seedUser(t, env.db, "marie@example.com")

	rec := doJSON(t, h.Update, http.MethodPut, "/api/preferences?user_id=1",
		map[string]any{"sms_enabled": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var p model.Preference
	decodeResponse(t, rec, &p)
	if !p.SMSEnabled {
		t.Fatal("sms should be enabled after update")
	}
	if !p.EmailEnabled {
		t.Fatal("untouched fields must keep their values")
	}

	stored, err := env.stores.Preferences.Get(1)
	if err != nil || stored == nil {
		t.Fatalf("load stored preferences: %v", err)
	}
	if !stored.SMSEnabled {
		t.Fatal("update did not persist")
	}
}

func TestPreferenceUpdateRejectsBadValues(t *testing.T) {
	env := setupHandlerTest(t)
	h := newPreferenceHandler(env)
	seedUser(t, env.db, "marie@example.com")

	cases := []struct {
		name string
		body map[string]any
	}{
		{"bad clock", map[string]any{"quiet_hours_start": "25:99"}},
		{"bad timezone", map[string]any{"timezone": "Mars/Olympus"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.Update, http.MethodPut, "/api/preferences?user_id=1", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
