package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doktu-co/notify/internal/model"
)

func newNotificationHandler(env *testEnv) *NotificationHandler {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewNotificationHandler(env.engine, nil, env.stores.InApp, env.stores.Audit, logger)
}

func TestScheduleEndpoint(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)
	userID := seedUser(t, env.db, "marie@example.com")

	rec := doJSON(t, h.Schedule, http.MethodPost, "/api/notifications/schedule", map[string]any{
		"user_id":      userID,
		"trigger_code": "ACCOUNT_PASSWORD_CHANGED",
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}

	var result struct {
		Scheduled bool     `json:"scheduled"`
		Channels  []string `json:"channels"`
	}
	decodeResponse(t, rec, &result)
	if !result.Scheduled {
		t.Fatal("expected scheduled=true")
	}
	if len(result.Channels) == 0 {
		t.Fatal("expected at least one channel")
	}
}

func TestScheduleValidation(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)
	userID := seedUser(t, env.db, "marie@example.com")

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing user", map[string]any{"trigger_code": "ACCOUNT_PASSWORD_CHANGED"}, http.StatusBadRequest},
		{"missing trigger", map[string]any{"user_id": userID}, http.StatusBadRequest},
		{"unknown trigger", map[string]any{"user_id": userID, "trigger_code": "NO_SUCH_THING"}, http.StatusBadRequest},
		{"unknown user", map[string]any{"user_id": 9999, "trigger_code": "ACCOUNT_PASSWORD_CHANGED"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.Schedule, http.MethodPost, "/api/notifications/schedule", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestScheduleSuppressedReturnsOK(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)
	userID := seedUser(t, env.db, "marie@example.com")

	body := map[string]any{"user_id": userID, "trigger_code": "ACCOUNT_PASSWORD_CHANGED"}
	if rec := doJSON(t, h.Schedule, http.MethodPost, "/api/notifications/schedule", body); rec.Code != http.StatusAccepted {
		t.Fatalf("first request status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, h.Schedule, http.MethodPost, "/api/notifications/schedule", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("suppressed status = %d, want %d", rec.Code, http.StatusOK)
	}
	var result struct {
		Scheduled bool   `json:"scheduled"`
		Reason    string `json:"reason"`
	}
	decodeResponse(t, rec, &result)
	if result.Scheduled {
		t.Fatal("expected scheduled=false")
	}
	if result.Reason != model.ReasonDuplicateProtection {
		t.Fatalf("reason = %q, want %q", result.Reason, model.ReasonDuplicateProtection)
	}
}

func TestInboxReadDismissFlow(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)
	userID := seedUser(t, env.db, "marie@example.com")

	n := &model.InAppNotification{
		UserID:      userID,
		Type:        model.InAppInbox,
		TriggerCode: "BOOKING_CONFIRMED",
		Title:       "Appointment confirmed",
		Message:     "Your appointment is confirmed.",
		Priority:    70,
	}
	if err := env.stores.InApp.Create(n); err != nil {
		t.Fatalf("seed in-app: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications/inbox", h.Inbox)
	mux.HandleFunc("POST /api/notifications/{id}/read", h.MarkRead)
	mux.HandleFunc("POST /api/notifications/{id}/dismiss", h.Dismiss)

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}
	post := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
		return rec
	}

	rec := get("/api/notifications/inbox?user_id=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("inbox status = %d", rec.Code)
	}
	var inbox struct {
		Notifications []model.InAppNotification `json:"notifications"`
		UnreadCount   int                       `json:"unread_count"`
	}
	decodeResponse(t, rec, &inbox)
	if len(inbox.Notifications) != 1 || inbox.UnreadCount != 1 {
		t.Fatalf("inbox = %d items, %d unread; want 1 and 1", len(inbox.Notifications), inbox.UnreadCount)
	}

	if rec := post("/api/notifications/" + n.ID + "/read?user_id=1"); rec.Code != http.StatusOK {
		t.Fatalf("mark read status = %d", rec.Code)
	}
	rec = get("/api/notifications/inbox?user_id=1")
	decodeResponse(t, rec, &inbox)
	if inbox.UnreadCount != 0 {
		t.Fatalf("unread after read = %d, want 0", inbox.UnreadCount)
	}
	if len(inbox.Notifications) != 1 {
		t.Fatal("read notification should stay in the inbox")
	}

	if rec := post("/api/notifications/" + n.ID + "/dismiss?user_id=1"); rec.Code != http.StatusOK {
		t.Fatalf("dismiss status = %d", rec.Code)
	}
	rec = get("/api/notifications/inbox?user_id=1")
	decodeResponse(t, rec, &inbox)
	if len(inbox.Notifications) != 0 {
		t.Fatal("dismissed notification should leave the inbox")
	}
}

func TestInboxRequiresUserID(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)

	rec := doJSON(t, h.Inbox, http.MethodGet, "/api/notifications/inbox", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)
	userID := seedUser(t, env.db, "marie@example.com")

	body := map[string]any{"user_id": userID, "trigger_code": "ACCOUNT_PASSWORD_CHANGED"}
	if rec := doJSON(t, h.Schedule, http.MethodPost, "/api/notifications/schedule", body); rec.Code != http.StatusAccepted {
		t.Fatalf("schedule status = %d", rec.Code)
	}

	rec := doJSON(t, h.History, http.MethodGet, "/api/notifications/history?user_id=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var history struct {
		Events []model.AuditEntry `json:"events"`
	}
	decodeResponse(t, rec, &history)
	if len(history.Events) != 1 {
		t.Fatalf("history = %d events, want 1", len(history.Events))
	}
	if history.Events[0].EventType != model.AuditScheduled {
		t.Fatalf("event type = %q, want %q", history.Events[0].EventType, model.AuditScheduled)
	}
}

func TestProcessEndpoint(t *testing.T) {
	env := setupHandlerTest(t)
	h := newNotificationHandler(env)

	rec := doJSON(t, h.Process, http.MethodPost, "/api/notifications/process", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("process status = %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Processed int `json:"processed"`
	}
	decodeResponse(t, rec, &result)
	if result.Processed != 0 {
		t.Fatalf("processed = %d, want 0 on empty queue", result.Processed)
	}
}
