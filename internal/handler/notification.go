package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/doktu-co/notify/internal/engine"
	"github.com/doktu-co/notify/internal/middleware"
	"github.com/doktu-co/notify/internal/store"
)

type NotificationHandler struct {
	engine *engine.Engine
	worker *engine.Worker
	inapp  *store.InAppStore
	audit  *store.AuditStore
	logger *slog.Logger
}

func NewNotificationHandler(e *engine.Engine, w *engine.Worker, inapp *store.InAppStore, audit *store.AuditStore, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{engine: e, worker: w, inapp: inapp, audit: audit, logger: logger}
}

// Schedule accepts a domain event and runs it through the dispatch pipeline.
// Policy suppressions are not errors: the response reports scheduled=false
// with the suppression reason.
func (h *NotificationHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.TriggerCode == "" {
		writeError(w, http.StatusBadRequest, "trigger_code is required")
		return
	}
	req.IPAddress = middleware.RealIP(r)
	req.UserAgent = r.UserAgent()

	result, err := h.engine.ScheduleNotification(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrUnknownTrigger):
			writeError(w, http.StatusBadRequest, "unknown trigger code")
		case errors.Is(err, engine.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error("schedule failed", "user_id", req.UserID, "trigger", req.TriggerCode, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to schedule notification")
		}
		return
	}

	if result.Scheduled && h.worker != nil {
		h.worker.Kick()
	}

	status := http.StatusOK
	if result.Scheduled {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

// Process runs one queue pass synchronously. The background worker does the
// same thing on a timer; this endpoint exists for operational tooling.
func (h *NotificationHandler) Process(w http.ResponseWriter, r *http.Request) {
	count, err := h.engine.ProcessPending(r.Context())
	if err != nil {
		h.logger.Error("queue pass failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process queue")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"processed": count})
}

func (h *NotificationHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	limit := parseLimit(r, 50)

	items, err := h.inapp.ListInbox(userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load inbox")
		return
	}
	unread, err := h.inapp.UnreadCount(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count unread")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) Banners(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	banners, err := h.inapp.ListActiveBanners(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load banners")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"banners": banners})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.inapp.MarkRead(id, userID, time.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := h.inapp.MarkDismissed(id, userID, time.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to dismiss")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// History returns the audit trail for one user, newest first.
func (h *NotificationHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.audit.ListByUser(userID, parseLimit(r, 100))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": entries})
}

func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 500 {
		return def
	}
	return n
}
