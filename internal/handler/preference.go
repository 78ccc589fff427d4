package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/doktu-co/notify/internal/store"
)

type PreferenceHandler struct {
	prefs  *store.PreferenceStore
	logger *slog.Logger
}

func NewPreferenceHandler(prefs *store.PreferenceStore, logger *slog.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, logger: logger}
}

func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	p, err := h.prefs.Resolve(userID)
	if err != nil {
		h.logger.Error("failed to resolve preferences", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update applies a partial preference change. Fields absent from the request
// body keep their current values, so clients can PATCH a single toggle with
// a one-key document.
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	p, err := h.prefs.Resolve(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	p.UserID = userID

	if !validClock(p.QuietHoursStart) || !validClock(p.QuietHoursEnd) {
		writeError(w, http.StatusBadRequest, "quiet hours must be HH:MM")
		return
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		writeError(w, http.StatusBadRequest, "unknown timezone")
		return
	}

	if err := h.prefs.Update(p); err != nil {
		h.logger.Error("failed to update preferences", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
