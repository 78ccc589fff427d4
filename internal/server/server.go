// Package server wires the stores, the dispatch engine, and the HTTP API
// together.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/doktu-co/notify/internal/email"
	"github.com/doktu-co/notify/internal/engine"
	"github.com/doktu-co/notify/internal/handler"
	"github.com/doktu-co/notify/internal/middleware"
	"github.com/doktu-co/notify/internal/push"
	"github.com/doktu-co/notify/internal/sms"
	"github.com/doktu-co/notify/internal/store"
	"github.com/doktu-co/notify/internal/template"
	ws "github.com/doktu-co/notify/internal/websocket"
)

type Server struct {
	db  *sql.DB
	hub *ws.Hub

	engine    *engine.Engine
	worker    *engine.Worker
	reminders *engine.ReminderScheduler

	notificationH *handler.NotificationHandler
	preferenceH   *handler.PreferenceHandler
	pushH         *handler.PushHandler

	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New builds a fully wired server. The email, SMS, and push clients may be
// nil or unconfigured; delivery on those channels then fails as transient
// until credentials arrive.
func New(db *sql.DB, emailClient *email.Client, smsClient *sms.Client, pushSvc *push.Service, cfg engine.Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	renderer, err := template.NewRenderer()
	if err != nil {
		return nil, err
	}

	subscriptionStore := store.NewSubscriptionStore(db)
	inAppStore := store.NewInAppStore(db)
	auditStore := store.NewAuditStore(db)
	preferenceStore := store.NewPreferenceStore(db)
	appointmentStore := store.NewAppointmentStore(db)

	st := engine.Stores{
		Users:         store.NewUserStore(db),
		Preferences:   preferenceStore,
		Appointments:  appointmentStore,
		Queue:         store.NewQueueStore(db),
		InApp:         inAppStore,
		Audit:         auditStore,
		Frequency:     store.NewFrequencyStore(db),
		Subscriptions: subscriptionStore,
	}

	snd := engine.Senders{
		Renderer: renderer,
		Notifier: hub,
	}
	if emailClient != nil && emailClient.Configured() {
		snd.Email = emailClient
	}
	if smsClient != nil && smsClient.Configured() {
		snd.SMS = smsClient
	}
	if pushSvc != nil && pushSvc.Configured() {
		snd.Push = push.NewDispatcher(pushSvc, subscriptionStore)
	}

	eng := engine.NewEngine(cfg, st, snd, logger)
	worker := engine.NewWorker(eng)

	return &Server{
		db:            db,
		hub:           hub,
		engine:        eng,
		worker:        worker,
		reminders:     engine.NewReminderScheduler(eng, appointmentStore),
		notificationH: handler.NewNotificationHandler(eng, worker, inAppStore, auditStore, logger.With("component", "notification_handler")),
		preferenceH:   handler.NewPreferenceHandler(preferenceStore, logger.With("component", "preference_handler")),
		pushH:         handler.NewPushHandler(subscriptionStore, pushSvc, logger.With("component", "push_handler")),
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}, nil
}

// Start launches the dispatch worker and the reminder sweeps.
func (s *Server) Start(ctx context.Context) {
	s.worker.Start(ctx)
	s.reminders.Start(ctx)
}

// Stop shuts the background loops down and waits for in-flight work.
func (s *Server) Stop() {
	s.reminders.Stop()
	s.worker.Stop()
}

// Engine exposes the dispatch engine for embedding callers.
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/notifications/schedule", s.rateLimitedHandler(s.notificationH.Schedule))
	mux.HandleFunc("POST /api/notifications/process", s.notificationH.Process)
	mux.HandleFunc("GET /api/notifications/inbox", s.notificationH.Inbox)
	mux.HandleFunc("GET /api/notifications/banners", s.notificationH.Banners)
	mux.HandleFunc("GET /api/notifications/history", s.notificationH.History)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.notificationH.MarkRead)
	mux.HandleFunc("POST /api/notifications/{id}/dismiss", s.notificationH.Dismiss)

	mux.HandleFunc("GET /api/preferences", s.preferenceH.Get)
	mux.HandleFunc("PUT /api/preferences", s.preferenceH.Update)

	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /api/push/subscriptions", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// rateLimitedHandler guards write-heavy endpoints against runaway callers.
func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 120, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
