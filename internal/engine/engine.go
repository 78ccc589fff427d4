// Package engine decides whether, when, and through which channels a user
// is notified about a domain event, and delivers the result through a
// durable per-channel dispatch queue.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doktu-co/notify/internal/model"
	"github.com/doktu-co/notify/internal/store"
	"github.com/doktu-co/notify/internal/template"
	"github.com/doktu-co/notify/internal/trigger"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUnknownTrigger = errors.New("unknown trigger code")
)

// EmailSender delivers one rendered email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMSSender delivers one text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// PushSender fans one message out to all of a user's push subscriptions.
type PushSender interface {
	SendToUser(ctx context.Context, userID int64, title, body, url string) error
}

// Renderer produces channel content from a template key and merge data.
type Renderer interface {
	Render(templateKey string, data map[string]string, locale string) (Rendered, error)
}

// Rendered is the output of one template render.
type Rendered = template.Rendered

// InAppNotifier pushes a freshly created in-app notification to connected
// clients. Delivery is best-effort; the row is the durable record.
type InAppNotifier interface {
	Notify(userID int64, n *model.InAppNotification)
}

// Config carries the engine tunables. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	DuplicateWindow     time.Duration
	MaxRetries          int
	BatchSize           int
	WorkerInterval      time.Duration
	MarketingWeeklyCap  int
	LifeCycleWeeklyCap  int
	PrioritySuppression bool
	SuppressionOverlap  time.Duration

	// Platform constants injected into every merge payload.
	SupportEmail string
	DashboardURL string
}

func DefaultConfig() Config {
	return Config{
		DuplicateWindow:     30 * time.Minute,
		MaxRetries:          3,
		BatchSize:           50,
		WorkerInterval:      time.Minute,
		MarketingWeeklyCap:  1,
		LifeCycleWeeklyCap:  3,
		PrioritySuppression: true,
		SuppressionOverlap:  30 * time.Minute,
		SupportEmail:        "support@doktu.co",
		DashboardURL:        "https://app.doktu.co/dashboard",
	}
}

// Engine is the notification dispatch engine. All collaborators are injected
// at construction; an Engine is safe for concurrent use.
type Engine struct {
	cfg Config

	users         *store.UserStore
	prefs         *store.PreferenceStore
	appointments  *store.AppointmentStore
	queue         *store.QueueStore
	inapp         *store.InAppStore
	audit         *store.AuditStore
	frequency     *store.FrequencyStore
	subscriptions *store.SubscriptionStore

	email    EmailSender
	sms      SMSSender
	push     PushSender
	renderer Renderer
	notifier InAppNotifier

	logger *slog.Logger
	now    func() time.Time
}

// Stores bundles the persistence collaborators for NewEngine.
type Stores struct {
	Users         *store.UserStore
	Preferences   *store.PreferenceStore
	Appointments  *store.AppointmentStore
	Queue         *store.QueueStore
	InApp         *store.InAppStore
	Audit         *store.AuditStore
	Frequency     *store.FrequencyStore
	Subscriptions *store.SubscriptionStore
}

// Senders bundles the outbound collaborators for NewEngine. Nil senders are
// allowed: a channel without a sender fails delivery as a transient error
// until one is configured.
type Senders struct {
	Email    EmailSender
	SMS      SMSSender
	Push     PushSender
	Renderer Renderer
	Notifier InAppNotifier
}

func NewEngine(cfg Config, st Stores, snd Senders, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:           cfg,
		users:         st.Users,
		prefs:         st.Preferences,
		appointments:  st.Appointments,
		queue:         st.Queue,
		inapp:         st.InApp,
		audit:         st.Audit,
		frequency:     st.Frequency,
		subscriptions: st.Subscriptions,
		email:         snd.Email,
		sms:           snd.SMS,
		push:          snd.Push,
		renderer:      snd.Renderer,
		notifier:      snd.Notifier,
		logger:        logger.With("component", "engine"),
		now:           time.Now,
	}
}

// Request is the input to ScheduleNotification.
type Request struct {
	UserID        int64             `json:"user_id"`
	TriggerCode   trigger.Code      `json:"trigger_code"`
	AppointmentID *int64            `json:"appointment_id,omitempty"`
	ScheduledFor  time.Time         `json:"scheduled_for,omitempty"`
	MergeData     map[string]string `json:"merge_data,omitempty"`
	IPAddress     string            `json:"-"`
	UserAgent     string            `json:"-"`
}

// Result reports what ScheduleNotification decided.
type Result struct {
	Scheduled    bool      `json:"scheduled"`
	Reason       string    `json:"reason,omitempty"`
	Channels     []string  `json:"channels"`
	QueueIDs     []string  `json:"queue_ids,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for,omitempty"`
}

// ScheduleNotification runs the full decision pipeline for one domain event:
// preference resolution, policy filter, quiet-hours adjustment, channel
// routing, enrichment, and one queue row per selected channel. Policy
// suppressions are not errors; they return Scheduled=false with a reason and
// are audit-logged. Unknown users and trigger codes fail synchronously
// before any row exists.
func (e *Engine) ScheduleNotification(ctx context.Context, req Request) (Result, error) {
	def, ok := trigger.Lookup(req.TriggerCode)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTrigger, req.TriggerCode)
	}

	user, err := e.users.Get(req.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return Result{}, fmt.Errorf("%w: %d", ErrUserNotFound, req.UserID)
	}

	prefs, err := e.prefs.Resolve(req.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve preferences: %w", err)
	}

	requestedFor := req.ScheduledFor
	if requestedFor.IsZero() {
		requestedFor = e.now()
	}

	if reason, err := e.evaluatePolicy(req, def, prefs, requestedFor); err != nil {
		return Result{}, err
	} else if reason != "" {
		e.recordAudit(&model.AuditEntry{
			UserID:        req.UserID,
			AppointmentID: req.AppointmentID,
			EventType:     model.AuditSuppressed,
			TriggerCode:   string(req.TriggerCode),
			Details:       reason,
			IPAddress:     req.IPAddress,
			UserAgent:     req.UserAgent,
		})
		e.logger.Info("notification suppressed",
			"user_id", req.UserID, "trigger", req.TriggerCode, "reason", reason)
		return Result{Scheduled: false, Reason: reason}, nil
	}

	scheduledFor := e.adjustSchedule(requestedFor, prefs, def)
	channels := selectChannels(def, prefs)

	mergeData := e.buildMergeData(req.MergeData, user, req.AppointmentID, prefs)

	var queueIDs []string
	duplicates := 0
	for _, ch := range channels.slice() {
		id, err := e.queue.Enqueue(store.EnqueueParams{
			UserID:        req.UserID,
			AppointmentID: req.AppointmentID,
			TriggerCode:   string(req.TriggerCode),
			TemplateKey:   def.TemplateKey,
			Channel:       ch,
			Priority:      def.Priority,
			ScheduledFor:  scheduledFor,
			MergeData:     mergeData,
		}, e.cfg.DuplicateWindow)
		if err != nil {
			return Result{}, fmt.Errorf("enqueue %s: %w", ch, err)
		}
		if id == "" {
			// Lost the race to a concurrent scheduler for the same event.
			duplicates++
			continue
		}
		queueIDs = append(queueIDs, id)
	}

	if duplicates > 0 && len(queueIDs) == 0 && len(channels.slice()) > 0 {
		e.recordAudit(&model.AuditEntry{
			UserID:        req.UserID,
			AppointmentID: req.AppointmentID,
			EventType:     model.AuditSuppressed,
			TriggerCode:   string(req.TriggerCode),
			Details:       model.ReasonDuplicateProtection,
			IPAddress:     req.IPAddress,
			UserAgent:     req.UserAgent,
		})
		return Result{Scheduled: false, Reason: model.ReasonDuplicateProtection}, nil
	}

	if e.weeklyCap(def.Category) > 0 {
		week := store.WeekStarting(e.now())
		if err := e.frequency.Increment(req.UserID, string(def.Category), week); err != nil {
			e.logger.Error("increment frequency counter", "user_id", req.UserID, "error", err)
		}
	}

	details, _ := json.Marshal(map[string]any{
		"channels":      channels.slice(),
		"scheduled_for": scheduledFor.UTC().Format(time.RFC3339),
	})
	e.recordAudit(&model.AuditEntry{
		UserID:        req.UserID,
		AppointmentID: req.AppointmentID,
		EventType:     model.AuditScheduled,
		TriggerCode:   string(req.TriggerCode),
		Details:       string(details),
		IPAddress:     req.IPAddress,
		UserAgent:     req.UserAgent,
	})
	e.logger.Info("notification scheduled",
		"user_id", req.UserID, "trigger", req.TriggerCode,
		"channels", channels.slice(), "scheduled_for", scheduledFor)

	return Result{
		Scheduled:    true,
		Channels:     channels.slice(),
		QueueIDs:     queueIDs,
		ScheduledFor: scheduledFor,
	}, nil
}

func (e *Engine) weeklyCap(cat trigger.Category) int {
	switch cat {
	case trigger.CategoryMarketing:
		return e.cfg.MarketingWeeklyCap
	case trigger.CategoryLifeCycle:
		return e.cfg.LifeCycleWeeklyCap
	}
	return 0
}

// recordAudit is fire-and-forget: an audit write failure never aborts the
// notification flow.
func (e *Engine) recordAudit(entry *model.AuditEntry) {
	if err := e.audit.Record(entry); err != nil {
		e.logger.Error("write audit entry",
			"user_id", entry.UserID, "event", entry.EventType, "error", err)
	}
}
