package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/doktu-co/notify/internal/email"
	"github.com/doktu-co/notify/internal/model"
	"github.com/doktu-co/notify/internal/push"
	"github.com/doktu-co/notify/internal/sms"
	"github.com/doktu-co/notify/internal/template"
	"github.com/doktu-co/notify/internal/trigger"
)

// ProcessPending selects due and retryable rows and attempts delivery.
// Failures are isolated per row: one bad provider call never blocks the
// rest of the batch. Returns the number of rows successfully sent.
func (e *Engine) ProcessPending(ctx context.Context) (int, error) {
	due, err := e.queue.ListDue(e.now(), e.cfg.MaxRetries, e.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list due notifications: %w", err)
	}

	sent := 0
	for i := range due {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if e.deliver(ctx, &due[i]) {
			sent++
		}
	}
	return sent, nil
}

// deliver attempts one row and records the outcome. Transient failures go
// back to pending until the retry cap; permanent failures exhaust retries
// immediately since retrying cannot fix them.
func (e *Engine) deliver(ctx context.Context, n *model.QueuedNotification) bool {
	err, permanent := e.send(ctx, n)
	if err == nil {
		now := e.now()
		if err := e.queue.MarkSent(n.ID, now); err != nil {
			e.logger.Error("mark sent", "id", n.ID, "error", err)
			return false
		}
		e.recordAudit(&model.AuditEntry{
			UserID:        n.UserID,
			AppointmentID: n.AppointmentID,
			EventType:     model.AuditSent,
			Channel:       n.Channel,
			TriggerCode:   n.TriggerCode,
		})
		e.logger.Info("notification sent", "id", n.ID, "channel", n.Channel, "trigger", n.TriggerCode)
		return true
	}

	if permanent {
		if markErr := e.queue.MarkPermanentFailure(n.ID, err.Error(), e.cfg.MaxRetries); markErr != nil {
			e.logger.Error("mark permanent failure", "id", n.ID, "error", markErr)
		}
		e.logger.Error("notification permanently failed",
			"id", n.ID, "channel", n.Channel, "trigger", n.TriggerCode, "error", err)
	} else {
		if markErr := e.queue.MarkFailed(n.ID, err.Error(), e.cfg.MaxRetries); markErr != nil {
			e.logger.Error("mark failed", "id", n.ID, "error", markErr)
		}
		e.logger.Warn("notification delivery failed, will retry",
			"id", n.ID, "channel", n.Channel, "retry_count", n.RetryCount, "error", err)
	}
	e.recordAudit(&model.AuditEntry{
		UserID:        n.UserID,
		AppointmentID: n.AppointmentID,
		EventType:     model.AuditFailed,
		Channel:       n.Channel,
		TriggerCode:   n.TriggerCode,
		ErrorMessage:  err.Error(),
	})
	return false
}

// send performs the channel-specific provider call. The second return value
// reports whether a failure is permanent.
func (e *Engine) send(ctx context.Context, n *model.QueuedNotification) (error, bool) {
	user, err := e.users.Get(n.UserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err), false
	}
	if user == nil {
		return fmt.Errorf("%w: %d", ErrUserNotFound, n.UserID), true
	}

	locale := "en"
	if prefs, err := e.prefs.Get(n.UserID); err == nil && prefs != nil {
		locale = prefs.Locale
	}

	if e.renderer == nil {
		return errors.New("renderer not configured"), false
	}
	rendered, err := e.renderer.Render(n.TemplateKey, n.MergeData, locale)
	if err != nil {
		return fmt.Errorf("render %s: %w", n.TemplateKey, err),
			errors.Is(err, template.ErrUnknownTemplate)
	}

	switch n.Channel {
	case model.ChannelEmail:
		if e.email == nil {
			return errors.New("email sender not configured"), false
		}
		if err := e.email.Send(ctx, user.Email, rendered.Subject, rendered.HTMLBody, rendered.TextBody); err != nil {
			return fmt.Errorf("send email: %w", err), errors.Is(err, email.ErrRejected)
		}
	case model.ChannelSMS:
		if e.sms == nil {
			return errors.New("sms sender not configured"), false
		}
		if user.Phone == "" {
			return errors.New("user has no phone number"), true
		}
		if err := e.sms.Send(ctx, user.Phone, rendered.TextBody); err != nil {
			return fmt.Errorf("send sms: %w", err), errors.Is(err, sms.ErrRejected)
		}
	case model.ChannelPush:
		if e.push == nil {
			return errors.New("push sender not configured"), false
		}
		if err := e.push.SendToUser(ctx, n.UserID, rendered.Subject, rendered.TextBody, e.cfg.DashboardURL); err != nil {
			return fmt.Errorf("send push: %w", err), errors.Is(err, push.ErrNoSubscriptions)
		}
	case model.ChannelInApp:
		if err := e.deliverInApp(n, rendered); err != nil {
			return fmt.Errorf("deliver in-app: %w", err), false
		}
	default:
		return fmt.Errorf("unknown channel %q", n.Channel), true
	}
	return nil, false
}

// deliverInApp materializes the row's banner/inbox surfaces per the catalog
// and pushes them to connected clients best-effort.
func (e *Engine) deliverInApp(n *model.QueuedNotification, rendered Rendered) error {
	def, ok := trigger.Lookup(trigger.Code(n.TriggerCode))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrigger, n.TriggerCode)
	}

	kinds := make([]string, 0, 2)
	if def.InApp.Banner {
		kinds = append(kinds, model.InAppBanner)
	}
	if def.InApp.Inbox {
		kinds = append(kinds, model.InAppInbox)
	}

	for _, kind := range kinds {
		row := &model.InAppNotification{
			UserID:             n.UserID,
			AppointmentID:      n.AppointmentID,
			Type:               kind,
			TriggerCode:        n.TriggerCode,
			Title:              rendered.Subject,
			Message:            rendered.TextBody,
			Priority:           n.Priority,
			Style:              def.InApp.Style,
			Persistent:         def.InApp.Persistent,
			AutoDismissSeconds: def.InApp.AutoDismissSeconds,
		}
		if err := e.inapp.Create(row); err != nil {
			return err
		}
		if e.notifier != nil {
			e.notifier.Notify(n.UserID, row)
		}
	}
	return nil
}

// Worker drives ProcessPending on an interval. A tick that arrives while
// the previous one is still running is skipped, so slow providers cannot
// stack overlapping batches. Kick requests an immediate run without waiting
// for the next tick.
type Worker struct {
	mu      sync.RWMutex
	engine  *Engine
	running atomic.Bool
	kick    chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewWorker(e *Engine) *Worker {
	return &Worker{
		engine: e,
		kick:   make(chan struct{}, 1),
	}
}

// Start begins the worker loop.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.mu.Unlock()

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.engine.cfg.WorkerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runOnce(ctx)
			case <-w.kick:
				w.runOnce(ctx)
			}
		}
	}()
}

// Stop gracefully stops the worker and waits for an in-flight batch.
func (w *Worker) Stop() {
	w.mu.RLock()
	cancel := w.cancel
	done := w.done
	w.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Kick schedules an immediate best-effort run, used right after an enqueue
// to cut latency for already-due rows. Never blocks.
func (w *Worker) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	if !w.running.CompareAndSwap(false, true) {
		return
	}
	defer w.running.Store(false)

	sent, err := w.engine.ProcessPending(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.engine.logger.Error("process pending notifications", "error", err)
		return
	}
	if sent > 0 {
		w.engine.logger.Debug("worker tick complete", "sent", sent)
	}
}
