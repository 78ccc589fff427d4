package engine

import (
	"context"
	"sync"
	"time"

	"github.com/doktu-co/notify/internal/store"
	"github.com/doktu-co/notify/internal/trigger"
)

// ReminderScheduler sweeps upcoming confirmed appointments and schedules
// the time-based reminder triggers through the regular engine pipeline, so
// preferences, quiet hours and duplicate protection all apply. The 24-hour
// sweep runs at the top of each hour; the 1-hour and live-imminent sweeps
// run every five minutes. A sweep window wider than the cadence is fine:
// duplicate protection collapses re-selections of the same appointment.
type ReminderScheduler struct {
	mu           sync.RWMutex
	engine       *Engine
	appointments *store.AppointmentStore
	interval     time.Duration
	cancel       context.CancelFunc
	done         chan struct{}
}

func NewReminderScheduler(e *Engine, appointments *store.AppointmentStore) *ReminderScheduler {
	return &ReminderScheduler{
		engine:       e,
		appointments: appointments,
		interval:     time.Minute,
	}
}

// Start begins the sweep loop.
func (r *ReminderScheduler) Start(ctx context.Context) {
	r.mu.Lock()
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	r.mu.Unlock()

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.tick(ctx)
			}
		}
	}()
}

// Stop gracefully stops the sweep loop.
func (r *ReminderScheduler) Stop() {
	r.mu.RLock()
	cancel := r.cancel
	done := r.done
	r.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (r *ReminderScheduler) tick(ctx context.Context) {
	now := r.engine.now()

	if now.Minute() == 0 {
		r.sweep(ctx, trigger.BookingReminder24H, now.Add(23*time.Hour), now.Add(24*time.Hour))
	}
	if now.Minute()%5 == 0 {
		r.sweep(ctx, trigger.BookingReminder1H, now.Add(55*time.Minute), now.Add(65*time.Minute))
		r.sweep(ctx, trigger.BookingLiveImminent, now, now.Add(5*time.Minute))
	}
}

func (r *ReminderScheduler) sweep(ctx context.Context, code trigger.Code, from, to time.Time) {
	upcoming, err := r.appointments.ListConfirmedBetween(from, to)
	if err != nil {
		r.engine.logger.Error("reminder sweep", "trigger", code, "error", err)
		return
	}

	for i := range upcoming {
		appt := upcoming[i]
		_, err := r.engine.ScheduleNotification(ctx, Request{
			UserID:        appt.PatientID,
			TriggerCode:   code,
			AppointmentID: &appt.ID,
		})
		if err != nil {
			r.engine.logger.Error("schedule reminder",
				"trigger", code, "appointment_id", appt.ID, "error", err)
		}
	}
}
