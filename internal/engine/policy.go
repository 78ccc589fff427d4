package engine

import (
	"fmt"
	"time"

	"github.com/doktu-co/notify/internal/model"
	"github.com/doktu-co/notify/internal/store"
	"github.com/doktu-co/notify/internal/trigger"
)

// evaluatePolicy applies the suppression rules in fixed order: category
// gate, duplicate protection, frequency cap, priority suppression. The
// first failing rule wins and its reason code is returned; an empty reason
// means the request proceeds.
func (e *Engine) evaluatePolicy(req Request, def trigger.Definition, prefs *model.Preference, at time.Time) (string, error) {
	if !categoryAllowed(def.Category, prefs) {
		return model.ReasonCategoryDisabled, nil
	}

	recent, err := e.queue.HasRecent(req.UserID, string(req.TriggerCode), req.AppointmentID, e.cfg.DuplicateWindow)
	if err != nil {
		return "", fmt.Errorf("duplicate check: %w", err)
	}
	if recent {
		return model.ReasonDuplicateProtection, nil
	}

	if limit := e.weeklyCap(def.Category); limit > 0 {
		week := store.WeekStarting(e.now())
		count, err := e.frequency.CountForWeek(req.UserID, string(def.Category), week)
		if err != nil {
			return "", fmt.Errorf("frequency check: %w", err)
		}
		if count >= limit {
			return model.ReasonFrequencyCap, nil
		}
	}

	if e.cfg.PrioritySuppression && def.Priority < trigger.BlockingPriority {
		higher, err := e.queue.HasHigherPriorityPending(req.UserID, def.Priority, at, e.cfg.SuppressionOverlap)
		if err != nil {
			return "", fmt.Errorf("priority check: %w", err)
		}
		if higher {
			return model.ReasonPrioritySuppression, nil
		}
	}

	return "", nil
}

// categoryAllowed reports whether the user's preferences permit this
// category. Security and transactional notifications are not user-optional
// and always pass.
func categoryAllowed(cat trigger.Category, prefs *model.Preference) bool {
	switch cat {
	case trigger.CategorySecurity, trigger.CategoryTransactional:
		return true
	case trigger.CategoryReminders:
		return prefs.AppointmentRemindersEnabled
	case trigger.CategoryMembership:
		return prefs.MembershipEnabled
	case trigger.CategoryDocuments:
		return prefs.DocumentsEnabled
	case trigger.CategoryMarketing:
		return prefs.MarketingEnabled
	case trigger.CategoryLifeCycle:
		return prefs.LifeCycleEnabled
	}
	return false
}
