package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/doktu-co/notify/internal/model"
	"github.com/doktu-co/notify/internal/trigger"
)

// adjustSchedule defers a send that would land inside the user's local
// quiet-hours window to the next instant the window ends. The window may
// wrap midnight (22:00-08:00). Urgent triggers and the always-immediate
// list bypass the deferral entirely; the result is never earlier than the
// requested time.
func (e *Engine) adjustSchedule(at time.Time, prefs *model.Preference, def trigger.Definition) time.Time {
	if def.Priority >= trigger.BlockingPriority || trigger.AlwaysImmediate(def.Code) {
		return at
	}

	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		e.logger.Warn("invalid timezone, using UTC", "user_id", prefs.UserID, "timezone", prefs.Timezone)
		loc = time.UTC
	}

	startMin, err := parseClock(prefs.QuietHoursStart)
	if err != nil {
		startMin = 22 * 60
	}
	endMin, err := parseClock(prefs.QuietHoursEnd)
	if err != nil {
		endMin = 8 * 60
	}
	if startMin == endMin {
		// Degenerate window: quiet hours disabled.
		return at
	}

	local := at.In(loc)
	minuteOfDay := local.Hour()*60 + local.Minute()

	var inQuiet bool
	if startMin < endMin {
		inQuiet = minuteOfDay >= startMin && minuteOfDay < endMin
	} else {
		inQuiet = minuteOfDay >= startMin || minuteOfDay < endMin
	}
	if !inQuiet {
		return at
	}

	target := time.Date(local.Year(), local.Month(), local.Day(), endMin/60, endMin%60, 0, 0, loc)
	if !target.After(local) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// parseClock parses a "HH:MM" time of day into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed minute in %q", s)
	}
	return h*60 + m, nil
}
