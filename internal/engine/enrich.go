package engine

import (
	"fmt"
	"time"

	"github.com/doktu-co/notify/internal/model"
)

// buildMergeData flattens everything the templates may reference into one
// string map: the caller's merge data, the user's identity, platform
// constants, and appointment context when an appointment is referenced.
// Enrichment never fails the request: any field that cannot be derived
// degrades to a placeholder and the rest proceed.
func (e *Engine) buildMergeData(base map[string]string, user *model.User, appointmentID *int64, prefs *model.Preference) map[string]string {
	data := make(map[string]string, len(base)+12)
	for k, v := range base {
		data[k] = v
	}

	data["first_name"] = user.FirstName
	data["last_name"] = user.LastName
	data["email"] = user.Email
	data["support_email"] = e.cfg.SupportEmail
	data["dashboard_url"] = e.cfg.DashboardURL

	if appointmentID == nil {
		return data
	}

	appt, err := e.appointments.GetWithDoctor(*appointmentID)
	if err != nil || appt == nil {
		if err != nil {
			e.logger.Warn("appointment enrichment failed",
				"appointment_id", *appointmentID, "error", err)
		}
		data["doctor_name"] = "your doctor"
		data["appointment_datetime"] = "your scheduled time"
		return data
	}

	doctorName := fmt.Sprintf("Dr. %s %s", appt.DoctorFirstName, appt.DoctorLastName)
	if appt.DoctorFirstName == "" && appt.DoctorLastName == "" {
		doctorName = "your doctor"
	}
	data["doctor_name"] = doctorName
	if appt.DoctorSpecialty != "" {
		data["doctor_specialty"] = appt.DoctorSpecialty
	}
	if appt.JoinURL != "" {
		data["join_link"] = appt.JoinURL
	}
	if appt.Price != "" {
		data["price"] = appt.Price
	}
	data["duration_minutes"] = fmt.Sprintf("%d", appt.DurationMinutes)

	localized := localizeTime(appt.ScheduledAt, prefs.Timezone, prefs.Locale)
	data["appointment_datetime"] = localized
	data["appointment_date"] = localizeDate(appt.ScheduledAt, prefs.Timezone, prefs.Locale)
	data["appointment_time"] = localizeClock(appt.ScheduledAt, prefs.Timezone)

	return data
}

func userLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func localizeTime(t time.Time, tz, locale string) string {
	local := t.In(userLocation(tz))
	switch locale {
	case "fr":
		return local.Format("02/01/2006 à 15:04")
	default:
		return local.Format("Jan 2, 2006 at 3:04 PM")
	}
}

func localizeDate(t time.Time, tz, locale string) string {
	local := t.In(userLocation(tz))
	switch locale {
	case "fr":
		return local.Format("02/01/2006")
	default:
		return local.Format("Jan 2, 2006")
	}
}

func localizeClock(t time.Time, tz string) string {
	return t.In(userLocation(tz)).Format("15:04")
}
