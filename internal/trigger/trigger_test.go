package trigger

import "testing"

func TestLookupKnownCode(t *testing.T) {
	def, ok := Lookup(BookingConfirmed)
	if !ok {
		t.Fatal("BOOKING_CONFIRMED missing from catalog")
	}
	if def.Category != CategoryTransactional {
		t.Errorf("category = %q, want %q", def.Category, CategoryTransactional)
	}
	if def.TemplateKey != "booking_confirmation" {
		t.Errorf("template key = %q, want booking_confirmation", def.TemplateKey)
	}
	if def.Priority < BlockingPriority {
		t.Errorf("priority = %d, want >= %d", def.Priority, BlockingPriority)
	}
}

func TestLookupUnknownCode(t *testing.T) {
	if _, ok := Lookup("NOT_A_TRIGGER"); ok {
		t.Error("expected unknown code to miss")
	}
}

func TestCatalogComplete(t *testing.T) {
	for _, def := range All() {
		if def.Code == "" {
			t.Error("definition with empty code")
		}
		if def.Priority <= 0 {
			t.Errorf("%s: non-positive priority %d", def.Code, def.Priority)
		}
		if def.TemplateKey == "" {
			t.Errorf("%s: empty template key", def.Code)
		}
		switch def.Category {
		case CategorySecurity, CategoryTransactional, CategoryReminders,
			CategoryMembership, CategoryDocuments, CategoryMarketing, CategoryLifeCycle:
		default:
			t.Errorf("%s: unknown category %q", def.Code, def.Category)
		}
	}
}

func TestSMSAllowlist(t *testing.T) {
	if !SMSEligible(BookingLiveImminent) {
		t.Error("BOOKING_LIVE_IMMINENT should be SMS eligible")
	}
	if SMSEligible(GrowthFeatureAnnouncement) {
		t.Error("GROWTH_FEATURE_ANNOUNCEMENT must never be SMS eligible")
	}
}

func TestAlwaysImmediateAreUrgentOrSecurity(t *testing.T) {
	for code := range alwaysImmediate {
		if _, ok := Lookup(code); !ok {
			t.Errorf("always-immediate code %s not in catalog", code)
		}
	}
}

func TestEmailExclusions(t *testing.T) {
	if EmailEligible(CalendarAvailabilityUpdated) {
		t.Error("CALENDAR_AVAILABILITY_UPDATED is in-app only")
	}
	if !EmailEligible(BookingConfirmed) {
		t.Error("BOOKING_CONFIRMED must be email eligible")
	}
}
