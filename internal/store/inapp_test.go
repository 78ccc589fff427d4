package store

import (
	"testing"
	"time"

	"github.com/doktu-co/notify/internal/model"
)

func seedInApp(t *testing.T, inapp *InAppStore, userID int64, kind, trigger string, priority int) string {
	t.Helper()
	n := &model.InAppNotification{
		UserID:             userID,
		Type:               kind,
		TriggerCode:        trigger,
		Title:              "Consultation booked",
		Message:            "Your consultation with Dr. Anna Laurent is confirmed.",
		Priority:           priority,
		Style:              "success",
		AutoDismissSeconds: 10,
	}
	if err := inapp.Create(n); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return n.ID
}

func TestInboxLifecycle(t *testing.T) {
	db := setupTestDB(t)
	inapp := NewInAppStore(db)
	userID := seedUser(t, db, "patient@example.com")

	id := seedInApp(t, inapp, userID, "inbox", "BOOKING_CONFIRMED", 70)

	count, err := inapp.UnreadCount(userID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unread, got %d", count)
	}

	if err := inapp.MarkRead(id, userID, time.Now()); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	count, err = inapp.UnreadCount(userID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread after read, got %d", count)
	}

	// Read entries stay in the inbox until dismissed.
	inbox, err := inapp.ListInbox(userID, 10)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("expected 1 inbox entry, got %d", len(inbox))
	}
	if inbox[0].Status != model.InAppRead {
		t.Errorf("expected read status, got %q", inbox[0].Status)
	}
	if inbox[0].ReadAt == nil {
		t.Error("expected read_at to be set")
	}

	if err := inapp.MarkDismissed(id, userID, time.Now()); err != nil {
		t.Fatalf("MarkDismissed failed: %v", err)
	}
	inbox, err = inapp.ListInbox(userID, 10)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("dismissed entries must leave the inbox, got %d", len(inbox))
	}
}

func TestMarkReadOnlyFromDelivered(t *testing.T) {
	db := setupTestDB(t)
	inapp := NewInAppStore(db)
	userID := seedUser(t, db, "patient@example.com")

	id := seedInApp(t, inapp, userID, "inbox", "BOOKING_CONFIRMED", 70)
	if err := inapp.MarkDismissed(id, userID, time.Now()); err != nil {
		t.Fatalf("MarkDismissed failed: %v", err)
	}

	// Reading a dismissed entry is a no-op.
	if err := inapp.MarkRead(id, userID, time.Now()); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	inbox, err := inapp.ListInbox(userID, 10)
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(inbox) != 0 {
		t.Error("dismissed entry should not reappear after MarkRead")
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	inapp := NewInAppStore(db)
	owner := seedUser(t, db, "owner@example.com")
	intruder := seedUser(t, db, "intruder@example.com")

	id := seedInApp(t, inapp, owner, "inbox", "BOOKING_CONFIRMED", 70)

	if err := inapp.MarkRead(id, intruder, time.Now()); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	count, err := inapp.UnreadCount(owner)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Error("another user must not be able to mark the entry read")
	}
}

func TestBannersOrderedByPriority(t *testing.T) {
	db := setupTestDB(t)
	inapp := NewInAppStore(db)
	userID := seedUser(t, db, "patient@example.com")

	seedInApp(t, inapp, userID, "banner", "GROWTH_FEATURE_ANNOUNCEMENT", 20)
	urgent := seedInApp(t, inapp, userID, "banner", "BOOKING_LIVE_IMMINENT", 95)
	seedInApp(t, inapp, userID, "inbox", "BOOKING_CONFIRMED", 70) // not a banner

	banners, err := inapp.ListActiveBanners(userID)
	if err != nil {
		t.Fatalf("ListActiveBanners failed: %v", err)
	}
	if len(banners) != 2 {
		t.Fatalf("expected 2 banners, got %d", len(banners))
	}
	if banners[0].ID != urgent {
		t.Errorf("most urgent banner should come first, got %s", banners[0].TriggerCode)
	}
}
