package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/doktu-co/notify/internal/trigger"
)

func TestRenderSubstitutesMergeData(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	out, err := r.Render("booking_confirmation", map[string]string{
		"first_name":           "Marie",
		"doctor_name":          "Dr. Anna Laurent",
		"appointment_datetime": "Sep 1, 2026 at 10:00 AM",
		"join_link":            "https://meet.example.com/j/42",
		"dashboard_url":        "https://app.doktu.co/dashboard",
	}, "en")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out.Subject, "Dr. Anna Laurent") {
		t.Errorf("subject missing doctor name: %q", out.Subject)
	}
	if !strings.Contains(out.TextBody, "https://meet.example.com/j/42") {
		t.Error("text body missing join link")
	}
	if !strings.Contains(out.HTMLBody, "<p>") {
		t.Error("HTML body should contain paragraphs")
	}
	if strings.Contains(out.TextBody, "{{") {
		t.Error("unsubstituted template markers left in body")
	}
}

func TestRenderUnknownKey(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	_, err = r.Render("no_such_template", nil, "en")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestRenderLocaleFallback(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	// French has an override for booking confirmations.
	fr, err := r.Render("booking_confirmation", map[string]string{"doctor_name": "Dr. Laurent"}, "fr")
	if err != nil {
		t.Fatalf("Render fr failed: %v", err)
	}
	if !strings.Contains(fr.Subject, "confirmée") {
		t.Errorf("expected French subject, got %q", fr.Subject)
	}

	// But no override for receipts, so "en" fills in.
	receipt, err := r.Render("payment_receipt", map[string]string{"amount": "35.00 EUR"}, "fr")
	if err != nil {
		t.Fatalf("Render fallback failed: %v", err)
	}
	if !strings.Contains(receipt.Subject, "receipt") {
		t.Errorf("expected English fallback subject, got %q", receipt.Subject)
	}

	// An unknown locale behaves like "en".
	de, err := r.Render("payment_receipt", map[string]string{"amount": "35.00 EUR"}, "de")
	if err != nil {
		t.Fatalf("Render unknown locale failed: %v", err)
	}
	if de.Subject != receipt.Subject {
		t.Error("unknown locale should fall back to en")
	}
}

func TestEveryCatalogTriggerHasTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	for _, def := range trigger.All() {
		if _, err := r.Render(def.TemplateKey, map[string]string{}, "en"); err != nil {
			t.Errorf("trigger %s: template %q does not render: %v", def.Code, def.TemplateKey, err)
		}
	}
}

func TestHTMLEscaping(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	out, err := r.Render("growth_seasonal_campaign", map[string]string{
		"first_name":       "Marie",
		"campaign_subject": "Winter savings",
		"campaign_body":    `<script>alert("x")</script>`,
	}, "en")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out.HTMLBody, "<script>") {
		t.Error("merge data must be escaped in HTML body")
	}
	if !strings.Contains(out.TextBody, "<script>") {
		t.Error("text body keeps raw content")
	}
}
