package email

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendSuccess(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api" || pass != "key-test" {
			t.Error("missing or wrong basic auth")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"from":    r.PostForm.Get("from"),
			"to":      r.PostForm.Get("to"),
			"subject": r.PostForm.Get("subject"),
			"html":    r.PostForm.Get("html"),
			"text":    r.PostForm.Get("text"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("key-test", "mg.doktu.co", "Doktu <no-reply@doktu.co>", WithBaseURL(srv.URL))
	err := c.Send(context.Background(), "patient@example.com", "Consultation confirmed", "<p>hi</p>", "hi")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotForm["to"] != "patient@example.com" {
		t.Errorf("wrong recipient: %q", gotForm["to"])
	}
	if gotForm["subject"] != "Consultation confirmed" {
		t.Errorf("wrong subject: %q", gotForm["subject"])
	}
	if gotForm["text"] != "hi" {
		t.Errorf("text part not sent: %q", gotForm["text"])
	}
}

func TestSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"to parameter is not a valid address"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("key-test", "mg.doktu.co", "no-reply@doktu.co", WithBaseURL(srv.URL))
	err := c.Send(context.Background(), "not-an-address", "s", "<p>b</p>", "")
	if !errors.Is(err, ErrRejected) {
		t.Errorf("4xx should map to ErrRejected, got %v", err)
	}
}

func TestSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("key-test", "mg.doktu.co", "no-reply@doktu.co", WithBaseURL(srv.URL))
	err := c.Send(context.Background(), "patient@example.com", "s", "<p>b</p>", "")
	if err == nil {
		t.Fatal("expected error on 502")
	}
	if errors.Is(err, ErrRejected) {
		t.Error("5xx is transient, must not map to ErrRejected")
	}
}

func TestSendUnconfigured(t *testing.T) {
	c := NewClient("", "mg.doktu.co", "no-reply@doktu.co")
	if err := c.Send(context.Background(), "patient@example.com", "s", "b", ""); err == nil {
		t.Fatal("expected error when api key missing")
	}
}
