package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientNotConfigured(t *testing.T) {
	c := NewClient("", "", time.Second)
	_, err := c.GenerateBlogDraft(context.Background(), "winterizing your piston single")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGenerateListingCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate/listing" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"A well-kept 1979 Skyhawk."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token", time.Second)
	text, err := c.GenerateListingCopy(context.Background(), ListingFacts{Make: "Cessna", Model: "172N", Year: 1979})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A well-kept 1979 Skyhawk." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	if _, err := c.GenerateBlogDraft(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
