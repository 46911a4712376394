package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListEvents_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"eventId":"e1","title":"Hackathon","startsAt":"2025-09-01T09:00:00Z"}]`))
	}))
	defer srv.Close()

	events, err := ListEvents(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Hackathon" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestListDiscounts_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/discounts" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"discountId":"d1","brand":"Acme","offer":"20% off"}]`))
	}))
	defer srv.Close()

	discounts, err := ListDiscounts(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("ListDiscounts error: %v", err)
	}
	if len(discounts) != 1 || discounts[0].Brand != "Acme" {
		t.Fatalf("unexpected discounts: %+v", discounts)
	}
}

func TestListBlogs_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	if _, err := ListBlogs(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
