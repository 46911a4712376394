package campuslink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuslink/campuslink-go/internal/outbox"
)

type stubExec struct{ stops int }

func (s *stubExec) Submit(context.Context, string, outbox.Job) error { return nil }
func (s *stubExec) Barrier(context.Context, string) error            { return nil }
func (s *stubExec) Stop()                                            { s.stops++ }

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "tok"); err == nil {
		t.Fatalf("expected error for empty baseURL")
	}
	if _, err := New("http://example.com", ""); err == nil {
		t.Fatalf("expected error for empty token")
	}
	c, err := New("http://example.com", "tok")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()
	if c.exec == nil {
		t.Fatalf("default outbox not installed")
	}
}

func TestIsBackPressure(t *testing.T) {
	if !IsBackPressure(ErrBackPressure) {
		t.Fatalf("expected back pressure")
	}
	if !IsBackPressure(&outbox.QueueFullError{Shard: 1}) {
		t.Fatalf("queue-full should count as back pressure")
	}
	if IsBackPressure(errors.New("other")) {
		t.Fatalf("unexpected back pressure detection")
	}
}

func TestCloseIdempotent(t *testing.T) {
	s := &stubExec{}
	c := &Client{exec: s}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if s.stops != 1 {
		t.Fatalf("outbox stop called %d times", s.stops)
	}
}

func TestClient_BearerHeaderOnEveryRequest(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"users": []any{}, "count": 0})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "session-token")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if got != "Bearer session-token" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestClient_GetProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "tok")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	if _, err := c.GetProfile(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
