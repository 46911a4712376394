package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuslink/campuslink-go/internal/types"
)

type errRT struct{}

func (errRT) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("transport down")
}

func TestListUsers_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/users" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"users":[{"uid":"u1","firstName":"Ann"},{"uid":"u2"}],"count":2}`))
	}))
	defer srv.Close()

	users, err := ListUsers(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 2 || users[0].UID != "u1" || users[0].FirstName == nil || *users[0].FirstName != "Ann" {
		t.Fatalf("unexpected users: %+v", users)
	}
	if users[1].FirstName != nil {
		t.Fatal("missing field should decode to nil")
	}
}

func TestListUsers_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	if _, err := ListUsers(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestListUsers_DecodeError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{bad json"))
	}))
	defer srv.Close()
	if _, err := ListUsers(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestListUsers_CtxCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dummy := httptest.NewServer(http.NotFoundHandler())
	defer dummy.Close()
	if _, err := ListUsers(ctx, dummy.Client(), dummy.URL); err == nil {
		t.Fatal("expected context canceled error")
	}
}

func TestGetProfile_Success(t *testing.T) {
	t.Parallel()
	want := types.Profile{UID: "u1", FirstName: "Ann", College: "MIT", Skills: []string{"Go"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/profiles/u1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := GetProfile(context.Background(), srv.Client(), srv.URL, "u1")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if got.UID != want.UID || got.College != want.College {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := GetProfile(context.Background(), srv.Client(), srv.URL, "missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		var req types.UpdateProfileRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(types.Profile{UID: "u1", FirstName: req.FirstName, College: req.College})
	}))
	defer srv.Close()

	p, err := UpdateProfile(context.Background(), srv.Client(), srv.URL, "u1", types.UpdateProfileRequest{FirstName: "Ann", College: "MIT"})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if p.FirstName != "Ann" || p.College != "MIT" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestUsers_HTTPDoError(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: errRT{}}
	if _, err := ListUsers(context.Background(), hc, "http://example.com"); err == nil {
		t.Fatal("expected Do error for ListUsers")
	}
	if _, err := GetProfile(context.Background(), hc, "http://example.com", "u1"); err == nil {
		t.Fatal("expected Do error for GetProfile")
	}
}
