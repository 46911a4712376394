package types

import "testing"

func strptr(s string) *string { return &s }

func TestNormalizeUser_Defaults(t *testing.T) {
	t.Parallel()
	// Only the uid is present; every optional field must come back defined.
	u, ok := NormalizeUser(RawUser{UID: "u1"})
	if !ok {
		t.Fatal("expected record to be kept")
	}
	if u.ID != "u1" {
		t.Fatalf("unexpected id: %q", u.ID)
	}
	if u.FirstName != "" || u.LastName != "" || u.College != "" || u.Bio != "" {
		t.Fatalf("string defaults not empty: %+v", u)
	}
	if u.Skills == nil || len(u.Skills) != 0 {
		t.Fatalf("skills default not empty slice: %#v", u.Skills)
	}
	if u.Interests == nil || len(u.Interests) != 0 {
		t.Fatalf("interests default not empty slice: %#v", u.Interests)
	}
	if u.IsOnline {
		t.Fatal("isOnline default should be false")
	}
}

func TestNormalizeUser_DropsEmptyUID(t *testing.T) {
	t.Parallel()
	if _, ok := NormalizeUser(RawUser{FirstName: strptr("Ann")}); ok {
		t.Fatal("record without uid must be dropped")
	}
}

func TestNormalizeUser_CopiesSlices(t *testing.T) {
	t.Parallel()
	skills := []string{"Go", "Rust"}
	u, _ := NormalizeUser(RawUser{UID: "u1", Skills: skills})
	skills[0] = "mutated"
	if u.Skills[0] != "Go" {
		t.Fatal("normalized record must not alias the raw slice")
	}
}

func TestNormalizeUsers_OrderPreserved(t *testing.T) {
	t.Parallel()
	raw := []RawUser{
		{UID: "a"},
		{UID: ""}, // dropped
		{UID: "b", FirstName: strptr("Bob"), IsOnline: boolptr(true)},
	}
	got := NormalizeUsers(raw)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !got[1].IsOnline || got[1].FirstName != "Bob" {
		t.Fatalf("fields not carried over: %+v", got[1])
	}
}

func boolptr(b bool) *bool { return &b }
