package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromStatus_Categories(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   Category
	}{
		{400, Permanent},
		{401, Permanent},
		{404, Permanent},
		{408, Retryable},
		{429, Retryable},
		{500, Retryable},
		{503, Retryable},
		{302, Retryable}, // unexpected codes are retried conservatively
	}
	for _, c := range cases {
		got := FromStatus(c.status, "", "send request")
		if got.Category != c.want {
			t.Fatalf("status %d: got %v, want %v", c.status, got.Category, c.want)
		}
	}
}

func TestFromNetwork_AlwaysRetryable(t *testing.T) {
	t.Parallel()
	base := fmt.Errorf("connection refused")
	e := FromNetwork("accept request", base)
	if e.Category != Retryable {
		t.Fatalf("network error should be retryable, got %v", e.Category)
	}
	if !errors.Is(e, base) {
		t.Fatal("underlying error lost")
	}
}

func TestIsPermanent(t *testing.T) {
	t.Parallel()
	if !IsPermanent(FromStatus(403, "", "op")) {
		t.Fatal("403 should be permanent")
	}
	if IsPermanent(FromStatus(500, "", "op")) {
		t.Fatal("500 should not be permanent")
	}
	if IsPermanent(errors.New("plain")) {
		t.Fatal("unclassified errors are not permanent")
	}
}
