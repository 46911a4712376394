package network

import "testing"

func TestPager_VisibleClampsToTotal(t *testing.T) {
	t.Parallel()
	p := NewPager()
	if got := p.Visible(10); got != PageStep {
		t.Fatalf("Visible(10) = %d, want %d", got, PageStep)
	}
	if got := p.Visible(2); got != 2 {
		t.Fatalf("Visible(2) = %d, want 2", got)
	}
	if got := p.Visible(0); got != 0 {
		t.Fatalf("Visible(0) = %d, want 0", got)
	}
}

func TestPager_MoreAndReset(t *testing.T) {
	t.Parallel()
	p := NewPager()
	p.More()
	if got := p.Visible(10); got != 2*PageStep {
		t.Fatalf("after More, Visible(10) = %d, want %d", got, 2*PageStep)
	}
	p.More()
	if got := p.Visible(7); got != 7 {
		t.Fatalf("Visible(7) = %d, want 7", got)
	}
	p.Reset()
	if got := p.Visible(10); got != PageStep {
		t.Fatalf("after Reset, Visible(10) = %d, want %d", got, PageStep)
	}
}
