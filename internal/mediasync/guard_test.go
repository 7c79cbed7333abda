package mediasync

import "testing"

func TestGuardReleaseIsIdempotent(t *testing.T) {
	g := newGuard()
	release := g.acquire("B")
	if !g.holds("B") {
		t.Fatal("expected B held")
	}
	release()
	release()
	if g.holds("B") {
		t.Fatal("expected B released")
	}
}

func TestGuardCountsNestedAcquisitions(t *testing.T) {
	g := newGuard()
	outer := g.acquire("B")
	inner := g.acquire("B")
	inner()
	if !g.holds("B") {
		t.Fatal("expected B still held by outer acquisition")
	}
	outer()
	if g.holds("B") {
		t.Fatal("expected B released")
	}
}
