package rate

import (
	"context"
	"testing"
	"time"
)

func TestGuardAllowRespectsBurst(t *testing.T) {
	g := NewGuard(1, 2)

	if !g.Allow("cred-a") {
		t.Fatalf("first request within burst must be allowed")
	}
	if !g.Allow("cred-a") {
		t.Fatalf("second request within burst must be allowed")
	}
	if g.Allow("cred-a") {
		t.Fatalf("request beyond burst must be rejected")
	}

	// Independent credential sets get independent quotas.
	if !g.Allow("cred-b") {
		t.Fatalf("other credential must have its own limiter")
	}
}

func TestGuardWaitHonorsContext(t *testing.T) {
	g := NewGuard(0.001, 1)
	g.Allow("cred-a") // exhaust the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := g.Wait(ctx, "cred-a"); err == nil {
		t.Fatalf("expected context deadline error while waiting for quota")
	}
}

func TestGuardDefaults(t *testing.T) {
	g := NewGuard(0, 0)
	if !g.Allow("cred-a") {
		t.Fatalf("defaulted guard must allow an initial request")
	}
}
