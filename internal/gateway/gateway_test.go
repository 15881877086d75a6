package gateway

import (
	"context"
	"testing"
	"time"

	"marketgate/internal/auth"
	"marketgate/internal/channel"
	"marketgate/internal/rate"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	a, err := auth.New(auth.ProtocolHMACConcat, auth.Credentials{Key: "k", Secret: "s", Passphrase: "p"})
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}

	g := New(rate.NewGuard(100, 2))
	feed := channel.NewFeed(1, 1)
	t.Cleanup(feed.Close)
	g.Register(&Exchange{Name: "okx", Auth: a, Feed: feed})
	return g
}

func TestSign(t *testing.T) {
	g := newTestGateway(t)

	headers, err := g.Sign(context.Background(), "okx", "GET", "/api/v5/account/balance", "", "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if headers["ACCESS-KEY"] != "k" || headers["ACCESS-SIGN"] == "" {
		t.Errorf("unexpected headers: %v", headers)
	}
}

func TestSignUnknownExchange(t *testing.T) {
	g := newTestGateway(t)

	if _, err := g.Sign(context.Background(), "bogus", "GET", "/", "", ""); err == nil {
		t.Fatalf("expected error for unknown exchange")
	}
}

func TestSignNoCredentials(t *testing.T) {
	g := newTestGateway(t)
	g.Register(&Exchange{Name: "public-only"})

	if _, err := g.Sign(context.Background(), "public-only", "GET", "/", "", ""); err == nil {
		t.Fatalf("expected error for exchange without credentials")
	}
}

func TestSignWaitsForQuota(t *testing.T) {
	a, err := auth.New(auth.ProtocolHMACConcat, auth.Credentials{Key: "k", Secret: "s"})
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	g := New(rate.NewGuard(0.001, 1))
	g.Register(&Exchange{Name: "okx", Auth: a})

	if _, err := g.Sign(context.Background(), "okx", "GET", "/", "", ""); err != nil {
		t.Fatalf("first Sign within burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.Sign(ctx, "okx", "GET", "/", "", ""); err == nil {
		t.Fatalf("expected quota wait to fail under exhausted burst")
	}
}

func TestExchangeLookup(t *testing.T) {
	g := newTestGateway(t)

	if g.Exchange("okx") == nil {
		t.Fatalf("registered exchange not found")
	}
	if g.Exchange("absent") != nil {
		t.Fatalf("unregistered exchange must be nil")
	}
}
