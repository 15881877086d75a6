package gateway

import (
	"context"
	"fmt"

	"marketgate/internal/auth"
	"marketgate/internal/channel"
	"marketgate/internal/metrics"
	"marketgate/internal/rate"
	"marketgate/logger"
)

// Exchange bundles everything one adapter needs from the core: its request
// authenticator and the feed into the single-writer pipeline.
type Exchange struct {
	Name string
	Auth auth.Authenticator
	Feed *channel.Feed
}

// Gateway is the surface handed to exchange adapters. Adapters submit
// snapshots and coin states through their feed and obtain signed headers for
// private requests here; the per-credential guard blocks signing until a
// quota slot is free, since a rejected signature still burns exchange quota.
type Gateway struct {
	exchanges map[string]*Exchange
	guard     *rate.Guard
	log       *logger.Log
}

func New(guard *rate.Guard) *Gateway {
	return &Gateway{
		exchanges: make(map[string]*Exchange),
		guard:     guard,
		log:       logger.GetLogger(),
	}
}

func (g *Gateway) Register(ex *Exchange) {
	g.exchanges[ex.Name] = ex
}

// Exchange returns the registered exchange surface, or nil.
func (g *Gateway) Exchange(name string) *Exchange {
	return g.exchanges[name]
}

// Sign produces the authentication headers for one private request on the
// named exchange, waiting for a quota slot first. Signing failures propagate
// synchronously to the caller.
func (g *Gateway) Sign(ctx context.Context, exchange, method, path, query, body string) (auth.Headers, error) {
	ex, ok := g.exchanges[exchange]
	if !ok {
		return nil, fmt.Errorf("unknown exchange %q", exchange)
	}
	if ex.Auth == nil {
		return nil, fmt.Errorf("exchange %q has no credentials configured", exchange)
	}

	if err := g.guard.Wait(ctx, exchange); err != nil {
		return nil, fmt.Errorf("wait for request quota: %w", err)
	}

	headers, err := ex.Auth.Sign(method, path, query, body)
	if err != nil {
		metrics.IncrementSignError(exchange)
		g.log.WithComponent("gateway").WithError(err).WithFields(logger.Fields{
			"exchange": exchange,
			"method":   method,
			"path":     path,
		}).Error("request signing failed")
		return nil, err
	}
	return headers, nil
}
