package pipeline

import (
	"context"
	"sync"
	"time"

	"marketgate/internal/assets"
	"marketgate/internal/channel"
	"marketgate/internal/market"
	"marketgate/internal/normalizer"
	"marketgate/logger"
)

// Runner is the single writer for one ticker set. Adapters fetch snapshots
// and coin states concurrently and submit them through the feed; the runner
// applies them serially, which is what keeps the per-ticker baseline commits
// and the asset propagation free of torn reads. The minute-boundary logic
// also relies on the runner delivering samples per symbol in arrival order.
type Runner struct {
	set        *market.Tickers
	feed       *channel.Feed
	normalizer *normalizer.Normalizer
	aggregator *assets.Aggregator
	log        *logger.Log

	statsInterval time.Duration
}

func NewRunner(set *market.Tickers, feed *channel.Feed, n *normalizer.Normalizer) *Runner {
	return &Runner{
		set:           set,
		feed:          feed,
		normalizer:    n,
		aggregator:    assets.NewAggregator(),
		log:           logger.GetLogger(),
		statsInterval: 30 * time.Second,
	}
}

// Aggregator exposes the runner's asset aggregator for inspection. Mutation
// stays inside Run.
func (r *Runner) Aggregator() *assets.Aggregator {
	return r.aggregator
}

// Run consumes the feed until the context is cancelled. It must be the only
// goroutine mutating the ticker set.
func (r *Runner) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log := r.log.WithComponent("pipeline").WithFields(logger.Fields{
		"exchange": r.set.Exchange,
	})
	log.Info("pipeline runner started")

	statsTicker := time.NewTicker(r.statsInterval)
	defer statsTicker.Stop()

	// Closed channels are nilled out so queued batches drain before the
	// runner exits; a nil channel never fires in the select.
	snapshots := r.feed.Snapshots
	statuses := r.feed.Statuses

	for snapshots != nil || statuses != nil {
		select {
		case <-ctx.Done():
			log.Info("pipeline runner stopped")
			return
		case batch, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			r.normalizer.Refresh(r.set, batch.Snapshots)
		case batch, ok := <-statuses:
			if !ok {
				statuses = nil
				continue
			}
			r.aggregator.Apply(r.set, batch.Statuses)
		case <-statsTicker.C:
			r.reportStats(log)
		}
	}

	log.Info("feed channels closed, stopping runner")
}

func (r *Runner) reportStats(log *logger.Entry) {
	stats := r.feed.GetStats()

	unresolved := 0
	for _, t := range r.set.Entries {
		if t.Unresolved() {
			unresolved++
		}
	}

	log.WithFields(logger.Fields{
		"snapshots_sent":    stats.SnapshotsSent,
		"snapshots_dropped": stats.SnapshotsDropped,
		"statuses_sent":     stats.StatusesSent,
		"statuses_dropped":  stats.StatusesDropped,
		"tickers":           len(r.set.Entries),
		"unresolved":        unresolved,
	}).Info("pipeline stats")
}
