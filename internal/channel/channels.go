package channel

import (
	"context"
	"sync"

	"marketgate/internal/market"
	"marketgate/internal/metrics"
	"marketgate/logger"
)

// SnapshotBatch is one polling cycle's worth of raw snapshots from one
// exchange adapter, keyed by exchange symbol.
type SnapshotBatch struct {
	Exchange  string
	Snapshots map[string]market.RawSnapshot
}

// StatusBatch is one coin-state feed fetch from one exchange adapter.
type StatusBatch struct {
	Exchange string
	Statuses []market.CoinNetworkStatus
}

type FeedStats struct {
	SnapshotsSent    int64
	SnapshotsDropped int64
	StatusesSent     int64
	StatusesDropped  int64
}

// Feed carries adapter output to the single pipeline writer. Sends are
// non-blocking: a full buffer drops the batch and bumps the drop counters,
// since a fresher batch is always one poll away.
type Feed struct {
	Snapshots chan SnapshotBatch
	Statuses  chan StatusBatch

	stats      FeedStats
	statsMutex sync.RWMutex
	log        *logger.Log
}

func NewFeed(snapshotBuffer, statusBuffer int) *Feed {
	log := logger.GetLogger()
	f := &Feed{
		Snapshots: make(chan SnapshotBatch, snapshotBuffer),
		Statuses:  make(chan StatusBatch, statusBuffer),
		log:       log,
	}

	log.WithComponent("feed_channels").WithFields(logger.Fields{
		"snapshot_buffer_size": snapshotBuffer,
		"status_buffer_size":   statusBuffer,
	}).Info("feed channels initialized")

	return f
}

func (f *Feed) Close() {
	close(f.Snapshots)
	close(f.Statuses)
	f.log.WithComponent("feed_channels").Info("feed channels closed")
}

func (f *Feed) SendSnapshots(ctx context.Context, batch SnapshotBatch) bool {
	select {
	case f.Snapshots <- batch:
		f.statsMutex.Lock()
		f.stats.SnapshotsSent++
		f.statsMutex.Unlock()
		return true
	case <-ctx.Done():
		return false
	default:
		f.statsMutex.Lock()
		f.stats.SnapshotsDropped++
		f.statsMutex.Unlock()
		metrics.IncrementFeedDrop(batch.Exchange, "snapshots")
		return false
	}
}

func (f *Feed) SendStatuses(ctx context.Context, batch StatusBatch) bool {
	select {
	case f.Statuses <- batch:
		f.statsMutex.Lock()
		f.stats.StatusesSent++
		f.statsMutex.Unlock()
		return true
	case <-ctx.Done():
		return false
	default:
		f.statsMutex.Lock()
		f.stats.StatusesDropped++
		f.statsMutex.Unlock()
		metrics.IncrementFeedDrop(batch.Exchange, "statuses")
		return false
	}
}

func (f *Feed) GetStats() FeedStats {
	f.statsMutex.RLock()
	defer f.statsMutex.RUnlock()
	return f.stats
}
