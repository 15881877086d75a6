package normalizer

import (
	"errors"

	"marketgate/internal/market"
	"marketgate/internal/metrics"
	"marketgate/logger"
)

// Normalizer folds raw per-symbol snapshots into a ticker set once per
// polling cycle. It owns no state beyond the scale bases; all mutation lands
// on the ticker set handed in by the single-writer pipeline.
type Normalizer struct {
	bases Bases
	log   *logger.Log
}

func New(bases Bases) *Normalizer {
	return &Normalizer{
		bases: bases,
		log:   logger.GetLogger(),
	}
}

// Refresh updates every resolvable ticker in the set from the snapshot map.
//
// A ticker whose symbol is missing from the map is sentinel-marked and
// permanently dropped from future cycles; this is a soft removal, not a
// retry. Prices are converted before volumes because some exchanges report
// cumulative volume already price-denominated and must see the cross rate of
// the same cycle. A ticker that fails quote classification is sentinel-marked
// and the cycle continues; one bad ticker never blocks the rest of the set.
func (n *Normalizer) Refresh(set *market.Tickers, snapshots map[string]market.RawSnapshot) {
	log := n.log.WithComponent("normalizer").WithFields(logger.Fields{
		"exchange": set.Exchange,
	})

	for _, t := range set.Entries {
		if t.Unresolved() {
			continue
		}

		snap, ok := snapshots[t.Symbol]
		if !ok {
			log.WithFields(logger.Fields{
				"symbol": t.Symbol,
				"base":   t.BaseName,
			}).Warn("symbol missing from snapshot feed, marking unresolved")
			metrics.IncrementUnresolved(set.Exchange, t.Symbol)
			t.Symbol = market.SentinelSymbol
			continue
		}

		if err := n.refreshTicker(t, snap, set.Rates); err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"symbol": t.Symbol,
				"quote":  t.QuoteName,
			}).Error("failed to normalize ticker, marking unresolved")
			metrics.IncrementUnresolved(set.Exchange, t.Symbol)
			if errors.Is(err, ErrUnknownQuoteAsset) {
				t.Symbol = market.SentinelSymbol
			}
			continue
		}
	}

	metrics.IncrementRefresh(set.Exchange)
}

func (n *Normalizer) refreshTicker(t *market.Ticker, snap market.RawSnapshot, rates market.CrossRates) error {
	last, err := ConvertQuote(snap.Price, t.QuoteName, rates)
	if err != nil {
		return err
	}
	ask, err := ConvertQuote(snap.BestAsk, t.QuoteName, rates)
	if err != nil {
		return err
	}
	bid, err := ConvertQuote(snap.BestBid, t.QuoteName, rates)
	if err != nil {
		return err
	}

	t.LastPrice = last
	t.AskPrice = ask
	t.BidPrice = bid

	_, err = ObserveVolume(t, snap.CumulativeQuoteVolume, snap.SampleTimestampMs, rates, n.bases)
	return err
}
