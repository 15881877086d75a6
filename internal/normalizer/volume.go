package normalizer

import (
	"math"

	"marketgate/internal/market"
)

// minuteMs is the rolling-window boundary between volume1m commits.
const minuteMs = 60_000

// Bases are the configured scale divisors applied to normalized volumes
// before truncation.
type Bases struct {
	Volume24h float64
	Volume1m  float64
}

// ObserveVolume folds one cumulative 24h volume sample into the ticker's
// rolling window.
//
// The 24h figure is recomputed on every call. The 1-minute figure, the raw
// baseline (Previous24h) and the baseline timestamp are only committed when
// the sample lies strictly beyond one minute past the last committed sample,
// so the baseline advances once per minute regardless of how often the
// exchange is polled. A sample inside the window leaves them untouched and
// reports updated=false.
//
// A shrinking cumulative volume (exchange reset, window rollover) produces a
// negative delta which is floored and passed through, not clamped; consumers
// depend on seeing the dip. The first sample ever observed (zero baseline)
// always yields volume1m of zero.
//
// Samples must arrive in non-decreasing timestamp order per ticker; the
// single-writer pipeline guarantees this ordering.
func ObserveVolume(t *market.Ticker, rawCumulative float64, sampleTsMs int64, rates market.CrossRates, bases Bases) (bool, error) {
	normalized, err := ConvertQuote(rawCumulative, t.QuoteName, rates)
	if err != nil {
		return false, err
	}

	t.Volume24h = math.Floor(normalized / bases.Volume24h)

	if sampleTsMs <= t.Timestamp+minuteMs {
		return false, nil
	}

	var delta float64
	if t.Previous24h > 0 {
		delta = normalized - t.Previous24h
	}
	t.Volume1m = math.Floor(delta / bases.Volume1m)
	t.Timestamp = sampleTsMs
	t.Previous24h = normalized
	return true, nil
}
