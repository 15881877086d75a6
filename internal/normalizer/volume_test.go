package normalizer

import (
	"testing"

	"marketgate/internal/market"
)

var testRates = market.CrossRates{ExchgRate: 1, BTCFiatPrice: 1, NativeFiat: "KRW"}

func TestObserveVolumeFirstObservation(t *testing.T) {
	tk := &market.Ticker{Symbol: "BTCUSDT", QuoteName: "USDT"}
	bases := Bases{Volume24h: 10, Volume1m: 10}

	updated, err := ObserveVolume(tk, 500, 61_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatalf("expected boundary crossing on first eligible sample")
	}
	if tk.Volume1m != 0 {
		t.Errorf("first observation must yield volume1m 0, got %v", tk.Volume1m)
	}
	if tk.Volume24h != 50 {
		t.Errorf("volume24h=%v want 50", tk.Volume24h)
	}
	if tk.Previous24h != 500 || tk.Timestamp != 61_000 {
		t.Errorf("baseline not committed: previous24h=%v timestamp=%v", tk.Previous24h, tk.Timestamp)
	}
}

func TestObserveVolumeInsideWindow(t *testing.T) {
	tk := &market.Ticker{Symbol: "BTCUSDT", QuoteName: "USDT", Previous24h: 500, Timestamp: 61_000, Volume1m: 7}
	bases := Bases{Volume24h: 10, Volume1m: 10}

	// 91s is within one minute of the committed 61s sample.
	updated, err := ObserveVolume(tk, 800, 91_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatalf("expected no boundary crossing")
	}
	if tk.Volume24h != 80 {
		t.Errorf("volume24h must be recomputed every call: got %v want 80", tk.Volume24h)
	}
	if tk.Volume1m != 7 {
		t.Errorf("volume1m must be retained inside window, got %v", tk.Volume1m)
	}
	if tk.Previous24h != 500 || tk.Timestamp != 61_000 {
		t.Errorf("baseline must not move inside window: previous24h=%v timestamp=%v", tk.Previous24h, tk.Timestamp)
	}
}

func TestObserveVolumeBoundaryCommit(t *testing.T) {
	tk := &market.Ticker{Symbol: "BTCUSDT", QuoteName: "USDT", Previous24h: 500, Timestamp: 61_000}
	bases := Bases{Volume24h: 10, Volume1m: 10}

	updated, err := ObserveVolume(tk, 900, 122_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatalf("expected boundary crossing at 122s")
	}
	if tk.Volume1m != 40 {
		t.Errorf("volume1m=%v want floor((900-500)/10)=40", tk.Volume1m)
	}
	if tk.Previous24h != 900 || tk.Timestamp != 122_000 {
		t.Errorf("baseline not committed: previous24h=%v timestamp=%v", tk.Previous24h, tk.Timestamp)
	}
}

func TestObserveVolumeExactBoundaryNotCrossed(t *testing.T) {
	tk := &market.Ticker{Symbol: "BTCUSDT", QuoteName: "USDT", Previous24h: 500, Timestamp: 61_000, Volume1m: 3}
	bases := Bases{Volume24h: 10, Volume1m: 10}

	// Exactly timestamp+60s is still inside the window.
	updated, err := ObserveVolume(tk, 900, 121_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatalf("sample at exactly timestamp+60s must not cross the boundary")
	}
	if tk.Volume1m != 3 {
		t.Errorf("volume1m=%v want 3", tk.Volume1m)
	}
}

func TestObserveVolumeNegativeDeltaPassesThrough(t *testing.T) {
	tk := &market.Ticker{Symbol: "BTCUSDT", QuoteName: "USDT", Previous24h: 900, Timestamp: 122_000}
	bases := Bases{Volume24h: 10, Volume1m: 10}

	// Cumulative volume shrank (exchange reset); the dip must survive, and
	// flooring rounds away from zero.
	updated, err := ObserveVolume(tk, 95, 190_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatalf("expected boundary crossing")
	}
	if tk.Volume1m != -81 {
		t.Errorf("volume1m=%v want floor((95-900)/10)=-81", tk.Volume1m)
	}
	if tk.Previous24h != 95 {
		t.Errorf("previous24h=%v want 95", tk.Previous24h)
	}
}

func TestObserveVolumeUnknownQuote(t *testing.T) {
	tk := &market.Ticker{Symbol: "XYZABC", QuoteName: "ABC", Previous24h: 10, Timestamp: 1_000, Volume1m: 5}
	bases := Bases{Volume24h: 1, Volume1m: 1}

	if _, err := ObserveVolume(tk, 100, 90_000, testRates, bases); err == nil {
		t.Fatalf("expected error for unknown quote asset")
	}
	if tk.Previous24h != 10 || tk.Volume1m != 5 {
		t.Errorf("failed conversion must not touch the baseline")
	}
}

// Reproduces the baseline-commit timing across a ticker's first two polls:
// the first sample never commits (no boundary crossed relative to its own
// timestamp), so the second sample still sees a zero baseline and yields a
// zero 1-minute volume while committing the new baseline.
func TestObserveVolumeBaselineCommitTiming(t *testing.T) {
	tk := &market.Ticker{Symbol: "BTC_USDT", QuoteName: "USDT", Timestamp: 1_000}
	bases := Bases{Volume24h: 1, Volume1m: 1}

	updated, err := ObserveVolume(tk, 100_000, 1_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatalf("sample at the baseline timestamp must not commit")
	}
	if tk.Previous24h != 0 || tk.Volume1m != 0 {
		t.Fatalf("first poll committed: previous24h=%v volume1m=%v", tk.Previous24h, tk.Volume1m)
	}

	updated, err = ObserveVolume(tk, 150_000, 62_000, testRates, bases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatalf("62s sample must cross the 61s boundary")
	}
	if tk.Volume1m != 0 {
		t.Errorf("zero baseline must yield volume1m 0, got %v", tk.Volume1m)
	}
	if tk.Previous24h != 150_000 || tk.Timestamp != 62_000 {
		t.Errorf("baseline not committed: previous24h=%v timestamp=%v", tk.Previous24h, tk.Timestamp)
	}
}
