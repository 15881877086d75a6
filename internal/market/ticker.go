package market

// SentinelSymbol marks a ticker whose exchange symbol could not be resolved
// during a polling cycle. Once set it is never cleared for the lifetime of
// the ticker set; the scheduler rebuilds the set to re-admit a symbol.
const SentinelSymbol = "X"

// Ticker is the live market view of one tradable symbol on one exchange.
// Prices and volumes are stored already converted into the reporting
// currency. Previous24h holds the last committed raw cumulative 24h volume
// (normalized units) and Timestamp the epoch-ms of the sample that committed
// it; together they form the rolling baseline for the 1-minute volume.
type Ticker struct {
	Symbol    string `json:"symbol"`
	BaseName  string `json:"base_name"`
	QuoteName string `json:"quote_name"`

	LastPrice float64 `json:"last_price"`
	AskPrice  float64 `json:"ask_price"`
	BidPrice  float64 `json:"bid_price"`

	Volume24h   float64 `json:"volume_24h"`
	Volume1m    float64 `json:"volume_1m"`
	Previous24h float64 `json:"previous_24h"`
	Timestamp   int64   `json:"timestamp"`

	Active   bool `json:"active"`
	Deposit  bool `json:"deposit"`
	Withdraw bool `json:"withdraw"`
}

// Unresolved reports whether the ticker has been sentinel-marked and is
// skipped by all future refresh cycles.
func (t *Ticker) Unresolved() bool {
	return t.Symbol == SentinelSymbol
}

// CrossRates carries the live conversion factors shared by every ticker in a
// set. ExchgRate is reporting-fiat per USD-equivalent, BTCFiatPrice the live
// BTC price in the reporting fiat. NativeFiat names the quote currency that
// needs no conversion.
type CrossRates struct {
	ExchgRate    float64
	BTCFiatPrice float64
	NativeFiat   string
}

// Tickers owns the full ticker collection for one exchange together with the
// shared cross rates. The set is owned by the calling scheduler; all mutation
// must go through a single writer per set (see internal/pipeline). The
// normalization sequence over an individual ticker is not atomic, so two
// concurrent refreshes against the same set would tear the volume baseline.
type Tickers struct {
	Exchange string
	Entries  []*Ticker
	Rates    CrossRates
}

// Lookup returns the ticker with the given exchange symbol, or nil.
// Sentinel-marked tickers are never returned.
func (ts *Tickers) Lookup(symbol string) *Ticker {
	if symbol == SentinelSymbol {
		return nil
	}
	for _, t := range ts.Entries {
		if t.Symbol == symbol {
			return t
		}
	}
	return nil
}

// ByBase returns every ticker whose base asset matches name, including
// sentinel-marked ones: availability flags stay maintained even for tickers
// that dropped out of the price feed.
func (ts *Tickers) ByBase(name string) []*Ticker {
	var out []*Ticker
	for _, t := range ts.Entries {
		if t.BaseName == name {
			out = append(out, t)
		}
	}
	return out
}
