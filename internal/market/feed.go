package market

// RawSnapshot is the per-symbol record handed over by an exchange adapter
// after endpoint-specific parsing. Prices and volume are still in the
// exchange's own quote units.
type RawSnapshot struct {
	Price                 float64 `json:"price"`
	BestAsk               float64 `json:"best_ask"`
	BestBid               float64 `json:"best_bid"`
	CumulativeQuoteVolume float64 `json:"cumulative_quote_volume"`
	SampleTimestampMs     int64   `json:"sample_timestamp_ms"`
}

// CoinNetworkStatus is one per-(asset, network) row from an exchange's coin
// state feed. The capability flags are pointers so a field an exchange
// omitted (or a malformed row) is distinguishable from an explicit false; a
// row with a missing flag must leave prior state untouched rather than
// freezing a healthy asset.
type CoinNetworkStatus struct {
	AssetCode        string  `json:"asset_code"`
	NetworkID        string  `json:"network_id"`
	DepositEnabled   *bool   `json:"deposit_enabled"`
	WithdrawEnabled  *bool   `json:"withdraw_enabled"`
	Fee              float64 `json:"fee"`
	MinWithdraw      float64 `json:"min_withdraw"`
	MaxWithdraw      float64 `json:"max_withdraw"`
	MinConfirmations int     `json:"min_confirmations"`
}
