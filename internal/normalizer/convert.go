package normalizer

import (
	"errors"
	"fmt"

	"marketgate/internal/market"
)

// ErrUnknownQuoteAsset is returned when a quote asset matches none of the
// conversion classes. Callers must not treat the input as already converted;
// the silent 1x fallthrough this replaces masked mispriced tickers for weeks.
var ErrUnknownQuoteAsset = errors.New("unknown quote asset")

// ConvertQuote converts a price or volume quoted in quoteAsset into the
// reporting currency. The classes are checked in order: USD-pegged quotes use
// the fiat exchange rate, BTC quotes use the live BTC fiat price, the native
// reporting fiat passes through unchanged.
func ConvertQuote(value float64, quoteAsset string, rates market.CrossRates) (float64, error) {
	switch quoteAsset {
	case "USDT", "USDC", "USD":
		return value * rates.ExchgRate, nil
	case "BTC":
		return value * rates.BTCFiatPrice, nil
	case rates.NativeFiat:
		return value, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuoteAsset, quoteAsset)
}
