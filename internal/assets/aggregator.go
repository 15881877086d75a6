package assets

import (
	"marketgate/internal/market"
	"marketgate/logger"
)

// Aggregator merges per-network deposit/withdraw capability rows into
// per-asset states and propagates the aggregated flags onto every ticker
// sharing the base asset. States are created on first observation and never
// deleted. The aggregator must be driven from the same single writer that
// owns the ticker set.
type Aggregator struct {
	states map[string]*market.AssetState
	log    *logger.Log
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		states: make(map[string]*market.AssetState),
		log:    logger.GetLogger(),
	}
}

// State returns the tracked state for a base asset, or nil.
func (a *Aggregator) State(baseName string) *market.AssetState {
	return a.states[baseName]
}

// MergeNetwork folds one network capability observation into the asset's
// state and propagates the recomputed flags to the ticker set in the same
// call. For a known composite key only the capability flags move; fee and
// limit metadata keep their first observed values so partial re-fetches
// cannot wipe them.
func (a *Aggregator) MergeNetwork(set *market.Tickers, baseName, networkKey string, deposit, withdraw bool, meta market.NetworkState) {
	state, ok := a.states[baseName]
	if !ok {
		state = &market.AssetState{BaseName: baseName}
		a.states[baseName] = state
	}

	if n := state.Network(networkKey); n != nil {
		n.Deposit = deposit
		n.Withdraw = withdraw
	} else {
		state.Networks = append(state.Networks, &market.NetworkState{
			Name:        networkKey,
			Chain:       meta.Chain,
			Deposit:     deposit,
			Withdraw:    withdraw,
			WithdrawFee: meta.WithdrawFee,
			MinWithdraw: meta.MinWithdraw,
			MaxWithdraw: meta.MaxWithdraw,
			MinConfirm:  meta.MinConfirm,
		})
	}

	state.Recompute()
	a.propagate(set, state)
}

// Apply folds a batch of coin-state rows from an exchange feed. Rows missing
// either capability flag are skipped: an exchange-side outage must leave the
// prior state stale-but-valid instead of freezing a healthy asset.
func (a *Aggregator) Apply(set *market.Tickers, statuses []market.CoinNetworkStatus) {
	log := a.log.WithComponent("asset_aggregator").WithFields(logger.Fields{
		"exchange": set.Exchange,
	})

	for _, s := range statuses {
		if s.AssetCode == "" || s.NetworkID == "" {
			log.WithFields(logger.Fields{
				"asset":   s.AssetCode,
				"network": s.NetworkID,
			}).Warn("coin state row missing identifiers, skipped")
			continue
		}
		if s.DepositEnabled == nil || s.WithdrawEnabled == nil {
			log.WithFields(logger.Fields{
				"asset":   s.AssetCode,
				"network": s.NetworkID,
			}).Warn("coin state row missing capability flags, keeping prior state")
			continue
		}

		a.MergeNetwork(set, s.AssetCode, s.AssetCode+"-"+s.NetworkID, *s.DepositEnabled, *s.WithdrawEnabled, market.NetworkState{
			Chain:       s.NetworkID,
			WithdrawFee: s.Fee,
			MinWithdraw: s.MinWithdraw,
			MaxWithdraw: s.MaxWithdraw,
			MinConfirm:  s.MinConfirmations,
		})
	}
}

func (a *Aggregator) propagate(set *market.Tickers, state *market.AssetState) {
	for _, t := range set.ByBase(state.BaseName) {
		t.Active = state.Active
		t.Deposit = state.Deposit
		t.Withdraw = state.Withdraw
	}
}
