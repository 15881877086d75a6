package market

// NetworkState tracks deposit/withdraw capability for one (asset, chain)
// pair. Name is the composite uniqueness key. Fee and limit metadata are set
// once when the network is first observed and not overwritten afterwards, so
// an incomplete re-fetch cannot wipe them.
type NetworkState struct {
	Name        string  `json:"name"`
	Chain       string  `json:"chain"`
	Deposit     bool    `json:"deposit"`
	Withdraw    bool    `json:"withdraw"`
	WithdrawFee float64 `json:"withdraw_fee"`
	MinWithdraw float64 `json:"min_withdrawal"`
	MaxWithdraw float64 `json:"max_withdrawal"`
	MinConfirm  int     `json:"min_confirm"`
}

// AssetState aggregates the per-network states of one base asset into the
// ticker-level availability flags. An asset is active while any network can
// move funds in either direction. States are created on first observation and
// never deleted; absence from a later feed is not removal.
type AssetState struct {
	BaseName string          `json:"base_name"`
	Active   bool            `json:"active"`
	Deposit  bool            `json:"deposit"`
	Withdraw bool            `json:"withdraw"`
	Networks []*NetworkState `json:"networks"`
}

// Network returns the network with the given composite name, or nil. Linear
// scan: an asset carries at most a few tens of networks.
func (a *AssetState) Network(name string) *NetworkState {
	for _, n := range a.Networks {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Recompute rederives the asset-level flags from the network states.
func (a *AssetState) Recompute() {
	a.Active = false
	a.Deposit = false
	a.Withdraw = false
	for _, n := range a.Networks {
		if n.Deposit {
			a.Deposit = true
		}
		if n.Withdraw {
			a.Withdraw = true
		}
		if n.Deposit || n.Withdraw {
			a.Active = true
		}
	}
}
