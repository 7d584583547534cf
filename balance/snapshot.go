package balance

import (
	"github.com/shopspring/decimal"

	"github.com/chinmay1088/voyager/api"
)

// Snapshot holds the three tracked figures of one network. A figure that
// could not be fetched is zero.
type Snapshot struct {
	Native decimal.Decimal `json:"native"`
	USDT   decimal.Decimal `json:"usdt"`
	USDC   decimal.Decimal `json:"usdc"`
}

// ZeroSnapshot returns a snapshot with every figure set to zero.
func ZeroSnapshot() Snapshot {
	return Snapshot{
		Native: decimal.Zero,
		USDT:   decimal.Zero,
		USDC:   decimal.Zero,
	}
}

// Of returns the figure of asset.
func (s Snapshot) Of(asset api.Asset) decimal.Decimal {
	switch asset {
	case api.AssetNative:
		return s.Native
	case api.AssetUSDT:
		return s.USDT
	case api.AssetUSDC:
		return s.USDC
	default:
		return decimal.Zero
	}
}

func (s *Snapshot) set(asset api.Asset, value decimal.Decimal) {
	switch asset {
	case api.AssetNative:
		s.Native = value
	case api.AssetUSDT:
		s.USDT = value
	case api.AssetUSDC:
		s.USDC = value
	}
}

// Balances holds one snapshot per network.
type Balances struct {
	Ethereum Snapshot `json:"ethereum"`
	BSC      Snapshot `json:"bsc"`
	Solana   Snapshot `json:"solana"`
}

// Of returns the snapshot of network.
func (b Balances) Of(network api.Network) Snapshot {
	switch network {
	case api.NetworkEthereum:
		return b.Ethereum
	case api.NetworkBSC:
		return b.BSC
	case api.NetworkSolana:
		return b.Solana
	default:
		return ZeroSnapshot()
	}
}
