package transfer

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/wallet"
)

// Request describes a single-asset transfer out of an identity.
type Request struct {
	Identity    wallet.Identity
	Network     api.Network
	Asset       api.Asset
	Destination string
	Amount      decimal.Decimal
}

// Receipt identifies a broadcast transaction.
type Receipt struct {
	TxID    string      `json:"tx_id"`
	Network api.Network `json:"network"`
	Asset   api.Asset   `json:"asset"`
}

// Dispatcher builds, signs and broadcasts transfers. Every successful Send
// results in exactly one transaction on the target network.
type Dispatcher struct {
	log    zerolog.Logger
	evm    api.Provider[api.EVMConn]
	ledger api.Provider[api.LedgerConn]
	cfg    Config
}

// NewDispatcher creates a dispatcher on top of the given connection providers.
func NewDispatcher(log zerolog.Logger, evm api.Provider[api.EVMConn], ledger api.Provider[api.LedgerConn], options ...func(*Config)) *Dispatcher {
	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	d := Dispatcher{
		log:    log.With().Str("component", "transfer_dispatcher").Logger(),
		evm:    evm,
		ledger: ledger,
		cfg:    cfg,
	}

	return &d
}

// Send validates req and submits it. Validation failures are reported
// before any node is contacted.
func (d *Dispatcher) Send(ctx context.Context, req Request) (*Receipt, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, req.Amount)
	}

	chain, ok := api.Chains[req.Network]
	if !ok {
		return nil, fmt.Errorf("%w: unknown network %q", ErrUnsupportedRoute, req.Network)
	}
	if req.Asset != api.AssetNative {
		token, ok := chain.Token(req.Asset)
		if !ok {
			return nil, fmt.Errorf("%w: unknown asset %q on %s", ErrUnsupportedRoute, req.Asset, chain.Name)
		}
		if err := checkToken(req.Network.Family(), token); err != nil {
			return nil, fmt.Errorf("%w: %s on %s: %v", ErrUnsupportedRoute, req.Asset, chain.Name, err)
		}
	}

	var (
		txID string
		err  error
	)
	switch req.Network.Family() {
	case api.FamilyEVM:
		key, ok := wallet.EVMKeyOf(req.Identity)
		if !ok {
			return nil, fmt.Errorf("%w: identity has no key for %s", ErrUnsupportedRoute, chain.Name)
		}
		txID, err = d.sendEVM(ctx, chain, key, req)
	case api.FamilyLedger:
		key, ok := wallet.LedgerKeyOf(req.Identity)
		if !ok {
			return nil, fmt.Errorf("%w: identity has no key for %s", ErrUnsupportedRoute, chain.Name)
		}
		txID, err = d.sendLedger(ctx, chain, key, req)
	default:
		return nil, fmt.Errorf("%w: unknown network %q", ErrUnsupportedRoute, req.Network)
	}
	if err != nil {
		return nil, err
	}

	d.log.Info().
		Str("network", string(req.Network)).
		Str("asset", string(req.Asset)).
		Str("tx_id", txID).
		Msg("transaction broadcast")

	receipt := Receipt{
		TxID:    txID,
		Network: req.Network,
		Asset:   req.Asset,
	}

	return &receipt, nil
}

// checkToken verifies that a configured contract or mint is well formed.
func checkToken(family api.Family, token string) error {
	switch family {
	case api.FamilyEVM:
		if !common.IsHexAddress(token) {
			return fmt.Errorf("invalid token contract %s", token)
		}
	case api.FamilyLedger:
		_, err := solana.PublicKeyFromBase58(token)
		if err != nil {
			return fmt.Errorf("invalid mint %s: %w", token, err)
		}
	}
	return nil
}

// broadcastFailed drops the cached connection of network so the next
// request races the endpoints again.
func (d *Dispatcher) broadcastFailed(network api.Network, err error) error {
	switch network.Family() {
	case api.FamilyEVM:
		d.evm.Invalidate(network)
	case api.FamilyLedger:
		d.ledger.Invalidate(network)
	}
	return networkError(network, StageBroadcast, err)
}
