package engine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/balance"
	"github.com/chinmay1088/voyager/transfer"
	"github.com/chinmay1088/voyager/wallet"
)

// ErrUnknownHandle is returned for handles that were never issued or have
// been forgotten.
var ErrUnknownHandle = errors.New("unknown wallet handle")

// Manager keeps imported identities in memory and routes balance and
// transfer requests for them. Identities are never persisted.
type Manager struct {
	log        zerolog.Logger
	evm        api.Provider[api.EVMConn]
	ledger     api.Provider[api.LedgerConn]
	aggregator *balance.Aggregator
	dispatcher *transfer.Dispatcher

	mu         sync.RWMutex
	identities map[string]wallet.Identity
}

// New wires a manager with endpoint racers built from cfg.
func New(log zerolog.Logger, cfg api.Config, options ...func(*balance.Config)) *Manager {
	clk := clock.New()
	endpoints := cfg.Endpoints()

	evm := api.NewRacer[api.EVMConn](log, api.DialEthereum, endpoints, api.NewCache[api.EVMConn](clk, cfg.CacheTTL), cfg.ProbeTimeout)
	ledger := api.NewRacer[api.LedgerConn](log, api.DialSolana, endpoints, api.NewCache[api.LedgerConn](clk, cfg.CacheTTL), cfg.ProbeTimeout)

	return NewManager(log, evm, ledger, cfg.CallTimeout, options...)
}

// NewManager creates a manager on top of the given connection providers.
func NewManager(log zerolog.Logger, evm api.Provider[api.EVMConn], ledger api.Provider[api.LedgerConn], callTimeout time.Duration, options ...func(*balance.Config)) *Manager {
	options = append([]func(*balance.Config){balance.WithCallTimeout(callTimeout)}, options...)

	m := Manager{
		log:        log.With().Str("component", "manager").Logger(),
		evm:        evm,
		ledger:     ledger,
		aggregator: balance.NewAggregator(log, evm, ledger, options...),
		dispatcher: transfer.NewDispatcher(log, evm, ledger, transfer.WithCallTimeout(callTimeout)),
		identities: make(map[string]wallet.Identity),
	}

	return &m
}

// generateHandle creates a random wallet handle
func generateHandle() (string, error) {
	handleBytes := make([]byte, 16)
	_, err := rand.Read(handleBytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(handleBytes), nil
}

// DeriveImportedWallet derives an identity from secret and registers it.
// The returned handle refers to the identity in later calls.
func (m *Manager) DeriveImportedWallet(mode wallet.Mode, secret string) (string, wallet.Addresses, error) {
	id, err := wallet.Derive(mode, secret)
	if err != nil {
		return "", wallet.Addresses{}, err
	}

	handle, err := generateHandle()
	if err != nil {
		return "", wallet.Addresses{}, fmt.Errorf("failed to generate wallet handle: %w", err)
	}

	m.mu.Lock()
	m.identities[handle] = id
	m.mu.Unlock()

	addrs := wallet.AddressesOf(id)
	m.log.Debug().
		Str("mode", string(mode)).
		Str("evm", addrs.EVM).
		Str("ledger", addrs.Ledger).
		Msg("wallet imported")

	return handle, addrs, nil
}

// Addresses returns the public addresses of an imported identity.
func (m *Manager) Addresses(handle string) (wallet.Addresses, error) {
	id, err := m.identity(handle)
	if err != nil {
		return wallet.Addresses{}, err
	}
	return wallet.AddressesOf(id), nil
}

// GetImportedBalances aggregates the balances of an imported identity.
// Only an unknown handle is an error; unavailable figures are zero.
func (m *Manager) GetImportedBalances(ctx context.Context, handle string) (balance.Balances, error) {
	id, err := m.identity(handle)
	if err != nil {
		return balance.Balances{}, err
	}
	return m.aggregator.Aggregate(ctx, id), nil
}

// SendImportedTransaction transfers amount of asset on network from an
// imported identity to destination.
func (m *Manager) SendImportedTransaction(ctx context.Context, handle string, network api.Network, asset api.Asset, destination string, amount decimal.Decimal) (*transfer.Receipt, error) {
	id, err := m.identity(handle)
	if err != nil {
		return nil, err
	}

	req := transfer.Request{
		Identity:    id,
		Network:     network,
		Asset:       asset,
		Destination: destination,
		Amount:      amount,
	}
	return m.dispatcher.Send(ctx, req)
}

// Forget drops an imported identity. Forgetting an unknown handle is a no-op.
func (m *Manager) Forget(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.identities, handle)
}

// Endpoint acquires a connection for network and returns the endpoint it
// is bound to, or an empty string if none is configured.
func (m *Manager) Endpoint(ctx context.Context, network api.Network) string {
	switch network.Family() {
	case api.FamilyEVM:
		if conn := m.evm.Acquire(ctx, network); conn != nil {
			return conn.Endpoint()
		}
	case api.FamilyLedger:
		if conn := m.ledger.Acquire(ctx, network); conn != nil {
			return conn.Endpoint()
		}
	}
	return ""
}

func (m *Manager) identity(handle string) (wallet.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.identities[handle]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return id, nil
}
