package balance

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/chinmay1088/voyager/api"
	ethtx "github.com/chinmay1088/voyager/chains/ethereum"
	solanatx "github.com/chinmay1088/voyager/chains/solana"
	"github.com/chinmay1088/voyager/wallet"
)

// SOLPrecision is the number of decimal places native Solana balances are
// rounded to.
const SOLPrecision = 6

// Aggregator collects the balances of an identity across every network.
type Aggregator struct {
	log    zerolog.Logger
	evm    api.Provider[api.EVMConn]
	ledger api.Provider[api.LedgerConn]
	cfg    Config
}

// NewAggregator creates an aggregator on top of the given connection providers.
func NewAggregator(log zerolog.Logger, evm api.Provider[api.EVMConn], ledger api.Provider[api.LedgerConn], options ...func(*Config)) *Aggregator {
	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	a := Aggregator{
		log:    log.With().Str("component", "balance_aggregator").Logger(),
		evm:    evm,
		ledger: ledger,
		cfg:    cfg,
	}

	return &a
}

// Aggregate fetches every figure of id concurrently. It never fails: a
// network the identity has no key for, and any figure whose fetch fails,
// is reported as zero.
func (a *Aggregator) Aggregate(ctx context.Context, id wallet.Identity) Balances {
	balances := Balances{
		Ethereum: ZeroSnapshot(),
		BSC:      ZeroSnapshot(),
		Solana:   ZeroSnapshot(),
	}

	evmKey, hasEVM := wallet.EVMKeyOf(id)
	ledgerKey, hasLedger := wallet.LedgerKeyOf(id)

	var group errgroup.Group
	group.Go(func() error {
		defer a.cfg.Progress(api.NetworkEthereum)
		if hasEVM {
			balances.Ethereum = a.evmSnapshot(ctx, api.NetworkEthereum, evmKey.Address())
		}
		return nil
	})
	group.Go(func() error {
		defer a.cfg.Progress(api.NetworkBSC)
		if hasEVM {
			balances.BSC = a.evmSnapshot(ctx, api.NetworkBSC, evmKey.Address())
		}
		return nil
	})
	group.Go(func() error {
		defer a.cfg.Progress(api.NetworkSolana)
		if hasLedger {
			balances.Solana = a.ledgerSnapshot(ctx, ledgerKey.PublicKey())
		}
		return nil
	})
	_ = group.Wait()

	return balances
}

func (a *Aggregator) evmSnapshot(ctx context.Context, network api.Network, owner common.Address) Snapshot {
	snapshot := ZeroSnapshot()
	log := a.log.With().Str("network", string(network)).Logger()

	address, err := ethtx.ParseAddress(owner.Hex())
	if err != nil {
		log.Warn().Err(fmt.Errorf("%w: %v", api.ErrAddressNormalization, err)).Msg("skipping network")
		return snapshot
	}

	conn := a.evm.Acquire(ctx, network)
	if conn == nil {
		log.Warn().Msg("no connection available")
		return snapshot
	}

	chain := api.Chains[network]
	figures := make([]decimal.Decimal, len(api.Assets))

	var group errgroup.Group
	for i, asset := range api.Assets {
		group.Go(func() error {
			value, err := a.evmFigure(ctx, conn, chain, asset, address)
			if err != nil {
				log.Debug().Str("asset", string(asset)).Err(err).Msg("balance unavailable, reporting zero")
				value = decimal.Zero
			}
			figures[i] = value
			return nil
		})
	}
	_ = group.Wait()

	for i, asset := range api.Assets {
		snapshot.set(asset, figures[i])
	}
	return snapshot
}

func (a *Aggregator) evmFigure(ctx context.Context, conn api.EVMConn, chain api.Chain, asset api.Asset, owner common.Address) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	if asset == api.AssetNative {
		wei, err := conn.BalanceAt(ctx, owner, nil)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to get native balance: %w", err)
		}
		return ethtx.WeiToEther(wei), nil
	}

	contract, ok := chain.Token(asset)
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s contract on %s", asset, chain.Name)
	}
	token := common.HexToAddress(contract)

	decimals, err := ethtx.TokenDecimals(ctx, conn, token)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get token decimals: %w", err)
	}
	raw, err := ethtx.TokenBalance(ctx, conn, token, owner)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get token balance: %w", err)
	}
	return ethtx.FromBaseUnits(raw, decimals), nil
}

func (a *Aggregator) ledgerSnapshot(ctx context.Context, owner solana.PublicKey) Snapshot {
	snapshot := ZeroSnapshot()
	log := a.log.With().Str("network", string(api.NetworkSolana)).Logger()

	conn := a.ledger.Acquire(ctx, api.NetworkSolana)
	if conn == nil {
		log.Warn().Msg("no connection available")
		return snapshot
	}

	chain := api.Chains[api.NetworkSolana]
	figures := make([]decimal.Decimal, len(api.Assets))

	var group errgroup.Group
	for i, asset := range api.Assets {
		group.Go(func() error {
			value, err := a.ledgerFigure(ctx, conn, chain, asset, owner)
			if err != nil {
				log.Debug().Str("asset", string(asset)).Err(err).Msg("balance unavailable, reporting zero")
				value = decimal.Zero
			}
			figures[i] = value
			return nil
		})
	}
	_ = group.Wait()

	for i, asset := range api.Assets {
		snapshot.set(asset, figures[i])
	}
	return snapshot
}

func (a *Aggregator) ledgerFigure(ctx context.Context, conn api.LedgerConn, chain api.Chain, asset api.Asset, owner solana.PublicKey) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	if asset == api.AssetNative {
		result, err := conn.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to get native balance: %w", err)
		}
		if result == nil {
			return decimal.Zero, fmt.Errorf("empty native balance for %s", owner)
		}
		return solanatx.LamportsToSOL(result.Value).Round(SOLPrecision), nil
	}

	token, ok := chain.Token(asset)
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s mint on %s", asset, chain.Name)
	}
	mint, err := solana.PublicKeyFromBase58(token)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid mint %s: %w", token, err)
	}

	account, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find token account: %w", err)
	}

	result, err := conn.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get token balance: %w", err)
	}
	if result == nil || result.Value == nil {
		return decimal.Zero, fmt.Errorf("empty token balance for %s", account)
	}
	return solanatx.FromTokenUnits(result.Value.Amount, api.LedgerTokenDecimals)
}
