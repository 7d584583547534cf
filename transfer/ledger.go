package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/chinmay1088/voyager/api"
	solanatx "github.com/chinmay1088/voyager/chains/solana"
	"github.com/chinmay1088/voyager/wallet"
)

func (d *Dispatcher) sendLedger(ctx context.Context, chain api.Chain, key *wallet.LedgerKey, req Request) (string, error) {
	to, err := solanatx.ParseAddress(req.Destination)
	if err != nil {
		return "", fmt.Errorf("%w: %v", api.ErrAddressNormalization, err)
	}
	from := key.PublicKey()

	decimals := uint8(solanatx.SOLDecimals)
	if req.Asset != api.AssetNative {
		decimals = api.LedgerTokenDecimals
	}
	units, err := solanatx.ToTokenUnits(req.Amount, decimals)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if units == 0 {
		return "", fmt.Errorf("%w: %s is below the smallest unit", ErrInvalidAmount, req.Amount)
	}

	conn := d.ledger.Acquire(ctx, chain.Network)
	if conn == nil {
		return "", networkError(chain.Network, StageConnect, fmt.Errorf("no endpoint configured"))
	}

	callCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	defer cancel()

	tx := solanatx.NewTransaction(from)
	if req.Asset == api.AssetNative {
		tx.AddTransferInstruction(from, to, units)
	} else {
		if err := d.addTokenTransfer(callCtx, conn, chain, tx, from, to, req.Asset, units); err != nil {
			return "", err
		}
	}

	latest, err := conn.GetLatestBlockhash(callCtx, rpc.CommitmentFinalized)
	if err != nil {
		return "", networkError(chain.Network, StageBlockhash, err)
	}
	if latest == nil || latest.Value == nil {
		return "", networkError(chain.Network, StageBlockhash, fmt.Errorf("empty blockhash response"))
	}
	tx.SetRecentBlockhash(latest.Value.Blockhash)

	signed, err := tx.BuildAndSign(key)
	if err != nil {
		return "", err
	}

	sig, err := conn.SendTransactionWithOpts(callCtx, signed, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return "", d.broadcastFailed(chain.Network, err)
	}

	return sig.String(), nil
}

// addTokenTransfer appends a checked token transfer between the associated
// token accounts of from and to, preceded by the creation of the recipient
// account when it does not exist yet.
func (d *Dispatcher) addTokenTransfer(ctx context.Context, conn api.LedgerConn, chain api.Chain, tx *solanatx.Transaction, from, to solana.PublicKey, asset api.Asset, units uint64) error {
	token, _ := chain.Token(asset)
	mint, err := solana.PublicKeyFromBase58(token)
	if err != nil {
		return fmt.Errorf("%w: invalid mint %s: %v", ErrUnsupportedRoute, token, err)
	}

	source, _, err := solana.FindAssociatedTokenAddress(from, mint)
	if err != nil {
		return fmt.Errorf("failed to find sender token account: %w", err)
	}
	destination, _, err := solana.FindAssociatedTokenAddress(to, mint)
	if err != nil {
		return fmt.Errorf("failed to find recipient token account: %w", err)
	}

	exists, err := accountExists(ctx, conn, destination)
	if err != nil {
		return networkError(chain.Network, StageAccount, err)
	}
	if !exists {
		d.log.Debug().
			Str("owner", to.String()).
			Str("account", destination.String()).
			Msg("recipient token account missing, creating it")
		tx.AddCreateTokenAccountInstruction(from, to, mint)
	}

	tx.AddTokenTransferInstruction(units, api.LedgerTokenDecimals, source, mint, destination, from)
	return nil
}

func accountExists(ctx context.Context, conn api.LedgerConn, account solana.PublicKey) (bool, error) {
	info, err := conn.GetAccountInfo(ctx, account)
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info != nil && info.Value != nil, nil
}
