package api

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// LedgerConn is a connection handle to a Solana JSON-RPC endpoint.
type LedgerConn interface {
	Conn
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

// SolanaConn wraps the solana-go RPC client for one endpoint.
type SolanaConn struct {
	*rpc.Client
	endpoint string
}

// DialSolana returns a handle for endpoint. It is a Dialer for the ledger network.
func DialSolana(endpoint string) LedgerConn {
	return &SolanaConn{
		Client:   rpc.New(endpoint),
		endpoint: endpoint,
	}
}

// Endpoint returns the URL the handle is bound to.
func (c *SolanaConn) Endpoint() string {
	return c.endpoint
}

// Probe fetches the current slot.
func (c *SolanaConn) Probe(ctx context.Context) error {
	_, err := c.GetSlot(ctx, rpc.CommitmentConfirmed)
	return err
}
