package mocks

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type LedgerConn struct {
	EndpointFunc                func() string
	ProbeFunc                   func(ctx context.Context) error
	GetBalanceFunc              func(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountBalanceFunc  func(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetAccountInfoFunc          func(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhashFunc      func(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOptsFunc func(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

// BaselineLedgerConn answers every call successfully. Every token account
// exists and holds GenericTokenAmount.
func BaselineLedgerConn(t *testing.T) *LedgerConn {
	t.Helper()

	c := LedgerConn{
		EndpointFunc: func() string {
			return GenericEndpoint
		},
		ProbeFunc: func(context.Context) error {
			return nil
		},
		GetBalanceFunc: func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
			return &rpc.GetBalanceResult{Value: GenericLamports}, nil
		},
		GetTokenAccountBalanceFunc: func(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
			return &rpc.GetTokenAccountBalanceResult{
				Value: &rpc.UiTokenAmount{Amount: GenericTokenAmount, Decimals: GenericTokenDecimals},
			}, nil
		},
		GetAccountInfoFunc: func(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
			return &rpc.GetAccountInfoResult{Value: &rpc.Account{Owner: solana.TokenProgramID}}, nil
		},
		GetLatestBlockhashFunc: func(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
			return &rpc.GetLatestBlockhashResult{
				Value: &rpc.LatestBlockhashResult{Blockhash: GenericBlockhash},
			}, nil
		},
		SendTransactionWithOptsFunc: func(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) {
			return GenericSignature, nil
		},
	}

	return &c
}

func (c *LedgerConn) Endpoint() string {
	return c.EndpointFunc()
}

func (c *LedgerConn) Probe(ctx context.Context) error {
	return c.ProbeFunc(ctx)
}

func (c *LedgerConn) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	return c.GetBalanceFunc(ctx, account, commitment)
}

func (c *LedgerConn) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	return c.GetTokenAccountBalanceFunc(ctx, account, commitment)
}

func (c *LedgerConn) GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return c.GetAccountInfoFunc(ctx, account)
}

func (c *LedgerConn) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return c.GetLatestBlockhashFunc(ctx, commitment)
}

func (c *LedgerConn) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	return c.SendTransactionWithOptsFunc(ctx, tx, opts)
}
