package mocks

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	ethtx "github.com/chinmay1088/voyager/chains/ethereum"
)

type EVMConn struct {
	EndpointFunc        func() string
	ProbeFunc           func(ctx context.Context) error
	BalanceAtFunc       func(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContractFunc    func(ctx context.Context, msg geth.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAtFunc  func(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPriceFunc func(ctx context.Context) (*big.Int, error)
	EstimateGasFunc     func(ctx context.Context, msg geth.CallMsg) (uint64, error)
	SendTransactionFunc func(ctx context.Context, tx *types.Transaction) error
}

// BaselineEVMConn answers every call successfully. Token calls report
// GenericTokenUnits with GenericTokenDecimals.
func BaselineEVMConn(t *testing.T) *EVMConn {
	t.Helper()

	decimals, err := ethtx.ERC20ABI.Methods["decimals"].Outputs.Pack(GenericTokenDecimals)
	require.NoError(t, err)
	balance, err := ethtx.ERC20ABI.Methods["balanceOf"].Outputs.Pack(GenericTokenUnits)
	require.NoError(t, err)

	c := EVMConn{
		EndpointFunc: func() string {
			return GenericEndpoint
		},
		ProbeFunc: func(context.Context) error {
			return nil
		},
		BalanceAtFunc: func(context.Context, common.Address, *big.Int) (*big.Int, error) {
			return new(big.Int).Set(GenericWei), nil
		},
		CallContractFunc: func(_ context.Context, msg geth.CallMsg, _ *big.Int) ([]byte, error) {
			if bytes.HasPrefix(msg.Data, ethtx.ERC20ABI.Methods["decimals"].ID) {
				return decimals, nil
			}
			return balance, nil
		},
		PendingNonceAtFunc: func(context.Context, common.Address) (uint64, error) {
			return GenericNonce, nil
		},
		SuggestGasPriceFunc: func(context.Context) (*big.Int, error) {
			return new(big.Int).Set(GenericGasPrice), nil
		},
		EstimateGasFunc: func(context.Context, geth.CallMsg) (uint64, error) {
			return GenericGas, nil
		},
		SendTransactionFunc: func(context.Context, *types.Transaction) error {
			return nil
		},
	}

	return &c
}

func (c *EVMConn) Endpoint() string {
	return c.EndpointFunc()
}

func (c *EVMConn) Probe(ctx context.Context) error {
	return c.ProbeFunc(ctx)
}

func (c *EVMConn) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return c.BalanceAtFunc(ctx, account, blockNumber)
}

func (c *EVMConn) CallContract(ctx context.Context, msg geth.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.CallContractFunc(ctx, msg, blockNumber)
}

func (c *EVMConn) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.PendingNonceAtFunc(ctx, account)
}

func (c *EVMConn) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.SuggestGasPriceFunc(ctx)
}

func (c *EVMConn) EstimateGas(ctx context.Context, msg geth.CallMsg) (uint64, error) {
	return c.EstimateGasFunc(ctx, msg)
}

func (c *EVMConn) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.SendTransactionFunc(ctx, tx)
}
