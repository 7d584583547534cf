package api

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EVMConn is a connection handle to an EVM JSON-RPC endpoint.
type EVMConn interface {
	Conn
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg geth.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg geth.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// EthereumConn wraps an ethclient for one endpoint. The client is dialed on
// first use; a dial failure is returned by every call.
type EthereumConn struct {
	endpoint string
	once     sync.Once
	client   *ethclient.Client
	err      error
}

// DialEthereum returns a handle for endpoint. It is a Dialer for EVM networks.
func DialEthereum(endpoint string) EVMConn {
	return &EthereumConn{endpoint: endpoint}
}

// Endpoint returns the URL the handle is bound to.
func (c *EthereumConn) Endpoint() string {
	return c.endpoint
}

func (c *EthereumConn) rpc() (*ethclient.Client, error) {
	c.once.Do(func() {
		c.client, c.err = ethclient.Dial(c.endpoint)
		if c.err != nil {
			c.err = fmt.Errorf("failed to dial %s: %w", c.endpoint, c.err)
		}
	})
	return c.client, c.err
}

// Probe fetches the latest block number.
func (c *EthereumConn) Probe(ctx context.Context) error {
	client, err := c.rpc()
	if err != nil {
		return err
	}
	_, err = client.BlockNumber(ctx)
	return err
}

// BalanceAt fetches the native balance in wei.
func (c *EthereumConn) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	client, err := c.rpc()
	if err != nil {
		return nil, err
	}
	return client.BalanceAt(ctx, account, blockNumber)
}

// CallContract executes a read-only contract call.
func (c *EthereumConn) CallContract(ctx context.Context, msg geth.CallMsg, blockNumber *big.Int) ([]byte, error) {
	client, err := c.rpc()
	if err != nil {
		return nil, err
	}
	return client.CallContract(ctx, msg, blockNumber)
}

// PendingNonceAt fetches the next nonce including pending transactions.
func (c *EthereumConn) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	client, err := c.rpc()
	if err != nil {
		return 0, err
	}
	return client.PendingNonceAt(ctx, account)
}

// SuggestGasPrice fetches the current gas price.
func (c *EthereumConn) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	client, err := c.rpc()
	if err != nil {
		return nil, err
	}
	return client.SuggestGasPrice(ctx)
}

// EstimateGas estimates the gas needed by msg.
func (c *EthereumConn) EstimateGas(ctx context.Context, msg geth.CallMsg) (uint64, error) {
	client, err := c.rpc()
	if err != nil {
		return 0, err
	}
	return client.EstimateGas(ctx, msg)
}

// SendTransaction broadcasts a signed transaction.
func (c *EthereumConn) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	client, err := c.rpc()
	if err != nil {
		return err
	}
	return client.SendTransaction(ctx, tx)
}
