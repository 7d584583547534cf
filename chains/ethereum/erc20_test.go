package ethereum_test

import (
	"context"
	"math/big"
	"testing"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ethtx "github.com/chinmay1088/voyager/chains/ethereum"
	"github.com/chinmay1088/voyager/testing/mocks"
)

func TestTokenCalls(t *testing.T) {
	token := common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")

	t.Run("nominal case", func(t *testing.T) {
		conn := mocks.BaselineEVMConn(t)
		baseline := conn.CallContractFunc
		conn.CallContractFunc = func(ctx context.Context, msg geth.CallMsg, block *big.Int) ([]byte, error) {
			assert.Equal(t, token, *msg.To)
			assert.Nil(t, block)
			return baseline(ctx, msg, block)
		}

		decimals, err := ethtx.TokenDecimals(context.Background(), conn, token)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericTokenDecimals, decimals)

		balance, err := ethtx.TokenBalance(context.Background(), conn, token, mocks.GenericEVMAddress)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericTokenUnits, balance)
	})

	t.Run("balanceOf encodes the owner", func(t *testing.T) {
		conn := mocks.BaselineEVMConn(t)
		baseline := conn.CallContractFunc
		conn.CallContractFunc = func(ctx context.Context, msg geth.CallMsg, block *big.Int) ([]byte, error) {
			require.Len(t, msg.Data, 4+32)
			assert.Equal(t, ethtx.ERC20ABI.Methods["balanceOf"].ID, msg.Data[:4])
			assert.Equal(t, mocks.GenericEVMAddress.Bytes(), msg.Data[4+12:])
			return baseline(ctx, msg, block)
		}

		_, err := ethtx.TokenBalance(context.Background(), conn, token, mocks.GenericEVMAddress)
		require.NoError(t, err)
	})

	t.Run("call failure", func(t *testing.T) {
		conn := mocks.BaselineEVMConn(t)
		conn.CallContractFunc = func(context.Context, geth.CallMsg, *big.Int) ([]byte, error) {
			return nil, mocks.GenericError
		}

		_, err := ethtx.TokenDecimals(context.Background(), conn, token)
		assert.ErrorIs(t, err, mocks.GenericError)
	})

	t.Run("empty result from a non-contract", func(t *testing.T) {
		conn := mocks.BaselineEVMConn(t)
		conn.CallContractFunc = func(context.Context, geth.CallMsg, *big.Int) ([]byte, error) {
			return []byte{}, nil
		}

		_, err := ethtx.TokenBalance(context.Background(), conn, token, mocks.GenericEVMAddress)
		assert.Error(t, err)
	})
}

func TestPackTransfer(t *testing.T) {
	data, err := ethtx.PackTransfer(mocks.GenericEVMAddress, big.NewInt(10_000_000))
	require.NoError(t, err)

	require.Len(t, data, 4+32+32)
	assert.Equal(t, ethtx.ERC20ABI.Methods["transfer"].ID, data[:4])
	assert.Equal(t, mocks.GenericEVMAddress.Bytes(), data[4+12:4+32])
	assert.Equal(t, big.NewInt(10_000_000), new(big.Int).SetBytes(data[4+32:]))
}
