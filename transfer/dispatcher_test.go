package transfer_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/voyager/api"
	ethtx "github.com/chinmay1088/voyager/chains/ethereum"
	"github.com/chinmay1088/voyager/testing/mocks"
	"github.com/chinmay1088/voyager/transfer"
	"github.com/chinmay1088/voyager/wallet"
)

const (
	testPhrase = "test test test test test test test test test test test junk"
	testEVMKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

// countingProviders returns baseline providers that count their acquisitions.
func countingProviders(t *testing.T, evmConn *mocks.EVMConn, ledgerConn *mocks.LedgerConn) (*mocks.Provider[api.EVMConn], *mocks.Provider[api.LedgerConn], *int) {
	t.Helper()

	calls := 0
	evm := mocks.BaselineProvider[api.EVMConn](t, evmConn)
	evm.AcquireFunc = func(context.Context, api.Network) api.EVMConn {
		calls++
		return evmConn
	}
	ledger := mocks.BaselineProvider[api.LedgerConn](t, ledgerConn)
	ledger.AcquireFunc = func(context.Context, api.Network) api.LedgerConn {
		calls++
		return ledgerConn
	}
	return evm, ledger, &calls
}

func TestDispatcher_SendRejectsBeforeNetwork(t *testing.T) {
	both, err := wallet.Derive(wallet.ModePhrase, testPhrase)
	require.NoError(t, err)
	evmOnly, err := wallet.Derive(wallet.ModeRawKey, testEVMKey)
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     transfer.Request
		wantErr error
	}{
		{
			name: "zero amount",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkEthereum,
				Asset:       api.AssetNative,
				Destination: mocks.GenericEVMAddress.Hex(),
				Amount:      decimal.Zero,
			},
			wantErr: transfer.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkSolana,
				Asset:       api.AssetUSDC,
				Destination: mocks.GenericLedgerAddress.String(),
				Amount:      decimal.NewFromInt(-5),
			},
			wantErr: transfer.ErrInvalidAmount,
		},
		{
			name: "below one lamport",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkSolana,
				Asset:       api.AssetNative,
				Destination: mocks.GenericLedgerAddress.String(),
				Amount:      decimal.RequireFromString("0.0000000001"),
			},
			wantErr: transfer.ErrInvalidAmount,
		},
		{
			name: "below one wei",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkBSC,
				Asset:       api.AssetNative,
				Destination: mocks.GenericEVMAddress.Hex(),
				Amount:      decimal.New(1, -19),
			},
			wantErr: transfer.ErrInvalidAmount,
		},
		{
			name: "identity without ledger key",
			req: transfer.Request{
				Identity:    evmOnly,
				Network:     api.NetworkSolana,
				Asset:       api.AssetNative,
				Destination: mocks.GenericLedgerAddress.String(),
				Amount:      decimal.NewFromInt(1),
			},
			wantErr: transfer.ErrUnsupportedRoute,
		},
		{
			name: "unknown network",
			req: transfer.Request{
				Identity:    both,
				Network:     api.Network("polygon"),
				Asset:       api.AssetNative,
				Destination: mocks.GenericEVMAddress.Hex(),
				Amount:      decimal.NewFromInt(1),
			},
			wantErr: transfer.ErrUnsupportedRoute,
		},
		{
			name: "unknown asset",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkEthereum,
				Asset:       api.Asset("dai"),
				Destination: mocks.GenericEVMAddress.Hex(),
				Amount:      decimal.NewFromInt(1),
			},
			wantErr: transfer.ErrUnsupportedRoute,
		},
		{
			name: "invalid evm destination",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkEthereum,
				Asset:       api.AssetUSDT,
				Destination: "0x1234",
				Amount:      decimal.NewFromInt(1),
			},
			wantErr: api.ErrAddressNormalization,
		},
		{
			name: "invalid ledger destination",
			req: transfer.Request{
				Identity:    both,
				Network:     api.NetworkSolana,
				Asset:       api.AssetNative,
				Destination: mocks.GenericEVMAddress.Hex(),
				Amount:      decimal.NewFromInt(1),
			},
			wantErr: api.ErrAddressNormalization,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			evm, ledger, calls := countingProviders(t, mocks.BaselineEVMConn(t), mocks.BaselineLedgerConn(t))
			dispatcher := transfer.NewDispatcher(mocks.NoopLogger, evm, ledger)

			receipt, err := dispatcher.Send(context.Background(), test.req)

			assert.ErrorIs(t, err, test.wantErr)
			assert.Nil(t, receipt)
			assert.Zero(t, *calls)
		})
	}
}

func TestDispatcher_SendRejectsMalformedToken(t *testing.T) {
	id, err := wallet.Derive(wallet.ModePhrase, testPhrase)
	require.NoError(t, err)

	tests := []struct {
		name        string
		network     api.Network
		token       string
		destination string
	}{
		{
			name:        "truncated mint",
			network:     api.NetworkSolana,
			token:       "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BJMB",
			destination: mocks.GenericLedgerAddress.String(),
		},
		{
			name:        "short contract",
			network:     api.NetworkBSC,
			token:       "0x55d398326f99",
			destination: mocks.GenericEVMAddress.Hex(),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			original := api.Chains[test.network]
			broken := original
			broken.Tokens = map[api.Asset]string{api.AssetUSDT: test.token}
			api.Chains[test.network] = broken
			t.Cleanup(func() { api.Chains[test.network] = original })

			evm, ledger, calls := countingProviders(t, mocks.BaselineEVMConn(t), mocks.BaselineLedgerConn(t))
			dispatcher := transfer.NewDispatcher(mocks.NoopLogger, evm, ledger)

			receipt, err := dispatcher.Send(context.Background(), transfer.Request{
				Identity:    id,
				Network:     test.network,
				Asset:       api.AssetUSDT,
				Destination: test.destination,
				Amount:      decimal.NewFromInt(10),
			})

			assert.ErrorIs(t, err, transfer.ErrUnsupportedRoute)
			assert.Nil(t, receipt)
			assert.Zero(t, *calls)
		})
	}
}

func TestDispatcher_SendEVM(t *testing.T) {
	id, err := wallet.Derive(wallet.ModePhrase, testPhrase)
	require.NoError(t, err)
	key, ok := wallet.EVMKeyOf(id)
	require.True(t, ok)

	t.Run("native transfer", func(t *testing.T) {
		var sent *types.Transaction
		conn := mocks.BaselineEVMConn(t)
		conn.SendTransactionFunc = func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		}
		conn.EstimateGasFunc = func(context.Context, geth.CallMsg) (uint64, error) {
			t.Error("gas estimated for a plain transfer")
			return 0, nil
		}

		dispatcher := transfer.NewDispatcher(mocks.NoopLogger, mocks.BaselineProvider[api.EVMConn](t, conn), mocks.BaselineProvider[api.LedgerConn](t, mocks.BaselineLedgerConn(t)))
		receipt, err := dispatcher.Send(context.Background(), transfer.Request{
			Identity:    id,
			Network:     api.NetworkBSC,
			Asset:       api.AssetNative,
			Destination: mocks.GenericEVMAddress.Hex(),
			Amount:      decimal.RequireFromString("0.25"),
		})
		require.NoError(t, err)
		require.NotNil(t, sent)

		assert.Equal(t, sent.Hash().Hex(), receipt.TxID)
		assert.Equal(t, api.NetworkBSC, receipt.Network)
		assert.Equal(t, mocks.GenericEVMAddress, *sent.To())
		assert.Equal(t, big.NewInt(250_000_000_000_000_000), sent.Value())
		assert.Equal(t, ethtx.TransferGasLimit, sent.Gas())
		assert.Equal(t, mocks.GenericNonce, sent.Nonce())
		assert.Equal(t, mocks.GenericGasPrice, sent.GasPrice())
		assert.Equal(t, big.NewInt(56), sent.ChainId())
		assert.Empty(t, sent.Data())

		sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(56)), sent)
		require.NoError(t, err)
		assert.Equal(t, key.Address(), sender)
	})

	t.Run("token transfer", func(t *testing.T) {
		var sent *types.Transaction
		conn := mocks.BaselineEVMConn(t)
		conn.SendTransactionFunc = func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		}

		dispatcher := transfer.NewDispatcher(mocks.NoopLogger, mocks.BaselineProvider[api.EVMConn](t, conn), mocks.BaselineProvider[api.LedgerConn](t, mocks.BaselineLedgerConn(t)))
		_, err := dispatcher.Send(context.Background(), transfer.Request{
			Identity:    id,
			Network:     api.NetworkEthereum,
			Asset:       api.AssetUSDT,
			Destination: mocks.GenericEVMAddress.Hex(),
			Amount:      decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		require.NotNil(t, sent)

		wantData, err := ethtx.PackTransfer(mocks.GenericEVMAddress, big.NewInt(10_000_000))
		require.NoError(t, err)

		assert.Equal(t, api.Chains[api.NetworkEthereum].Tokens[api.AssetUSDT], sent.To().Hex())
		assert.Equal(t, wantData, sent.Data())
		assert.Zero(t, sent.Value().Sign())
		assert.Equal(t, mocks.GenericGas, sent.Gas())
		assert.Equal(t, big.NewInt(1), sent.ChainId())
	})

	t.Run("amount below token precision", func(t *testing.T) {
		conn := mocks.BaselineEVMConn(t)
		conn.SendTransactionFunc = func(context.Context, *types.Transaction) error {
			t.Error("transaction sent")
			return nil
		}

		dispatcher := transfer.NewDispatcher(mocks.NoopLogger, mocks.BaselineProvider[api.EVMConn](t, conn), mocks.BaselineProvider[api.LedgerConn](t, mocks.BaselineLedgerConn(t)))
		_, err := dispatcher.Send(context.Background(), transfer.Request{
			Identity:    id,
			Network:     api.NetworkEthereum,
			Asset:       api.AssetUSDC,
			Destination: mocks.GenericEVMAddress.Hex(),
			Amount:      decimal.RequireFromString("0.0000001"),
		})
		assert.ErrorIs(t, err, transfer.ErrInvalidAmount)
	})

	t.Run("node failures", func(t *testing.T) {
		tests := []struct {
			name  string
			fail  func(conn *mocks.EVMConn)
			stage transfer.Stage
		}{
			{
				name: "decimals",
				fail: func(conn *mocks.EVMConn) {
					conn.CallContractFunc = func(context.Context, geth.CallMsg, *big.Int) ([]byte, error) {
						return nil, mocks.GenericError
					}
				},
				stage: transfer.StageDecimals,
			},
			{
				name: "nonce",
				fail: func(conn *mocks.EVMConn) {
					conn.PendingNonceAtFunc = func(context.Context, common.Address) (uint64, error) {
						return 0, mocks.GenericError
					}
				},
				stage: transfer.StageNonce,
			},
			{
				name: "estimate",
				fail: func(conn *mocks.EVMConn) {
					conn.EstimateGasFunc = func(context.Context, geth.CallMsg) (uint64, error) {
						return 0, mocks.GenericError
					}
				},
				stage: transfer.StageEstimate,
			},
			{
				name: "broadcast",
				fail: func(conn *mocks.EVMConn) {
					conn.SendTransactionFunc = func(context.Context, *types.Transaction) error {
						return mocks.GenericError
					}
				},
				stage: transfer.StageBroadcast,
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				conn := mocks.BaselineEVMConn(t)
				test.fail(conn)

				var invalidated []api.Network
				evm := mocks.BaselineProvider[api.EVMConn](t, conn)
				evm.InvalidateFunc = func(network api.Network) {
					invalidated = append(invalidated, network)
				}

				dispatcher := transfer.NewDispatcher(mocks.NoopLogger, evm, mocks.BaselineProvider[api.LedgerConn](t, mocks.BaselineLedgerConn(t)))
				_, err := dispatcher.Send(context.Background(), transfer.Request{
					Identity:    id,
					Network:     api.NetworkEthereum,
					Asset:       api.AssetUSDC,
					Destination: mocks.GenericEVMAddress.Hex(),
					Amount:      decimal.NewFromInt(3),
				})

				var netErr *transfer.NetworkError
				require.True(t, errors.As(err, &netErr))
				assert.Equal(t, test.stage, netErr.Stage)
				assert.Equal(t, api.NetworkEthereum, netErr.Network)
				assert.ErrorIs(t, err, mocks.GenericError)

				if test.stage == transfer.StageBroadcast {
					assert.Equal(t, []api.Network{api.NetworkEthereum}, invalidated)
				} else {
					assert.Empty(t, invalidated)
				}
			})
		}
	})
}

func TestDispatcher_SendLedger(t *testing.T) {
	id, err := wallet.Derive(wallet.ModePhrase, testPhrase)
	require.NoError(t, err)
	key, ok := wallet.LedgerKeyOf(id)
	require.True(t, ok)

	programs := func(tx *solana.Transaction) []solana.PublicKey {
		var ids []solana.PublicKey
		for _, instruction := range tx.Message.Instructions {
			ids = append(ids, tx.Message.AccountKeys[instruction.ProgramIDIndex])
		}
		return ids
	}

	send := func(t *testing.T, conn *mocks.LedgerConn, asset api.Asset, amount decimal.Decimal) ([]*solana.Transaction, *transfer.Receipt) {
		t.Helper()

		var sent []*solana.Transaction
		conn.SendTransactionWithOptsFunc = func(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
			sent = append(sent, tx)
			return mocks.GenericSignature, nil
		}

		dispatcher := transfer.NewDispatcher(mocks.NoopLogger, mocks.BaselineProvider[api.EVMConn](t, mocks.BaselineEVMConn(t)), mocks.BaselineProvider[api.LedgerConn](t, conn))
		receipt, err := dispatcher.Send(context.Background(), transfer.Request{
			Identity:    id,
			Network:     api.NetworkSolana,
			Asset:       asset,
			Destination: mocks.GenericLedgerAddress.String(),
			Amount:      amount,
		})
		require.NoError(t, err)
		return sent, receipt
	}

	t.Run("native transfer", func(t *testing.T) {
		sent, receipt := send(t, mocks.BaselineLedgerConn(t), api.AssetNative, decimal.RequireFromString("0.5"))

		require.Len(t, sent, 1)
		assert.Equal(t, mocks.GenericSignature.String(), receipt.TxID)
		assert.Equal(t, []solana.PublicKey{solana.SystemProgramID}, programs(sent[0]))
		assert.Equal(t, key.PublicKey(), sent[0].Message.AccountKeys[0])
		assert.Equal(t, mocks.GenericBlockhash, sent[0].Message.RecentBlockhash)
		assert.Len(t, sent[0].Signatures, 1)
	})

	t.Run("token transfer to fresh recipient creates the account", func(t *testing.T) {
		mint := solana.MustPublicKeyFromBase58(api.Chains[api.NetworkSolana].Tokens[api.AssetUSDT])
		recipient, _, err := solana.FindAssociatedTokenAddress(mocks.GenericLedgerAddress, mint)
		require.NoError(t, err)

		conn := mocks.BaselineLedgerConn(t)
		conn.GetAccountInfoFunc = func(_ context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
			assert.Equal(t, recipient, account)
			return nil, rpc.ErrNotFound
		}

		sent, _ := send(t, conn, api.AssetUSDT, decimal.NewFromInt(10))

		require.Len(t, sent, 1)
		assert.Equal(t, []solana.PublicKey{solana.SPLAssociatedTokenAccountProgramID, solana.TokenProgramID}, programs(sent[0]))
		assert.Contains(t, sent[0].Message.AccountKeys, recipient)
	})

	t.Run("token transfer to existing account", func(t *testing.T) {
		sent, _ := send(t, mocks.BaselineLedgerConn(t), api.AssetUSDC, decimal.NewFromInt(10))

		require.Len(t, sent, 1)
		assert.Equal(t, []solana.PublicKey{solana.TokenProgramID}, programs(sent[0]))
	})

	t.Run("account lookup failure", func(t *testing.T) {
		conn := mocks.BaselineLedgerConn(t)
		conn.GetAccountInfoFunc = func(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
			return nil, mocks.GenericError
		}
		conn.SendTransactionWithOptsFunc = func(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) {
			t.Error("transaction sent")
			return solana.Signature{}, nil
		}

		dispatcher := transfer.NewDispatcher(mocks.NoopLogger, mocks.BaselineProvider[api.EVMConn](t, mocks.BaselineEVMConn(t)), mocks.BaselineProvider[api.LedgerConn](t, conn))
		_, err := dispatcher.Send(context.Background(), transfer.Request{
			Identity:    id,
			Network:     api.NetworkSolana,
			Asset:       api.AssetUSDT,
			Destination: mocks.GenericLedgerAddress.String(),
			Amount:      decimal.NewFromInt(1),
		})

		var netErr *transfer.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, transfer.StageAccount, netErr.Stage)
	})

	t.Run("broadcast failure invalidates the connection", func(t *testing.T) {
		conn := mocks.BaselineLedgerConn(t)
		conn.SendTransactionWithOptsFunc = func(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) {
			return solana.Signature{}, mocks.GenericError
		}

		invalidated := 0
		ledger := mocks.BaselineProvider[api.LedgerConn](t, conn)
		ledger.InvalidateFunc = func(network api.Network) {
			assert.Equal(t, api.NetworkSolana, network)
			invalidated++
		}

		dispatcher := transfer.NewDispatcher(mocks.NoopLogger, mocks.BaselineProvider[api.EVMConn](t, mocks.BaselineEVMConn(t)), ledger)
		_, err := dispatcher.Send(context.Background(), transfer.Request{
			Identity:    id,
			Network:     api.NetworkSolana,
			Asset:       api.AssetNative,
			Destination: mocks.GenericLedgerAddress.String(),
			Amount:      decimal.NewFromInt(1),
		})

		var netErr *transfer.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, transfer.StageBroadcast, netErr.Stage)
		assert.ErrorIs(t, err, mocks.GenericError)
		assert.Equal(t, 1, invalidated)
	})
}
