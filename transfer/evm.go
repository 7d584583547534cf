package transfer

import (
	"context"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chinmay1088/voyager/api"
	ethtx "github.com/chinmay1088/voyager/chains/ethereum"
	"github.com/chinmay1088/voyager/wallet"
)

func (d *Dispatcher) sendEVM(ctx context.Context, chain api.Chain, key *wallet.EVMKey, req Request) (string, error) {
	to, err := ethtx.ParseAddress(req.Destination)
	if err != nil {
		return "", fmt.Errorf("%w: %v", api.ErrAddressNormalization, err)
	}

	if req.Asset == api.AssetNative {
		value := ethtx.EtherToWei(req.Amount)
		if value.Sign() <= 0 {
			return "", fmt.Errorf("%w: %s is below one wei", ErrInvalidAmount, req.Amount)
		}

		conn, err := d.evmConn(ctx, chain.Network)
		if err != nil {
			return "", err
		}
		return d.submitEVM(ctx, conn, chain, key, to, value, nil)
	}

	contract, _ := chain.Token(req.Asset)
	token := common.HexToAddress(contract)

	conn, err := d.evmConn(ctx, chain.Network)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	decimals, err := ethtx.TokenDecimals(callCtx, conn, token)
	cancel()
	if err != nil {
		return "", networkError(chain.Network, StageDecimals, err)
	}

	units := ethtx.ToBaseUnits(req.Amount, decimals)
	if units.Sign() <= 0 {
		return "", fmt.Errorf("%w: %s is below the token precision", ErrInvalidAmount, req.Amount)
	}

	data, err := ethtx.PackTransfer(to, units)
	if err != nil {
		return "", err
	}
	return d.submitEVM(ctx, conn, chain, key, token, new(big.Int), data)
}

func (d *Dispatcher) evmConn(ctx context.Context, network api.Network) (api.EVMConn, error) {
	conn := d.evm.Acquire(ctx, network)
	if conn == nil {
		return nil, networkError(network, StageConnect, fmt.Errorf("no endpoint configured"))
	}
	return conn, nil
}

// submitEVM fills in nonce and gas, signs for the chain ID and broadcasts.
// A nil data means a plain value transfer with the fixed gas limit.
func (d *Dispatcher) submitEVM(ctx context.Context, conn api.EVMConn, chain api.Chain, key *wallet.EVMKey, to common.Address, value *big.Int, data []byte) (string, error) {
	from := key.Address()

	callCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	defer cancel()

	nonce, err := conn.PendingNonceAt(callCtx, from)
	if err != nil {
		return "", networkError(chain.Network, StageNonce, err)
	}

	gasPrice, err := conn.SuggestGasPrice(callCtx)
	if err != nil {
		return "", networkError(chain.Network, StageGasPrice, err)
	}

	gasLimit := ethtx.TransferGasLimit
	if data != nil {
		gasLimit, err = conn.EstimateGas(callCtx, geth.CallMsg{
			From:     from,
			To:       &to,
			GasPrice: gasPrice,
			Value:    value,
			Data:     data,
		})
		if err != nil {
			return "", networkError(chain.Network, StageEstimate, err)
		}
	}

	tx := ethtx.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	if err := ethtx.ValidateTransaction(tx); err != nil {
		return "", fmt.Errorf("failed to build transaction: %w", err)
	}

	signed, err := key.SignTx(tx, chain.ChainID)
	if err != nil {
		return "", err
	}

	if err := conn.SendTransaction(callCtx, signed); err != nil {
		return "", d.broadcastFailed(chain.Network, err)
	}

	return signed.Hash().Hex(), nil
}
