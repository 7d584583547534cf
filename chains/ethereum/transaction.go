package ethereum

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

// EtherDecimals is the precision of the native coin on every EVM network.
const EtherDecimals = 18

// TransferGasLimit is the fixed gas cost of a plain value transfer.
const TransferGasLimit = uint64(21000)

// ErrInvalidAddress is returned for strings that are not EVM addresses.
var ErrInvalidAddress = errors.New("invalid EVM address")

// ParseAddress validates an address and returns it in checksummed form.
// Mixed-case input must carry a valid EIP-55 checksum.
func ParseAddress(address string) (common.Address, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	parsed := common.HexToAddress(address)
	body := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	mixed := body != strings.ToLower(body) && body != strings.ToUpper(body)
	if mixed && parsed.Hex()[2:] != body {
		return common.Address{}, fmt.Errorf("%w: bad checksum %q", ErrInvalidAddress, address)
	}
	return parsed, nil
}

// ToBaseUnits scales a decimal amount by 10^decimals, truncating dust below
// the smallest unit.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).Truncate(0).BigInt()
}

// FromBaseUnits converts a raw integer amount into a decimal value.
func FromBaseUnits(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// EtherToWei converts a native amount to wei.
func EtherToWei(amount decimal.Decimal) *big.Int {
	return ToBaseUnits(amount, EtherDecimals)
}

// WeiToEther converts wei to a native amount.
func WeiToEther(wei *big.Int) decimal.Decimal {
	return FromBaseUnits(wei, EtherDecimals)
}

// NewTransaction creates an unsigned legacy transaction.
func NewTransaction(nonce uint64, to common.Address, value *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *types.Transaction {
	if value == nil {
		value = new(big.Int)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
}

// ValidateTransaction checks the fields a node would reject outright.
func ValidateTransaction(tx *types.Transaction) error {
	if tx.To() == nil {
		return fmt.Errorf("transaction has no recipient")
	}
	if tx.Gas() == 0 {
		return fmt.Errorf("gas limit is zero")
	}
	if tx.GasPrice() == nil || tx.GasPrice().Sign() <= 0 {
		return fmt.Errorf("gas price must be positive")
	}
	if tx.Value().Sign() < 0 {
		return fmt.Errorf("value is negative")
	}
	return nil
}
