package mocks

import (
	"errors"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
)

// Global variables that can be used for testing. They are non-nil valid values for the types commonly needed
// to test wallet components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericEndpoint = "https://rpc.example.com"

	GenericEVMAddress = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	GenericLedgerAddress = solana.MustPublicKeyFromBase58("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")

	GenericWei = big.NewInt(1_500_000_000_000_000_000)

	GenericGasPrice = big.NewInt(3_000_000_000)

	GenericNonce = uint64(42)

	GenericGas = uint64(65_000)

	GenericTokenDecimals = uint8(6)

	GenericTokenUnits = big.NewInt(2_500_000)

	GenericLamports = uint64(1_234_567_891)

	GenericTokenAmount = "2500000"

	GenericBlockhash = solana.Hash{0x0a, 0x0b, 0x0c}

	GenericSignature = solana.Signature{0x01, 0x02, 0x03}
)
