package solana

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/shopspring/decimal"
)

// SOLDecimals is the precision of the native coin (lamports).
const SOLDecimals = 9

// ErrInvalidAddress is returned for strings that are not ledger public keys.
var ErrInvalidAddress = errors.New("invalid Solana address")

// Signer signs a transaction without exposing the key behind it.
type Signer interface {
	PublicKey() solana.PublicKey
	SignTransaction(tx *solana.Transaction) error
}

// Transaction collects instructions before they are compiled into one
// atomic ledger transaction.
type Transaction struct {
	Instructions    []solana.Instruction
	FeePayer        solana.PublicKey
	RecentBlockhash solana.Hash
}

func NewTransaction(feePayer solana.PublicKey) *Transaction {
	return &Transaction{
		Instructions: make([]solana.Instruction, 0, 2),
		FeePayer:     feePayer,
	}
}

func (tx *Transaction) AddTransferInstruction(from solana.PublicKey, to solana.PublicKey, lamports uint64) {
	instruction := system.NewTransferInstruction(
		lamports,
		from,
		to,
	).Build()
	tx.Instructions = append(tx.Instructions, instruction)
}

// AddCreateTokenAccountInstruction creates the associated token account of
// (owner, mint), funded by payer.
func (tx *Transaction) AddCreateTokenAccountInstruction(payer solana.PublicKey, owner solana.PublicKey, mint solana.PublicKey) {
	instruction := associatedtokenaccount.NewCreateInstruction(
		payer,
		owner,
		mint,
	).Build()
	tx.Instructions = append(tx.Instructions, instruction)
}

func (tx *Transaction) AddTokenTransferInstruction(amount uint64, decimals uint8, source, mint, destination, owner solana.PublicKey) {
	instruction := token.NewTransferCheckedInstruction(
		amount,
		decimals,
		source,
		mint,
		destination,
		owner,
		[]solana.PublicKey{},
	).Build()
	tx.Instructions = append(tx.Instructions, instruction)
}

func (tx *Transaction) SetRecentBlockhash(blockhash solana.Hash) {
	tx.RecentBlockhash = blockhash
}

// BuildAndSign compiles the instructions and signs them with signer, which
// must also be the fee payer.
func (tx *Transaction) BuildAndSign(signer Signer) (*solana.Transaction, error) {
	if tx.RecentBlockhash.IsZero() {
		return nil, fmt.Errorf("blockhash is empty")
	}
	if len(tx.Instructions) == 0 {
		return nil, fmt.Errorf("transaction has no instructions")
	}
	if !signer.PublicKey().Equals(tx.FeePayer) {
		return nil, fmt.Errorf("signer %s is not the fee payer %s", signer.PublicKey(), tx.FeePayer)
	}

	stx, err := solana.NewTransaction(
		tx.Instructions,
		tx.RecentBlockhash,
		solana.TransactionPayer(tx.FeePayer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := signer.SignTransaction(stx); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return stx, nil
}

func ParseAddress(address string) (solana.PublicKey, error) {
	address = strings.TrimSpace(address)
	// Base58 doesn't use 0, O, I, or l
	for i, c := range address {
		if c == '0' || c == 'O' || c == 'I' || c == 'l' {
			return solana.PublicKey{}, fmt.Errorf("%w: invalid character '%c' at position %d", ErrInvalidAddress, c, i)
		}
	}

	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w (%s): %v", ErrInvalidAddress, address, err)
	}
	return pubKey, nil
}

// LamportsToSOL converts lamports to SOL.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -SOLDecimals)
}

// SOLToLamports converts SOL to lamports, truncating below one lamport.
func SOLToLamports(sol decimal.Decimal) (uint64, error) {
	return ToTokenUnits(sol, SOLDecimals)
}

// ToTokenUnits scales amount by 10^decimals into a uint64 base-unit count.
func ToTokenUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	units := amount.Shift(int32(decimals)).Truncate(0).BigInt()
	if units.Sign() < 0 || !units.IsUint64() {
		return 0, fmt.Errorf("amount %s out of range", amount)
	}
	return units.Uint64(), nil
}

// FromTokenUnits converts a base-unit count string, as returned by the RPC,
// into a decimal value.
func FromTokenUnits(raw string, decimals uint8) (decimal.Decimal, error) {
	units, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid token amount %q: %w", raw, err)
	}
	return units.Shift(-int32(decimals)), nil
}
