package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

// Identity is an imported wallet. It is one of EVMOnly, LedgerOnly or Both.
type Identity interface {
	identity()
}

// EVMOnly holds a key usable on the EVM networks only.
type EVMOnly struct {
	EVM *EVMKey
}

// LedgerOnly holds a key usable on the Solana ledger only.
type LedgerOnly struct {
	Ledger *LedgerKey
}

// Both holds keys for every supported network.
type Both struct {
	EVM    *EVMKey
	Ledger *LedgerKey
}

func (EVMOnly) identity()    {}
func (LedgerOnly) identity() {}
func (Both) identity()       {}

// EVMKeyOf returns the EVM key of the identity, if it has one.
func EVMKeyOf(id Identity) (*EVMKey, bool) {
	switch v := id.(type) {
	case EVMOnly:
		return v.EVM, v.EVM != nil
	case Both:
		return v.EVM, v.EVM != nil
	default:
		return nil, false
	}
}

// LedgerKeyOf returns the ledger key of the identity, if it has one.
func LedgerKeyOf(id Identity) (*LedgerKey, bool) {
	switch v := id.(type) {
	case LedgerOnly:
		return v.Ledger, v.Ledger != nil
	case Both:
		return v.Ledger, v.Ledger != nil
	default:
		return nil, false
	}
}

// EVMKey signs EVM transactions. The private key never leaves it.
type EVMKey struct {
	priv    *ecdsa.PrivateKey
	address common.Address
}

func newEVMKey(priv *ecdsa.PrivateKey) *EVMKey {
	return &EVMKey{
		priv:    priv,
		address: ethcrypto.PubkeyToAddress(priv.PublicKey),
	}
}

// Address returns the checksummable account address.
func (k *EVMKey) Address() common.Address {
	return k.address
}

// SignTx signs tx with EIP-155 replay protection for chainID.
func (k *EVMKey) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), k.priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

// LedgerKey signs Solana transactions. The private key never leaves it.
type LedgerKey struct {
	priv solana.PrivateKey
}

func newLedgerKey(priv ed25519.PrivateKey) *LedgerKey {
	return &LedgerKey{priv: solana.PrivateKey(priv)}
}

// PublicKey returns the ledger account address.
func (k *LedgerKey) PublicKey() solana.PublicKey {
	return k.priv.PublicKey()
}

// SignTransaction adds the key's signature to tx.
func (k *LedgerKey) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(k.priv.PublicKey()) {
			return &k.priv
		}
		return nil
	})
	return err
}

// Addresses lists the public addresses of an identity. Empty fields mean
// the identity has no key for that family.
type Addresses struct {
	EVM    string `json:"evm,omitempty"`
	Ledger string `json:"ledger,omitempty"`
}

// AddressesOf returns the public addresses of id.
func AddressesOf(id Identity) Addresses {
	var addrs Addresses
	if key, ok := EVMKeyOf(id); ok {
		addrs.EVM = key.Address().Hex()
	}
	if key, ok := LedgerKeyOf(id); ok {
		addrs.Ledger = key.PublicKey().String()
	}
	return addrs
}
