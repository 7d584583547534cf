package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	// Derivation paths (mainnet)
	EVMDerivationPath    = "m/44'/60'/0'/0/0"
	LedgerDerivationPath = "m/44'/501'/0'/0'"
)

// slip10Key is one node of an ed25519 SLIP-0010 derivation.
type slip10Key struct {
	PrivateKey []byte
	ChainCode  []byte
}

// deriveEVMKey derives the secp256k1 key at path following BIP-32.
func deriveEVMKey(seed []byte, path string) (*ecdsa.PrivateKey, error) {
	derivationPath, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse derivation path: %w", err)
	}

	// The network params only affect serialization, not the derived keys
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	for _, childNum := range derivationPath {
		key, err = key.Derive(childNum)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key: %w", err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	return toECDSA(priv)
}

// toECDSA converts a btcec key into the form go-ethereum signs with
func toECDSA(priv *btcec.PrivateKey) (*ecdsa.PrivateKey, error) {
	privateKey, err := ethcrypto.ToECDSA(priv.Serialize())
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDSA key: %w", err)
	}
	return privateKey, nil
}

// deriveLedgerKey derives the ed25519 key at path following SLIP-0010.
// Only hardened indices exist for ed25519.
func deriveLedgerKey(seed []byte, path string) (ed25519.PrivateKey, error) {
	derivationPath, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse derivation path: %w", err)
	}

	key := newSlip10Master(seed)
	for _, childNum := range derivationPath {
		if !isHardened(childNum) {
			return nil, fmt.Errorf("non-hardened index %d in ed25519 path %s", childNum, path)
		}
		key = key.deriveChild(childNum)
	}

	return ed25519.NewKeyFromSeed(key.PrivateKey), nil
}

// newSlip10Master creates the master node from seed
func newSlip10Master(seed []byte) *slip10Key {
	hash := hmacSHA512([]byte("ed25519 seed"), seed)
	return &slip10Key{
		PrivateKey: hash[:32],
		ChainCode:  hash[32:],
	}
}

// deriveChild derives a hardened child: HMAC(chainCode, 0x00 || key || index)
func (k *slip10Key) deriveChild(childNum uint32) *slip10Key {
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, k.PrivateKey...)
	data = binary.BigEndian.AppendUint32(data, childNum)

	hash := hmacSHA512(k.ChainCode, data)
	return &slip10Key{
		PrivateKey: hash[:32],
		ChainCode:  hash[32:],
	}
}

// hmacSHA512 computes HMAC-SHA512
func hmacSHA512(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// isHardened checks if child number is hardened
func isHardened(childNum uint32) bool {
	return childNum >= hdkeychain.HardenedKeyStart
}
