package wallet

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

var evmKeyPattern = regexp.MustCompile(`^(0x|0X)?[0-9a-fA-F]{64}$`)

// parseRawKey tries the EVM hex encoding first, then the two ledger encodings.
func parseRawKey(secret string) (Identity, error) {
	if priv, err := parseEVMKey(secret); err == nil {
		return EVMOnly{EVM: newEVMKey(priv)}, nil
	}

	if strings.HasPrefix(secret, "[") {
		priv, err := parseLedgerJSON(secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
		}
		return LedgerOnly{Ledger: newLedgerKey(priv)}, nil
	}

	priv, err := parseLedgerBase58(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return LedgerOnly{Ledger: newLedgerKey(priv)}, nil
}

// parseEVMKey accepts 64 hex characters with an optional 0x prefix.
func parseEVMKey(secret string) (*ecdsa.PrivateKey, error) {
	if !evmKeyPattern.MatchString(secret) {
		return nil, fmt.Errorf("not a hex private key")
	}
	hexKey := strings.TrimPrefix(strings.TrimPrefix(secret, "0x"), "0X")
	priv, err := ethcrypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid secp256k1 key: %w", err)
	}
	return priv, nil
}

// parseLedgerJSON accepts a JSON array of 64 byte values, the keypair file format.
func parseLedgerJSON(secret string) (ed25519.PrivateKey, error) {
	var values []int
	if err := json.Unmarshal([]byte(secret), &values); err != nil {
		return nil, fmt.Errorf("failed to parse key array: %w", err)
	}

	raw := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("byte %d out of range: %d", i, v)
		}
		raw[i] = byte(v)
	}
	return ledgerKeypair(raw)
}

func parseLedgerBase58(secret string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 key: %w", err)
	}
	return ledgerKeypair(raw)
}

// ledgerKeypair checks that raw is seed || public key of the same keypair.
func ledgerKeypair(raw []byte) (ed25519.PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("expected %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}

	priv := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(priv[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("public key does not match secret")
	}
	return priv, nil
}
