package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// Mode selects how a secret is interpreted.
type Mode string

const (
	ModePhrase Mode = "phrase"
	ModeRawKey Mode = "rawKey"
)

// ErrInvalidSecret is returned when a secret cannot be interpreted in the
// selected mode.
var ErrInvalidSecret = errors.New("invalid secret")

// ParseMode accepts "phrase", "mnemonic", "key" or "rawKey".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "phrase", "mnemonic":
		return ModePhrase, nil
	case "key", "rawkey", "raw":
		return ModeRawKey, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s. Supported modes: phrase, key", name)
	}
}

// Derive turns a secret into an identity. A recovery phrase yields keys for
// every network; a raw key yields a key for one family only. Derive performs
// no I/O and is deterministic.
func Derive(mode Mode, secret string) (Identity, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidSecret)
	}

	switch mode {
	case ModePhrase:
		return deriveFromPhrase(secret)
	case ModeRawKey:
		return parseRawKey(secret)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSecret, mode)
	}
}

func deriveFromPhrase(phrase string) (Identity, error) {
	mnemonic := strings.Join(strings.Fields(phrase), " ")

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	evmPriv, err := deriveEVMKey(seed, EVMDerivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive EVM key: %w", err)
	}

	ledgerPriv, err := deriveLedgerKey(seed, LedgerDerivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Solana key: %w", err)
	}

	return Both{
		EVM:    newEVMKey(evmPriv),
		Ledger: newLedgerKey(ledgerPriv),
	}, nil
}
