package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chinmay1088/voyager/engine"
	"github.com/chinmay1088/voyager/wallet"
)

// addSecretFlags registers the flags controlling how the wallet secret is read.
func addSecretFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "phrase", "secret type: phrase or key")
	cmd.Flags().Bool("secret-stdin", false, "read the secret from standard input instead of prompting")
}

// importWallet reads the secret and imports it into manager.
func importWallet(cmd *cobra.Command, manager *engine.Manager) (string, wallet.Addresses, error) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := wallet.ParseMode(modeFlag)
	if err != nil {
		return "", wallet.Addresses{}, err
	}

	fromStdin, _ := cmd.Flags().GetBool("secret-stdin")
	secret, err := readSecret(mode, fromStdin)
	if err != nil {
		return "", wallet.Addresses{}, err
	}

	handle, addrs, err := manager.DeriveImportedWallet(mode, secret)
	if err != nil {
		return "", wallet.Addresses{}, fmt.Errorf("failed to import wallet: %w", err)
	}
	return handle, addrs, nil
}

func readSecret(mode wallet.Mode, fromStdin bool) (string, error) {
	if fromStdin || !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	// Get secret from user
	if mode == wallet.ModePhrase {
		fmt.Print("Enter your recovery phrase: ")
	} else {
		fmt.Print("Enter your private key: ")
	}
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	fmt.Println() // New line after secret input

	return strings.TrimSpace(string(secret)), nil
}
