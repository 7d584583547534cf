package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/transfer"
)

var payCmd = &cobra.Command{
	Use:   "pay [network] [asset] [amount] [address]",
	Short: "Send native coins or stablecoins",
	Long: `Import a wallet and send an asset to another address.

Supported networks: ethereum, bsc, solana
Supported assets: native, usdt, usdc

Examples:
  voyager pay eth native 0.1 0x70997970C51812dc3A010C7d01b50e0d17dc79C8
  voyager pay bsc usdt 25 0x70997970C51812dc3A010C7d01b50e0d17dc79C8
  voyager pay sol usdc 10 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM`,
	Args: cobra.ExactArgs(4),
	RunE: runPay,
}

func init() {
	addSecretFlags(payCmd)
	payCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func runPay(cmd *cobra.Command, args []string) error {
	network, err := api.ParseNetwork(args[0])
	if err != nil {
		return err
	}
	asset, err := api.ParseAsset(args[1])
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	destination := args[3]
	chain := api.Chains[network]

	manager, err := newManager()
	if err != nil {
		return err
	}

	handle, _, err := importWallet(cmd, manager)
	if err != nil {
		return err
	}
	defer manager.Forget(handle)

	fmt.Printf("📤 Sending %s %s on %s\n", amount, asset.Label(network), chain.Name)
	fmt.Printf("   To: %s\n", destination)

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !getTransactionConfirmation() {
		fmt.Println("❌ Transaction cancelled by user")
		return nil
	}

	receipt, err := manager.SendImportedTransaction(context.Background(), handle, network, asset, destination, amount)
	if err != nil {
		return describeTransferError(err)
	}

	fmt.Println("✅ Transaction sent successfully!")
	fmt.Printf("📝 Transaction ID: %s\n", color.GreenString(receipt.TxID))
	fmt.Printf("🔗 View on explorer: %s%s\n", chain.Explorer, receipt.TxID)

	return nil
}

func getTransactionConfirmation() bool {
	fmt.Println()
	fmt.Printf("🚨 You are on main network. By confirming this transaction real funds will be sent to this address.\n")
	fmt.Printf("Press y to confirm or n to stop (y/n): ")

	var response string
	fmt.Scanln(&response)

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// describeTransferError adds a hint for the failures a user can fix.
func describeTransferError(err error) error {
	var netErr *transfer.NetworkError
	switch {
	case errors.Is(err, transfer.ErrInvalidAmount):
		return fmt.Errorf("%w. The amount must be positive and at least one base unit", err)
	case errors.Is(err, transfer.ErrUnsupportedRoute):
		return fmt.Errorf("%w. A raw private key only works on its own network family", err)
	case errors.Is(err, api.ErrAddressNormalization):
		return fmt.Errorf("%w. Check the destination address", err)
	case errors.As(err, &netErr):
		return fmt.Errorf("transaction failed at %s on %s: %w", netErr.Stage, netErr.Network, netErr.Err)
	default:
		return fmt.Errorf("transaction failed: %w", err)
	}
}
