package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/balance"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [network]",
	Short: "Check native and stablecoin balances",
	Long: `Import a wallet and check its balances on every supported network.
Figures that cannot be fetched are shown as zero.

Supported networks: ethereum, bsc, solana

Examples:
  voyager balance              # Check all balances
  voyager balance bsc          # Check BNB Smart Chain balances
  voyager balance --mode key   # Import from a raw private key`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func init() {
	addSecretFlags(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	networks := api.Networks
	if len(args) == 1 {
		network, err := api.ParseNetwork(args[0])
		if err != nil {
			return err
		}
		networks = []api.Network{network}
	}

	bar := progressbar.NewOptions(len(api.Networks),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("[cyan]Fetching balances...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	var mu sync.Mutex
	progress := func(network api.Network) {
		mu.Lock()
		defer mu.Unlock()
		bar.Describe(fmt.Sprintf("[cyan]%s settled[reset]", api.Chains[network].Name))
		_ = bar.Add(1)
	}

	manager, err := newManager(balance.WithProgress(progress))
	if err != nil {
		return err
	}

	handle, addrs, err := importWallet(cmd, manager)
	if err != nil {
		return err
	}
	defer manager.Forget(handle)

	balances, err := manager.GetImportedBalances(context.Background(), handle)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	fmt.Println("💰 Wallet Balances")
	fmt.Println()

	for _, network := range networks {
		chain := api.Chains[network]
		snapshot := balances.Of(network)

		fmt.Printf("%s %s\n", networkIcon(network), color.CyanString(chain.Name))
		for _, asset := range api.Assets {
			fmt.Printf("   %-5s %s\n", asset.Label(network), formatAmount(snapshot.Of(asset)))
		}
		fmt.Printf("   📍 Address: %s\n", addressOn(addrs, network))
		fmt.Println()
	}

	return nil
}

func networkIcon(network api.Network) string {
	switch network {
	case api.NetworkEthereum:
		return "🔷"
	case api.NetworkBSC:
		return "🟡"
	default:
		return "🟣"
	}
}

func formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return color.HiBlackString("0")
	}
	return color.GreenString(amount.String())
}
