package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/wallet"
)

var addressCmd = &cobra.Command{
	Use:   "address [network]",
	Short: "Show wallet addresses",
	Long: `Import a wallet and show its address on the specified network.
Supported networks: ethereum, bsc, solana

Examples:
  voyager address              # Show all addresses
  voyager address sol          # Show the Solana address
  voyager address --mode key   # Import from a raw private key`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddress,
}

func init() {
	addSecretFlags(addressCmd)
}

func runAddress(cmd *cobra.Command, args []string) error {
	networks := api.Networks
	if len(args) == 1 {
		network, err := api.ParseNetwork(args[0])
		if err != nil {
			return err
		}
		networks = []api.Network{network}
	}

	manager, err := newManager()
	if err != nil {
		return err
	}

	handle, addrs, err := importWallet(cmd, manager)
	if err != nil {
		return err
	}
	defer manager.Forget(handle)

	fmt.Println("🔑 Your wallet addresses:")
	fmt.Println()
	for _, network := range networks {
		fmt.Printf("%s (%s): %s\n", api.Chains[network].Name, api.Chains[network].Symbol, addressOn(addrs, network))
	}

	return nil
}

// addressOn returns the address of network, or a note when the identity has
// no key for it.
func addressOn(addrs wallet.Addresses, network api.Network) string {
	var address string
	switch network.Family() {
	case api.FamilyEVM:
		address = addrs.EVM
	case api.FamilyLedger:
		address = addrs.Ledger
	}
	if address == "" {
		return "Not available for this key"
	}
	return address
}
