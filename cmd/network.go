package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/engine"
)

var networkCmd = &cobra.Command{
	Use:   "network [network]",
	Short: "Show RPC endpoints and race them",
	Long: `Show the configured RPC endpoints of each network and probe them in
parallel, reporting the first endpoint to answer. When none answers the
first endpoint is used.

Examples:
  voyager network            # Race the endpoints of every network
  voyager network solana     # Race the Solana endpoints only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	networks := api.Networks
	if len(args) == 1 {
		network, err := api.ParseNetwork(args[0])
		if err != nil {
			return err
		}
		networks = []api.Network{network}
	}

	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	manager := engine.New(log, cfg)

	endpoints := cfg.Endpoints()
	for _, network := range networks {
		fmt.Printf("🌐 %s\n", color.CyanString(api.Chains[network].Name))

		selected := manager.Endpoint(context.Background(), network)
		for _, endpoint := range endpoints[network] {
			if endpoint == selected {
				fmt.Printf("   - %s %s\n", endpoint, color.GreenString("(selected)"))
			} else {
				fmt.Printf("   - %s\n", endpoint)
			}
		}
		fmt.Println()
	}

	return nil
}
