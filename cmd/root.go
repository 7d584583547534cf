package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/voyager/api"
	"github.com/chinmay1088/voyager/balance"
	"github.com/chinmay1088/voyager/engine"
)

var (
	version = "0.3.0"

	log = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "voyager",
	Aliases: []string{"voy"},
	Short:   "An imported-wallet engine for Ethereum, BNB Smart Chain and Solana",
	Long: `Voyager imports a wallet from a recovery phrase or a raw private key and
works with it on Ethereum, BNB Smart Chain and Solana. Keys are derived
locally, live only in memory while a command runs and are never written
to disk or sent over the network.

Features:
  • BIP-39 recovery phrases (one identity for all three networks)
  • Raw private keys (hex for EVM networks, base58 or JSON array for Solana)
  • Native coin, USDT and USDC balances on every network
  • Native and stablecoin transfers, creating Solana token accounts on demand
  • Parallel RPC endpoint racing with automatic fallback

Configuration (environment):
  VOYAGER_ETHEREUM_RPC_URLS      comma-separated Ethereum endpoints
  VOYAGER_BSC_RPC_URLS           comma-separated BNB Smart Chain endpoints
  VOYAGER_SOLANA_RPC_URLS        comma-separated Solana endpoints
  VOYAGER_PROBE_TIMEOUT          endpoint probe timeout (default 7s)
  VOYAGER_CACHE_TTL              endpoint cache lifetime (default 30s)
  VOYAGER_CALL_TIMEOUT           timeout of each RPC call (default 20s)

Examples:
  voyager address                          # Import from a recovery phrase and show addresses
  voyager address --mode key               # Import from a raw private key
  voyager balance                          # Show all balances
  voyager pay bsc usdt 25 0x7099...        # Send 25 USDT on BNB Smart Chain
  voyager pay sol usdc 10 9WzD...          # Send 10 USDC on Solana
  voyager network sol                      # Show which Solana endpoint answers`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger().Level(lvl)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("level", "l", "warn", "log output level")

	// Add subcommands
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Voyager Wallet v%s\n", version)
	},
}

// newManager loads the environment configuration and wires an engine.
func newManager(options ...func(*balance.Config)) (*engine.Manager, error) {
	cfg, err := api.LoadConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(log, cfg, options...), nil
}
