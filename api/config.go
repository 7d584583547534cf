package api

import (
	"fmt"
	"math/big"
	"strings"
)

// Network identifies one logical network.
type Network string

// logical networks
const (
	NetworkEthereum Network = "ethereum"
	NetworkBSC      Network = "bsc"
	NetworkSolana   Network = "solana"
)

// Networks lists every supported network in display order.
var Networks = []Network{NetworkEthereum, NetworkBSC, NetworkSolana}

// Family groups networks that share an account and signature scheme.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyEVM
	FamilyLedger
)

// Family returns the account family of the network.
func (n Network) Family() Family {
	switch n {
	case NetworkEthereum, NetworkBSC:
		return FamilyEVM
	case NetworkSolana:
		return FamilyLedger
	default:
		return FamilyUnknown
	}
}

// ParseNetwork accepts a network name or one of its common aliases.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ethereum", "eth":
		return NetworkEthereum, nil
	case "bsc", "bnb", "binance":
		return NetworkBSC, nil
	case "solana", "sol":
		return NetworkSolana, nil
	default:
		return "", fmt.Errorf("unsupported network: %s. Supported networks: ethereum, bsc, solana", name)
	}
}

// RPC endpoints, tried in parallel; the first one is the fallback when none answers.
var (
	// ethereum mainnet rpc's
	EthereumRPCs = []string{
		"https://ethereum-rpc.publicnode.com",
		"https://eth.llamarpc.com",
		"https://rpc.ankr.com/eth",
	}

	// bnb smart chain rpc's
	BSCRPCs = []string{
		"https://bsc-dataseed.binance.org",
		"https://bsc-rpc.publicnode.com",
		"https://rpc.ankr.com/bsc",
	}

	// solana mainnet-beta rpc's
	SolanaRPCs = []string{
		"https://api.mainnet-beta.solana.com",
		"https://solana-rpc.publicnode.com",
		"https://rpc.ankr.com/solana",
	}
)

// LedgerTokenDecimals is the precision assumed for both stablecoins on Solana.
const LedgerTokenDecimals = 6

// Chain holds the static constants of one network.
type Chain struct {
	Network  Network
	Name     string
	Symbol   string
	ChainID  *big.Int // nil for solana
	Tokens   map[Asset]string
	Explorer string // transaction url prefix
}

// Token returns the token identifier (contract or mint) for a stablecoin.
func (c Chain) Token(asset Asset) (string, bool) {
	token, ok := c.Tokens[asset]
	return token, ok
}

// Chains holds the constants of every supported network.
var Chains = map[Network]Chain{
	NetworkEthereum: {
		Network: NetworkEthereum,
		Name:    "Ethereum",
		Symbol:  "ETH",
		ChainID: big.NewInt(1),
		Tokens: map[Asset]string{
			AssetUSDT: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
			AssetUSDC: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		},
		Explorer: "https://etherscan.io/tx/",
	},
	NetworkBSC: {
		Network: NetworkBSC,
		Name:    "BNB Smart Chain",
		Symbol:  "BNB",
		ChainID: big.NewInt(56),
		Tokens: map[Asset]string{
			AssetUSDT: "0x55d398326f99059fF775485246999027B3197955",
			AssetUSDC: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d",
		},
		Explorer: "https://bscscan.com/tx/",
	},
	NetworkSolana: {
		Network: NetworkSolana,
		Name:    "Solana",
		Symbol:  "SOL",
		Tokens: map[Asset]string{
			AssetUSDT: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
			AssetUSDC: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		},
		Explorer: "https://solscan.io/tx/",
	},
}
