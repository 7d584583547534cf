package api

import (
	"fmt"
	"strings"
)

// Asset identifies one of the three assets tracked per network.
type Asset string

const (
	AssetNative Asset = "native"
	AssetUSDT   Asset = "usdt"
	AssetUSDC   Asset = "usdc"
)

// Assets lists the tracked assets in display order.
var Assets = []Asset{AssetNative, AssetUSDT, AssetUSDC}

// IsStablecoin reports whether the asset is a token rather than the native coin.
func (a Asset) IsStablecoin() bool {
	return a == AssetUSDT || a == AssetUSDC
}

// Label returns the asset ticker on the given network.
func (a Asset) Label(network Network) string {
	if a == AssetNative {
		return Chains[network].Symbol
	}
	return strings.ToUpper(string(a))
}

// ParseAsset accepts an asset name, a ticker or "native".
func ParseAsset(name string) (Asset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "native", "eth", "bnb", "sol":
		return AssetNative, nil
	case "usdt":
		return AssetUSDT, nil
	case "usdc":
		return AssetUSDC, nil
	default:
		return "", fmt.Errorf("unsupported asset: %s. Supported assets: native, usdt, usdc", name)
	}
}
