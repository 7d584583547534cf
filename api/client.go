package api

// API connection layer.
//
// Files:
//   config.go    - logical networks, RPC endpoint sets and chain constants
//   env.go       - environment configuration (endpoint overrides, timeouts)
//   types.go     - asset identifiers shared by the read and write paths
//   cache.go     - TTL cache of acquired connections, one entry per network
//   racer.go     - endpoint racer: probes every endpoint and keeps the first live one
//   ethereum.go  - EVM connection handle over ethclient (Ethereum, BSC)
//   solana.go    - Solana connection handle over the solana-go RPC client
//
// Usage:
//   cfg, err := api.LoadConfig()
//   evm := api.NewRacer(log, api.DialEthereum, cfg.Endpoints(), cache, cfg.ProbeTimeout)
//   conn := evm.Acquire(ctx, api.NetworkBSC)
//   balance, err := conn.BalanceAt(ctx, address, nil)
