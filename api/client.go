package api

// RPC client for the pubkey-profile tooling.
//
// Files:
//   config.go  - clusters, endpoints and explorer links
//   types.go   - account result types and sentinel errors
//   base.go    - Client struct, NewClient, commitment handling
//   solana.go  - RPC calls (blockhash, accounts, program accounts, send, confirm)
//
// Usage:
//   client, err := api.NewClient(api.ClientConfig{Cluster: api.ClusterDevnet})
//   data, err := client.GetAccountData(ctx, profilePDA)
//   sig, err := client.SendTransaction(ctx, tx)
