package cmd

import (
	"fmt"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/chinmay1088/pubkey-profile/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet-beta|devnet|testnet|localnet]",
	Short: "Show or change the cluster",
	Long: `Show the current cluster or persist a new default.

The --cluster flag and PUBKEY_CLUSTER override the persisted cluster for a
single run. Custom clusters need --rpc-url on every run and cannot be
persisted.

Examples:
  pubkey-profile network            # Show current cluster
  pubkey-profile network devnet     # Switch to devnet
  pubkey-profile network mainnet    # Switch to mainnet-beta`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showCurrentNetwork()
	}

	cluster, err := api.ParseCluster(args[0])
	if err != nil {
		return err
	}
	if err := config.WriteNetwork(app.cfg.Home, cluster); err != nil {
		return err
	}

	fmt.Printf("🌐 Switched to %s\n", cluster)
	fmt.Println()
	if cluster == api.ClusterMainnet {
		fmt.Println("✅ You are now on MAINNET-BETA")
		fmt.Println("   Profile changes cost real SOL")
	} else {
		fmt.Printf("⚠️  You are now on %s\n", color.YellowString(cluster.String()))
		fmt.Println("   Fund your wallet from a faucet before creating profiles")
	}
	fmt.Println("💡 Each cluster derives a separate wallet address for your safety")
	return nil
}

func showCurrentNetwork() error {
	fmt.Printf("🌐 Current cluster: %s\n", app.networkLabel())
	fmt.Println()
	fmt.Println("Network details:")
	fmt.Printf("   - RPC: %s\n", app.rpc.Endpoint())
	fmt.Printf("   - Program: %s\n", app.sdk.ProgramID())
	fmt.Printf("   - Explorer: %s\n", app.rpc.ExplorerURL("address/"+app.sdk.ProgramID().String()))
	if persisted := config.ReadNetwork(app.cfg.Home); persisted != app.cluster {
		fmt.Printf("   - Persisted default: %s (overridden for this run)\n", persisted)
	}
	return nil
}
