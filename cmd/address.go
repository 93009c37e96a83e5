package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show wallet address",
	Long: `Show the Solana address of your wallet on the current cluster.
This address is the authority and fee payer of every profile command.`,
	Args: cobra.NoArgs,
	RunE: runAddress,
}

func runAddress(cmd *cobra.Command, args []string) error {
	address, err := app.wallet.SolanaAddress()
	if err != nil {
		return err
	}

	fmt.Printf("🌐 Network: %s\n\n", app.networkLabel())
	fmt.Printf("Solana (SOL): %s\n", address)
	fmt.Printf("   🔗 %s\n", app.rpc.ExplorerURL("address/"+address.String()))
	fmt.Printf("   🧭 Derivation path: %s\n", app.wallet.DerivationPath())
	return nil
}
