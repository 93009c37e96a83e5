package cmd

import (
	"fmt"

	solanautil "github.com/chinmay1088/pubkey-profile/chains/solana"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check SOL balance",
	Long: `Check the SOL balance of your wallet, or of any address.

Examples:
  pubkey-profile balance                 # Wallet balance
  pubkey-profile balance <address>       # Any account`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	pubkey, err := resolveAddress(target)
	if err != nil {
		return err
	}

	balance, err := app.rpc.GetBalance(cmd.Context(), pubkey)
	if err != nil {
		return err
	}

	fmt.Println("💰 Balance")
	fmt.Printf("🌐 Network: %s\n", app.networkLabel())
	fmt.Println()
	fmt.Printf("🟣 Solana: %s\n", solanautil.FormatBalance(balance))
	if balance == 0 {
		fmt.Println("   ℹ️ Note: This account doesn't exist on-chain yet. Send SOL to this address to activate it.")
	}
	fmt.Printf("   📍 Address: %s\n", pubkey)
	return nil
}
