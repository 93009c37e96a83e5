package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	solanautil "github.com/chinmay1088/pubkey-profile/chains/solana"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Show the program account",
	Long: `Show the on-chain account of the PubKey Profile program on the current
cluster, as parsed by the RPC node.`,
	Args: cobra.NoArgs,
	RunE: runProgram,
}

func runProgram(cmd *cobra.Command, args []string) error {
	account, err := app.sdk.GetProgramAccount(cmd.Context())
	if err != nil {
		return err
	}

	executable := color.RedString("no")
	if account.Executable {
		executable = color.GreenString("yes")
	}

	fmt.Printf("📦 Program %s\n", account.PublicKey)
	fmt.Printf("   🌐 Network: %s\n", app.networkLabel())
	fmt.Printf("   👑 Owner: %s\n", account.Owner)
	fmt.Printf("   ⚙️  Executable: %s\n", executable)
	fmt.Printf("   💰 Balance: %s\n", solanautil.FormatBalance(account.Lamports))
	fmt.Printf("   🔗 %s\n", app.rpc.ExplorerURL("address/"+account.PublicKey.String()))

	if len(account.Parsed) > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, account.Parsed, "   ", "  "); err == nil {
			fmt.Printf("   Parsed data:\n   %s\n", out.String())
		}
	}
	return nil
}
