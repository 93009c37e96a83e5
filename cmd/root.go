package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	flagCluster   string
	flagRPCURL    string
	flagProgramID string
	flagVerbose   bool
	flagYes       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "pubkey-profile",
	Aliases: []string{"ppl"},
	Short:   "Manage PubKey Profiles on Solana",
	Long: `pubkey-profile manages on-chain PubKey Profiles: a username with an
avatar, a set of authority keys and linked Discord or Solana identities.

A local encrypted wallet signs and pays for every change.

Features:
  • Create profiles and update avatars
  • Add and remove authorities
  • Link and unlink identities
  • Look up profiles by username or by linked identity
  • Export every profile of the program to CSV or JSON
  • mainnet-beta, devnet, testnet, localnet and custom RPC support

Examples:
  pubkey-profile init                                # Create a wallet
  pubkey-profile unlock                              # Unlock it for 30 minutes
  pubkey-profile network devnet                      # Switch cluster
  pubkey-profile profile create alice                # Create a profile
  pubkey-profile profile get alice                   # Show a profile
  pubkey-profile profile add-identity alice discord 1234 alice#1
  pubkey-profile export --json                       # Export all profiles`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagCluster, "cluster", "c", "", "cluster: mainnet-beta, devnet, testnet, localnet or custom")
	flags.StringVar(&flagRPCURL, "rpc-url", "", "RPC endpoint, required for the custom cluster")
	flags.StringVar(&flagProgramID, "program-id", "", "PubKey Profile program id")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(recoveryPhraseCmd)
	rootCmd.AddCommand(programCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(pointerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pubkey-profile v%s\n", version)
	},
}
