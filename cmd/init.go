package cmd

import (
	"fmt"

	"github.com/chinmay1088/pubkey-profile/wallet"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new wallet",
	Long: `Initialize a new wallet with a secure recovery phrase.

This command will:
  - Generate a new 24-word recovery phrase
  - Create an encrypted vault
  - Derive the Solana key that signs your profile transactions`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if app.wallet.VaultExists() {
		return fmt.Errorf("%w. Remove %s/%s to create a new wallet", wallet.ErrWalletExists, app.cfg.Home, wallet.VaultFile)
	}

	fmt.Println("🚀 Initializing wallet")
	fmt.Println()

	password, err := readNewPassword()
	if err != nil {
		return err
	}

	fmt.Println("Generating wallet...")
	mnemonic, err := app.wallet.Initialize(password)
	if err != nil {
		return fmt.Errorf("failed to initialize wallet: %w", err)
	}

	address, err := app.wallet.SolanaAddress()
	if err != nil {
		return err
	}

	fmt.Println("✅ Wallet initialized successfully!")
	fmt.Println()
	fmt.Println("🔐 Recovery Phrase (24 words):")
	fmt.Println()
	fmt.Printf("   %s\n", mnemonic)
	fmt.Println()
	fmt.Println("⚠️  IMPORTANT:")
	fmt.Println("   - Write down this recovery phrase and store it securely")
	fmt.Println("   - Anyone with this phrase controls your profiles")
	fmt.Println("   - This is the only way to recover your wallet")
	fmt.Println()
	fmt.Printf("📍 Address (%s): %s\n", app.cluster, address)
	fmt.Println()
	fmt.Println("🔑 Next steps:")
	fmt.Println("   - Fund the address with SOL to pay for rent and fees")
	fmt.Println("   - Run 'pubkey-profile profile create <username>'")

	return nil
}
