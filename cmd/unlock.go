package cmd

import (
	"errors"
	"fmt"

	"github.com/chinmay1088/pubkey-profile/crypto"
	"github.com/chinmay1088/pubkey-profile/wallet"
	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock wallet for session",
	Long: `Unlock your wallet for the next 30 minutes.
The session is tied to the current cluster; switching clusters asks for the
password again.

Example:
  pubkey-profile unlock`,
	Args: cobra.NoArgs,
	RunE: runUnlock,
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock wallet and end the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.wallet.Lock()
		fmt.Println("🔒 Wallet locked")
		return nil
	},
}

func runUnlock(cmd *cobra.Command, args []string) error {
	if !app.wallet.VaultExists() {
		return wallet.ErrNoWallet
	}

	if app.wallet.IsUnlocked() {
		fmt.Println("✅ Wallet is already unlocked")
		return nil
	}

	password, err := readPassword("Enter your wallet password: ")
	if err != nil {
		return err
	}

	fmt.Println("Unlocking wallet...")
	if err := app.wallet.Unlock(password); err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return err
		}
		return fmt.Errorf("failed to unlock wallet: %w", err)
	}

	fmt.Println("✅ Wallet unlocked successfully!")
	fmt.Println("💡 Use 'pubkey-profile address' to see your address")
	fmt.Println("💡 Use 'pubkey-profile profile get <username>' to look up a profile")

	return nil
}
