package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chinmay1088/pubkey-profile/wallet"
	"github.com/spf13/cobra"
)

var recoveryPhraseCmd = &cobra.Command{
	Use:   "recovery-phrase [show|import]",
	Short: "Manage recovery phrase",
	Long: `Manage your wallet's recovery phrase (mnemonic).

Commands:
  show    - Display the recovery phrase (requires an unlocked wallet)
  import  - Import wallet from existing recovery phrase`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"show", "import"},
	RunE:      runRecoveryPhrase,
}

func runRecoveryPhrase(cmd *cobra.Command, args []string) error {
	switch action := strings.ToLower(args[0]); action {
	case "show":
		return showRecoveryPhrase()
	case "import":
		return importRecoveryPhrase()
	default:
		return fmt.Errorf("invalid action: %s. Use 'show' or 'import'", action)
	}
}

func showRecoveryPhrase() error {
	mnemonic, err := app.wallet.GetMnemonic()
	if err != nil {
		return err
	}

	fmt.Println("🔐 Recovery Phrase:")
	fmt.Println()
	fmt.Printf("   %s\n", mnemonic)
	fmt.Println()
	fmt.Println("⚠️  Security Warning:")
	fmt.Println("   - Keep this phrase secure and private")
	fmt.Println("   - Anyone with this phrase controls your profiles")
	fmt.Println("   - Never share it with anyone")

	return nil
}

func importRecoveryPhrase() error {
	if app.wallet.VaultExists() {
		return fmt.Errorf("%w. Remove the existing wallet first", wallet.ErrWalletExists)
	}

	fmt.Println("📝 Import Wallet from Recovery Phrase")
	fmt.Println()

	fmt.Print("Enter recovery phrase: ")
	reader := bufio.NewReader(os.Stdin)
	mnemonic, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read mnemonic: %w", err)
	}
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	password, err := readNewPassword()
	if err != nil {
		return err
	}

	if err := app.wallet.ImportFromMnemonic(mnemonic, password); err != nil {
		return fmt.Errorf("failed to import wallet: %w", err)
	}

	address, err := app.wallet.SolanaAddress()
	if err != nil {
		return err
	}

	fmt.Println("✅ Wallet imported successfully!")
	fmt.Printf("📍 Address (%s): %s\n", app.cluster, address)
	return nil
}
