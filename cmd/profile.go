package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/chinmay1088/pubkey-profile/api"
	solanautil "github.com/chinmay1088/pubkey-profile/chains/solana"
	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/chinmay1088/pubkey-profile/profile"
	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var (
	flagDryRun    bool
	flagJSON      bool
	flagAvatarURL string
	flagProvider  string
	flagID        string
	flagAuthority string
	flagMine      bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create, inspect and change profiles",
	Long: `Create, inspect and change PubKey Profiles.

Changes are signed and paid for by your wallet, which must be an authority
of the profile.

Examples:
  pubkey-profile profile create alice --avatar-url https://example.com/a.png
  pubkey-profile profile get alice
  pubkey-profile profile get --provider discord --id 1234
  pubkey-profile profile list --mine
  pubkey-profile profile update-avatar alice https://example.com/b.png
  pubkey-profile profile add-authority alice <address>
  pubkey-profile profile remove-authority alice <address>
  pubkey-profile profile add-identity alice discord 1234 alice#0001
  pubkey-profile profile remove-identity alice discord 1234`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a profile owned by your wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCreate,
}

var profileGetCmd = &cobra.Command{
	Use:   "get [username]",
	Short: "Show a profile by username or linked identity",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileGet,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles of the program",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileUpdateAvatarCmd = &cobra.Command{
	Use:   "update-avatar <username> <url>",
	Short: "Replace the avatar url",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileUpdateAvatar,
}

var profileAddAuthorityCmd = &cobra.Command{
	Use:   "add-authority <username> <address>",
	Short: "Add an authority",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileAddAuthority,
}

var profileRemoveAuthorityCmd = &cobra.Command{
	Use:   "remove-authority <username> <address>",
	Short: "Remove an authority",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileRemoveAuthority,
}

var profileAddIdentityCmd = &cobra.Command{
	Use:   "add-identity <username> <provider> <provider-id> <nickname>",
	Short: "Link a Discord or Solana identity",
	Args:  cobra.ExactArgs(4),
	RunE:  runProfileAddIdentity,
}

var profileRemoveIdentityCmd = &cobra.Command{
	Use:   "remove-identity <username> <provider> <provider-id>",
	Short: "Unlink an identity",
	Args:  cobra.ExactArgs(3),
	RunE:  runProfileRemoveIdentity,
}

func init() {
	profileCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "print the unsigned transaction instead of sending it")
	profileCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print profiles as JSON")

	profileCreateCmd.Flags().StringVar(&flagAvatarURL, "avatar-url", "", "avatar image url")
	profileGetCmd.Flags().StringVar(&flagProvider, "provider", "", "identity provider: discord or solana")
	profileGetCmd.Flags().StringVar(&flagID, "id", "", "provider id of the identity")
	profileListCmd.Flags().StringVar(&flagAuthority, "authority", "", "only profiles with this authority")
	profileListCmd.Flags().BoolVar(&flagMine, "mine", false, "only profiles your wallet is an authority of")

	profileCmd.AddCommand(
		profileCreateCmd,
		profileGetCmd,
		profileListCmd,
		profileUpdateAvatarCmd,
		profileAddAuthorityCmd,
		profileRemoveAuthorityCmd,
		profileAddIdentityCmd,
		profileRemoveIdentityCmd,
	)
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username := args[0]

	key, err := app.walletKey()
	if err != nil {
		return err
	}

	_, err = app.sdk.GetProfileByUsername(ctx, username)
	switch {
	case err == nil:
		return fmt.Errorf("username %q is already taken", username)
	case !errors.Is(err, api.ErrAccountNotFound):
		return err
	}

	tx, err := app.sdk.CreateProfile(ctx, sdk.CreateProfileOptions{
		AvatarURL: flagAvatarURL,
		Authority: key.PublicKey(),
		FeePayer:  key.PublicKey(),
		Username:  username,
	})
	if err != nil {
		return err
	}
	if flagDryRun {
		return printUnsigned(tx)
	}
	if !confirm(fmt.Sprintf("Creating profile %q", username)) {
		fmt.Println("❌ Cancelled")
		return nil
	}

	notifier := app.notifier()
	sig, err := app.signer(key).SignAndConfirm(ctx, tx)
	if err != nil {
		notifier.Error(fmt.Sprintf("Error: %v", err))
		return err
	}
	notifier.Link(profile.TransactionLinkLabel, app.rpc.ExplorerURL("tx/"+sig.String()))

	acct, err := app.programAccount(username, key)
	if err != nil {
		return err
	}
	p, err := acct.Refetch(ctx)
	if err != nil {
		return err
	}
	fmt.Println("✅ Profile created")
	return showProfile(p)
}

func runProfileGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		p   *sdk.Profile
		err error
	)
	switch {
	case len(args) == 1:
		p, err = app.sdk.GetProfileByUsername(ctx, args[0])
	case flagProvider != "" && flagID != "":
		provider, perr := parseIdentity(flagProvider, flagID)
		if perr != nil {
			return perr
		}
		p, err = app.sdk.GetProfileByProvider(ctx, provider, flagID)
	default:
		return fmt.Errorf("pass a username or --provider and --id")
	}
	if errors.Is(err, api.ErrAccountNotFound) {
		return fmt.Errorf("profile not found on %s", app.cluster)
	}
	if err != nil {
		return err
	}
	return showProfile(p)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	filter, err := authorityFilter()
	if err != nil {
		return err
	}

	profiles, err := withSpinner("Scanning profiles...", func() ([]sdk.Profile, error) {
		return app.sdk.GetProfiles(ctx)
	})
	if err != nil {
		return err
	}

	profiles = filterProfiles(profiles, filter)
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Username < profiles[j].Username })

	if flagJSON {
		return printJSON(os.Stdout, profiles)
	}

	fmt.Printf("📇 %d profiles on %s\n\n", len(profiles), app.networkLabel())
	for i := range profiles {
		printProfile(os.Stdout, &profiles[i])
		fmt.Println()
	}
	return nil
}

func runProfileUpdateAvatar(cmd *cobra.Command, args []string) error {
	username, url := args[0], args[1]
	return applyChange(cmd, username, "Updating the avatar",
		func(authority solana.PublicKey) sdk.UpdateAvatarURLOptions {
			return sdk.UpdateAvatarURLOptions{AvatarURL: url, Authority: authority, FeePayer: authority, Username: username}
		},
		app.sdk.UpdateAvatarURL,
		(*profile.ProgramAccount).UpdateAvatarURL,
	)
}

func runProfileAddAuthority(cmd *cobra.Command, args []string) error {
	username := args[0]
	newAuthority, err := solanautil.ParseAddress(args[1])
	if err != nil {
		return err
	}
	return applyChange(cmd, username, "Adding authority "+newAuthority.String(),
		func(authority solana.PublicKey) sdk.AddAuthorityOptions {
			return sdk.AddAuthorityOptions{NewAuthority: newAuthority, Authority: authority, FeePayer: authority, Username: username}
		},
		app.sdk.AddAuthority,
		(*profile.ProgramAccount).AddAuthority,
	)
}

func runProfileRemoveAuthority(cmd *cobra.Command, args []string) error {
	username := args[0]
	toRemove, err := solanautil.ParseAddress(args[1])
	if err != nil {
		return err
	}
	return applyChange(cmd, username, "Removing authority "+toRemove.String(),
		func(authority solana.PublicKey) sdk.RemoveAuthorityOptions {
			return sdk.RemoveAuthorityOptions{AuthorityToRemove: toRemove, Authority: authority, FeePayer: authority, Username: username}
		},
		app.sdk.RemoveAuthority,
		(*profile.ProgramAccount).RemoveAuthority,
	)
}

func runProfileAddIdentity(cmd *cobra.Command, args []string) error {
	username, providerID, nickname := args[0], args[2], args[3]
	provider, err := parseIdentity(args[1], providerID)
	if err != nil {
		return err
	}
	return applyChange(cmd, username, fmt.Sprintf("Linking %s identity %s", provider, providerID),
		func(authority solana.PublicKey) sdk.AddIdentityOptions {
			return sdk.AddIdentityOptions{
				Authority:  authority,
				FeePayer:   authority,
				Username:   username,
				ProviderID: providerID,
				Provider:   provider,
				Nickname:   nickname,
			}
		},
		app.sdk.AddIdentity,
		(*profile.ProgramAccount).AddIdentity,
	)
}

func runProfileRemoveIdentity(cmd *cobra.Command, args []string) error {
	username, providerID := args[0], args[2]
	provider, err := parseIdentity(args[1], providerID)
	if err != nil {
		return err
	}
	return applyChange(cmd, username, fmt.Sprintf("Unlinking %s identity %s", provider, providerID),
		func(authority solana.PublicKey) sdk.RemoveIdentityOptions {
			return sdk.RemoveIdentityOptions{
				Authority:  authority,
				FeePayer:   authority,
				Username:   username,
				ProviderID: providerID,
				Provider:   provider,
			}
		},
		app.sdk.RemoveIdentity,
		(*profile.ProgramAccount).RemoveIdentity,
	)
}

// parseIdentity resolves the provider name. Solana identities must be
// wallet addresses.
func parseIdentity(providerName, providerID string) (sdk.IdentityProvider, error) {
	provider, err := sdk.ParseIdentityProvider(providerName)
	if err != nil {
		return 0, err
	}
	if provider == sdk.ProviderSolana && !solanautil.ValidateBase58(providerID) {
		return 0, fmt.Errorf("invalid Solana identity %q: expected a base58 wallet address", providerID)
	}
	return provider, nil
}

// applyChange runs one profile mutation signed by the wallet. The wallet
// must be an authority of the profile. With --dry-run the unsigned
// transaction is printed instead.
func applyChange[O any](
	cmd *cobra.Command,
	username, action string,
	options func(authority solana.PublicKey) O,
	build func(context.Context, O) (*solana.Transaction, error),
	run func(*profile.ProgramAccount, context.Context, O) (solana.Signature, error),
) error {
	ctx := cmd.Context()

	key, err := app.walletKey()
	if err != nil {
		return err
	}
	opts := options(key.PublicKey())

	acct, err := app.programAccount(username, key)
	if err != nil {
		return err
	}

	current, err := acct.Profile(ctx)
	if errors.Is(err, api.ErrAccountNotFound) {
		return fmt.Errorf("profile %q not found on %s", username, app.cluster)
	}
	if err != nil {
		return err
	}
	if !current.HasAuthority(key.PublicKey()) {
		return fmt.Errorf("wallet %s is not an authority of profile %q", key.PublicKey(), username)
	}

	if flagDryRun {
		tx, err := build(ctx, opts)
		if err != nil {
			return err
		}
		return printUnsigned(tx)
	}

	if !confirm(action) {
		fmt.Println("❌ Cancelled")
		return nil
	}

	logger.FromContext(ctx).Debug().
		Str("profile", acct.ProfilePDA().String()).
		Str("action", action).
		Msg("submitting profile change")
	if _, err := run(acct, ctx, opts); err != nil {
		return err
	}

	updated, err := acct.Profile(ctx)
	if err != nil {
		return err
	}
	return showProfile(updated)
}

func showProfile(p *sdk.Profile) error {
	if flagJSON {
		return printJSON(os.Stdout, p)
	}
	printProfile(os.Stdout, p)
	return nil
}

func printUnsigned(tx *solana.Transaction) error {
	encoded, err := solanautil.Encode(tx)
	if err != nil {
		return err
	}
	fmt.Println("📝 Unsigned transaction (base58):")
	fmt.Println(encoded)
	fmt.Println()
	fmt.Println("Required signers:")
	for _, s := range solanautil.RequiredSigners(tx) {
		fmt.Printf("   - %s\n", s)
	}
	return nil
}

// authorityFilter resolves --authority and --mine to a key, or the zero
// key when neither is set.
func authorityFilter() (solana.PublicKey, error) {
	switch {
	case flagAuthority != "":
		return solanautil.ParseAddress(flagAuthority)
	case flagMine:
		return app.wallet.SolanaAddress()
	default:
		return solana.PublicKey{}, nil
	}
}

func filterProfiles(profiles []sdk.Profile, authority solana.PublicKey) []sdk.Profile {
	if authority.IsZero() {
		return profiles
	}
	out := profiles[:0]
	for _, p := range profiles {
		if p.HasAuthority(authority) {
			out = append(out, p)
		}
	}
	return out
}
