package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chinmay1088/pubkey-profile/api"
	solanautil "github.com/chinmay1088/pubkey-profile/chains/solana"
	"github.com/chinmay1088/pubkey-profile/config"
	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/chinmay1088/pubkey-profile/profile"
	"github.com/chinmay1088/pubkey-profile/query"
	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/chinmay1088/pubkey-profile/wallet"
	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// application holds the collaborators shared by every command.
type application struct {
	cfg     *config.Config
	log     *logger.Logger
	rpc     *api.Client
	sdk     *sdk.SDK
	query   *query.Client
	wallet  *wallet.Manager
	cluster api.Cluster
}

var app *application

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	log := logger.NewConsoleLogger("cli", level)

	cluster := cfg.ClusterName()
	clientCfg := cfg.ClientConfig()
	clientCfg.Logger = log
	rpcClient, err := api.NewClient(clientCfg)
	if err != nil {
		return err
	}

	programID, err := cfg.ProgramPublicKey()
	if err != nil {
		return err
	}
	client, err := sdk.New(sdk.Options{RPC: rpcClient, ProgramID: programID, Logger: log})
	if err != nil {
		return err
	}

	cache, err := query.NewClient(query.Config{StaleTime: cfg.CacheTTL, Logger: log})
	if err != nil {
		return err
	}

	app = &application{
		cfg:     cfg,
		log:     log,
		rpc:     rpcClient,
		sdk:     client,
		query:   cache,
		wallet:  wallet.NewManager(cfg.Home, cluster, wallet.WithLogger(log)),
		cluster: cluster,
	}
	log.Debug().
		Str("cluster", cluster.String()).
		Str("endpoint", rpcClient.Endpoint()).
		Str("program", client.ProgramID().String()).
		Msg("environment ready")
	cmd.SetContext(log.WithContext(cmd.Context()))
	return nil
}

func teardown() {
	if app != nil && app.query != nil {
		app.query.Close()
	}
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("cluster") {
		cfg.Cluster = flagCluster
	}
	if flags.Changed("rpc-url") {
		cfg.RPCURL = flagRPCURL
	}
	if flags.Changed("program-id") {
		cfg.ProgramID = flagProgramID
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// walletKey returns the key of the unlocked wallet.
func (a *application) walletKey() (solana.PrivateKey, error) {
	return a.wallet.SolanaKey()
}

// resolveAddress parses address, or returns the wallet address when empty.
func resolveAddress(address string) (solana.PublicKey, error) {
	if address == "" {
		return app.wallet.SolanaAddress()
	}
	return solanautil.ParseAddress(address)
}

func (a *application) signer(key solana.PrivateKey) *wallet.Signer {
	return wallet.NewSigner(key, a.rpc, 0, a.log)
}

func (a *application) notifier() profile.Notifier {
	return profile.NewConsoleNotifier(os.Stdout)
}

// programAccount opens the data-access layer of username's profile, signed
// by key.
func (a *application) programAccount(username string, key solana.PrivateKey) (*profile.ProgramAccount, error) {
	pda, _, err := a.sdk.GetProfilePDA(username)
	if err != nil {
		return nil, err
	}

	return profile.NewProgramAccount(profile.Config{
		SDK:         a.sdk,
		Query:       a.query,
		Signer:      a.signer(key),
		Notifier:    a.notifier(),
		Cluster:     a.cluster,
		ExplorerURL: a.rpc.ExplorerURL,
		ProfilePDA:  pda,
		Logger:      a.log,
	})
}

func (a *application) networkLabel() string {
	if a.cluster == api.ClusterMainnet {
		return color.GreenString("Mainnet Beta")
	}
	return color.YellowString(strings.ToUpper(a.cluster.String()[:1]) + a.cluster.String()[1:])
}

// confirm asks before a transaction is sent. --yes skips the prompt.
func confirm(action string) bool {
	if flagYes {
		return true
	}

	fmt.Println()
	if app.cluster == api.ClusterMainnet {
		fmt.Printf("🚨 You are on mainnet-beta. %s will spend real SOL on fees and rent.\n", action)
	} else {
		fmt.Printf("⚠️ You are on %s. %s will not spend real funds.\n", app.cluster, action)
	}
	fmt.Printf("Press y to confirm or n to stop (y/n): ")

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// readNewPassword prompts twice and enforces a minimum length.
func readNewPassword() (string, error) {
	password, err := readPassword("Enter a password for your wallet: ")
	if err != nil {
		return "", err
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters long")
	}

	confirmation, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirmation {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}
