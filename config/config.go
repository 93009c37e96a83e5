// Package config loads CLI settings from the environment and the
// persisted network file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/gagliardetto/solana-go"
)

// DefaultHomeDir is the directory name under the user's home that holds
// the vault, session and network files.
const DefaultHomeDir = ".pubkey-profile"

// Config holds the CLI settings.
type Config struct {
	// Cluster is the Solana cluster name. When empty the persisted network
	// file is used, then api.DefaultCluster.
	// Env: PUBKEY_CLUSTER
	Cluster string `env:"CLUSTER"`

	// RPCURL overrides the cluster's public endpoint. Required for the
	// custom cluster.
	// Env: PUBKEY_RPC_URL
	RPCURL string `env:"RPC_URL"`

	// ProgramID overrides the deployed program address.
	// Env: PUBKEY_PROGRAM_ID
	ProgramID string `env:"PROGRAM_ID"`

	// Home is the data directory. Defaults to ~/.pubkey-profile.
	// Env: PUBKEY_HOME
	Home string `env:"HOME"`

	// Env: PUBKEY_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// CacheTTL is how long fetched profiles are served from cache.
	// Env: PUBKEY_CACHE_TTL
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	// Env: PUBKEY_COMMITMENT
	Commitment string `env:"COMMITMENT" envDefault:"confirmed"`
}

type envConfig struct {
	Config Config `envPrefix:"PUBKEY_"`
}

// Load reads the environment, fills defaults and validates the result.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads the environment and fills defaults without validating, so
// callers can apply overrides before calling Validate.
func Parse() (*Config, error) {
	var e envConfig
	if err := parseEnv(&e); err != nil {
		return nil, err
	}
	cfg := &e.Config
	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() error {
	if strings.TrimSpace(c.Home) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.Home = filepath.Join(home, DefaultHomeDir)
	}

	if strings.TrimSpace(c.Cluster) == "" {
		c.Cluster = ReadNetwork(c.Home).String()
	}
	return nil
}

// Validate checks the cluster, endpoint and program id.
func (c *Config) Validate() error {
	cluster, err := api.ParseCluster(c.Cluster)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCluster, err)
	}
	if cluster == api.ClusterCustom && strings.TrimSpace(c.RPCURL) == "" {
		return ErrMissingRPCURL
	}
	if _, err := c.ProgramPublicKey(); err != nil {
		return err
	}
	if _, err := api.ParseCommitment(c.Commitment); err != nil {
		return err
	}
	return nil
}

// ClusterName returns the parsed cluster, or api.DefaultCluster when the
// configured name is invalid.
func (c *Config) ClusterName() api.Cluster {
	cluster, err := api.ParseCluster(c.Cluster)
	if err != nil {
		return api.DefaultCluster
	}
	return cluster
}

// ProgramPublicKey returns the configured program id, or the zero key when
// none is set.
func (c *Config) ProgramPublicKey() (solana.PublicKey, error) {
	if strings.TrimSpace(c.ProgramID) == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(strings.TrimSpace(c.ProgramID))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidProgramID, err)
	}
	return key, nil
}

// ClientConfig returns the RPC client settings.
func (c *Config) ClientConfig() api.ClientConfig {
	return api.ClientConfig{
		Cluster:    c.ClusterName(),
		Endpoint:   c.RPCURL,
		Commitment: c.Commitment,
	}
}
