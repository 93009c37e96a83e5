package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, name := range []string{
		"PUBKEY_CLUSTER", "PUBKEY_RPC_URL", "PUBKEY_PROGRAM_ID", "PUBKEY_HOME",
		"PUBKEY_LOG_LEVEL", "PUBKEY_CACHE_TTL", "PUBKEY_COMMITMENT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_AllFields(t *testing.T) {
	// Arrange
	home := t.TempDir()
	setEnvVars(t, map[string]string{
		"PUBKEY_CLUSTER":    "testnet",
		"PUBKEY_RPC_URL":    "https://rpc.example.com",
		"PUBKEY_PROGRAM_ID": "PPLxwat9Z2Ld6CqR2vFRYNDvgVxFHXkNJbVFNYgrgn6",
		"PUBKEY_HOME":       home,
		"PUBKEY_LOG_LEVEL":  "debug",
		"PUBKEY_CACHE_TTL":  "1m",
		"PUBKEY_COMMITMENT": "finalized",
	})

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Cluster)
	assert.Equal(t, "https://rpc.example.com", cfg.RPCURL)
	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "finalized", cfg.Commitment)

	program, err := cfg.ProgramPublicKey()
	require.NoError(t, err)
	assert.Equal(t, "PPLxwat9Z2Ld6CqR2vFRYNDvgVxFHXkNJbVFNYgrgn6", program.String())

	assert.Equal(t, api.ClientConfig{
		Cluster:    api.ClusterTestnet,
		Endpoint:   "https://rpc.example.com",
		Commitment: "finalized",
	}, cfg.ClientConfig())
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	setEnvVars(t, map[string]string{"PUBKEY_HOME": home})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, api.DefaultCluster, cfg.ClusterName())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "confirmed", cfg.Commitment)

	program, err := cfg.ProgramPublicKey()
	require.NoError(t, err)
	assert.True(t, program.IsZero())
}

func TestLoad_NetworkFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, WriteNetwork(home, api.ClusterMainnet))
	setEnvVars(t, map[string]string{"PUBKEY_HOME": home})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, api.ClusterMainnet, cfg.ClusterName())
	assert.Equal(t, rpc.MainNetBeta_RPC, cfg.ClientConfig().Cluster.Endpoint())

	// the environment wins over the file
	setEnvVars(t, map[string]string{"PUBKEY_HOME": home, "PUBKEY_CLUSTER": "localnet"})
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, api.ClusterLocalnet, cfg.ClusterName())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		err  error
	}{
		{"unknown cluster", map[string]string{"PUBKEY_CLUSTER": "moonnet"}, ErrInvalidCluster},
		{"custom without url", map[string]string{"PUBKEY_CLUSTER": "custom"}, ErrMissingRPCURL},
		{"bad program id", map[string]string{"PUBKEY_PROGRAM_ID": "not-a-key"}, ErrInvalidProgramID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.vars["PUBKEY_HOME"] = t.TempDir()
			setEnvVars(t, tt.vars)

			_, err := Load()
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"PUBKEY_HOME": t.TempDir(), "PUBKEY_CACHE_TTL": "soon"})

	_, err := Load()
	assert.Error(t, err)
}

func TestNetworkFile(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested")

	assert.Equal(t, api.DefaultCluster, ReadNetwork(home))

	require.NoError(t, WriteNetwork(home, api.ClusterTestnet))
	assert.Equal(t, api.ClusterTestnet, ReadNetwork(home))

	assert.ErrorIs(t, WriteNetwork(home, api.ClusterCustom), ErrInvalidCluster)

	require.NoError(t, os.WriteFile(filepath.Join(home, NetworkFile), []byte("garbage"), 0600))
	assert.Equal(t, api.DefaultCluster, ReadNetwork(home))
}

func TestParse_DefersValidation(t *testing.T) {
	setEnvVars(t, map[string]string{"PUBKEY_HOME": t.TempDir(), "PUBKEY_CLUSTER": "custom"})

	cfg, err := Parse()
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingRPCURL)

	cfg.RPCURL = "http://localhost:8899"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, api.ClusterCustom, cfg.ClusterName())
}
