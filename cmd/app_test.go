package cmd

import (
	"os"
	"testing"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	t.Cleanup(func() {
		flagCluster, flagRPCURL, flagProgramID = "", "", ""
	})

	c := &cobra.Command{Use: "test"}
	c.Flags().StringVarP(&flagCluster, "cluster", "c", "", "")
	c.Flags().StringVar(&flagRPCURL, "rpc-url", "", "")
	c.Flags().StringVar(&flagProgramID, "program-id", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func setConfigEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, name := range []string{"PUBKEY_CLUSTER", "PUBKEY_RPC_URL", "PUBKEY_PROGRAM_ID"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("PUBKEY_HOME", t.TempDir())
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_FlagsCompleteEnvironment(t *testing.T) {
	setConfigEnv(t, map[string]string{"PUBKEY_CLUSTER": "custom"})
	c := newFlagCommand(t, "--rpc-url", "http://localhost:8899")

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, api.ClusterCustom, cfg.ClusterName())
	assert.Equal(t, "http://localhost:8899", cfg.RPCURL)
}

func TestLoadConfig_FlagOverridesInvalidEnvironment(t *testing.T) {
	setConfigEnv(t, map[string]string{"PUBKEY_CLUSTER": "moonnet"})
	c := newFlagCommand(t, "--cluster", "devnet")

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, api.ClusterDevnet, cfg.ClusterName())
}

func TestLoadConfig_StillValidates(t *testing.T) {
	setConfigEnv(t, nil)
	c := newFlagCommand(t, "--cluster", "custom")

	_, err := loadConfig(c)
	assert.Error(t, err)
}
