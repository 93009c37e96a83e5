package api

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCluster(t *testing.T) {
	tests := []struct {
		in   string
		want Cluster
	}{
		{"mainnet", ClusterMainnet},
		{"Mainnet-Beta", ClusterMainnet},
		{"devnet", ClusterDevnet},
		{" testnet ", ClusterTestnet},
		{"localhost", ClusterLocalnet},
		{"custom", ClusterCustom},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCluster(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCluster("moonnet")
	assert.Error(t, err)
}

func TestClusterEndpoint(t *testing.T) {
	assert.Equal(t, rpc.DevNet_RPC, ClusterDevnet.Endpoint())
	assert.Equal(t, rpc.MainNetBeta_RPC, ClusterMainnet.Endpoint())
	assert.Empty(t, ClusterCustom.Endpoint())
}

func TestExplorerURL(t *testing.T) {
	assert.Equal(t, "https://explorer.solana.com/tx/abc", ExplorerURL(ClusterMainnet, "", "tx/abc"))
	assert.Equal(t, "https://explorer.solana.com/tx/abc?cluster=devnet", ExplorerURL(ClusterDevnet, "", "/tx/abc"))
	assert.Equal(t,
		"https://explorer.solana.com/address/xyz?cluster=custom&customUrl=http%3A%2F%2F127.0.0.1%3A8899",
		ExplorerURL(ClusterLocalnet, "http://127.0.0.1:8899", "address/xyz"),
	)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(ClientConfig{})
	require.NoError(t, err)
	assert.Equal(t, ClusterDevnet, c.Cluster())
	assert.Equal(t, rpc.DevNet_RPC, c.Endpoint())
	assert.Equal(t, "https://explorer.solana.com/tx/sig?cluster=devnet", c.ExplorerURL("tx/sig"))

	_, err = NewClient(ClientConfig{Cluster: ClusterCustom})
	assert.Error(t, err)

	c, err = NewClient(ClientConfig{Cluster: ClusterCustom, Endpoint: "http://localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", c.Endpoint())

	_, err = NewClient(ClientConfig{Commitment: "eventually"})
	assert.Error(t, err)
}

func TestReachedCommitment(t *testing.T) {
	assert.True(t, reachedCommitment(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.True(t, reachedCommitment(rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed))
	assert.False(t, reachedCommitment(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.False(t, reachedCommitment(rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized))
	assert.True(t, reachedCommitment(rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed))
}

func TestDescribeSendError(t *testing.T) {
	base := errors.New("rpc: BlockhashNotFound")
	err := describeSendError(base)
	assert.Contains(t, err.Error(), "blockhash expired")
	assert.ErrorIs(t, err, base)

	err = describeSendError(errors.New("custom program error: 0x1770"))
	assert.Contains(t, err.Error(), "failed to send transaction")
}
