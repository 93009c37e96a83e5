package cmd

import (
	"testing"

	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	wallet := solana.NewWallet().PublicKey().String()

	tests := []struct {
		name       string
		provider   string
		providerID string
		want       sdk.IdentityProvider
		wantErr    bool
	}{
		{name: "discord id", provider: "discord", providerID: "1234", want: sdk.ProviderDiscord},
		{name: "solana wallet", provider: "Solana", providerID: wallet, want: sdk.ProviderSolana},
		{name: "solana non address", provider: "solana", providerID: "1234", wantErr: true},
		{name: "solana empty", provider: "solana", providerID: "", wantErr: true},
		{name: "unknown provider", provider: "github", providerID: "alice", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIdentity(tt.provider, tt.providerID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
