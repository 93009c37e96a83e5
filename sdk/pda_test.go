package sdk

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilePDA(t *testing.T) {
	a, bumpA, err := ProfilePDA(DefaultProgramID, "alice")
	require.NoError(t, err)

	again, bumpAgain, err := ProfilePDA(DefaultProgramID, "alice")
	require.NoError(t, err)
	assert.Equal(t, a, again)
	assert.Equal(t, bumpA, bumpAgain)

	b, _, err := ProfilePDA(DefaultProgramID, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	other := solana.NewWallet().PublicKey()
	c, _, err := ProfilePDA(other, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestProfilePDA_SeedTooLong(t *testing.T) {
	_, _, err := ProfilePDA(DefaultProgramID, strings.Repeat("x", 33))
	assert.ErrorIs(t, err, ErrSeedTooLong)

	_, _, err = ProfilePDA(DefaultProgramID, strings.Repeat("x", 32))
	assert.NoError(t, err)
}

func TestPointerPDA(t *testing.T) {
	id := solana.NewWallet().PublicKey().String()

	sol, _, err := PointerPDA(DefaultProgramID, ProviderSolana, id)
	require.NoError(t, err)
	discord, _, err := PointerPDA(DefaultProgramID, ProviderDiscord, id)
	require.NoError(t, err)
	assert.NotEqual(t, sol, discord)

	profile, _, err := ProfilePDA(DefaultProgramID, id[:16])
	require.NoError(t, err)
	assert.NotEqual(t, sol, profile)

	_, _, err = PointerPDA(DefaultProgramID, IdentityProvider(42), id)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestPointerPDA_LongProviderID(t *testing.T) {
	a, _, err := PointerPDA(DefaultProgramID, ProviderDiscord, strings.Repeat("9", 64))
	require.NoError(t, err)
	b, _, err := PointerPDA(DefaultProgramID, ProviderDiscord, strings.Repeat("9", 63))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
