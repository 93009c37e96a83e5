package sdk

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() Profile {
	authority := solana.NewWallet().PublicKey()
	return Profile{
		Bump:        254,
		Username:    "alice",
		AvatarURL:   "https://example.com/alice.png",
		FeePayer:    authority,
		Authorities: []solana.PublicKey{authority, solana.NewWallet().PublicKey()},
		Identities: []Identity{
			{Provider: ProviderSolana, ProviderID: authority.String(), Name: "Primary Wallet"},
			{Provider: ProviderDiscord, ProviderID: "386584531353862154", Name: "alice#0001"},
		},
	}
}

func TestDecodeProfile(t *testing.T) {
	want := testProfile()

	data, err := EncodeProfileAccount(want)
	require.NoError(t, err)
	assert.Equal(t, profileDiscriminator[:], data[:DiscriminatorLength])

	got, err := DecodeProfile(data)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.True(t, got.HasAuthority(want.Authorities[1]))
	assert.False(t, got.HasAuthority(solana.SystemProgramID))

	id, ok := got.Identity(ProviderDiscord, "386584531353862154")
	require.True(t, ok)
	assert.Equal(t, "alice#0001", id.Name)
}

func TestEncodePointerAccount_Layout(t *testing.T) {
	profile := solana.NewWallet().PublicKey()
	data, err := EncodePointerAccount(Pointer{
		Bump:       7,
		Provider:   ProviderDiscord,
		ProviderID: "42",
		Profile:    profile,
	})
	require.NoError(t, err)

	require.Len(t, data, 8+1+1+4+2+32)
	assert.Equal(t, pointerDiscriminator[:], data[:8])
	assert.Equal(t, byte(7), data[8])
	assert.Equal(t, byte(ProviderDiscord), data[9])
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[10:14]))
	assert.Equal(t, "42", string(data[14:16]))
	assert.Equal(t, profile[:], data[16:])

	pointer, err := DecodePointer(data)
	require.NoError(t, err)
	assert.Equal(t, ProviderDiscord, pointer.Provider)
	assert.Equal(t, profile, pointer.Profile)
}

func TestDecode_WrongDiscriminator(t *testing.T) {
	data, err := EncodeProfileAccount(testProfile())
	require.NoError(t, err)

	_, err = DecodePointer(data)
	assert.ErrorIs(t, err, ErrAccountDiscriminator)

	_, err = DecodeProfile([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrAccountDiscriminator)
}

func TestDecodeProfile_Truncated(t *testing.T) {
	data, err := EncodeProfileAccount(testProfile())
	require.NoError(t, err)

	_, err = DecodeProfile(data[:len(data)-5])
	assert.Error(t, err)
}

func TestDecodePointer_UnknownProvider(t *testing.T) {
	data, err := EncodePointerAccount(Pointer{Provider: ProviderSolana, ProviderID: "x"})
	require.NoError(t, err)
	data[9] = 200

	_, err = DecodePointer(data)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
