package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func TestMasterKey_SLIP10Vector(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	k := newMasterKey(seed)
	assert.Equal(t, "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7", hex.EncodeToString(k.key))
	assert.Equal(t, "90046a93de5380a72b5e45010748567d5ea02bbf6522f979e05c0d8d8ca9fffb", hex.EncodeToString(k.chainCode))

	k = k.child(hardenedOffset)
	assert.Equal(t, "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3", hex.EncodeToString(k.key))
	assert.Equal(t, "8b59aa11380b624e81507a27fedda59fea6d0b779a778918a2fd3590e16e9c69", hex.EncodeToString(k.chainCode))
}

func TestDeriveSolanaKey(t *testing.T) {
	seed := bip39.NewSeed("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", "")

	key, err := deriveSolanaKey(seed, SolDerivationPath)
	require.NoError(t, err)
	assert.Equal(t, "37df573b3ac4ad5b522e064e25b63ea16bcbe79d449e81a0268d1047948bb445", hex.EncodeToString(key[:32]))

	other, err := deriveSolanaKey(seed, SolTestDerivationPath)
	require.NoError(t, err)
	assert.NotEqual(t, key.PublicKey(), other.PublicKey())
}

func TestParsePath(t *testing.T) {
	got, err := parsePath("m/44'/501'/0'/0'")
	require.NoError(t, err)
	assert.Equal(t, []uint32{44 + hardenedOffset, 501 + hardenedOffset, hardenedOffset, hardenedOffset}, got)

	for _, bad := range []string{"", "m", "44'/501'", "m/44/501'", "m/x'"} {
		_, err := parsePath(bad)
		assert.Error(t, err, bad)
	}
}
