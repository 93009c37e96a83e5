package sdk

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrSeedTooLong is returned when a PDA seed exceeds the runtime limit.
var ErrSeedTooLong = errors.New("seed exceeds 32 bytes")

const maxSeedLength = 32

const (
	seedPrefix  = "pubkey_profile"
	seedProfile = "profile"
	seedPointer = "pointer"
)

// ProfilePDA derives the profile account address for username.
func ProfilePDA(programID solana.PublicKey, username string) (solana.PublicKey, uint8, error) {
	return findPDA(programID,
		[]byte(seedPrefix),
		[]byte(seedProfile),
		[]byte(username),
	)
}

// PointerPDA derives the pointer account address linking an identity to
// its profile. Provider ids are hashed into the seed since Solana addresses
// and other ids may exceed the seed length limit.
func PointerPDA(programID solana.PublicKey, provider IdentityProvider, providerID string) (solana.PublicKey, uint8, error) {
	if !provider.Valid() {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return findPDA(programID,
		[]byte(seedPrefix),
		[]byte(seedPointer),
		provider.seed(),
		providerIDSeed(providerID),
	)
}

func findPDA(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return solana.PublicKey{}, 0, fmt.Errorf("%w: %q", ErrSeedTooLong, seed)
		}
	}

	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive program address: %w", err)
	}
	return addr, bump, nil
}

func providerIDSeed(providerID string) []byte {
	sum := sha256.Sum256([]byte(providerID))
	return sum[:]
}
