package sdk

import (
	"crypto/sha256"
)

// DiscriminatorLength is the size of the Anchor discriminator prefix.
const DiscriminatorLength = 8

// Discriminator is the 8-byte Anchor prefix of instruction and account data.
type Discriminator [DiscriminatorLength]byte

// InstructionDiscriminator returns sha256("global:<name>")[:8] for a
// snake_case instruction name.
func InstructionDiscriminator(name string) Discriminator {
	return discriminator("global:" + name)
}

// AccountDiscriminator returns sha256("account:<Name>")[:8] for an account
// type name.
func AccountDiscriminator(name string) Discriminator {
	return discriminator("account:" + name)
}

func discriminator(preimage string) Discriminator {
	sum := sha256.Sum256([]byte(preimage))

	var d Discriminator
	copy(d[:], sum[:DiscriminatorLength])
	return d
}
