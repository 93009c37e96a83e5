package sdk

import "github.com/gagliardetto/solana-go"

// AddAuthorityOptions adds NewAuthority to the profile of Username.
type AddAuthorityOptions struct {
	NewAuthority solana.PublicKey
	Authority    solana.PublicKey
	FeePayer     solana.PublicKey
	Username     string
}

// AddIdentityOptions links a provider identity to the profile of Username.
type AddIdentityOptions struct {
	Authority  solana.PublicKey
	FeePayer   solana.PublicKey
	Username   string
	ProviderID string
	Provider   IdentityProvider
	Nickname   string
}

// CreateProfileOptions creates a profile owned by Authority.
type CreateProfileOptions struct {
	AvatarURL string
	Authority solana.PublicKey
	FeePayer  solana.PublicKey
	Username  string
}

// RemoveAuthorityOptions removes AuthorityToRemove from the profile.
type RemoveAuthorityOptions struct {
	AuthorityToRemove solana.PublicKey
	Authority         solana.PublicKey
	FeePayer          solana.PublicKey
	Username          string
}

// RemoveIdentityOptions unlinks a provider identity from the profile.
type RemoveIdentityOptions struct {
	Authority  solana.PublicKey
	FeePayer   solana.PublicKey
	Username   string
	ProviderID string
	Provider   IdentityProvider
}

// UpdateAvatarURLOptions replaces the profile avatar.
type UpdateAvatarURLOptions struct {
	AvatarURL string
	Authority solana.PublicKey
	FeePayer  solana.PublicKey
	Username  string
}
