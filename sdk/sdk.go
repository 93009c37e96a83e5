// Package sdk is the client for the PubKey Profile program.
//
// Every mutating method builds a single program instruction, wraps it in a
// version 0 transaction paid by the fee payer and returns it unsigned.
// Signing and submission belong to the caller. Fetch methods read and
// decode program accounts through an RPC transport.
package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/gagliardetto/solana-go"
)

// DefaultProgramID is the deployed PubKey Profile program.
var DefaultProgramID = solana.MustPublicKeyFromBase58("PPLxwat9Z2Ld6CqR2vFRYNDvgVxFHXkNJbVFNYgrgn6")

// Options configures an SDK. ProgramID defaults to DefaultProgramID.
type Options struct {
	RPC       RPC
	ProgramID solana.PublicKey
	Logger    *logger.Logger
}

// SDK builds PubKey Profile transactions and reads its accounts.
type SDK struct {
	rpc       RPC
	programID solana.PublicKey
	log       *logger.Logger
}

// New creates an SDK.
func New(opts Options) (*SDK, error) {
	if opts.RPC == nil {
		return nil, errors.New("sdk: rpc transport is required")
	}

	programID := opts.ProgramID
	if programID.IsZero() {
		programID = DefaultProgramID
	}

	return &SDK{
		rpc:       opts.RPC,
		programID: programID,
		log:       logger.OrNop(opts.Logger).With("program", programID.String()),
	}, nil
}

// ProgramID returns the program the SDK targets.
func (s *SDK) ProgramID() solana.PublicKey {
	return s.programID
}

// GetProfilePDA derives the profile address of username.
func (s *SDK) GetProfilePDA(username string) (solana.PublicKey, uint8, error) {
	return ProfilePDA(s.programID, username)
}

// GetPointerPDA derives the pointer address of a provider identity.
func (s *SDK) GetPointerPDA(provider IdentityProvider, providerID string) (solana.PublicKey, uint8, error) {
	return PointerPDA(s.programID, provider, providerID)
}

// AddAuthorityInstruction builds the add_authority instruction.
func (s *SDK) AddAuthorityInstruction(opts AddAuthorityOptions) (solana.Instruction, error) {
	profile, _, err := s.GetProfilePDA(opts.Username)
	if err != nil {
		return nil, err
	}

	return newInstruction(s.programID, InstructionAddAuthority,
		addAuthorityArgs{NewAuthority: opts.NewAuthority},
		signer(opts.Authority),
		payer(opts.FeePayer),
		writable(profile),
		readonly(solana.SystemProgramID),
	)
}

// AddAuthority returns a transaction adding a profile authority.
func (s *SDK) AddAuthority(ctx context.Context, opts AddAuthorityOptions) (*solana.Transaction, error) {
	ix, err := s.AddAuthorityInstruction(opts)
	if err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, ix, opts.FeePayer)
}

// AddIdentityInstruction builds the add_identity instruction.
func (s *SDK) AddIdentityInstruction(opts AddIdentityOptions) (solana.Instruction, error) {
	profile, _, err := s.GetProfilePDA(opts.Username)
	if err != nil {
		return nil, err
	}
	pointer, _, err := s.GetPointerPDA(opts.Provider, opts.ProviderID)
	if err != nil {
		return nil, err
	}

	return newInstruction(s.programID, InstructionAddIdentity,
		addIdentityArgs{
			Provider:   opts.Provider,
			ProviderID: opts.ProviderID,
			Nickname:   opts.Nickname,
		},
		signer(opts.Authority),
		payer(opts.FeePayer),
		writable(profile),
		writable(pointer),
		readonly(solana.SystemProgramID),
	)
}

// AddIdentity returns a transaction linking an identity to a profile.
func (s *SDK) AddIdentity(ctx context.Context, opts AddIdentityOptions) (*solana.Transaction, error) {
	ix, err := s.AddIdentityInstruction(opts)
	if err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, ix, opts.FeePayer)
}

// CreateProfileInstruction builds the create_profile instruction. The
// authority's own Solana identity pointer is created alongside the profile.
func (s *SDK) CreateProfileInstruction(opts CreateProfileOptions) (solana.Instruction, error) {
	profile, _, err := s.GetProfilePDA(opts.Username)
	if err != nil {
		return nil, err
	}
	pointer, _, err := s.GetPointerPDA(ProviderSolana, opts.Authority.String())
	if err != nil {
		return nil, err
	}

	return newInstruction(s.programID, InstructionCreateProfile,
		createProfileArgs{
			Username:  opts.Username,
			AvatarURL: opts.AvatarURL,
		},
		signer(opts.Authority),
		payer(opts.FeePayer),
		writable(pointer),
		writable(profile),
		readonly(solana.SystemProgramID),
	)
}

// CreateProfile returns a transaction creating a profile.
func (s *SDK) CreateProfile(ctx context.Context, opts CreateProfileOptions) (*solana.Transaction, error) {
	ix, err := s.CreateProfileInstruction(opts)
	if err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, ix, opts.FeePayer)
}

// RemoveAuthorityInstruction builds the remove_authority instruction.
func (s *SDK) RemoveAuthorityInstruction(opts RemoveAuthorityOptions) (solana.Instruction, error) {
	profile, _, err := s.GetProfilePDA(opts.Username)
	if err != nil {
		return nil, err
	}

	return newInstruction(s.programID, InstructionRemoveAuthority,
		removeAuthorityArgs{AuthorityToRemove: opts.AuthorityToRemove},
		signer(opts.Authority),
		payer(opts.FeePayer),
		writable(profile),
	)
}

// RemoveAuthority returns a transaction removing a profile authority.
func (s *SDK) RemoveAuthority(ctx context.Context, opts RemoveAuthorityOptions) (*solana.Transaction, error) {
	ix, err := s.RemoveAuthorityInstruction(opts)
	if err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, ix, opts.FeePayer)
}

// RemoveIdentityInstruction builds the remove_identity instruction.
func (s *SDK) RemoveIdentityInstruction(opts RemoveIdentityOptions) (solana.Instruction, error) {
	profile, _, err := s.GetProfilePDA(opts.Username)
	if err != nil {
		return nil, err
	}
	pointer, _, err := s.GetPointerPDA(opts.Provider, opts.ProviderID)
	if err != nil {
		return nil, err
	}

	return newInstruction(s.programID, InstructionRemoveIdentity,
		removeIdentityArgs{ProviderID: opts.ProviderID},
		signer(opts.Authority),
		payer(opts.FeePayer),
		writable(profile),
		writable(pointer),
		readonly(solana.SystemProgramID),
	)
}

// RemoveIdentity returns a transaction unlinking an identity.
func (s *SDK) RemoveIdentity(ctx context.Context, opts RemoveIdentityOptions) (*solana.Transaction, error) {
	ix, err := s.RemoveIdentityInstruction(opts)
	if err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, ix, opts.FeePayer)
}

// UpdateAvatarURLInstruction builds the update_avatar_url instruction.
// The authority travels in the instruction args, not as a signer.
func (s *SDK) UpdateAvatarURLInstruction(opts UpdateAvatarURLOptions) (solana.Instruction, error) {
	profile, _, err := s.GetProfilePDA(opts.Username)
	if err != nil {
		return nil, err
	}

	return newInstruction(s.programID, InstructionUpdateAvatarURL,
		updateAvatarURLArgs{
			NewAvatarURL: opts.AvatarURL,
			Authority:    opts.Authority,
		},
		payer(opts.FeePayer),
		writable(profile),
	)
}

// UpdateAvatarURL returns a transaction replacing the avatar url.
func (s *SDK) UpdateAvatarURL(ctx context.Context, opts UpdateAvatarURLOptions) (*solana.Transaction, error) {
	ix, err := s.UpdateAvatarURLInstruction(opts)
	if err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, ix, opts.FeePayer)
}

// GetProfiles returns every profile account of the program.
func (s *SDK) GetProfiles(ctx context.Context) ([]Profile, error) {
	accounts, err := s.rpc.GetProgramAccounts(ctx, s.programID, profileDiscriminator[:])
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(accounts))
	for _, account := range accounts {
		profile, err := DecodeProfile(account.Data)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", account.PublicKey, err)
		}
		profile.PublicKey = account.PublicKey
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// GetPointers returns every pointer account of the program.
func (s *SDK) GetPointers(ctx context.Context) ([]Pointer, error) {
	accounts, err := s.rpc.GetProgramAccounts(ctx, s.programID, pointerDiscriminator[:])
	if err != nil {
		return nil, err
	}

	pointers := make([]Pointer, 0, len(accounts))
	for _, account := range accounts {
		pointer, err := DecodePointer(account.Data)
		if err != nil {
			return nil, fmt.Errorf("pointer %s: %w", account.PublicKey, err)
		}
		pointer.PublicKey = account.PublicKey
		pointers = append(pointers, *pointer)
	}
	return pointers, nil
}

// GetProfileByProvider resolves a provider identity through its pointer.
func (s *SDK) GetProfileByProvider(ctx context.Context, provider IdentityProvider, providerID string) (*Profile, error) {
	pointerPDA, _, err := s.GetPointerPDA(provider, providerID)
	if err != nil {
		return nil, err
	}

	pointer, err := s.GetPointer(ctx, pointerPDA)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, pointer.Profile)
}

// GetProfileByUsername fetches the profile of username.
func (s *SDK) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	profilePDA, _, err := s.GetProfilePDA(username)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, profilePDA)
}

// GetProfile fetches and decodes the profile at profilePDA.
func (s *SDK) GetProfile(ctx context.Context, profilePDA solana.PublicKey) (*Profile, error) {
	data, err := s.rpc.GetAccountData(ctx, profilePDA)
	if err != nil {
		return nil, err
	}

	profile, err := DecodeProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profilePDA, err)
	}
	profile.PublicKey = profilePDA

	s.log.Debug().
		Str("profile", profilePDA.String()).
		Str("username", profile.Username).
		Msg("fetched profile")
	return profile, nil
}

// GetPointer fetches and decodes the pointer at pointerPDA.
func (s *SDK) GetPointer(ctx context.Context, pointerPDA solana.PublicKey) (*Pointer, error) {
	data, err := s.rpc.GetAccountData(ctx, pointerPDA)
	if err != nil {
		return nil, err
	}

	pointer, err := DecodePointer(data)
	if err != nil {
		return nil, fmt.Errorf("pointer %s: %w", pointerPDA, err)
	}
	pointer.PublicKey = pointerPDA
	return pointer, nil
}

// GetPointerNullable is GetPointer returning (nil, nil) when the pointer
// account does not exist.
func (s *SDK) GetPointerNullable(ctx context.Context, pointerPDA solana.PublicKey) (*Pointer, error) {
	pointer, err := s.GetPointer(ctx, pointerPDA)
	if errors.Is(err, api.ErrAccountNotFound) {
		return nil, nil
	}
	return pointer, err
}

// GetProgramAccount returns the parsed account of the program itself.
func (s *SDK) GetProgramAccount(ctx context.Context) (*api.ParsedAccount, error) {
	return s.rpc.GetParsedAccountInfo(ctx, s.programID)
}

// createTransaction compiles ix into a version 0 transaction paid by feePayer.
func (s *SDK) createTransaction(ctx context.Context, ix solana.Instruction, feePayer solana.PublicKey) (*solana.Transaction, error) {
	blockhash, err := s.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		blockhash,
		solana.TransactionPayer(feePayer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	tx.Message.SetVersion(solana.MessageVersionV0)

	s.log.Debug().
		Str("fee_payer", feePayer.String()).
		Str("blockhash", blockhash.String()).
		Msg("transaction built")
	return tx, nil
}
