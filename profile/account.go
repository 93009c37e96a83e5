// Package profile is the data-access layer for a single profile account.
//
// A ProgramAccount caches the profile read, and runs the five profile
// mutations: build the transaction with the SDK, hand it to a Signer,
// announce the explorer link and refetch the profile.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/chinmay1088/pubkey-profile/query"
	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/gagliardetto/solana-go"
)

// keyPrefix scopes every query and mutation key of this package.
const keyPrefix = "pubkey-profile"

// Mutation names.
const (
	MutationUpdateAvatarURL = "updateAvatarUrl"
	MutationAddAuthority    = "addAuthority"
	MutationRemoveAuthority = "removeAuthority"
	MutationAddIdentity     = "addIdentity"
	MutationRemoveIdentity  = "removeIdentity"
)

// TransactionLinkLabel labels the explorer link announced after a mutation.
const TransactionLinkLabel = "View transaction"

type keyScope struct {
	Cluster    api.Cluster      `json:"cluster"`
	ProfilePDA solana.PublicKey `json:"profilePda"`
}

// Config wires a ProgramAccount.
type Config struct {
	SDK      *sdk.SDK
	Query    *query.Client
	Signer   Signer
	Notifier Notifier
	Cluster  api.Cluster
	// ExplorerURL maps an explorer path such as "tx/<sig>" to a link.
	ExplorerURL func(path string) string
	ProfilePDA  solana.PublicKey
	Logger      *logger.Logger
}

// ProgramAccount gives access to one profile account.
type ProgramAccount struct {
	sdk         *sdk.SDK
	query       *query.Client
	signer      Signer
	notifier    Notifier
	explorerURL func(string) string
	profilePDA  solana.PublicKey
	scope       keyScope
	log         *logger.Logger

	updateAvatarURL *query.Mutation[sdk.UpdateAvatarURLOptions, solana.Signature]
	addAuthority    *query.Mutation[sdk.AddAuthorityOptions, solana.Signature]
	removeAuthority *query.Mutation[sdk.RemoveAuthorityOptions, solana.Signature]
	addIdentity     *query.Mutation[sdk.AddIdentityOptions, solana.Signature]
	removeIdentity  *query.Mutation[sdk.RemoveIdentityOptions, solana.Signature]
}

// NewProgramAccount creates the data-access layer for cfg.ProfilePDA.
func NewProgramAccount(cfg Config) (*ProgramAccount, error) {
	switch {
	case cfg.SDK == nil:
		return nil, errors.New("profile: sdk is required")
	case cfg.Query == nil:
		return nil, errors.New("profile: query client is required")
	case cfg.Signer == nil:
		return nil, errors.New("profile: signer is required")
	case cfg.ProfilePDA.IsZero():
		return nil, errors.New("profile: profile address is required")
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	explorerURL := cfg.ExplorerURL
	if explorerURL == nil {
		explorerURL = func(path string) string {
			return api.ExplorerURL(cfg.Cluster, "", path)
		}
	}

	a := &ProgramAccount{
		sdk:         cfg.SDK,
		query:       cfg.Query,
		signer:      cfg.Signer,
		notifier:    notifier,
		explorerURL: explorerURL,
		profilePDA:  cfg.ProfilePDA,
		scope:       keyScope{Cluster: cfg.Cluster, ProfilePDA: cfg.ProfilePDA},
		log:         logger.OrNop(cfg.Logger).With("profile", cfg.ProfilePDA.String()),
	}

	a.updateAvatarURL = newSignatureMutation(a, MutationUpdateAvatarURL, a.sdk.UpdateAvatarURL, false)
	a.addAuthority = newSignatureMutation(a, MutationAddAuthority, a.sdk.AddAuthority, false)
	a.removeAuthority = newSignatureMutation(a, MutationRemoveAuthority, a.sdk.RemoveAuthority, false)
	a.addIdentity = newSignatureMutation(a, MutationAddIdentity, a.sdk.AddIdentity, true)
	a.removeIdentity = newSignatureMutation(a, MutationRemoveIdentity, a.sdk.RemoveIdentity, true)

	return a, nil
}

// ProfilePDA returns the address of the profile account.
func (a *ProgramAccount) ProfilePDA() solana.PublicKey {
	return a.profilePDA
}

// QueryKey is the cache key of the profile read.
func (a *ProgramAccount) QueryKey() query.Key {
	return query.Key{keyPrefix, "fetchProfile", a.scope}
}

// MutationKey is the key of the named mutation.
func (a *ProgramAccount) MutationKey(name string) query.Key {
	return query.Key{keyPrefix, name, a.scope}
}

// Profile returns the profile, from cache when fresh.
func (a *ProgramAccount) Profile(ctx context.Context) (*sdk.Profile, error) {
	return query.Fetch(ctx, a.query, a.QueryKey(), a.fetchProfile)
}

// Refetch drops the cached profile and reads it again.
func (a *ProgramAccount) Refetch(ctx context.Context) (*sdk.Profile, error) {
	return query.Refetch(ctx, a.query, a.QueryKey(), a.fetchProfile)
}

func (a *ProgramAccount) fetchProfile(ctx context.Context) (*sdk.Profile, error) {
	return a.sdk.GetProfile(ctx, a.profilePDA)
}

// Authorities of the cached profile; nil until the profile was fetched.
func (a *ProgramAccount) Authorities() []solana.PublicKey {
	if p, ok := query.Peek[*sdk.Profile](a.query, a.QueryKey()); ok && p != nil {
		return p.Authorities
	}
	return nil
}

// Username of the cached profile; empty until the profile was fetched.
func (a *ProgramAccount) Username() string {
	if p, ok := query.Peek[*sdk.Profile](a.query, a.QueryKey()); ok && p != nil {
		return p.Username
	}
	return ""
}

// UpdateAvatarURL replaces the avatar and returns the transaction signature.
func (a *ProgramAccount) UpdateAvatarURL(ctx context.Context, opts sdk.UpdateAvatarURLOptions) (solana.Signature, error) {
	return a.updateAvatarURL.Run(ctx, opts)
}

// AddAuthority adds an authority to the profile.
func (a *ProgramAccount) AddAuthority(ctx context.Context, opts sdk.AddAuthorityOptions) (solana.Signature, error) {
	return a.addAuthority.Run(ctx, opts)
}

// RemoveAuthority removes an authority from the profile.
func (a *ProgramAccount) RemoveAuthority(ctx context.Context, opts sdk.RemoveAuthorityOptions) (solana.Signature, error) {
	return a.removeAuthority.Run(ctx, opts)
}

// AddIdentity links an identity to the profile.
func (a *ProgramAccount) AddIdentity(ctx context.Context, opts sdk.AddIdentityOptions) (solana.Signature, error) {
	return a.addIdentity.Run(ctx, opts)
}

// RemoveIdentity unlinks an identity from the profile.
func (a *ProgramAccount) RemoveIdentity(ctx context.Context, opts sdk.RemoveIdentityOptions) (solana.Signature, error) {
	return a.removeIdentity.Run(ctx, opts)
}

// MutationStates returns the last state of every mutation, by name.
func (a *ProgramAccount) MutationStates() map[string]query.MutationState[solana.Signature] {
	return map[string]query.MutationState[solana.Signature]{
		MutationUpdateAvatarURL: a.updateAvatarURL.State(),
		MutationAddAuthority:    a.addAuthority.State(),
		MutationRemoveAuthority: a.removeAuthority.State(),
		MutationAddIdentity:     a.addIdentity.State(),
		MutationRemoveIdentity:  a.removeIdentity.State(),
	}
}

// newSignatureMutation builds a mutation that signs the transaction built
// by build. Identity mutations refetch before announcing the link; the
// others announce first.
func newSignatureMutation[In any](
	a *ProgramAccount,
	name string,
	build func(context.Context, In) (*solana.Transaction, error),
	refetchFirst bool,
) *query.Mutation[In, solana.Signature] {
	log := a.log.With("mutation", name)

	return &query.Mutation[In, solana.Signature]{
		Key: a.MutationKey(name),
		Fn: func(ctx context.Context, in In) (solana.Signature, error) {
			tx, err := build(ctx, in)
			if err != nil {
				return solana.Signature{}, fmt.Errorf("%s: %w", name, err)
			}
			sig, err := a.signer.SignAndConfirm(ctx, tx)
			if err != nil {
				return solana.Signature{}, fmt.Errorf("%s: %w", name, err)
			}
			log.Info().Str("signature", sig.String()).Msg("transaction confirmed")
			return sig, nil
		},
		OnSuccess: func(ctx context.Context, sig solana.Signature) error {
			link := a.explorerURL("tx/" + sig.String())
			if !refetchFirst {
				a.notifier.Link(TransactionLinkLabel, link)
			}
			if _, err := a.Refetch(ctx); err != nil {
				return fmt.Errorf("%s: refetch profile: %w", name, err)
			}
			if refetchFirst {
				a.notifier.Link(TransactionLinkLabel, link)
			}
			return nil
		},
		OnError: func(_ context.Context, err error) {
			log.Error().Err(err).Msg("mutation failed")
			a.notifier.Error(fmt.Sprintf("Error: %v", err))
		},
	}
}

type nopNotifier struct{}

func (nopNotifier) Link(string, string) {}
func (nopNotifier) Error(string)        {}
