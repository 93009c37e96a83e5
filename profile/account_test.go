package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/chinmay1088/pubkey-profile/mock"
	"github.com/chinmay1088/pubkey-profile/query"
	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	account  *ProgramAccount
	rpc      *mock.MockRPC
	signer   *mock.MockSigner
	notifier *mock.MockNotifier
	profile  sdk.Profile
	pda      solana.PublicKey
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	rpc := mock.NewMockRPC(ctrl)
	client, err := sdk.New(sdk.Options{RPC: rpc})
	require.NoError(t, err)

	cache, err := query.NewClient(query.Config{})
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	pda, _, err := client.GetProfilePDA("alice")
	require.NoError(t, err)

	f := &fixture{
		rpc:      rpc,
		signer:   mock.NewMockSigner(ctrl),
		notifier: mock.NewMockNotifier(ctrl),
		pda:      pda,
		profile: sdk.Profile{
			Bump:        254,
			Username:    "alice",
			AvatarURL:   "https://example.com/alice.png",
			FeePayer:    solana.NewWallet().PublicKey(),
			Authorities: []solana.PublicKey{solana.NewWallet().PublicKey()},
		},
	}

	f.account, err = NewProgramAccount(Config{
		SDK:         client,
		Query:       cache,
		Signer:      f.signer,
		Notifier:    f.notifier,
		Cluster:     api.ClusterDevnet,
		ExplorerURL: func(path string) string { return "https://explorer.test/" + path },
		ProfilePDA:  pda,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) accountData(t *testing.T) []byte {
	t.Helper()
	data, err := sdk.EncodeProfileAccount(f.profile)
	require.NoError(t, err)
	return data
}

func TestNewProgramAccount_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, err := sdk.New(sdk.Options{RPC: mock.NewMockRPC(ctrl)})
	require.NoError(t, err)
	cache, err := query.NewClient(query.Config{})
	require.NoError(t, err)
	defer cache.Close()
	signer := mock.NewMockSigner(ctrl)
	pda := solana.NewWallet().PublicKey()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing sdk", Config{Query: cache, Signer: signer, ProfilePDA: pda}},
		{"missing query", Config{SDK: client, Signer: signer, ProfilePDA: pda}},
		{"missing signer", Config{SDK: client, Query: cache, ProfilePDA: pda}},
		{"missing profile", Config{SDK: client, Query: cache, Signer: signer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProgramAccount(tt.cfg)
			assert.Error(t, err)
		})
	}

	a, err := NewProgramAccount(Config{SDK: client, Query: cache, Signer: signer, ProfilePDA: pda})
	require.NoError(t, err)
	assert.Equal(t, pda, a.ProfilePDA())
}

func TestProfile_Cached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.rpc.EXPECT().GetAccountData(gomock.Any(), f.pda).Return(f.accountData(t), nil).Times(1)

	assert.Nil(t, f.account.Authorities())
	assert.Empty(t, f.account.Username())

	p, err := f.account.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, f.pda, p.PublicKey)

	p, err = f.account.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)

	assert.Equal(t, f.profile.Authorities, f.account.Authorities())
	assert.Equal(t, "alice", f.account.Username())
}

func TestProfile_NotFound(t *testing.T) {
	f := newFixture(t)

	f.rpc.EXPECT().GetAccountData(gomock.Any(), f.pda).Return(nil, api.ErrAccountNotFound)

	_, err := f.account.Profile(context.Background())
	assert.ErrorIs(t, err, api.ErrAccountNotFound)
}

func TestQueryKey(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t,
		`["pubkey-profile","fetchProfile",{"cluster":"devnet","profilePda":"`+f.pda.String()+`"}]`,
		f.account.QueryKey().String(),
	)
	assert.Equal(t,
		`["pubkey-profile","addAuthority",{"cluster":"devnet","profilePda":"`+f.pda.String()+`"}]`,
		f.account.MutationKey(MutationAddAuthority).String(),
	)
}

func TestAddAuthority_LinkThenRefetch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sig := solana.Signature{1, 2, 3}
	newAuthority := solana.NewWallet().PublicKey()

	f.rpc.EXPECT().GetLatestBlockhash(gomock.Any()).Return(solana.Hash{9}, nil)
	f.signer.EXPECT().SignAndConfirm(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
			assert.Equal(t, f.profile.FeePayer, tx.Message.AccountKeys[0])
			return sig, nil
		})

	f.profile.Authorities = append(f.profile.Authorities, newAuthority)
	gomock.InOrder(
		f.notifier.EXPECT().Link(TransactionLinkLabel, "https://explorer.test/tx/"+sig.String()),
		f.rpc.EXPECT().GetAccountData(gomock.Any(), f.pda).Return(f.accountData(t), nil),
	)

	got, err := f.account.AddAuthority(ctx, sdk.AddAuthorityOptions{
		NewAuthority: newAuthority,
		Authority:    f.profile.Authorities[0],
		FeePayer:     f.profile.FeePayer,
		Username:     "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, sig, got)
	assert.Contains(t, f.account.Authorities(), newAuthority)

	state := f.account.MutationStates()[MutationAddAuthority]
	assert.Equal(t, query.StatusSuccess, state.Status)
	assert.Equal(t, sig, state.Data)
}

func TestAddIdentity_RefetchThenLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sig := solana.Signature{4, 5, 6}

	f.rpc.EXPECT().GetLatestBlockhash(gomock.Any()).Return(solana.Hash{9}, nil)
	f.signer.EXPECT().SignAndConfirm(gomock.Any(), gomock.Any()).Return(sig, nil)

	f.profile.Identities = []sdk.Identity{{Provider: sdk.ProviderDiscord, ProviderID: "123", Name: "alice#1"}}
	gomock.InOrder(
		f.rpc.EXPECT().GetAccountData(gomock.Any(), f.pda).Return(f.accountData(t), nil),
		f.notifier.EXPECT().Link(TransactionLinkLabel, "https://explorer.test/tx/"+sig.String()),
	)

	_, err := f.account.AddIdentity(ctx, sdk.AddIdentityOptions{
		Authority:  f.profile.Authorities[0],
		FeePayer:   f.profile.FeePayer,
		Username:   "alice",
		ProviderID: "123",
		Provider:   sdk.ProviderDiscord,
		Nickname:   "alice#1",
	})
	require.NoError(t, err)

	p, err := f.account.Profile(ctx)
	require.NoError(t, err)
	_, ok := p.Identity(sdk.ProviderDiscord, "123")
	assert.True(t, ok)
}

func TestMutation_SignerErrorNotifies(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("user rejected")

	f.rpc.EXPECT().GetLatestBlockhash(gomock.Any()).Return(solana.Hash{9}, nil)
	f.signer.EXPECT().SignAndConfirm(gomock.Any(), gomock.Any()).Return(solana.Signature{}, boom)
	f.notifier.EXPECT().Error("Error: removeAuthority: user rejected")

	_, err := f.account.RemoveAuthority(context.Background(), sdk.RemoveAuthorityOptions{
		AuthorityToRemove: solana.NewWallet().PublicKey(),
		Authority:         f.profile.Authorities[0],
		FeePayer:          f.profile.FeePayer,
		Username:          "alice",
	})
	assert.ErrorIs(t, err, boom)

	state := f.account.MutationStates()[MutationRemoveAuthority]
	assert.Equal(t, query.StatusError, state.Status)
	assert.ErrorIs(t, state.Err, boom)
}

func TestMutation_BuildErrorNotifies(t *testing.T) {
	f := newFixture(t)

	f.notifier.EXPECT().Error(gomock.Any())

	_, err := f.account.RemoveIdentity(context.Background(), sdk.RemoveIdentityOptions{
		Authority:  f.profile.Authorities[0],
		FeePayer:   f.profile.FeePayer,
		Username:   "alice",
		ProviderID: "123",
		Provider:   sdk.IdentityProvider(42),
	})
	assert.ErrorIs(t, err, sdk.ErrUnknownProvider)
}

func TestUpdateAvatarURL_RefetchFailure(t *testing.T) {
	f := newFixture(t)
	sig := solana.Signature{7}

	f.rpc.EXPECT().GetLatestBlockhash(gomock.Any()).Return(solana.Hash{9}, nil)
	f.signer.EXPECT().SignAndConfirm(gomock.Any(), gomock.Any()).Return(sig, nil)
	f.notifier.EXPECT().Link(TransactionLinkLabel, gomock.Any())
	f.rpc.EXPECT().GetAccountData(gomock.Any(), f.pda).Return(nil, errors.New("rpc down"))
	f.notifier.EXPECT().Error(gomock.Any())

	got, err := f.account.UpdateAvatarURL(context.Background(), sdk.UpdateAvatarURLOptions{
		AvatarURL: "https://example.com/new.png",
		Authority: f.profile.Authorities[0],
		FeePayer:  f.profile.FeePayer,
		Username:  "alice",
	})
	require.Error(t, err)
	assert.Equal(t, sig, got)
}
