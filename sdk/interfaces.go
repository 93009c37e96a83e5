package sdk

//go:generate mockgen -source=interfaces.go -destination=../mock/rpc_mock.go -package=mock

import (
	"context"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/gagliardetto/solana-go"
)

// RPC is the transport the SDK reads accounts and blockhashes through.
// *api.Client satisfies it.
type RPC interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	GetAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
	GetProgramAccounts(ctx context.Context, program solana.PublicKey, discriminator []byte) ([]api.KeyedAccount, error)
	GetParsedAccountInfo(ctx context.Context, account solana.PublicKey) (*api.ParsedAccount, error)
}
