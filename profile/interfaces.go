package profile

//go:generate mockgen -source=interfaces.go -destination=../mock/profile_mock.go -package=mock

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Signer signs a transaction, submits it and waits for confirmation.
// wallet.Signer is the CLI implementation.
type Signer interface {
	SignAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Notifier surfaces mutation outcomes to the user.
type Notifier interface {
	Link(label, link string)
	Error(message string)
}
