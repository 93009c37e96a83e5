package wallet

import (
	"context"
	"fmt"
	"time"

	solanautil "github.com/chinmay1088/pubkey-profile/chains/solana"
	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/gagliardetto/solana-go"
)

//go:generate mockgen -source=signer.go -destination=../mock/wallet_mock.go -package=mock

// DefaultConfirmTimeout bounds the wait for confirmation.
const DefaultConfirmTimeout = 90 * time.Second

// Sender submits signed transactions. api.Client implements it.
type Sender interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	ConfirmTransaction(ctx context.Context, sig solana.Signature) error
}

// Signer signs with a keystore key, submits and waits for confirmation.
type Signer struct {
	key     solana.PrivateKey
	sender  Sender
	timeout time.Duration
	log     *logger.Logger
}

// NewSigner creates a signer. A zero timeout selects DefaultConfirmTimeout.
func NewSigner(key solana.PrivateKey, sender Sender, timeout time.Duration, l *logger.Logger) *Signer {
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	return &Signer{
		key:     key,
		sender:  sender,
		timeout: timeout,
		log:     logger.OrNop(l).With("signer", key.PublicKey().String()),
	}
}

// PublicKey is the signing account.
func (s *Signer) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// SignAndConfirm signs tx, submits it and waits until it is confirmed.
func (s *Signer) SignAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if err := solanautil.Sign(tx, s.key); err != nil {
		return solana.Signature{}, err
	}

	sig, err := s.sender.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	s.log.Debug().Str("signature", sig.String()).Msg("waiting for confirmation")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sender.ConfirmTransaction(ctx, sig); err != nil {
		return sig, fmt.Errorf("confirm %s: %w", sig, err)
	}
	return sig, nil
}
