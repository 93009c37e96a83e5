// Package solana holds Solana helpers shared by the CLI: address parsing,
// SOL amounts and transaction signing.
package solana

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

var ErrMissingSigner = errors.New("missing signer")

var lamportsPerSOL = decimal.NewFromInt(LamportsPerSOL)

// ParseAddress parses a base58 public key with a friendlier error for the
// characters base58 leaves out.
func ParseAddress(address string) (solana.PublicKey, error) {
	for i, c := range address {
		if c == '0' || c == 'O' || c == 'I' || c == 'l' {
			return solana.PublicKey{}, fmt.Errorf("invalid character '%c' at position %d in Solana address. Solana addresses use base58 encoding which doesn't include 0, O, I, or l characters", c, i)
		}
	}

	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid Solana address (%s): %w", address, err)
	}
	return pubKey, nil
}

// ValidateBase58 reports whether s decodes to exactly 32 bytes.
func ValidateBase58(s string) bool {
	if s == "" {
		return false
	}
	b, err := base58.Decode(s)
	return err == nil && len(b) == 32
}

// LamportsToSOL converts lamports to SOL without rounding.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), 0).Div(lamportsPerSOL)
}

// FormatBalance renders lamports as a SOL amount with nine decimals.
func FormatBalance(lamports uint64) string {
	return LamportsToSOL(lamports).StringFixed(9) + " SOL"
}

// RequiredSigners lists the accounts that must sign tx.
func RequiredSigners(tx *solana.Transaction) []solana.PublicKey {
	n := int(tx.Message.Header.NumRequiredSignatures)
	if n > len(tx.Message.AccountKeys) {
		n = len(tx.Message.AccountKeys)
	}
	return tx.Message.AccountKeys[:n]
}

// Sign signs tx with keys. Every required signer must be among keys.
func Sign(tx *solana.Transaction, keys ...solana.PrivateKey) error {
	for _, required := range RequiredSigners(tx) {
		if findKey(keys, required) == nil {
			return fmt.Errorf("%w: %s must sign this transaction", ErrMissingSigner, required)
		}
	}

	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		return findKey(keys, key)
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	return nil
}

// Encode serializes tx and base58-encodes it.
func Encode(tx *solana.Transaction) (string, error) {
	serialized, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return base58.Encode(serialized), nil
}

func findKey(keys []solana.PrivateKey, pub solana.PublicKey) *solana.PrivateKey {
	for i := range keys {
		if keys[i].PublicKey().Equals(pub) {
			return &keys[i]
		}
	}
	return nil
}
