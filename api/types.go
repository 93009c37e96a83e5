package api

import (
	"encoding/json"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrAccountNotFound is returned when an account does not exist on chain.
var ErrAccountNotFound = errors.New("account not found")

// KeyedAccount is a program-owned account returned by a program scan.
type KeyedAccount struct {
	PublicKey solana.PublicKey
	Owner     solana.PublicKey
	Lamports  uint64
	Data      []byte
}

// ParsedAccount is the jsonParsed view of an account.
type ParsedAccount struct {
	PublicKey  solana.PublicKey `json:"pubkey"`
	Owner      solana.PublicKey `json:"owner"`
	Lamports   uint64           `json:"lamports"`
	Executable bool             `json:"executable"`
	Parsed     json.RawMessage  `json:"parsed,omitempty"`
}
