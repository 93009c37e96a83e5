package wallet

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
)

const hardenedOffset = 0x80000000

// hdKey is a SLIP-0010 ed25519 extended key.
type hdKey struct {
	key       []byte
	chainCode []byte
}

// deriveSolanaKey derives the ed25519 key at path from a bip39 seed. Only
// hardened path segments exist for ed25519.
func deriveSolanaKey(seed []byte, path string) (solana.PrivateKey, error) {
	indexes, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	k := newMasterKey(seed)
	for _, index := range indexes {
		k = k.child(index)
	}

	return solana.PrivateKey(ed25519.NewKeyFromSeed(k.key)), nil
}

func newMasterKey(seed []byte) hdKey {
	sum := hmacSHA512([]byte("ed25519 seed"), seed)
	return hdKey{key: sum[:32], chainCode: sum[32:]}
}

func (k hdKey) child(index uint32) hdKey {
	data := make([]byte, 0, 1+len(k.key)+4)
	data = append(data, 0x00)
	data = append(data, k.key...)
	data = binary.BigEndian.AppendUint32(data, index)

	sum := hmacSHA512(k.chainCode, data)
	return hdKey{key: sum[:32], chainCode: sum[32:]}
}

func hmacSHA512(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// parsePath parses "m/44'/501'/0'/0'" into hardened indexes.
func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path: %q", path)
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		index, err := parseChildNum(part)
		if err != nil {
			return nil, fmt.Errorf("invalid derivation path %q: %w", path, err)
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

func parseChildNum(s string) (uint32, error) {
	trimmed, ok := strings.CutSuffix(s, "'")
	if !ok {
		return 0, fmt.Errorf("segment %q is not hardened", s)
	}

	n, err := strconv.ParseUint(trimmed, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("segment %q: %w", s, err)
	}
	return uint32(n) + hardenedOffset, nil
}
