package sdk

import (
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Borsh primitives shared by instruction args and account layouts.
// Strings and vectors carry a little-endian u32 length prefix.

func writeString(enc *bin.Encoder, s string) error {
	if err := enc.WriteUint32(uint32(len(s)), binary.LittleEndian); err != nil {
		return err
	}
	return enc.WriteBytes([]byte(s), false)
}

func readString(dec *bin.Decoder) (string, error) {
	n, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return "", err
	}
	b, err := dec.ReadNBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("string of length %d: %w", n, err)
	}
	return string(b), nil
}

func writePublicKey(enc *bin.Encoder, key solana.PublicKey) error {
	return enc.WriteBytes(key[:], false)
}

func readPublicKey(dec *bin.Decoder) (solana.PublicKey, error) {
	b, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func writePublicKeys(enc *bin.Encoder, keys []solana.PublicKey) error {
	if err := enc.WriteUint32(uint32(len(keys)), binary.LittleEndian); err != nil {
		return err
	}
	for _, key := range keys {
		if err := writePublicKey(enc, key); err != nil {
			return err
		}
	}
	return nil
}

func readPublicKeys(dec *bin.Decoder) ([]solana.PublicKey, error) {
	n, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	keys := make([]solana.PublicKey, 0, capHint(n))
	for i := uint32(0); i < n; i++ {
		key, err := readPublicKey(dec)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// capHint bounds preallocation for length prefixes read from untrusted data.
func capHint(n uint32) int {
	if n > 64 {
		return 64
	}
	return int(n)
}
