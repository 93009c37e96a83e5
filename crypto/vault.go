// Package crypto seals the keystore mnemonic with a password.
//
// The key is derived with scrypt and the payload is sealed with AES-256-GCM;
// the GCM tag authenticates the password, so a wrong password is reported
// as ErrInvalidPassword rather than as garbage plaintext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/scrypt"
)

// VaultVersion is written into every new vault payload.
const VaultVersion = 2

const (
	saltSize = 32
	keyLen   = 32
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrVaultNotFound   = errors.New("vault not found")
)

// KDFParams are the scrypt cost parameters stored with a vault.
type KDFParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// DefaultKDFParams are used for new vaults.
var DefaultKDFParams = KDFParams{N: 1 << 15, R: 8, P: 1}

// Vault is the on-disk form of the sealed mnemonic.
type Vault struct {
	KDF   KDFParams `json:"kdf"`
	Salt  []byte    `json:"salt"`
	Nonce []byte    `json:"nonce"`
	Data  []byte    `json:"data"`
}

type payload struct {
	Mnemonic string `json:"mnemonic"`
	Version  int    `json:"version"`
}

// NewVault seals mnemonic with password using DefaultKDFParams.
func NewVault(mnemonic, password string) (*Vault, error) {
	return NewVaultWithParams(mnemonic, password, DefaultKDFParams)
}

// NewVaultWithParams seals mnemonic with password using params.
func NewVaultWithParams(mnemonic, password string, params KDFParams) (*Vault, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(password, salt, params)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	plain, err := json.Marshal(payload{Mnemonic: mnemonic, Version: VaultVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vault data: %w", err)
	}
	defer clearBytes(plain)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return &Vault{
		KDF:   params,
		Salt:  salt,
		Nonce: nonce,
		Data:  aead.Seal(nil, nonce, plain, nil),
	}, nil
}

// Decrypt opens the vault and returns the mnemonic.
func (v *Vault) Decrypt(password string) (string, error) {
	params := v.KDF
	if params.N == 0 {
		params = DefaultKDFParams
	}

	key, err := deriveKey(password, v.Salt, params)
	if err != nil {
		return "", err
	}
	defer clearBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	plain, err := aead.Open(nil, v.Nonce, v.Data, nil)
	if err != nil {
		return "", ErrInvalidPassword
	}
	defer clearBytes(plain)

	var p payload
	if err := json.Unmarshal(plain, &p); err != nil {
		return "", fmt.Errorf("failed to deserialize vault data: %w", err)
	}
	return p.Mnemonic, nil
}

// ValidatePassword reports whether password opens the vault.
func (v *Vault) ValidatePassword(password string) bool {
	_, err := v.Decrypt(password)
	return err == nil
}

// Save writes the vault to path with owner-only permissions.
func (v *Vault) Save(path string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}
	return nil
}

// LoadVault reads a vault written by Save.
func LoadVault(path string) (*Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrVaultNotFound
		}
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	var v Vault
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault: %w", err)
	}
	return &v, nil
}

func deriveKey(password string, salt []byte, params KDFParams) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, keyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation failed: %w", err)
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
