// Package wallet is the local keystore of the CLI: a bip39 mnemonic sealed
// in an encrypted vault, a short-lived unlock session and the Solana key
// derived for the active cluster.
package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/chinmay1088/pubkey-profile/crypto"
	"github.com/chinmay1088/pubkey-profile/logger"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"
)

const (
	// SolDerivationPath is used on mainnet-beta.
	SolDerivationPath = "m/44'/501'/0'/0'"
	// SolTestDerivationPath is used on every other cluster so test keys
	// never hold mainnet funds.
	SolTestDerivationPath = "m/44'/501'/0'/1'"

	// SessionDuration is how long an unlock lasts.
	SessionDuration = 30 * time.Minute

	VaultFile   = "wallet.vault"
	SessionFile = "session.json"
)

var (
	ErrLocked          = errors.New("wallet is locked. Run 'pubkey-profile unlock' first")
	ErrNoWallet        = errors.New("no wallet found. Run 'pubkey-profile init' first")
	ErrWalletExists    = errors.New("wallet already exists")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// SessionData is the unlock session persisted between CLI runs.
type SessionData struct {
	Token      string      `json:"token"`
	Mnemonic   string      `json:"mnemonic"`
	Expiration time.Time   `json:"expiration"`
	Cluster    api.Cluster `json:"cluster"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithKDFParams sets the scrypt parameters of new vaults.
func WithKDFParams(p crypto.KDFParams) Option {
	return func(m *Manager) { m.kdf = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = logger.OrNop(l) }
}

// Manager handles the keystore of one data directory.
type Manager struct {
	vaultPath   string
	sessionPath string
	cluster     api.Cluster
	kdf         crypto.KDFParams
	now         func() time.Time
	log         *logger.Logger

	mu       sync.Mutex
	mnemonic string
	unlocked bool
}

// NewManager creates a manager for the vault under home. cluster selects
// the derivation path and scopes the session.
func NewManager(home string, cluster api.Cluster, opts ...Option) *Manager {
	m := &Manager{
		vaultPath:   filepath.Join(home, VaultFile),
		sessionPath: filepath.Join(home, SessionFile),
		cluster:     cluster,
		kdf:         crypto.DefaultKDFParams,
		now:         time.Now,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cluster returns the cluster the manager derives keys for.
func (m *Manager) Cluster() api.Cluster {
	return m.cluster
}

// DerivationPath returns the Solana derivation path of the cluster.
func (m *Manager) DerivationPath() string {
	if m.cluster == api.ClusterMainnet {
		return SolDerivationPath
	}
	return SolTestDerivationPath
}

// VaultExists reports whether a vault file exists.
func (m *Manager) VaultExists() bool {
	_, err := os.Stat(m.vaultPath)
	return err == nil
}

// Initialize creates a wallet with a fresh 24-word mnemonic and unlocks it.
func (m *Manager) Initialize(password string) (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	if err := m.ImportFromMnemonic(mnemonic, password); err != nil {
		return "", err
	}
	return mnemonic, nil
}

// ImportFromMnemonic seals an existing mnemonic and unlocks it.
func (m *Manager) ImportFromMnemonic(mnemonic, password string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return ErrInvalidMnemonic
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	vault, err := crypto.NewVaultWithParams(mnemonic, password, m.kdf)
	if err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.vaultPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := vault.Save(m.vaultPath); err != nil {
		return err
	}

	m.log.Debug().Str("vault", m.vaultPath).Msg("vault written")
	return m.open(mnemonic)
}

// Unlock opens the vault with password and starts a session. A live
// session for the same cluster unlocks without the password.
func (m *Manager) Unlock(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadSession() {
		return nil
	}

	vault, err := crypto.LoadVault(m.vaultPath)
	if errors.Is(err, crypto.ErrVaultNotFound) {
		return ErrNoWallet
	}
	if err != nil {
		return err
	}

	mnemonic, err := vault.Decrypt(password)
	if err != nil {
		return err
	}
	return m.open(mnemonic)
}

// Lock forgets the mnemonic and removes the session.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unlocked = false
	m.mnemonic = ""
	m.clearSession()
}

// IsUnlocked reports whether the mnemonic is available.
func (m *Manager) IsUnlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ensureUnlocked() == nil
}

// GetMnemonic returns the mnemonic of an unlocked wallet.
func (m *Manager) GetMnemonic() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureUnlocked(); err != nil {
		return "", err
	}
	return m.mnemonic, nil
}

// SolanaKey derives the Solana key for the manager's cluster.
func (m *Manager) SolanaKey() (solana.PrivateKey, error) {
	mnemonic, err := m.GetMnemonic()
	if err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(mnemonic, "")
	key, err := deriveSolanaKey(seed, m.DerivationPath())
	if err != nil {
		return nil, fmt.Errorf("failed to derive Solana key: %w", err)
	}
	return key, nil
}

// SolanaAddress returns the public key of SolanaKey.
func (m *Manager) SolanaAddress() (solana.PublicKey, error) {
	key, err := m.SolanaKey()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}

func (m *Manager) ensureUnlocked() error {
	if m.unlocked && m.mnemonic != "" {
		return nil
	}
	if m.loadSession() {
		return nil
	}
	if !m.VaultExists() {
		return ErrNoWallet
	}
	return ErrLocked
}

func (m *Manager) open(mnemonic string) error {
	m.mnemonic = mnemonic
	m.unlocked = true
	if err := m.createSession(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (m *Manager) createSession() error {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}

	data, err := json.Marshal(SessionData{
		Token:      hex.EncodeToString(token),
		Mnemonic:   m.mnemonic,
		Expiration: m.now().Add(SessionDuration),
		Cluster:    m.cluster,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.sessionPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// loadSession restores a live session of the same cluster. Corrupt and
// expired sessions are removed.
func (m *Manager) loadSession() bool {
	data, err := os.ReadFile(m.sessionPath)
	if err != nil {
		return false
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		m.clearSession()
		return false
	}
	if m.now().After(session.Expiration) {
		m.log.Debug().Msg("session expired")
		m.clearSession()
		return false
	}
	if session.Cluster != m.cluster || session.Mnemonic == "" {
		return false
	}

	m.mnemonic = session.Mnemonic
	m.unlocked = true
	return true
}

func (m *Manager) clearSession() {
	_ = os.Remove(m.sessionPath)
}
