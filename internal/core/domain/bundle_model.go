package domain

import (
	"time"

	"github.com/google/uuid"
)

// KeyMaterial holds one role's derived or imported key pair together with the
// envelopes it is persisted in. SigningKey is sensitive and carried opaquely.
type KeyMaterial struct {
	Role                string
	SigningKey          string
	VerificationKey     string
	SigningKeyFile      KeyFile
	VerificationKeyFile KeyFile
}

// WalletBundle aggregates everything issued for one (ticker, purpose) pair:
// addresses with their verification candidates, per-role key material,
// credential hashes and certificates. A bundle only exists once every address
// passed the double-computation check; partial bundles are never built.
type WalletBundle struct {
	ID        uuid.UUID
	Ticker    string
	Purpose   string
	Network   string
	CreatedAt time.Time

	BaseAddress            string
	BaseAddressCandidate   string
	RewardAddress          string
	RewardAddressCandidate string
	PaymentAddress         string

	// Keys by role name.
	Keys map[string]KeyMaterial
	// Credentials by role name, 28-byte hashes in hex.
	Credentials map[string]string
	// Degraded flags credentials computed through the non-canonical SHA-256
	// fallback rather than the oracle's hash.
	Degraded bool

	Certificates []Certificate

	// Words of the shared recovery phrase, carried for export only.
	Mnemonic []string
}

// NewWalletBundle returns an empty bundle for the given identity.
func NewWalletBundle(ticker, purpose, network string) (*WalletBundle, error) {
	ticker = NormalizeTicker(ticker)
	if len(ticker) <= 0 {
		return nil, ErrNullTicker
	}
	if len(purpose) <= 0 {
		return nil, ErrNullPurpose
	}
	return &WalletBundle{
		ID:          uuid.New(),
		Ticker:      ticker,
		Purpose:     purpose,
		Network:     network,
		CreatedAt:   time.Now(),
		Keys:        map[string]KeyMaterial{},
		Credentials: map[string]string{},
	}, nil
}

// IsComplete reports whether the bundle carries verified base and reward
// addresses.
func (b *WalletBundle) IsComplete() bool {
	return len(b.BaseAddress) > 0 &&
		b.BaseAddress == b.BaseAddressCandidate &&
		len(b.RewardAddress) > 0 &&
		b.RewardAddress == b.RewardAddressCandidate
}
