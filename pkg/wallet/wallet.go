package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNullOracle ...
	ErrNullOracle = errors.New("key oracle must not be null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullRootKey ...
	ErrNullRootKey = errors.New("root key is null")
	// ErrNullVerificationKey ...
	ErrNullVerificationKey = errors.New("verification key must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrUnknownKeyRole ...
	ErrUnknownKeyRole = errors.New("unknown key role")
	// ErrUnknownNetwork ...
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrOracleUnavailable is returned (possibly wrapped) whenever the key
	// oracle cannot be reached or refuses to serve requests.
	ErrOracleUnavailable = errors.New("key derivation oracle is unavailable")

	// ErrEmptyRoles ...
	ErrEmptyRoles = errors.New("role list must not be empty")
)

// DerivationError reports the failure of a child key derivation for a
// specific role. A single failing role aborts the whole batch so that a
// partially derived wallet can never be handed to persistence.
type DerivationError struct {
	Role KeyRole
	Err  error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("deriving %s key pair: %v", e.Role, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }

// AddressConstructionError reports which of the ordered construction stages
// (payment, stake, delegation) failed while building an address.
type AddressConstructionError struct {
	Stage string
	Err   error
}

func (e *AddressConstructionError) Error() string {
	return fmt.Sprintf("address construction failed at %s stage: %v", e.Stage, e.Err)
}

func (e *AddressConstructionError) Unwrap() error { return e.Err }

// VerificationMismatchError is the hard failure raised when an independently
// recomputed address candidate does not match the original byte for byte.
type VerificationMismatchError struct {
	Which string
}

func (e *VerificationMismatchError) Error() string {
	return fmt.Sprintf(
		"%s verification failed: independently computed candidate does not match",
		e.Which,
	)
}

// Wallet holds the recovery phrase and the root key derived from it through
// the key oracle, and derives role-scoped key pairs on demand. The signing
// material of derived pairs is carried opaquely and never inspected.
type Wallet struct {
	mnemonic []string
	rootKey  string
	oracle   KeyOracle
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	Oracle      KeyOracle
	EntropySize int
}

func (o NewWalletOpts) validate() error {
	if o.Oracle == nil {
		return ErrNullOracle
	}
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet with a freshly generated recovery phrase and
// the root key obtained from the oracle.
func NewWallet(ctx context.Context, opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := generateMnemonic(opts.EntropySize)
	if err != nil {
		return nil, err
	}

	return newWalletWithMnemonic(ctx, opts.Oracle, mnemonic)
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Oracle   KeyOracle
	Mnemonic []string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if o.Oracle == nil {
		return ErrNullOracle
	}
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic restores a wallet from an existing recovery phrase.
// Deriving the same role from the same phrase always yields the same key
// pair, which is what makes the address verification protocol meaningful.
func NewWalletFromMnemonic(
	ctx context.Context, opts NewWalletFromMnemonicOpts,
) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return newWalletWithMnemonic(ctx, opts.Oracle, opts.Mnemonic)
}

func newWalletWithMnemonic(
	ctx context.Context, oracle KeyOracle, mnemonic []string,
) (*Wallet, error) {
	rootKey, err := oracle.RootKeyFromPhrase(ctx, strings.Join(mnemonic, " "))
	if err != nil {
		return nil, err
	}
	if len(rootKey) <= 0 {
		return nil, ErrNullRootKey
	}

	return &Wallet{
		mnemonic: mnemonic,
		rootKey:  rootKey,
		oracle:   oracle,
	}, nil
}

func (w *Wallet) validate() error {
	if w.oracle == nil {
		return ErrNullOracle
	}
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if len(w.rootKey) <= 0 {
		return ErrNullRootKey
	}
	return nil
}

// Mnemonic is the getter for the wallet's recovery phrase
func (w *Wallet) Mnemonic() ([]string, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	mnemonic := make([]string, len(w.mnemonic))
	copy(mnemonic, w.mnemonic)
	return mnemonic, nil
}

// RootKey is the getter for the oracle-derived root key
func (w *Wallet) RootKey() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return w.rootKey, nil
}
