package wallet

import (
	"context"

	"github.com/poolforge/poolforge/pkg/keycodec"
)

// Construction stage names reported by AddressConstructionError.
const (
	StagePayment    = "payment"
	StageStake      = "stake"
	StageDelegation = "delegation"
)

// AddressBuilder combines verification keys into addresses and credential
// hashes through the key oracle, and enforces the double-computation
// verification protocol: every base and reward address is independently
// recomputed from the same inputs and must match byte for byte before it is
// handed out. The oracle is an external process whose output is double
// checked empirically rather than trusted blindly.
type AddressBuilder struct {
	oracle KeyOracle
}

// NewAddressBuilder returns an AddressBuilder backed by the given oracle.
func NewAddressBuilder(oracle KeyOracle) (*AddressBuilder, error) {
	if oracle == nil {
		return nil, ErrNullOracle
	}
	return &AddressBuilder{oracle: oracle}, nil
}

// PaymentAddressOpts is the struct given to the PaymentAddress method
type PaymentAddressOpts struct {
	PaymentVKey string
	Network     Network
}

func (o PaymentAddressOpts) validate() error {
	if len(o.PaymentVKey) <= 0 {
		return ErrNullVerificationKey
	}
	return o.Network.validate()
}

// PaymentAddress builds a payment-only (enterprise) address for the given
// verification key and network.
func (b *AddressBuilder) PaymentAddress(
	ctx context.Context, opts PaymentAddressOpts,
) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	addr, err := b.oracle.EncodeAddress(
		ctx, AddressKindPayment, opts.PaymentVKey, opts.Network.Tag(),
	)
	if err != nil {
		return "", &AddressConstructionError{Stage: StagePayment, Err: err}
	}
	return addr, nil
}

// StakeAddressOpts is the struct given to the StakeAddress and
// VerifiedRewardAddress methods
type StakeAddressOpts struct {
	StakeVKey string
	Network   Network
}

func (o StakeAddressOpts) validate() error {
	if len(o.StakeVKey) <= 0 {
		return ErrNullVerificationKey
	}
	return o.Network.validate()
}

// StakeAddress builds a reward (stake) address for the given verification
// key and network.
func (b *AddressBuilder) StakeAddress(
	ctx context.Context, opts StakeAddressOpts,
) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	addr, err := b.oracle.EncodeAddress(
		ctx, AddressKindStake, opts.StakeVKey, opts.Network.Tag(),
	)
	if err != nil {
		return "", &AddressConstructionError{Stage: StageStake, Err: err}
	}
	return addr, nil
}

// BaseAddressOpts is the struct given to the BaseAddress and
// VerifiedBaseAddress methods
type BaseAddressOpts struct {
	PaymentVKey string
	StakeVKey   string
	Network     Network
}

func (o BaseAddressOpts) validate() error {
	if len(o.PaymentVKey) <= 0 {
		return ErrNullVerificationKey
	}
	return o.Network.validate()
}

// BaseAddress builds a base address in three ordered stages: the payment
// address, the stake address (validating the stake key), then the delegation
// combination that binds the stake credential into the payment address body.
// Each stage may fail independently and aborts the construction.
func (b *AddressBuilder) BaseAddress(
	ctx context.Context, opts BaseAddressOpts,
) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	paymentAddr, err := b.oracle.EncodeAddress(
		ctx, AddressKindPayment, opts.PaymentVKey, opts.Network.Tag(),
	)
	if err != nil {
		return "", &AddressConstructionError{Stage: StagePayment, Err: err}
	}

	// a missing stake key is a failure of the stake stage, not a bad request:
	// import flows may legitimately carry payment material only
	if len(opts.StakeVKey) <= 0 {
		return "", &AddressConstructionError{Stage: StageStake, Err: ErrNullVerificationKey}
	}
	if _, err := b.oracle.EncodeAddress(
		ctx, AddressKindStake, opts.StakeVKey, opts.Network.Tag(),
	); err != nil {
		return "", &AddressConstructionError{Stage: StageStake, Err: err}
	}

	baseAddr, err := b.oracle.CombineDelegation(ctx, paymentAddr, opts.StakeVKey)
	if err != nil {
		return "", &AddressConstructionError{Stage: StageDelegation, Err: err}
	}
	return baseAddr, nil
}

// VerifiedBaseAddress builds a base address and an independently recomputed
// candidate from the same inputs, returning both. A mismatch between the two
// is a hard failure that must abort wallet creation: a single miscomputed
// address is an unrecoverable fund-loss risk.
func (b *AddressBuilder) VerifiedBaseAddress(
	ctx context.Context, opts BaseAddressOpts,
) (string, string, error) {
	addr, err := b.BaseAddress(ctx, opts)
	if err != nil {
		return "", "", err
	}
	candidate, err := b.BaseAddress(ctx, opts)
	if err != nil {
		return "", "", err
	}
	if addr != candidate {
		return "", "", &VerificationMismatchError{Which: "base address"}
	}
	return addr, candidate, nil
}

// VerifiedRewardAddress builds a reward address and its independently
// recomputed candidate, with the same mismatch semantics as
// VerifiedBaseAddress.
func (b *AddressBuilder) VerifiedRewardAddress(
	ctx context.Context, opts StakeAddressOpts,
) (string, string, error) {
	addr, err := b.StakeAddress(ctx, opts)
	if err != nil {
		return "", "", err
	}
	candidate, err := b.StakeAddress(ctx, opts)
	if err != nil {
		return "", "", err
	}
	if addr != candidate {
		return "", "", &VerificationMismatchError{Which: "reward address"}
	}
	return addr, candidate, nil
}

// Credential computes the 28-byte credential hash of a verification key. It
// asks the oracle first and falls back to the codec's local fallback chain
// when the oracle cannot serve the request; the returned flag reports whether
// the degraded non-canonical hash was used.
func (b *AddressBuilder) Credential(
	ctx context.Context, vkey string,
) ([]byte, bool, error) {
	if len(vkey) <= 0 {
		return nil, false, ErrNullVerificationKey
	}

	if hashed, err := b.oracle.HashKey(ctx, vkey); err == nil {
		if cred, degraded, err := keycodec.CredentialHash(hashed); err == nil {
			return cred, degraded, nil
		}
	}
	return keycodec.CredentialHash(vkey)
}

// ValidateAddress reports whether the given text decodes as checksummed text
// with a prefix in the valid address set. It never fails, it only answers
// false.
func ValidateAddress(address string) bool {
	prefix, _, err := keycodec.DecodeAddress(address)
	if err != nil {
		return false
	}
	for _, valid := range keycodec.ValidAddressPrefixes {
		if prefix == valid {
			return true
		}
	}
	return false
}
