package wallet

import "context"

// KeyPair holds the signing and verification material of one derived role,
// both in the compact-over-bech32 text form produced by the oracle. The
// signing key is opaque to this package: it is never parsed, hashed or
// compared, only carried to persistence.
type KeyPair struct {
	Role            KeyRole
	SigningKey      string
	VerificationKey string
}

// DeriveKeyPairOpts is the struct given to the DeriveKeyPair method
type DeriveKeyPairOpts struct {
	Role KeyRole
}

func (o DeriveKeyPairOpts) validate() error {
	if !o.Role.valid() {
		return ErrUnknownKeyRole
	}
	return nil
}

// DeriveKeyPair derives the key pair of the provided role by walking its
// registry path: one child derivation call followed by a public key
// extraction requesting the chain code. Both oracle calls must succeed.
func (w *Wallet) DeriveKeyPair(
	ctx context.Context, opts DeriveKeyPairOpts,
) (*KeyPair, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	path, err := PathForRole(opts.Role)
	if err != nil {
		return nil, err
	}

	signingKey, err := w.oracle.DeriveChild(ctx, w.rootKey, path.String())
	if err != nil {
		return nil, &DerivationError{Role: opts.Role, Err: err}
	}

	verificationKey, err := w.oracle.PublicKeyWithChainCode(ctx, signingKey)
	if err != nil {
		return nil, &DerivationError{Role: opts.Role, Err: err}
	}

	return &KeyPair{
		Role:            opts.Role,
		SigningKey:      signingKey,
		VerificationKey: verificationKey,
	}, nil
}

// DeriveAllKeyPairsOpts is the struct given to the DeriveAllKeyPairs method
type DeriveAllKeyPairsOpts struct {
	Roles []KeyRole
}

func (o DeriveAllKeyPairsOpts) validate() error {
	if len(o.Roles) <= 0 {
		return ErrEmptyRoles
	}
	for _, role := range o.Roles {
		if !role.valid() {
			return ErrUnknownKeyRole
		}
	}
	return nil
}

// DeriveAllKeyPairs derives every requested role. The batch is fail-fast: the
// first failing derivation aborts the whole operation, since a wallet with
// only some of its keys present is worse than none at all.
func (w *Wallet) DeriveAllKeyPairs(
	ctx context.Context, opts DeriveAllKeyPairsOpts,
) (map[KeyRole]*KeyPair, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	pairs := make(map[KeyRole]*KeyPair, len(opts.Roles))
	for _, role := range opts.Roles {
		pair, err := w.DeriveKeyPair(ctx, DeriveKeyPairOpts{Role: role})
		if err != nil {
			return nil, err
		}
		pairs[role] = pair
	}
	return pairs, nil
}
