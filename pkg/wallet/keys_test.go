package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeyPair(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	ctx := context.Background()
	pair, err := wallet.DeriveKeyPair(ctx, DeriveKeyPairOpts{Role: RolePayment})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, RolePayment, pair.Role)
	assert.NotEmpty(t, pair.SigningKey)
	assert.NotEmpty(t, pair.VerificationKey)

	// same wallet, same role, same pair
	again, err := wallet.DeriveKeyPair(ctx, DeriveKeyPairOpts{Role: RolePayment})
	require.NoError(t, err)
	assert.Equal(t, pair, again)
}

func TestDeriveKeyPairDistinctRoles(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	ctx := context.Background()
	pairs, err := wallet.DeriveAllKeyPairs(ctx, DeriveAllKeyPairsOpts{
		Roles: StakePoolRoles(),
	})
	require.NoError(t, err)
	require.Len(t, pairs, 8)

	seen := map[string]KeyRole{}
	for role, pair := range pairs {
		if other, ok := seen[pair.SigningKey]; ok {
			// payment/cold and stake/hot share a derivation path, any other
			// collision means the path registry is broken
			samePath := (role == RolePayment && other == RoleCold) ||
				(role == RoleCold && other == RolePayment) ||
				(role == RoleStaking && other == RoleHot) ||
				(role == RoleHot && other == RoleStaking)
			assert.True(t, samePath, "unexpected key collision between %s and %s", role, other)
			continue
		}
		seen[pair.SigningKey] = role
	}

	// the registry pins cold to payment's path and hot to stake's, so those
	// pairs must come out identical
	assert.Equal(t, pairs[RolePayment].SigningKey, pairs[RoleCold].SigningKey)
	assert.Equal(t, pairs[RolePayment].VerificationKey, pairs[RoleCold].VerificationKey)
	assert.Equal(t, pairs[RoleStaking].SigningKey, pairs[RoleHot].SigningKey)
	assert.Equal(t, pairs[RoleStaking].VerificationKey, pairs[RoleHot].VerificationKey)
}

func TestFailingDeriveKeyPair(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown role", func(t *testing.T) {
		wallet, err := newTestWallet()
		require.NoError(t, err)

		_, err = wallet.DeriveKeyPair(ctx, DeriveKeyPairOpts{Role: KeyRole(42)})
		assert.Equal(t, ErrUnknownKeyRole, err)
	})

	t.Run("child derivation failure", func(t *testing.T) {
		mnemonic, err := NewMnemonic(NewMnemonicOpts{})
		require.NoError(t, err)
		wallet, err := NewWalletFromMnemonic(ctx, NewWalletFromMnemonicOpts{
			Oracle:   failingOracle{op: "child"},
			Mnemonic: mnemonic,
		})
		require.NoError(t, err)

		_, err = wallet.DeriveKeyPair(ctx, DeriveKeyPairOpts{Role: RoleDRep})
		require.Error(t, err)

		var derivationErr *DerivationError
		require.True(t, errors.As(err, &derivationErr))
		assert.Equal(t, RoleDRep, derivationErr.Role)
		assert.True(t, errors.Is(err, errOracleBoom))
	})

	t.Run("public key extraction failure", func(t *testing.T) {
		mnemonic, err := NewMnemonic(NewMnemonicOpts{})
		require.NoError(t, err)
		wallet, err := NewWalletFromMnemonic(ctx, NewWalletFromMnemonicOpts{
			Oracle:   failingOracle{op: "public"},
			Mnemonic: mnemonic,
		})
		require.NoError(t, err)

		_, err = wallet.DeriveKeyPair(ctx, DeriveKeyPairOpts{Role: RolePayment})
		var derivationErr *DerivationError
		require.True(t, errors.As(err, &derivationErr))
		assert.Equal(t, RolePayment, derivationErr.Role)
	})
}

func TestFailingDeriveAllKeyPairs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty roles", func(t *testing.T) {
		wallet, err := newTestWallet()
		require.NoError(t, err)

		_, err = wallet.DeriveAllKeyPairs(ctx, DeriveAllKeyPairsOpts{})
		assert.Equal(t, ErrEmptyRoles, err)
	})

	t.Run("fail fast on first failing role", func(t *testing.T) {
		mnemonic, err := NewMnemonic(NewMnemonicOpts{})
		require.NoError(t, err)
		wallet, err := NewWalletFromMnemonic(ctx, NewWalletFromMnemonicOpts{
			Oracle:   failingOracle{op: "child"},
			Mnemonic: mnemonic,
		})
		require.NoError(t, err)

		pairs, err := wallet.DeriveAllKeyPairs(ctx, DeriveAllKeyPairsOpts{
			Roles: StakePoolRoles(),
		})
		require.Error(t, err)
		assert.Nil(t, pairs)
	})
}
