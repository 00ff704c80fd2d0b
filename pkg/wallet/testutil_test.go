package wallet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/poolforge/poolforge/pkg/keycodec"
)

// fakeOracle is a deterministic in-memory stand-in for the external key
// derivation toolchain. Every operation is a pure function of its inputs so
// the verification protocol holds by construction.
type fakeOracle struct{}

func fakeDigest(parts ...string) []byte {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return sum[:]
}

func (fakeOracle) RootKeyFromPhrase(_ context.Context, phrase string) (string, error) {
	if len(strings.Fields(phrase)) < 12 {
		return "", errors.New("phrase rejected")
	}
	return keycodec.EncodeBech32("root_xsk", fakeDigest("root", phrase))
}

func (fakeOracle) DeriveChild(_ context.Context, parent, path string) (string, error) {
	return keycodec.EncodeBech32("acct_xsk", fakeDigest("child", parent, path))
}

func (fakeOracle) PublicKeyWithChainCode(_ context.Context, private string) (string, error) {
	material := append(fakeDigest("pub", private), fakeDigest("cc", private)...)
	return keycodec.EncodeBech32("acct_xvk", material)
}

func (fakeOracle) HashKey(_ context.Context, public string) (string, error) {
	return hex.EncodeToString(fakeDigest("hash", public)[:keycodec.CredentialSize]), nil
}

func (fakeOracle) EncodeAddress(
	_ context.Context, kind AddressKind, vkey string, networkTag uint8,
) (string, error) {
	var header byte
	var prefix string
	switch kind {
	case AddressKindPayment:
		header = 0x60 | networkTag
		prefix = "addr"
		if networkTag == 0 {
			prefix = "addr_test"
		}
	case AddressKindStake:
		header = 0xe0 | networkTag
		prefix = "stake"
		if networkTag == 0 {
			prefix = "stake_test"
		}
	}
	payload := append(
		[]byte{header}, fakeDigest("cred", vkey)[:keycodec.CredentialSize]...,
	)
	return keycodec.EncodeBech32(prefix, payload)
}

func (fakeOracle) CombineDelegation(
	_ context.Context, paymentAddress, stakeVKey string,
) (string, error) {
	_, payload, err := keycodec.DecodeAddress(paymentAddress)
	if err != nil {
		return "", err
	}
	tag := payload[0] & 0x0f
	prefix := "addr"
	if tag == 0 {
		prefix = "addr_test"
	}
	base := append([]byte{tag}, payload[1:1+keycodec.CredentialSize]...)
	base = append(base, fakeDigest("cred", stakeVKey)[:keycodec.CredentialSize]...)
	return keycodec.EncodeBech32(prefix, base)
}

// failingOracle fails every call of the named operation and delegates the
// rest to fakeOracle.
type failingOracle struct {
	fakeOracle
	op string
}

var errOracleBoom = errors.New("oracle boom")

func (o failingOracle) DeriveChild(ctx context.Context, parent, path string) (string, error) {
	if o.op == "child" {
		return "", errOracleBoom
	}
	return o.fakeOracle.DeriveChild(ctx, parent, path)
}

func (o failingOracle) PublicKeyWithChainCode(ctx context.Context, private string) (string, error) {
	if o.op == "public" {
		return "", errOracleBoom
	}
	return o.fakeOracle.PublicKeyWithChainCode(ctx, private)
}

func (o failingOracle) EncodeAddress(
	ctx context.Context, kind AddressKind, vkey string, networkTag uint8,
) (string, error) {
	if o.op == "encode-"+kind.String() {
		return "", errOracleBoom
	}
	return o.fakeOracle.EncodeAddress(ctx, kind, vkey, networkTag)
}

func (o failingOracle) CombineDelegation(
	ctx context.Context, paymentAddress, stakeVKey string,
) (string, error) {
	if o.op == "delegation" {
		return "", errOracleBoom
	}
	return o.fakeOracle.CombineDelegation(ctx, paymentAddress, stakeVKey)
}

// driftingOracle returns a different base address on every delegation call,
// simulating a nondeterministic toolchain.
type driftingOracle struct {
	fakeOracle
	calls int
}

func (o *driftingOracle) CombineDelegation(
	ctx context.Context, paymentAddress, stakeVKey string,
) (string, error) {
	o.calls++
	if o.calls%2 == 0 {
		stakeVKey += "-drift"
	}
	return o.fakeOracle.CombineDelegation(ctx, paymentAddress, stakeVKey)
}

func newTestWallet() (*Wallet, error) {
	mnemonic, err := NewMnemonic(NewMnemonicOpts{EntropySize: 256})
	if err != nil {
		return nil, err
	}
	return NewWalletFromMnemonic(context.Background(), NewWalletFromMnemonicOpts{
		Oracle:   fakeOracle{},
		Mnemonic: mnemonic,
	})
}
