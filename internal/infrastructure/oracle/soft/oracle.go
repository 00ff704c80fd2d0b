package softoracle

import (
	"context"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"

	"github.com/poolforge/poolforge/pkg/keycodec"
	"github.com/poolforge/poolforge/pkg/wallet"
)

var (
	// ErrMalformedKeyMaterial ...
	ErrMalformedKeyMaterial = errors.New("malformed key material")
	// ErrMalformedAddress ...
	ErrMalformedAddress = errors.New("malformed payment address")
)

const (
	rootKeyPrefix    = "root_xsk"
	signingKeyPrefix = "addr_xsk"
	publicKeyPrefix  = "addr_xvk"

	// extended signing material is 64 key bytes plus a 32 byte chain code
	extendedKeySize = 96
	chainCodeSize   = 32

	pbkdf2Rounds = 4096
	pbkdf2Salt   = "ed25519 seed"

	paymentHeader = 0x60
	stakeHeader   = 0xe0
	baseHeader    = 0x00
)

// keyOracle is an in-process wallet.KeyOracle used when no external signing
// binary is available. It speaks the same textual contract: bech32 extended
// keys in and out, hierarchical derivation with hardened segments, blake2b-224
// credential hashes and header-tagged addresses.
type keyOracle struct{}

// NewKeyOracle returns the in-process oracle.
func NewKeyOracle() wallet.KeyOracle {
	return &keyOracle{}
}

func (o *keyOracle) RootKeyFromPhrase(
	_ context.Context, phrase string,
) (string, error) {
	if len(phrase) <= 0 {
		return "", ErrMalformedKeyMaterial
	}
	material := pbkdf2.Key(
		[]byte(phrase), []byte(pbkdf2Salt), pbkdf2Rounds, extendedKeySize, sha512.New,
	)
	return keycodec.EncodeBech32(rootKeyPrefix, material)
}

func (o *keyOracle) DeriveChild(
	_ context.Context, parent, path string,
) (string, error) {
	segments, err := wallet.ParseDerivationPath(path)
	if err != nil {
		return "", err
	}
	material, err := decodeExtended(parent)
	if err != nil {
		return "", err
	}

	key := material[:extendedKeySize-chainCodeSize]
	chainCode := material[extendedKeySize-chainCodeSize:]
	for _, segment := range segments {
		key, chainCode = deriveSegment(key, chainCode, segment)
	}
	return keycodec.EncodeBech32(signingKeyPrefix, append(key, chainCode...))
}

func (o *keyOracle) PublicKeyWithChainCode(
	_ context.Context, private string,
) (string, error) {
	material, err := decodeExtended(private)
	if err != nil {
		return "", err
	}
	seed := material[:ed25519.SeedSize]
	chainCode := material[extendedKeySize-chainCodeSize:]

	public := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	return keycodec.EncodeBech32(publicKeyPrefix, append([]byte(public), chainCode...))
}

func (o *keyOracle) HashKey(_ context.Context, public string) (string, error) {
	hashed, err := hashVerificationKey(public)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hashed), nil
}

func (o *keyOracle) EncodeAddress(
	_ context.Context, kind wallet.AddressKind, vkey string, networkTag uint8,
) (string, error) {
	hashed, err := hashVerificationKey(vkey)
	if err != nil {
		return "", err
	}

	var header byte
	var prefix string
	switch kind {
	case wallet.AddressKindPayment:
		header = paymentHeader | networkTag
		prefix = addressPrefix("addr", networkTag)
	case wallet.AddressKindStake:
		header = stakeHeader | networkTag
		prefix = addressPrefix("stake", networkTag)
	default:
		return "", fmt.Errorf("unsupported address kind %d", kind)
	}

	payload := append([]byte{header}, hashed...)
	return keycodec.EncodeBech32(prefix, payload)
}

func (o *keyOracle) CombineDelegation(
	_ context.Context, paymentAddress, stakeVKey string,
) (string, error) {
	_, payload, err := keycodec.DecodeAddress(paymentAddress)
	if err != nil {
		return "", err
	}
	if len(payload) != 1+keycodec.CredentialSize ||
		payload[0]&0xf0 != paymentHeader {
		return "", ErrMalformedAddress
	}
	networkTag := payload[0] & 0x0f

	stakeHash, err := hashVerificationKey(stakeVKey)
	if err != nil {
		return "", err
	}

	combined := append([]byte{baseHeader | networkTag}, payload[1:]...)
	combined = append(combined, stakeHash...)
	return keycodec.EncodeBech32(addressPrefix("addr", networkTag), combined)
}

// deriveSegment is one step of the hierarchical derivation: the child key and
// chain code come from two domain-separated HMAC-SHA512 evaluations keyed by
// the parent chain code.
func deriveSegment(key, chainCode []byte, segment uint32) ([]byte, []byte) {
	var index [4]byte
	binary.LittleEndian.PutUint32(index[:], segment)

	keyMac := hmac.New(sha512.New, chainCode)
	keyMac.Write([]byte{0x00})
	keyMac.Write(key)
	keyMac.Write(index[:])
	childKey := keyMac.Sum(nil)

	ccMac := hmac.New(sha512.New, chainCode)
	ccMac.Write([]byte{0x01})
	ccMac.Write(key)
	ccMac.Write(index[:])
	childChainCode := ccMac.Sum(nil)[:chainCodeSize]

	return childKey, childChainCode
}

// hashVerificationKey computes the blake2b-224 credential hash of the plain
// public key part of an extended verification key.
func hashVerificationKey(vkey string) ([]byte, error) {
	_, material, err := keycodec.DecodeAddress(vkey)
	if err != nil {
		return nil, ErrMalformedKeyMaterial
	}
	if len(material) < ed25519.PublicKeySize {
		return nil, ErrMalformedKeyMaterial
	}

	hasher, err := blake2b.New(keycodec.CredentialSize, nil)
	if err != nil {
		return nil, err
	}
	hasher.Write(material[:ed25519.PublicKeySize])
	return hasher.Sum(nil), nil
}

func decodeExtended(text string) ([]byte, error) {
	_, material, err := keycodec.DecodeAddress(text)
	if err != nil {
		return nil, ErrMalformedKeyMaterial
	}
	if len(material) != extendedKeySize {
		return nil, ErrMalformedKeyMaterial
	}
	return material, nil
}

func addressPrefix(base string, networkTag uint8) string {
	if networkTag == 1 {
		return base
	}
	return base + "_test"
}
