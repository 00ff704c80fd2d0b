package keycodec

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// CompactTag is the one-byte major-type tag prefixing key material in
	// the compact (CBOR byte-string) encoding used by the signing toolchain.
	CompactTag = 0x58
	// CredentialSize is the byte length of a payment/stake credential hash.
	CredentialSize = 28
)

var (
	// ErrEmptyInput ...
	ErrEmptyInput = errors.New("input must not be empty")
	// ErrInvalidChecksum ...
	ErrInvalidChecksum = errors.New("text is not valid bech32")
	// ErrInvalidPrefix ...
	ErrInvalidPrefix = errors.New("bech32 prefix does not match the expected one")
	// ErrOversizedPayload ...
	ErrOversizedPayload = errors.New("payload exceeds the 255 byte compact encoding limit")
)

// ValidAddressPrefixes is the set of human-readable prefixes an address must
// decode to in order to be considered valid.
var ValidAddressPrefixes = []string{"addr", "addr_test", "stake", "stake_test"}

// KeyPrefixes is the set of bech32 prefixes recognized as verification key or
// key hash material when converting to other representations.
var KeyPrefixes = []string{"addr_vkh", "stake_vkh", "addr_vk", "stake_vk"}

// IsCompact returns whether the given bytes already carry the compact
// encoding tag and a consistent length byte.
func IsCompact(b []byte) bool {
	return len(b) >= 2 && b[0] == CompactTag && int(b[1]) == len(b)-2
}

// EncodeCompact prefixes raw key material with the compact encoding tag and
// its length, i.e. tag || len || raw. Input already in compact encoding is
// returned unchanged.
func EncodeCompact(raw []byte) ([]byte, error) {
	if len(raw) <= 0 {
		return nil, ErrEmptyInput
	}
	if IsCompact(raw) {
		return raw, nil
	}
	if len(raw) > 0xff {
		return nil, ErrOversizedPayload
	}
	out := make([]byte, 0, len(raw)+2)
	out = append(out, CompactTag, byte(len(raw)))
	return append(out, raw...), nil
}

// CompactHexFromAny converts key material in any of the known text
// representations to compact encoding in hex. It never fails: inputs that
// match no known representation are returned unchanged, in line with the
// best-effort contract of this codec.
func CompactHexFromAny(s string) string {
	s = strings.TrimSpace(s)

	// already tagged
	if raw, err := hex.DecodeString(s); err == nil && IsCompact(raw) {
		return s
	}

	// bech32 key material
	for _, prefix := range KeyPrefixes {
		raw, err := DecodeBech32(s, prefix)
		if err != nil {
			continue
		}
		tagged, err := EncodeCompact(raw)
		if err != nil {
			break
		}
		return hex.EncodeToString(tagged)
	}

	// untagged raw hex of a known key size
	if raw, err := hex.DecodeString(s); err == nil {
		if len(raw) == 32 || len(raw) == 64 {
			tagged, _ := EncodeCompact(raw)
			return hex.EncodeToString(tagged)
		}
	}

	return s
}

// Bech32FromCompactHex converts compact-encoded key material in hex to
// checksummed text with the given prefix, stripping the tag and length when
// present.
func Bech32FromCompactHex(compactHex, prefix string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(compactHex))
	if err != nil {
		return "", err
	}
	if IsCompact(raw) {
		raw = raw[2:]
	}
	return EncodeBech32(prefix, raw)
}

// EncodeBech32 encodes raw bytes with the given human-readable prefix. It
// only fails for empty inputs or a malformed prefix.
func EncodeBech32(prefix string, raw []byte) (string, error) {
	if len(raw) <= 0 {
		return "", ErrEmptyInput
	}
	grouped, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(prefix, grouped)
}

// DecodeBech32 decodes checksummed text and validates that its prefix matches
// the expected one, returning the raw payload bytes.
func DecodeBech32(text, expectedPrefix string) ([]byte, error) {
	prefix, raw, err := decodeBech32Parts(text)
	if err != nil {
		return nil, err
	}
	if prefix != expectedPrefix {
		return nil, ErrInvalidPrefix
	}
	return raw, nil
}

// DecodeAddress decodes checksummed text without any prefix expectation and
// returns the prefix along with the raw payload.
func DecodeAddress(text string) (string, []byte, error) {
	return decodeBech32Parts(text)
}

func decodeBech32Parts(text string) (string, []byte, error) {
	if len(text) <= 0 {
		return "", nil, ErrEmptyInput
	}
	// Shelley base addresses are longer than the 90 chars allowed by the
	// original bech32 spec, hence the no-limit variant.
	prefix, grouped, err := bech32.DecodeNoLimit(text)
	if err != nil {
		return "", nil, ErrInvalidChecksum
	}
	raw, err := bech32.ConvertBits(grouped, 5, 8, false)
	if err != nil {
		return "", nil, ErrInvalidChecksum
	}
	return prefix, raw, nil
}
