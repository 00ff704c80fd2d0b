package keycodec

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// credentialAttempt tries to extract a credential hash from one known
// representation of key material. It reports false when the input does not
// match the representation it understands.
type credentialAttempt func(input string) ([]byte, bool)

// credentialAttempts is the ordered fallback chain for deriving a credential
// hash; the first attempt that matches wins.
var credentialAttempts = []credentialAttempt{
	credentialFromHash,
	credentialFromBech32Key,
	credentialFromCompactHex,
	credentialFromRawHex,
}

// CredentialHash derives the 28-byte credential hash from key material given
// in any of the supported representations. When no representation matches, it
// falls back to a SHA-256 digest truncated to 28 bytes and reports
// degraded=true: that digest is NOT the canonical Blake2b-224 credential hash
// used on-chain and callers must surface the degradation to the operator.
func CredentialHash(input string) ([]byte, bool, error) {
	input = strings.TrimSpace(input)
	if len(input) <= 0 {
		return nil, false, ErrEmptyInput
	}

	for _, attempt := range credentialAttempts {
		if hash, ok := attempt(input); ok {
			return hash, false, nil
		}
	}

	sum := sha256.Sum256([]byte(input))
	return sum[:CredentialSize], true, nil
}

// credentialFromHash matches inputs that already are a credential hash in hex.
func credentialFromHash(input string) ([]byte, bool) {
	raw, err := hex.DecodeString(input)
	if err != nil || len(raw) != CredentialSize {
		return nil, false
	}
	return raw, true
}

// credentialFromBech32Key matches bech32 verification keys and key hashes,
// taking the first 28 bytes of the decoded payload.
func credentialFromBech32Key(input string) ([]byte, bool) {
	for _, prefix := range KeyPrefixes {
		raw, err := DecodeBech32(input, prefix)
		if err != nil || len(raw) < CredentialSize {
			continue
		}
		return raw[:CredentialSize], true
	}
	return nil, false
}

// credentialFromCompactHex matches compact-encoded key material in hex,
// stripping the tag and length before taking the first 28 bytes.
func credentialFromCompactHex(input string) ([]byte, bool) {
	raw, err := hex.DecodeString(input)
	if err != nil || !IsCompact(raw) {
		return nil, false
	}
	payload := raw[2:]
	if len(payload) < CredentialSize {
		return nil, false
	}
	return payload[:CredentialSize], true
}

// credentialFromRawHex matches untagged raw hex long enough to contain a
// credential hash.
func credentialFromRawHex(input string) ([]byte, bool) {
	raw, err := hex.DecodeString(input)
	if err != nil || len(raw) < CredentialSize {
		return nil, false
	}
	return raw[:CredentialSize], true
}
