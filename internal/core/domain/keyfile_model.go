package domain

import (
	"encoding/json"
	"strings"
)

// KeyFile is the envelope wrapping compact-encoded key material when it is
// persisted or imported, matching the format expected by the signing
// toolchain.
type KeyFile struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CBORHex     string `json:"cborHex"`
}

// NewKeyFile returns an envelope for the given toolchain type label and
// compact-encoded material.
func NewKeyFile(keyType, description, cborHex string) KeyFile {
	return KeyFile{
		Type:        keyType,
		Description: description,
		CBORHex:     cborHex,
	}
}

// ParseKeyFile decodes a key-file envelope. A record missing the cborHex
// field, or not being a JSON record at all, is malformed.
func ParseKeyFile(raw []byte) (*KeyFile, error) {
	var keyFile KeyFile
	if err := json.Unmarshal(raw, &keyFile); err != nil {
		return nil, ErrMalformedKeyFile
	}
	if len(strings.TrimSpace(keyFile.CBORHex)) <= 0 {
		return nil, ErrMalformedKeyFile
	}
	return &keyFile, nil
}

// Serialize encodes the envelope the way the signing toolchain writes it.
func (k KeyFile) Serialize() ([]byte, error) {
	return json.MarshalIndent(k, "", "  ")
}
