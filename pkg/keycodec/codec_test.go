package keycodec

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCompact(t *testing.T) {
	raw, _ := hex.DecodeString(strings.Repeat("ab", 32))

	tagged, err := EncodeCompact(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(CompactTag), tagged[0])
	assert.Equal(t, byte(32), tagged[1])
	assert.Equal(t, raw, tagged[2:])

	// idempotent on already tagged input
	retagged, err := EncodeCompact(tagged)
	require.NoError(t, err)
	assert.Equal(t, tagged, retagged)
}

func TestFailingEncodeCompact(t *testing.T) {
	tests := []struct {
		raw []byte
		err error
	}{
		{
			raw: nil,
			err: ErrEmptyInput,
		},
		{
			raw: make([]byte, 300),
			err: ErrOversizedPayload,
		},
	}

	for _, tt := range tests {
		_, err := EncodeCompact(tt.raw)
		assert.Equal(t, tt.err, err)
	}
}

func TestBech32RoundTrip(t *testing.T) {
	raw, _ := hex.DecodeString(strings.Repeat("0f", 28))

	for _, prefix := range append(ValidAddressPrefixes, KeyPrefixes...) {
		text, err := EncodeBech32(prefix, raw)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(text, prefix+"1"))

		decoded, err := DecodeBech32(text, prefix)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	}
}

func TestFailingDecodeBech32(t *testing.T) {
	raw, _ := hex.DecodeString(strings.Repeat("0f", 28))
	text, err := EncodeBech32("addr", raw)
	require.NoError(t, err)

	corrupted := text[:len(text)-1] + "x"
	if strings.HasSuffix(text, "x") {
		corrupted = text[:len(text)-1] + "q"
	}

	tests := []struct {
		name   string
		text   string
		prefix string
		err    error
	}{
		{
			name:   "empty input",
			text:   "",
			prefix: "addr",
			err:    ErrEmptyInput,
		},
		{
			name:   "corrupted checksum",
			text:   corrupted,
			prefix: "addr",
			err:    ErrInvalidChecksum,
		},
		{
			name:   "wrong prefix",
			text:   text,
			prefix: "stake",
			err:    ErrInvalidPrefix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBech32(tt.text, tt.prefix)
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestBech32FromCompactHex(t *testing.T) {
	rawHex := strings.Repeat("cd", 32)
	raw, _ := hex.DecodeString(rawHex)
	expected, err := EncodeBech32("stake_vk", raw)
	require.NoError(t, err)

	// tagged and untagged hex both land on the same text
	fromTagged, err := Bech32FromCompactHex("5820"+rawHex, "stake_vk")
	require.NoError(t, err)
	assert.Equal(t, expected, fromTagged)

	fromRaw, err := Bech32FromCompactHex(rawHex, "stake_vk")
	require.NoError(t, err)
	assert.Equal(t, expected, fromRaw)

	_, err = Bech32FromCompactHex("not hex", "stake_vk")
	assert.Error(t, err)
}

func TestCompactHexFromAny(t *testing.T) {
	rawHex := strings.Repeat("ab", 32)
	raw, _ := hex.DecodeString(rawHex)
	vk, err := EncodeBech32("addr_vk", raw)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already compact",
			input:    "5820" + rawHex,
			expected: "5820" + rawHex,
		},
		{
			name:     "bech32 verification key",
			input:    vk,
			expected: "5820" + rawHex,
		},
		{
			name:     "raw 32 byte hex",
			input:    rawHex,
			expected: "5820" + rawHex,
		},
		{
			name:     "raw 64 byte hex",
			input:    rawHex + rawHex,
			expected: "5840" + rawHex + rawHex,
		},
		{
			name:     "unrecognized input returned unchanged",
			input:    "not a key at all",
			expected: "not a key at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompactHexFromAny(tt.input))
		})
	}
}
