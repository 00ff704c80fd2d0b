package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolforge/poolforge/pkg/wallet"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, defaultDatadir, GetDatadir())
	assert.Equal(t, 4, GetInt(LogLevelKey))
	assert.Equal(t, wallet.NetworkMainnet, GetNetwork())
	assert.True(t, GetBool(OracleFallbackKey))
	assert.Empty(t, GetMnemonic())
}

func TestGetNetwork(t *testing.T) {
	Set(NetworkKey, "preview")
	defer Set(NetworkKey, string(wallet.NetworkMainnet))

	assert.Equal(t, wallet.NetworkPreview, GetNetwork())
}

func TestGetKeyOracle(t *testing.T) {
	// with the fallback enabled an oracle is always available, whether or not
	// the external binary is installed
	oracle, err := GetKeyOracle()
	require.NoError(t, err)
	assert.NotNil(t, oracle)
}

func TestGetMnemonicFromEnv(t *testing.T) {
	t.Setenv("POOLFORGE_MNEMONIC", "legal winner thank year")

	assert.Equal(t, []string{"legal", "winner", "thank", "year"}, GetMnemonic())
}

func TestGetMnemonic(t *testing.T) {
	Set(MnemonicKey, "legal winner thank year")
	defer Set(MnemonicKey, "")

	assert.Equal(t, []string{"legal", "winner", "thank", "year"}, GetMnemonic())
}
