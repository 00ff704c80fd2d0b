package cardanoaddress

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolforge/poolforge/pkg/wallet"
)

func TestFailingNewKeyOracle(t *testing.T) {
	_, err := NewKeyOracle(" ")
	assert.Equal(t, ErrNullBinPath, err)
}

func TestFailingKeyOracle(t *testing.T) {
	oracle, err := NewKeyOracle(filepath.Join(t.TempDir(), "no-such-binary"))
	require.NoError(t, err)

	_, err = oracle.RootKeyFromPhrase(context.Background(), "legal winner")
	require.Error(t, err)
	assert.ErrorIs(t, err, wallet.ErrOracleUnavailable)
}

// fakeBinary echoes every argument followed by stdin, so each oracle method
// can be checked for the exact subcommand and piping it performs.
func fakeBinary(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake not available on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-oracle")
	script := "#!/bin/sh\nprintf '%s|' \"$@\"\ncat\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestKeyOracleCommandWiring(t *testing.T) {
	oracle, err := NewKeyOracle(fakeBinary(t))
	require.NoError(t, err)
	ctx := context.Background()

	out, err := oracle.RootKeyFromPhrase(ctx, "legal winner")
	require.NoError(t, err)
	assert.Equal(t, "key|from-recovery-phrase|Shelley|legal winner", out)

	out, err = oracle.DeriveChild(ctx, "root_xsk1aaa", "1852H/1815H/0H/0/0")
	require.NoError(t, err)
	assert.Equal(t, "key|child|1852H/1815H/0H/0/0|root_xsk1aaa", out)

	out, err = oracle.PublicKeyWithChainCode(ctx, "addr_xsk1bbb")
	require.NoError(t, err)
	assert.Equal(t, "key|public|--with-chain-code|addr_xsk1bbb", out)

	out, err = oracle.HashKey(ctx, "addr_xvk1ccc")
	require.NoError(t, err)
	assert.Equal(t, "key|hash|addr_xvk1ccc", out)

	out, err = oracle.EncodeAddress(ctx, wallet.AddressKindPayment, "addr_xvk1ccc", 1)
	require.NoError(t, err)
	assert.Equal(t, "address|payment|--network-tag|1|addr_xvk1ccc", out)

	out, err = oracle.EncodeAddress(ctx, wallet.AddressKindStake, "stake_xvk1ddd", 0)
	require.NoError(t, err)
	assert.Equal(t, "address|stake|--network-tag|0|stake_xvk1ddd", out)

	out, err = oracle.CombineDelegation(ctx, "addr1eee", "stake_xvk1ddd")
	require.NoError(t, err)
	assert.Equal(t, "address|delegation|stake_xvk1ddd|addr1eee", out)
}
