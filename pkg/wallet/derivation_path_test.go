package wallet

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		strPath  string
		expected DerivationPath
	}{
		{
			strPath:  "1852H/1815H/0H/0/0",
			expected: DerivationPath{purposeSegment, coinTypeSegment, accountSegment, 0, 0},
		},
		{
			strPath:  "1852'/1815'/0'/2/0",
			expected: DerivationPath{purposeSegment, coinTypeSegment, accountSegment, 2, 0},
		},
		{
			strPath:  "m/1852H/1815H/0H/3/0",
			expected: DerivationPath{purposeSegment, coinTypeSegment, accountSegment, 3, 0},
		},
	}

	for _, tt := range tests {
		path, err := ParseDerivationPath(tt.strPath)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, path)
	}
}

func TestFailingParseDerivationPath(t *testing.T) {
	tests := []struct {
		strPath string
		err     error
	}{
		{
			strPath: "",
			err:     ErrInvalidDerivationPath,
		},
		{
			strPath: "0",
			err:     ErrMalformedDerivationPath,
		},
		{
			strPath: "/1852H/1815H",
			err:     ErrMalformedDerivationPath,
		},
		{
			strPath: "1852H/1815H/",
			err:     ErrMalformedDerivationPath,
		},
	}

	for _, tt := range tests {
		_, err := ParseDerivationPath(tt.strPath)
		assert.Equal(t, tt.err, err)
	}
}

func TestParseDerivationPathIndexBounds(t *testing.T) {
	path, err := ParseDerivationPath(fmt.Sprintf("%dH/0", MaxHardenedValue))
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), path[0])

	path, err = ParseDerivationPath(fmt.Sprintf("0H/%d", uint32(math.MaxUint32)))
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), path[1])

	_, err = ParseDerivationPath(fmt.Sprintf("%dH/0", uint64(MaxHardenedValue)+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hardened range")

	_, err = ParseDerivationPath(fmt.Sprintf("0H/%d", uint64(math.MaxUint32)+1))
	assert.Error(t, err)
}

func TestDerivationPathString(t *testing.T) {
	path, err := ParseDerivationPath("1852H/1815H/0H/4/0")
	require.NoError(t, err)
	assert.Equal(t, "1852H/1815H/0H/4/0", path.String())
}

func TestPathForRole(t *testing.T) {
	tests := []struct {
		role     KeyRole
		expected string
	}{
		{RolePayment, "1852H/1815H/0H/0/0"},
		{RoleStaking, "1852H/1815H/0H/2/0"},
		{RoleCold, "1852H/1815H/0H/0/0"},
		{RoleHot, "1852H/1815H/0H/2/0"},
		{RoleDRep, "1852H/1815H/0H/3/0"},
		{RoleMultisigPayment, "1852H/1815H/0H/4/0"},
		{RoleMultisigStaking, "1852H/1815H/0H/5/0"},
		{RoleMultisigDRep, "1852H/1815H/0H/6/0"},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			path, err := PathForRole(tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path.String())
		})
	}
}

func TestPathRegistryIsImmutable(t *testing.T) {
	path, err := PathForRole(RolePayment)
	require.NoError(t, err)

	// mutating the returned copy must not leak into the registry
	path[3] = 42

	again, err := PathForRole(RolePayment)
	require.NoError(t, err)
	assert.Equal(t, "1852H/1815H/0H/0/0", again.String())
}

func TestFailingPathForRole(t *testing.T) {
	_, err := PathForRole(KeyRole(99))
	assert.Equal(t, ErrUnknownKeyRole, err)
}

func TestRoleLabels(t *testing.T) {
	for _, role := range StakePoolRoles() {
		assert.NotEmpty(t, role.Description())
		assert.NotEmpty(t, role.SigningKeyType())
		assert.NotEmpty(t, role.VerificationKeyType())
	}
	assert.Equal(t, "KesSigningKey_ed25519", RoleHot.SigningKeyType())
	assert.Equal(t, "StakePoolVerificationKey_ed25519", RoleCold.VerificationKeyType())
}
