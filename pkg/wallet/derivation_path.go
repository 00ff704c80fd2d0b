package wallet

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic key location
type DerivationPath []uint32

const (
	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart

	purposeSegment  = hdkeychain.HardenedKeyStart + 1852
	coinTypeSegment = hdkeychain.HardenedKeyStart + 1815
	accountSegment  = hdkeychain.HardenedKeyStart + 0
)

// KeyRole is the logical role a derived key pair plays in an operator's
// wallet. Each role maps to exactly one fixed derivation path.
type KeyRole int

const (
	// RolePayment ...
	RolePayment KeyRole = iota
	// RoleStaking ...
	RoleStaking
	// RoleCold is the stake pool operator (cold) key.
	RoleCold
	// RoleHot is the hot/KES key.
	RoleHot
	// RoleDRep is the governance delegated-representative key.
	RoleDRep
	// RoleMultisigPayment ...
	RoleMultisigPayment
	// RoleMultisigStaking ...
	RoleMultisigStaking
	// RoleMultisigDRep ...
	RoleMultisigDRep
)

// pathByRole is the fixed derivation path registry. Paths are a function of
// the role only; adding a role means adding one row here plus its labels
// below.
var pathByRole = map[KeyRole]DerivationPath{
	RolePayment:         {purposeSegment, coinTypeSegment, accountSegment, 0, 0},
	RoleStaking:         {purposeSegment, coinTypeSegment, accountSegment, 2, 0},
	RoleCold:            {purposeSegment, coinTypeSegment, accountSegment, 0, 0},
	RoleHot:             {purposeSegment, coinTypeSegment, accountSegment, 2, 0},
	RoleDRep:            {purposeSegment, coinTypeSegment, accountSegment, 3, 0},
	RoleMultisigPayment: {purposeSegment, coinTypeSegment, accountSegment, 4, 0},
	RoleMultisigStaking: {purposeSegment, coinTypeSegment, accountSegment, 5, 0},
	RoleMultisigDRep:    {purposeSegment, coinTypeSegment, accountSegment, 6, 0},
}

var nameByRole = map[KeyRole]string{
	RolePayment:         "payment",
	RoleStaking:         "stake",
	RoleCold:            "cold",
	RoleHot:             "hot",
	RoleDRep:            "drep",
	RoleMultisigPayment: "ms_payment",
	RoleMultisigStaking: "ms_stake",
	RoleMultisigDRep:    "ms_drep",
}

var descriptionByRole = map[KeyRole]string{
	RolePayment:         "Payment",
	RoleStaking:         "Stake",
	RoleCold:            "Stake Pool Operator",
	RoleHot:             "KES",
	RoleDRep:            "DRep",
	RoleMultisigPayment: "Multi-Signature Payment",
	RoleMultisigStaking: "Multi-Signature Stake",
	RoleMultisigDRep:    "Multi-Signature DRep",
}

// signingKeyTypeByRole and verificationKeyTypeByRole carry the type labels
// expected by the signing toolchain when tagging persisted key files.
var signingKeyTypeByRole = map[KeyRole]string{
	RolePayment:         "PaymentSigningKeyShelley_ed25519",
	RoleStaking:         "StakeSigningKeyShelley_ed25519",
	RoleCold:            "StakePoolSigningKey_ed25519",
	RoleHot:             "KesSigningKey_ed25519",
	RoleDRep:            "DRepSigningKey_ed25519",
	RoleMultisigPayment: "PaymentSigningKeyShelley_ed25519",
	RoleMultisigStaking: "StakeSigningKeyShelley_ed25519",
	RoleMultisigDRep:    "DRepSigningKey_ed25519",
}

var verificationKeyTypeByRole = map[KeyRole]string{
	RolePayment:         "PaymentVerificationKeyShelley_ed25519",
	RoleStaking:         "StakeVerificationKeyShelley_ed25519",
	RoleCold:            "StakePoolVerificationKey_ed25519",
	RoleHot:             "KesVerificationKey_ed25519",
	RoleDRep:            "DRepVerificationKey_ed25519",
	RoleMultisigPayment: "PaymentVerificationKeyShelley_ed25519",
	RoleMultisigStaking: "StakeVerificationKeyShelley_ed25519",
	RoleMultisigDRep:    "DRepVerificationKey_ed25519",
}

func (r KeyRole) valid() bool {
	_, ok := pathByRole[r]
	return ok
}

func (r KeyRole) String() string {
	if name, ok := nameByRole[r]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(r))
}

// Description returns the human-readable name used in persisted file
// descriptions.
func (r KeyRole) Description() string {
	return descriptionByRole[r]
}

// SigningKeyType returns the toolchain type label for the role's signing key.
func (r KeyRole) SigningKeyType() string {
	return signingKeyTypeByRole[r]
}

// VerificationKeyType returns the toolchain type label for the role's
// verification key.
func (r KeyRole) VerificationKeyType() string {
	return verificationKeyTypeByRole[r]
}

// PathForRole returns the fixed derivation path of the given role. The
// returned path is a copy, the registry itself is immutable.
func PathForRole(role KeyRole) (DerivationPath, error) {
	path, ok := pathByRole[role]
	if !ok {
		return nil, ErrUnknownKeyRole
	}
	out := make(DerivationPath, len(path))
	copy(out, path)
	return out, nil
}

// SimpleWalletRoles are the roles derived for a plain operator wallet.
func SimpleWalletRoles() []KeyRole {
	return []KeyRole{RolePayment, RoleStaking}
}

// StakePoolRoles are all eight roles derived for a full stake pool bundle.
func StakePoolRoles() []KeyRole {
	return []KeyRole{
		RolePayment, RoleStaking, RoleCold, RoleHot,
		RoleDRep, RoleMultisigPayment, RoleMultisigStaking, RoleMultisigDRep,
	}
}

// ParseDerivationPath converts a derivation path string to the internal
// binary representation. Hardened segments may be suffixed either with 'H'
// (the oracle wire convention) or with an apostrophe.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	var path DerivationPath

	elems := strings.Split(strPath, "/")
	switch {
	case strPath == "":
		return nil, ErrInvalidDerivationPath

	case containsEmptyString(elems):
		return nil, ErrMalformedDerivationPath
	case len(elems) < 2:
		return nil, ErrMalformedDerivationPath

	case len(elems) > 1:
		if strings.TrimSpace(elems[0]) == "m" {
			elems = elems[1:]
		}

	default:
		return nil, ErrInvalidDerivationPath
	}

	// all remaining elems are relative, append one by one
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, "H") || strings.HasSuffix(elem, "'") {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSpace(elem[:len(elem)-1])
		}

		// use big int for convertion
		bigval, ok := new(big.Int).SetString(elem, 0)
		if !ok {
			return nil, fmt.Errorf("invalid elem '%s' in path", elem)
		}

		max := uint32(math.MaxUint32)
		if value == hdkeychain.HardenedKeyStart {
			max = MaxHardenedValue
		}
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf("elem %v must be in range [0, %d]", bigval, max)
			}
			return nil, fmt.Errorf("elem %v must be in hardened range [0, %d]", bigval, max)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	return path, nil
}

// String converts a binary derivation path to the canonical representation
// consumed by the oracle, e.g. "1852H/1815H/0H/0/0".
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	elems := make([]string, 0, len(path))
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		elem := fmt.Sprintf("%d", component)
		if hardened {
			elem += "H"
		}
		elems = append(elems, elem)
	}
	return strings.Join(elems, "/")
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
