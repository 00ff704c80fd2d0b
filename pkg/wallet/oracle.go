package wallet

import "context"

// AddressKind selects which single-credential address encoding the oracle
// must produce.
type AddressKind int

const (
	// AddressKindPayment is a payment-only (enterprise) address.
	AddressKindPayment AddressKind = iota
	// AddressKindStake is a stake (reward) address.
	AddressKindStake
)

func (k AddressKind) String() string {
	switch k {
	case AddressKindPayment:
		return "payment"
	case AddressKindStake:
		return "stake"
	default:
		return "unknown"
	}
}

// KeyOracle is the external collaborator providing the signature-scheme
// primitives: root key generation, hierarchical child derivation, public key
// extraction, key hashing and address encoding. Every operation is textual in
// and out and must be deterministic: the same inputs always produce the same
// output bytes. The orchestrator and the address builder treat the material
// as opaque blobs.
type KeyOracle interface {
	// RootKeyFromPhrase turns a recovery phrase into the root signing key.
	RootKeyFromPhrase(ctx context.Context, phrase string) (string, error)
	// DeriveChild derives a child signing key along the given path, with
	// segments separated by '/' and hardened ones suffixed 'H'.
	DeriveChild(ctx context.Context, parent, path string) (string, error)
	// PublicKeyWithChainCode extracts the verification key including the
	// chain code, so further public derivation stays possible.
	PublicKeyWithChainCode(ctx context.Context, private string) (string, error)
	// HashKey computes the 28-byte credential hash of a verification key.
	HashKey(ctx context.Context, public string) (string, error)
	// EncodeAddress builds a single-credential address of the given kind
	// for the given network tag.
	EncodeAddress(
		ctx context.Context, kind AddressKind, vkey string, networkTag uint8,
	) (string, error)
	// CombineDelegation binds the stake credential of the given
	// verification key into the payment address, yielding a base address.
	CombineDelegation(
		ctx context.Context, paymentAddress, stakeVKey string,
	) (string, error)
}

// Network identifies the target chain instance an address is built for.
type Network string

const (
	// NetworkMainnet ...
	NetworkMainnet Network = "mainnet"
	// NetworkTestnet ...
	NetworkTestnet Network = "testnet"
	// NetworkPreview ...
	NetworkPreview Network = "preview"
	// NetworkPreprod ...
	NetworkPreprod Network = "preprod"
)

// ParseNetwork validates a network name. Preview and preprod are
// operator-local synonyms of the testnet family.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(s); n {
	case NetworkMainnet, NetworkTestnet, NetworkPreview, NetworkPreprod:
		return n, nil
	default:
		return "", ErrUnknownNetwork
	}
}

func (n Network) validate() error {
	_, err := ParseNetwork(string(n))
	return err
}

// Tag returns the network tag encoded into addresses: 1 for mainnet, 0 for
// every test network.
func (n Network) Tag() uint8 {
	if n == NetworkMainnet {
		return 1
	}
	return 0
}

// AddressPrefix returns the payment address prefix for the network family.
func (n Network) AddressPrefix() string {
	if n == NetworkMainnet {
		return "addr"
	}
	return "addr_test"
}

// StakeAddressPrefix returns the reward address prefix for the network family.
func (n Network) StakeAddressPrefix() string {
	if n == NetworkMainnet {
		return "stake"
	}
	return "stake_test"
}
