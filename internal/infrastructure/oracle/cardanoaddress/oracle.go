package cardanoaddress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/poolforge/poolforge/pkg/circuitbreaker"
	"github.com/poolforge/poolforge/pkg/wallet"
)

var (
	// ErrNullBinPath ...
	ErrNullBinPath = errors.New("oracle binary path must not be null")
)

// keyOracle implements wallet.KeyOracle by shelling out to the
// cardano-address binary. Every call pipes the key material through stdin so
// it never shows up in process listings, and goes through a circuit breaker
// so a broken or missing binary fails fast instead of piling up exec calls.
type keyOracle struct {
	binPath string
	breaker *gobreaker.CircuitBreaker
}

// NewKeyOracle returns a wallet.KeyOracle backed by the external binary at
// binPath.
func NewKeyOracle(binPath string) (wallet.KeyOracle, error) {
	if len(strings.TrimSpace(binPath)) <= 0 {
		return nil, ErrNullBinPath
	}
	return &keyOracle{
		binPath: binPath,
		breaker: circuitbreaker.NewCircuitBreaker("key-oracle"),
	}, nil
}

func (o *keyOracle) RootKeyFromPhrase(
	ctx context.Context, phrase string,
) (string, error) {
	return o.run(ctx, phrase, "key", "from-recovery-phrase", "Shelley")
}

func (o *keyOracle) DeriveChild(
	ctx context.Context, parent, path string,
) (string, error) {
	return o.run(ctx, parent, "key", "child", path)
}

func (o *keyOracle) PublicKeyWithChainCode(
	ctx context.Context, private string,
) (string, error) {
	return o.run(ctx, private, "key", "public", "--with-chain-code")
}

func (o *keyOracle) HashKey(ctx context.Context, public string) (string, error) {
	return o.run(ctx, public, "key", "hash")
}

func (o *keyOracle) EncodeAddress(
	ctx context.Context, kind wallet.AddressKind, vkey string, networkTag uint8,
) (string, error) {
	return o.run(
		ctx, vkey,
		"address", kind.String(), "--network-tag", fmt.Sprintf("%d", networkTag),
	)
}

func (o *keyOracle) CombineDelegation(
	ctx context.Context, paymentAddress, stakeVKey string,
) (string, error) {
	return o.run(ctx, paymentAddress, "address", "delegation", stakeVKey)
}

// run executes one oracle subcommand with stdin as input, returning trimmed
// stdout. Any exec or breaker failure is surfaced as ErrOracleUnavailable so
// callers can fall back to another oracle.
func (o *keyOracle) run(
	ctx context.Context, stdin string, args ...string,
) (string, error) {
	out, err := o.breaker.Execute(func() (interface{}, error) {
		cmd := exec.CommandContext(ctx, o.binPath, args...)
		cmd.Stdin = strings.NewReader(stdin)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); len(msg) > 0 {
				return nil, fmt.Errorf("%s: %v", msg, err)
			}
			return nil, err
		}
		return strings.TrimSpace(stdout.String()), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", wallet.ErrOracleUnavailable, err)
	}
	return out.(string), nil
}
