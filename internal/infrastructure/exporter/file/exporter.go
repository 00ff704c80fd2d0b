package fileexporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/poolforge/poolforge/internal/core/domain"
	"github.com/poolforge/poolforge/internal/core/ports"
)

var (
	// ErrNullDatadir ...
	ErrNullDatadir = errors.New("datadir must not be null")
)

const (
	dirPerm       = 0700
	filePerm      = 0644
	sensitivePerm = 0600
)

// fileStemByRole maps role names to the file stems of the complete bundle
// layout expected by node tooling.
var fileStemByRole = map[string]string{
	"payment":    "payment",
	"stake":      "stake",
	"cold":       "cc-cold",
	"hot":        "cc-hot",
	"drep":       "drep",
	"ms_payment": "ms_payment",
	"ms_stake":   "ms_stake",
	"ms_drep":    "ms_drep",
}

type bundleExporter struct {
	datadir string
}

// NewBundleExporter returns a ports.BundleExporter writing bundles under
// datadir/TICKER/purpose. Signing keys and recovery phrases are written
// owner-readable only.
func NewBundleExporter(datadir string) (ports.BundleExporter, error) {
	if len(strings.TrimSpace(datadir)) <= 0 {
		return nil, ErrNullDatadir
	}
	return &bundleExporter{datadir: datadir}, nil
}

func (e *bundleExporter) WalletDir(ticker, purpose string) string {
	return filepath.Join(e.datadir, domain.NormalizeTicker(ticker), purpose)
}

func (e *bundleExporter) ExportBundle(
	_ context.Context, bundle *domain.WalletBundle,
) (string, error) {
	dir := e.WalletDir(bundle.Ticker, bundle.Purpose)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", err
	}

	if e.isComplete(bundle) {
		if err := e.writeCompleteLayout(dir, bundle); err != nil {
			return "", err
		}
	} else {
		if err := e.writeSimpleLayout(dir, bundle); err != nil {
			return "", err
		}
	}

	if len(bundle.Mnemonic) > 0 {
		mnemonicFile := filepath.Join(
			dir, bundle.Ticker+"-"+bundle.Purpose+".mnemonic.txt",
		)
		if err := os.WriteFile(
			mnemonicFile, []byte(strings.Join(bundle.Mnemonic, " ")), sensitivePerm,
		); err != nil {
			return "", err
		}
	}

	return dir, nil
}

// isComplete tells the eight-role stake pool layout apart from the simple
// two-role one.
func (e *bundleExporter) isComplete(bundle *domain.WalletBundle) bool {
	return len(bundle.PaymentAddress) > 0 || len(bundle.Certificates) > 0
}

// writeSimpleLayout emits the ticker-prefixed flat files of a plain operator
// wallet, candidates included.
func (e *bundleExporter) writeSimpleLayout(
	dir string, bundle *domain.WalletBundle,
) error {
	prefix := bundle.Ticker + "-" + bundle.Purpose

	plain := map[string]string{
		prefix + ".base_addr":             bundle.BaseAddress,
		prefix + ".base_addr.candidate":   bundle.BaseAddressCandidate,
		prefix + ".reward_addr":           bundle.RewardAddress,
		prefix + ".reward_addr.candidate": bundle.RewardAddressCandidate,
	}
	if material, ok := bundle.Keys["stake"]; ok {
		plain[prefix+".staking_vkey"] = material.VerificationKey
		if err := writeIfPresent(
			filepath.Join(dir, prefix+".staking_skey"), material.SigningKey, sensitivePerm,
		); err != nil {
			return err
		}
	}

	for name, content := range plain {
		if err := writeIfPresent(filepath.Join(dir, name), content, filePerm); err != nil {
			return err
		}
	}
	return nil
}

// writeCompleteLayout emits the full stake pool file set: addresses, one
// envelope pair per role, credentials and certificates.
func (e *bundleExporter) writeCompleteLayout(
	dir string, bundle *domain.WalletBundle,
) error {
	addresses := map[string]string{
		"base.addr":             bundle.BaseAddress,
		"base.addr.candidate":   bundle.BaseAddressCandidate,
		"payment.addr":          bundle.PaymentAddress,
		"reward.addr":           bundle.RewardAddress,
		"reward.addr.candidate": bundle.RewardAddressCandidate,
	}
	for name, content := range addresses {
		if err := writeIfPresent(filepath.Join(dir, name), content, filePerm); err != nil {
			return err
		}
	}

	for role, material := range bundle.Keys {
		stem, ok := fileStemByRole[role]
		if !ok {
			stem = role
		}

		signing, err := material.SigningKeyFile.Serialize()
		if err != nil {
			return err
		}
		if err := os.WriteFile(
			filepath.Join(dir, stem+".skey"), signing, sensitivePerm,
		); err != nil {
			return err
		}

		verification, err := material.VerificationKeyFile.Serialize()
		if err != nil {
			return err
		}
		if err := os.WriteFile(
			filepath.Join(dir, stem+".vkey"), verification, filePerm,
		); err != nil {
			return err
		}
	}

	for role, credential := range bundle.Credentials {
		stem, ok := fileStemByRole[role]
		if !ok {
			stem = role
		}
		if err := writeIfPresent(
			filepath.Join(dir, stem+".cred"), credential, filePerm,
		); err != nil {
			return err
		}
	}

	for _, certificate := range bundle.Certificates {
		raw, err := certificate.Serialize()
		if err != nil {
			return err
		}
		if err := os.WriteFile(
			filepath.Join(dir, certificate.Name+".cert"), raw, filePerm,
		); err != nil {
			return err
		}
	}
	return nil
}

func writeIfPresent(path, content string, perm os.FileMode) error {
	if len(content) <= 0 {
		return nil
	}
	return os.WriteFile(path, []byte(content), perm)
}
