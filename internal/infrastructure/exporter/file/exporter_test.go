package fileexporter

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolforge/poolforge/internal/core/domain"
)

func TestFailingNewBundleExporter(t *testing.T) {
	_, err := NewBundleExporter("  ")
	assert.Equal(t, ErrNullDatadir, err)
}

func TestExportSimpleBundle(t *testing.T) {
	datadir := t.TempDir()
	exporter, err := NewBundleExporter(datadir)
	require.NoError(t, err)

	bundle, err := domain.NewWalletBundle("mypool", "pledge", "mainnet")
	require.NoError(t, err)
	bundle.BaseAddress = "addr1base"
	bundle.BaseAddressCandidate = "addr1base"
	bundle.RewardAddress = "stake1reward"
	bundle.RewardAddressCandidate = "stake1reward"
	bundle.Keys["stake"] = domain.KeyMaterial{
		Role:            "stake",
		SigningKey:      "stake_sk1secret",
		VerificationKey: "stake_vk1public",
	}
	bundle.Mnemonic = []string{"legal", "winner", "thank", "year"}

	dir, err := exporter.ExportBundle(context.Background(), bundle)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(datadir, "MYPOOL", "pledge"), dir)

	expected := map[string]string{
		"MYPOOL-pledge.base_addr":             "addr1base",
		"MYPOOL-pledge.base_addr.candidate":   "addr1base",
		"MYPOOL-pledge.reward_addr":           "stake1reward",
		"MYPOOL-pledge.reward_addr.candidate": "stake1reward",
		"MYPOOL-pledge.staking_skey":          "stake_sk1secret",
		"MYPOOL-pledge.staking_vkey":          "stake_vk1public",
		"MYPOOL-pledge.mnemonic.txt":          "legal winner thank year",
	}
	for name, content := range expected {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, content, string(raw), name)
	}

	if runtime.GOOS != "windows" {
		for _, name := range []string{
			"MYPOOL-pledge.staking_skey", "MYPOOL-pledge.mnemonic.txt",
		} {
			info, err := os.Stat(filepath.Join(dir, name))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), name)
		}
	}
}

func TestExportCompleteBundle(t *testing.T) {
	exporter, err := NewBundleExporter(t.TempDir())
	require.NoError(t, err)

	bundle, err := domain.NewWalletBundle("MYPOOL", "pledge", "mainnet")
	require.NoError(t, err)
	bundle.BaseAddress = "addr1base"
	bundle.BaseAddressCandidate = "addr1base"
	bundle.PaymentAddress = "addr1payment"
	bundle.RewardAddress = "stake1reward"
	bundle.RewardAddressCandidate = "stake1reward"
	bundle.Keys["payment"] = domain.KeyMaterial{
		Role:                "payment",
		SigningKeyFile:      domain.NewKeyFile("PaymentSigningKeyShelley_ed25519", "Payment Signing Key", "5820aa"),
		VerificationKeyFile: domain.NewKeyFile("PaymentVerificationKeyShelley_ed25519", "Payment Verification Key", "5820bb"),
	}
	bundle.Keys["cold"] = domain.KeyMaterial{
		Role:                "cold",
		SigningKeyFile:      domain.NewKeyFile("StakePoolSigningKey_ed25519", "Stake Pool Operator Signing Key", "5820cc"),
		VerificationKeyFile: domain.NewKeyFile("StakePoolVerificationKey_ed25519", "Stake Pool Operator Verification Key", "5820dd"),
	}
	bundle.Credentials["payment"] = "97ce611e7f40bf23332d119bd4129e8611e449ea1ccee2fa9026c181"
	bundle.Certificates = []domain.Certificate{
		domain.NewPlaceholderStakeCertificate(),
		domain.NewPlaceholderDelegationCertificate(),
	}

	dir, err := exporter.ExportBundle(context.Background(), bundle)
	require.NoError(t, err)

	for _, name := range []string{
		"base.addr", "base.addr.candidate", "payment.addr",
		"reward.addr", "reward.addr.candidate",
		"payment.skey", "payment.vkey", "cc-cold.skey", "cc-cold.vkey",
		"payment.cred", "stake.cert", "delegation.cert",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "payment.skey"))
	require.NoError(t, err)
	parsed, err := domain.ParseKeyFile(raw)
	require.NoError(t, err)
	assert.Equal(t, "PaymentSigningKeyShelley_ed25519", parsed.Type)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dir, "cc-cold.skey"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}
