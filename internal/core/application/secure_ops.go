package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/poolforge/poolforge/pkg/securefile"
)

var (
	// ErrWalletDirNotFound ...
	ErrWalletDirNotFound = fmt.Errorf("wallet directory not found")
	// ErrNoSensitiveFiles ...
	ErrNoSensitiveFiles = fmt.Errorf("no sensitive files found to secure")
	// ErrNoSecuredFiles ...
	ErrNoSecuredFiles = fmt.Errorf("no secured files found")
	// ErrSecuredFileNotFound ...
	ErrSecuredFileNotFound = fmt.Errorf("secured file not found")
)

// securedExt marks files sealed by SecureBundleFiles.
const securedExt = ".enc"

// sensitive file suffixes: signing keys and recovery phrases.
var sensitiveSuffixes = []string{".skey", ".staking_skey", ".mnemonic.txt"}

func isSensitiveFile(name string) bool {
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// SecureBundleFiles seals every sensitive file of the exported bundle and
// removes the plaintext originals.
func (s *walletService) SecureBundleFiles(
	_ context.Context, ticker, purpose, password string,
) (int, error) {
	if len(password) <= 0 {
		return 0, securefile.ErrNullPassphrase
	}
	dir := s.exporter.WalletDir(ticker, purpose)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, ErrWalletDirNotFound
	}

	secured := 0
	for _, entry := range entries {
		if entry.IsDir() || !isSensitiveFile(entry.Name()) {
			continue
		}
		source := filepath.Join(dir, entry.Name())
		if err := securefile.EncryptFile(securefile.EncryptFileOpts{
			SourcePath: source,
			TargetPath: source + securedExt,
			Passphrase: password,
		}); err != nil {
			return secured, err
		}
		if err := os.Remove(source); err != nil {
			return secured, err
		}
		secured++
	}
	if secured <= 0 {
		return 0, ErrNoSensitiveFiles
	}

	log.Infof("secured %d sensitive files in %s", secured, dir)
	return secured, nil
}

// ListSecuredFiles returns the original names of the sealed files of a bundle.
func (s *walletService) ListSecuredFiles(
	_ context.Context, ticker, purpose string,
) ([]string, error) {
	dir := s.exporter.WalletDir(ticker, purpose)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ErrWalletDirNotFound
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), securedExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), securedExt))
	}
	if len(names) <= 0 {
		return nil, ErrNoSecuredFiles
	}
	return names, nil
}

// ViewSecuredFile decrypts one sealed file in memory, leaving the sealed copy
// on disk untouched.
func (s *walletService) ViewSecuredFile(
	_ context.Context, ticker, purpose, password, name string,
) ([]byte, error) {
	dir := s.exporter.WalletDir(ticker, purpose)
	sealed := filepath.Join(dir, name+securedExt)
	if _, err := os.Stat(sealed); err != nil {
		return nil, ErrSecuredFileNotFound
	}
	return securefile.DecryptToMemory(sealed, password)
}
