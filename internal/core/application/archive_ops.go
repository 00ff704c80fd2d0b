package application

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/poolforge/poolforge/internal/core/domain"
	"github.com/poolforge/poolforge/pkg/securefile"
)

// ErrNothingToArchive ...
var ErrNothingToArchive = fmt.Errorf("wallet directory holds no files to archive")

// archiveExt marks encrypted bundle archives produced by ExportBundleArchive.
const archiveExt = ".export.enc"

// ExportBundleArchive packs every file of the exported bundle into a tar
// archive, seals it under the given password and writes it next to the
// bundle directory.
func (s *walletService) ExportBundleArchive(
	_ context.Context, ticker, purpose, password string,
) (string, error) {
	if len(password) <= 0 {
		return "", securefile.ErrNullPassphrase
	}
	dir := s.exporter.WalletDir(ticker, purpose)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ErrWalletDirNotFound
	}

	var buf bytes.Buffer
	archive := tar.NewWriter(&buf)
	archived := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", err
		}
		if err := archive.WriteHeader(&tar.Header{
			Name:    entry.Name(),
			Mode:    int64(info.Mode().Perm()),
			Size:    int64(len(content)),
			ModTime: info.ModTime(),
		}); err != nil {
			return "", err
		}
		if _, err := archive.Write(content); err != nil {
			return "", err
		}
		archived++
	}
	if err := archive.Close(); err != nil {
		return "", err
	}
	if archived <= 0 {
		return "", ErrNothingToArchive
	}

	sealed, err := securefile.Encrypt(securefile.EncryptOpts{
		PlainText:  buf.Bytes(),
		Passphrase: password,
	})
	if err != nil {
		return "", err
	}

	target := filepath.Join(
		filepath.Dir(dir),
		domain.NormalizeTicker(ticker)+"-"+purpose+archiveExt,
	)
	if err := os.WriteFile(target, []byte(sealed), 0600); err != nil {
		return "", err
	}

	log.Infof("archived %d bundle files into %s", archived, target)
	return target, nil
}
