package ports

import (
	"context"

	"github.com/poolforge/poolforge/internal/core/domain"
)

// BundleExporter is the persistence collaborator receiving finished wallet
// bundles. Implementations own the filesystem layout and permission bits; the
// core only hands over verified bundles.
type BundleExporter interface {
	// ExportBundle writes every artifact of the bundle and returns the
	// directory it was written to.
	ExportBundle(ctx context.Context, bundle *domain.WalletBundle) (string, error)
	// WalletDir returns the directory a (ticker, purpose) bundle is exported
	// to, whether or not it exists yet.
	WalletDir(ticker, purpose string) string
}
