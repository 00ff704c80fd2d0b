package domain

import (
	"context"

	"github.com/google/uuid"
)

// BundleRepository is the abstraction for any kind of database intended to
// persist WalletBundles.
type BundleRepository interface {
	// AddBundle persists a new bundle.
	AddBundle(ctx context.Context, bundle *WalletBundle) error
	// GetBundle returns the bundle with the given id, or ErrBundleNotFound.
	GetBundle(ctx context.Context, id uuid.UUID) (*WalletBundle, error)
	// GetBundleForPurpose returns the latest bundle issued for the given
	// (ticker, purpose) pair, or ErrBundleNotFound.
	GetBundleForPurpose(ctx context.Context, ticker, purpose string) (*WalletBundle, error)
	// GetAllBundlesForTicker returns every bundle issued under a ticker.
	GetAllBundlesForTicker(ctx context.Context, ticker string) ([]*WalletBundle, error)
}
