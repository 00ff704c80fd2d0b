package dbbadger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/poolforge/poolforge/internal/core/domain"
)

type bundleRepositoryImpl struct {
	db *DbManager
}

// NewBundleRepositoryImpl returns a badger backed domain.BundleRepository.
func NewBundleRepositoryImpl(db *DbManager) domain.BundleRepository {
	return bundleRepositoryImpl{db: db}
}

func (r bundleRepositoryImpl) AddBundle(
	_ context.Context, bundle *domain.WalletBundle,
) error {
	return r.db.Store.Insert(bundle.ID, *bundle)
}

func (r bundleRepositoryImpl) GetBundle(
	_ context.Context, id uuid.UUID,
) (*domain.WalletBundle, error) {
	var bundle domain.WalletBundle
	if err := r.db.Store.Get(id, &bundle); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrBundleNotFound
		}
		return nil, err
	}
	return &bundle, nil
}

func (r bundleRepositoryImpl) GetBundleForPurpose(
	ctx context.Context, ticker, purpose string,
) (*domain.WalletBundle, error) {
	query := badgerhold.
		Where("Ticker").Eq(domain.NormalizeTicker(ticker)).
		And("Purpose").Eq(purpose)

	bundles, err := r.findBundles(query)
	if err != nil {
		return nil, err
	}
	if len(bundles) <= 0 {
		return nil, domain.ErrBundleNotFound
	}

	latest := bundles[0]
	for _, bundle := range bundles[1:] {
		if bundle.CreatedAt.After(latest.CreatedAt) {
			latest = bundle
		}
	}
	return latest, nil
}

func (r bundleRepositoryImpl) GetAllBundlesForTicker(
	_ context.Context, ticker string,
) ([]*domain.WalletBundle, error) {
	query := badgerhold.Where("Ticker").Eq(domain.NormalizeTicker(ticker))
	return r.findBundles(query)
}

func (r bundleRepositoryImpl) findBundles(
	query *badgerhold.Query,
) ([]*domain.WalletBundle, error) {
	var found []domain.WalletBundle
	if err := r.db.Store.Find(&found, query); err != nil {
		return nil, err
	}

	bundles := make([]*domain.WalletBundle, 0, len(found))
	for i := range found {
		bundles = append(bundles, &found[i])
	}
	return bundles, nil
}
