package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/poolforge/poolforge/internal/core/domain"
)

type phraseRepositoryImpl struct {
	db *DbManager
}

// NewRecoveryPhraseRepositoryImpl returns a badger backed
// domain.RecoveryPhraseRepository keyed by ticker.
func NewRecoveryPhraseRepositoryImpl(db *DbManager) domain.RecoveryPhraseRepository {
	return phraseRepositoryImpl{db: db}
}

func (r phraseRepositoryImpl) GetPhrase(
	_ context.Context, ticker string,
) (*domain.RecoveryPhrase, error) {
	ticker = domain.NormalizeTicker(ticker)
	var phrase domain.RecoveryPhrase
	if err := r.db.Store.Get(ticker, &phrase); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrPhraseNotFound
		}
		return nil, err
	}
	return &phrase, nil
}

func (r phraseRepositoryImpl) GetOrCreatePhrase(
	ctx context.Context, candidate *domain.RecoveryPhrase,
) (*domain.RecoveryPhrase, error) {
	if candidate == nil {
		return nil, domain.ErrNullPhrase
	}

	phrase, err := r.GetPhrase(ctx, candidate.Ticker)
	if err == nil {
		return phrase, nil
	}
	if !errors.Is(err, domain.ErrPhraseNotFound) {
		return nil, err
	}

	if err := r.AddPhrase(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (r phraseRepositoryImpl) AddPhrase(
	_ context.Context, phrase *domain.RecoveryPhrase,
) error {
	return r.db.Store.Insert(phrase.Ticker, *phrase)
}
