package domain

import "context"

// RecoveryPhraseRepository is the abstraction for any kind of database
// intended to persist RecoveryPhrases, keyed by ticker.
type RecoveryPhraseRepository interface {
	// GetPhrase returns the phrase stored for the given ticker, or
	// ErrPhraseNotFound.
	GetPhrase(ctx context.Context, ticker string) (*RecoveryPhrase, error)
	// GetOrCreatePhrase returns the phrase stored for the ticker of the given
	// candidate, or persists and returns the candidate when none exists yet.
	GetOrCreatePhrase(ctx context.Context, candidate *RecoveryPhrase) (*RecoveryPhrase, error)
	// AddPhrase persists a new phrase record.
	AddPhrase(ctx context.Context, phrase *RecoveryPhrase) error
}
