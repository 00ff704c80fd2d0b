package domain

import (
	"strings"
	"time"
)

// RecoveryPhrase is the root identity of one operator ticker. It is created
// once and shared by every purpose generated under that ticker, so all
// role-scoped wallets stay re-derivable from a single phrase.
type RecoveryPhrase struct {
	Ticker    string
	Words     []string
	CreatedAt time.Time
}

// NewRecoveryPhrase builds a phrase record for the given ticker. Tickers are
// case-insensitive and stored upper-case.
func NewRecoveryPhrase(ticker string, words []string) (*RecoveryPhrase, error) {
	ticker = NormalizeTicker(ticker)
	if len(ticker) <= 0 {
		return nil, ErrNullTicker
	}
	if len(words) <= 0 {
		return nil, ErrNullPhrase
	}
	return &RecoveryPhrase{
		Ticker:    ticker,
		Words:     words,
		CreatedAt: time.Now(),
	}, nil
}

// NormalizeTicker maps a ticker to its canonical upper-case form.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
