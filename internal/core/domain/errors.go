package domain

import "errors"

var (
	// ErrNullTicker is thrown when creating a bundle or phrase without a ticker
	ErrNullTicker = errors.New("ticker must not be null")
	// ErrNullPurpose ...
	ErrNullPurpose = errors.New("purpose must not be null")
	// ErrNullPhrase ...
	ErrNullPhrase = errors.New("recovery phrase must not be null")
	// ErrPhraseNotFound ...
	ErrPhraseNotFound = errors.New("recovery phrase not found for ticker")
	// ErrBundleNotFound ...
	ErrBundleNotFound = errors.New("wallet bundle not found")
	// ErrNoValidKeysProvided is thrown by the import flow when none of the
	// supplied key files could be parsed
	ErrNoValidKeysProvided = errors.New("no valid keys provided for import")
	// ErrMalformedKeyFile ...
	ErrMalformedKeyFile = errors.New(
		"key file must be a record with type, description and cborHex fields",
	)
)
