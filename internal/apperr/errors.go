// Package apperr holds the sentinel errors shared across doclinks packages.
package apperr

import "errors"

var (
	// ErrConfiguration aborts a run before any analysis happens.
	ErrConfiguration = errors.New("configuration error")
	// ErrDocumentRead marks a single document that could not be analyzed.
	ErrDocumentRead = errors.New("document read error")
)
