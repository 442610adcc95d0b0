package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrMissingFile     = errors.New("missing file")
	ErrMalformedJSON   = errors.New("malformed json")
	ErrUnexpectedShape = errors.New("unexpected dictionary shape")
	ErrMissingWordsKey = errors.New("missing 'words' key")

	// Word catalog errors.
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrCatalogNotMigrated = errors.New("catalog schema not migrated")
)

// SourceError ties a failure to the input file it came from.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError wraps err with the path of the offending file.
func NewSourceError(path string, err error) *SourceError {
	return &SourceError{Path: path, Err: err}
}

// IsFatalLoad reports whether err means an input file could not be used at all.
func IsFatalLoad(err error) bool {
	return errors.Is(err, ErrMissingFile) || errors.Is(err, ErrMalformedJSON)
}
