package credstore

import "errors"

var (
	// ErrNoCredential indicates no usable credential is stored. Missing,
	// incomplete and corrupt data all present as this error.
	ErrNoCredential = errors.New("credstore: no credential stored")

	// ErrEmptyPath indicates a file store was created without a path.
	ErrEmptyPath = errors.New("credstore: credentials file path is required")
)
