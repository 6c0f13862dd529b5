package services

import "errors"

// Service-level sentinel errors. Handlers translate these into the
// appropriate API error responses.
var (
	// ErrDatasetNotFound indicates the named dataset file does not exist
	// in the dataset directory.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrInvalidDatasetName indicates the dataset name failed validation,
	// typically a path traversal attempt or unsupported extension.
	ErrInvalidDatasetName = errors.New("invalid dataset name")
)
