// Package shared holds errors common to the reference-data packages.
package shared

import "errors"

var (
	// ErrNotFound indicates the reference row does not exist.
	ErrNotFound = errors.New("reference data not found")
	// ErrDuplicate indicates another live row already uses the name.
	ErrDuplicate = errors.New("name already exists")
	// ErrInUse indicates the row is still referenced and cannot be deleted.
	ErrInUse = errors.New("reference data still in use")
	// ErrInvalid indicates a validation failure.
	ErrInvalid = errors.New("invalid reference data")
)
