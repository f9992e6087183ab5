package domain

import "errors"

// Domain errors represent engine-level failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfiguration indicates an invalid schema or profile definition.
	// Raised before atomization begins; never partially applied.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDuplicateKey indicates a registry key is already taken.
	// Registration never silently overwrites.
	ErrDuplicateKey = errors.New("duplicate registry key")

	// ErrUnknownKey indicates a registry lookup for an unregistered key.
	ErrUnknownKey = errors.New("unknown registry key")

	// ErrRegistryFrozen indicates a registration attempt after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrAtomization indicates an unrecoverable structural failure while
	// building the atom tree. A split rule that matches nothing is not an
	// error; the whole input degenerates to a single child instead.
	ErrAtomization = errors.New("atomization failed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates no extractor handles a document format.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
