package types

import "errors"

// Error kinds for conversion operations. They are wrapped with fmt.Errorf
// and %w so callers can classify failures with errors.Is.
var (
	// ErrNotFound marks a missing input file or folder.
	ErrNotFound = errors.New("input not found")

	// ErrValidation marks an out-of-range setting, rejected before any I/O.
	ErrValidation = errors.New("invalid configuration")

	// ErrInvalidPage marks a sample page outside the document.
	ErrInvalidPage = errors.New("invalid page number")

	// ErrIO marks a filesystem or document read/write failure.
	ErrIO = errors.New("io failure")

	// ErrEncode marks an image encoding failure. JPEG encode errors are
	// recovered inside the render layer via PNG fallback and never reach
	// callers; the kind exists so that recovery can test for it.
	ErrEncode = errors.New("image encode failure")
)
