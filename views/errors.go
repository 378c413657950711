package views

import "errors"

var (
	// ErrSchemaMismatch is returned when encoded parts with different layouts
	// are merged, or a window does not match the encoder's window size.
	ErrSchemaMismatch = errors.New("views: schema mismatch")

	// ErrUnknownFormat is returned for an output format we do not produce.
	ErrUnknownFormat = errors.New("views: unknown output format")
)
