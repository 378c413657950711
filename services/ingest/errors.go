package ingest

import "errors"

// Reasons a device line is rejected by ParseLine.
var (
	ErrEmptyLine  = errors.New("ingest: empty line")
	ErrStatusLine = errors.New("ingest: status line")
	ErrFieldCount = errors.New("ingest: wrong field count")
	ErrNotNumeric = errors.New("ingest: channel value is not a finite number")
)

// ErrNoPort is returned when no serial port was given and none was found.
var ErrNoPort = errors.New("ingest: no compatible serial port found")

// ErrAmbiguousPort is returned when several candidate ports were found.
var ErrAmbiguousPort = errors.New("ingest: several compatible serial ports found")
