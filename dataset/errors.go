package dataset

import "errors"

// Input validation failures. LoadRecording wraps these with the source name
// and CSV line so callers can match them with errors.Is.
var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("dataset: missing required column")

	// ErrNotNumeric is returned when a channel field is not a finite float.
	ErrNotNumeric = errors.New("dataset: channel value is not a finite number")

	// ErrMixedLabels is returned when a row's label differs from the first row's.
	ErrMixedLabels = errors.New("dataset: recording mixes labels")

	// ErrEmptyLabel is returned when the first row carries no label.
	ErrEmptyLabel = errors.New("dataset: empty label")

	// ErrEmptyRecording is returned for a table with a header but no rows.
	// No label can be derived, so the recording cannot produce artifacts.
	ErrEmptyRecording = errors.New("dataset: recording has no rows")
)

// Configuration failures, reported before any segmentation runs.
var (
	ErrInvalidWindowSize = errors.New("dataset: window size must be positive")
	ErrInvalidStride     = errors.New("dataset: stride must be positive")
	ErrInvalidTrainRatio = errors.New("dataset: train ratio must be in (0,1)")
)
