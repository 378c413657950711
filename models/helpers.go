package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string { return strconv.Itoa(v) }

// ftoa renders v with the shortest representation that parses back to the
// same float64. Channel values must survive a write/read cycle untouched.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFloat is ftoa for callers outside the package.
func FormatFloat(v float64) string { return ftoa(v) }

// FormatInt is itoa for callers outside the package.
func FormatInt(v int) string { return itoa(v) }

// CSVRowWriter is the interface every loggable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
