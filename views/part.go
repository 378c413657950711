package views

import "fmt"

// Part is the encoded form of an ordered run of windows: the items an
// encoder produced plus a schema string describing their layout. Parts with
// equal schemas can be concatenated.
type Part[T any] struct {
	Schema string
	Items  []T
}

// Len returns the number of encoded windows.
func (p Part[T]) Len() int { return len(p.Items) }

// Concat joins parts in order. Items are never reordered, rewritten or
// deduplicated. Every part must share one schema; parts without a schema
// and without items are skipped.
func Concat[T any](parts ...Part[T]) (Part[T], error) {
	var out Part[T]
	total := 0
	for _, p := range parts {
		total += len(p.Items)
	}
	out.Items = make([]T, 0, total)

	for i, p := range parts {
		if p.Schema == "" && len(p.Items) == 0 {
			continue
		}
		if out.Schema == "" {
			out.Schema = p.Schema
		} else if p.Schema != out.Schema {
			return Part[T]{}, fmt.Errorf("%w: part %d has %q, expected %q",
				ErrSchemaMismatch, i, abbreviate(p.Schema), abbreviate(out.Schema))
		}
		out.Items = append(out.Items, p.Items...)
	}
	return out, nil
}

// abbreviate keeps schema strings readable in errors; a merged-table header
// alone runs to thousands of characters.
func abbreviate(s string) string {
	const limit = 96
	if len(s) <= limit {
		return s
	}
	return s[:limit/2] + "…" + s[len(s)-limit/2:]
}
