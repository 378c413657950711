package ingest

import (
	"bytes"
	"strings"
)

// lineBuffer reassembles newline-terminated lines from arbitrary byte
// chunks as they arrive from a serial port.
type lineBuffer struct {
	pending []byte
}

// push appends chunk and returns every line it completed, without the
// terminator. Invalid UTF-8 is dropped rather than failing the line.
func (b *lineBuffer) push(chunk []byte) []string {
	b.pending = append(b.pending, chunk...)
	var lines []string
	for {
		i := bytes.IndexByte(b.pending, '\n')
		if i < 0 {
			break
		}
		raw := strings.TrimRight(string(b.pending[:i]), "\r")
		lines = append(lines, strings.ToValidUTF8(raw, ""))
		b.pending = b.pending[i+1:]
	}
	// keep the backing array from growing without bound
	if len(b.pending) == 0 {
		b.pending = b.pending[:0:0]
	}
	return lines
}
