package views

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"motion-dataset/models"
)

// renderCSV encodes a header and rows in memory so the sink can write the
// artifact in one piece.
func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv write rows: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderTable encodes a table part as CSV.
func RenderTable(p Part[[]string]) ([]byte, error) {
	return renderCSV(TableHeader(p), p.Items)
}

// RenderWindowFile encodes one per-window file as CSV.
func RenderWindowFile(f WindowFile) ([]byte, error) {
	return renderCSV(WindowFileColumns(), f.Rows)
}

// RenderDocuments encodes a document part as an indented JSON array.
func RenderDocuments(p Part[models.Document]) ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []models.Document{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}
	return data, nil
}

// ReadTablePart parses a persisted merged-table artifact. The header
// becomes the part's schema.
func ReadTablePart(r io.Reader) (Part[[]string], error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Part[[]string]{}, nil
	}
	if err != nil {
		return Part[[]string]{}, fmt.Errorf("read table header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return Part[[]string]{}, fmt.Errorf("read table rows: %w", err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return Part[[]string]{Schema: strings.Join(header, ","), Items: rows}, nil
}

// ReadDocumentPart parses a persisted JSON document array. Every document
// must share one layout.
func ReadDocumentPart(r io.Reader) (Part[models.Document], error) {
	var docs []models.Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return Part[models.Document]{}, fmt.Errorf("decode documents: %w", err)
	}
	part := Part[models.Document]{Items: docs}
	for i, d := range docs {
		s := DocumentSchema(d)
		if i == 0 {
			part.Schema = s
			continue
		}
		if s != part.Schema {
			return Part[models.Document]{}, fmt.Errorf("%w: document %d has %q, expected %q",
				ErrSchemaMismatch, i, s, part.Schema)
		}
	}
	return part, nil
}
