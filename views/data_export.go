package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"

	"motion-dataset/models"
)

// CSVWriter is a concurrency-safe, buffered CSV writer for recordings.
// Rows go to a temp file beside the destination; Commit renames it into
// place, so a recording either appears complete or not at all.
//
// The mutex is held only for a single row encode. Flush is driven by the
// collection controller, not by the writer itself.
type CSVWriter struct {
	mu   sync.Mutex
	path string
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
	done bool
}

// NewCSVWriter creates the temp file for path and writes the header row.
func NewCSVWriter(path string, bufSizeBytes int, header []string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("csv create dir for %s: %w", path, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 64 * 1024
	}
	bw := bufio.NewWriterSize(f, bufSizeBytes)
	w := &CSVWriter{
		path: path,
		file: f,
		buf:  bw,
		csv:  csv.NewWriter(bw),
	}

	if len(header) > 0 {
		if err := w.csv.Write(header); err != nil {
			w.Abort()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}
	return w, nil
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csv write row: %w", err)
	}
	w.rows++
	return nil
}

// WriteModel appends the row of a loggable model.
func (w *CSVWriter) WriteModel(m models.CSVRowWriter) error {
	return w.WriteRow(m.CSVRow())
}

// Flush pushes buffered rows to the temp file.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *CSVWriter) flushLocked() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Commit flushes, syncs and renames the temp file onto the destination.
func (w *CSVWriter) Commit() (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return fmt.Errorf("csv %s: already closed", w.path)
	}
	w.done = true

	tmp := w.file.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	err = w.flushLocked()
	err = multierr.Append(err, w.file.Sync())
	err = multierr.Append(err, w.file.Close())
	if err != nil {
		return fmt.Errorf("csv finish %s: %w", w.path, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("csv commit %s: %w", w.path, err)
	}
	return nil
}

// Abort discards everything written so far.
func (w *CSVWriter) Abort() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return
	}
	w.done = true
	_ = w.file.Close()
	_ = os.Remove(w.file.Name())
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// Path returns the final destination of the recording.
func (w *CSVWriter) Path() string { return w.path }
