package views

import (
	"fmt"
	"path"
	"strings"

	"motion-dataset/models"
)

// WindowFile is one window rendered as its own small table.
type WindowFile struct {
	Name  string // <label>_<index>.csv
	Label string
	Rows  [][]string
}

// Key returns the file's location relative to the output root.
func (f WindowFile) Key() string { return path.Join(f.Label, f.Name) }

// WindowFileEncoder writes one file per window. Each file restarts its
// synthetic timestamp at zero and advances it by IntervalMs per row.
type WindowFileEncoder struct {
	WindowSize int
	IntervalMs int
}

func (e WindowFileEncoder) Schema() string {
	return fmt.Sprintf("%s;rows=%d;interval_ms=%d",
		strings.Join(WindowFileColumns(), ","), e.WindowSize, e.IntervalMs)
}

// WindowFileName returns the stable, sortable name of window index under label.
func WindowFileName(label string, index int) string {
	return fmt.Sprintf("%s_%04d.csv", label, index)
}

func (e WindowFileEncoder) Encode(label string, windows []models.Window) (Part[WindowFile], error) {
	part := Part[WindowFile]{Schema: e.Schema(), Items: make([]WindowFile, 0, len(windows))}
	for _, w := range windows {
		if w.Size() != e.WindowSize {
			return Part[WindowFile]{}, fmt.Errorf("%w: window %d has %d samples, files expect %d",
				ErrSchemaMismatch, w.Index, w.Size(), e.WindowSize)
		}
		rows := make([][]string, len(w.Samples))
		for t, s := range w.Samples {
			row := make([]string, 0, models.NumChannels+2)
			row = append(row, models.FormatInt(t*e.IntervalMs))
			for _, v := range s {
				row = append(row, models.FormatFloat(v))
			}
			rows[t] = append(row, label)
		}
		part.Items = append(part.Items, WindowFile{
			Name:  WindowFileName(label, w.Index),
			Label: label,
			Rows:  rows,
		})
	}
	return part, nil
}
