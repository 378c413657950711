package views

import (
	"fmt"
	"strings"

	"motion-dataset/models"
)

// TableEncoder flattens each window into one row of the merged table:
// the window index, every timestep's six channels suffixed by the timestep,
// then the label.
type TableEncoder struct {
	WindowSize int
}

// Schema is the merged-table header joined by commas.
func (e TableEncoder) Schema() string {
	return strings.Join(MergedTableColumns(e.WindowSize), ",")
}

func (e TableEncoder) Encode(label string, windows []models.Window) (Part[[]string], error) {
	part := Part[[]string]{Schema: e.Schema(), Items: make([][]string, 0, len(windows))}
	for _, w := range windows {
		if w.Size() != e.WindowSize {
			return Part[[]string]{}, fmt.Errorf("%w: window %d has %d samples, table expects %d",
				ErrSchemaMismatch, w.Index, w.Size(), e.WindowSize)
		}
		row := make([]string, 0, e.WindowSize*models.NumChannels+2)
		row = append(row, models.FormatInt(w.Index))
		for _, v := range w.Flatten() {
			row = append(row, models.FormatFloat(v))
		}
		row = append(row, label)
		part.Items = append(part.Items, row)
	}
	return part, nil
}

// TableHeader recovers the column names of a table part.
func TableHeader(p Part[[]string]) []string {
	if p.Schema == "" {
		return nil
	}
	return strings.Split(p.Schema, ",")
}
