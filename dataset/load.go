package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"motion-dataset/models"
)

// RequiredColumns is the header every persisted recording must carry.
var RequiredColumns = models.SensorRow{}.CSVHeader()

// LoadRecordingFile opens path and loads it with LoadRecording.
func LoadRecordingFile(path string) (*models.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return LoadRecording(f, path)
}

// LoadRecording parses a delimited recording table. Columns are located by
// name, so their order and any extra columns do not matter. The whole table
// is rejected on the first invalid row; source names the input in errors.
func LoadRecording(r io.Reader, source string) (*models.Recording, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: no header: %w %v", source, ErrMissingColumn, RequiredColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	rec := &models.Recording{Source: source}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		line, _ := cr.FieldPos(0)

		row, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}
		if len(rec.Rows) == 0 {
			if row.Label == "" {
				return nil, fmt.Errorf("%s: line %d: %w", source, line, ErrEmptyLabel)
			}
			rec.Label = row.Label
		} else if row.Label != rec.Label {
			return nil, fmt.Errorf("%s: line %d: %w: %q after %q",
				source, line, ErrMixedLabels, row.Label, rec.Label)
		}
		rec.Rows = append(rec.Rows, row)
	}

	if len(rec.Rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyRecording)
	}
	return rec, nil
}

// columnIndex holds the position of each required column.
type columnIndex struct {
	timestamp int
	channels  [models.NumChannels]int
	label     int
}

func locateColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var (
		idx columnIndex
		err error
	)
	if idx.timestamp, err = lookup("timestamp"); err != nil {
		return idx, err
	}
	for c, name := range models.ChannelNames {
		if idx.channels[c], err = lookup(name); err != nil {
			return idx, err
		}
	}
	if idx.label, err = lookup("label"); err != nil {
		return idx, err
	}
	return idx, nil
}

func parseRow(record []string, cols columnIndex) (models.SensorRow, error) {
	var vals [models.NumChannels]float64
	for c, i := range cols.channels {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.SensorRow{}, fmt.Errorf("%w: %s=%q", ErrNotNumeric, models.ChannelNames[c], record[i])
		}
		vals[c] = v
	}
	return models.SensorRow{
		Timestamp: record[cols.timestamp],
		AccelX:    vals[0],
		AccelY:    vals[1],
		AccelZ:    vals[2],
		GyroX:     vals[3],
		GyroY:     vals[4],
		GyroZ:     vals[5],
		Label:     strings.TrimSpace(record[cols.label]),
	}, nil
}
