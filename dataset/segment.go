package dataset

import (
	"fmt"

	"motion-dataset/models"
)

// Segment slices rec into windows of size rows, starting a new window every
// stride rows. Trailing rows that cannot fill a whole window are dropped.
// A recording shorter than size yields no windows and no error.
func Segment(rec *models.Recording, size, stride int) ([]models.Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidWindowSize, size)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidStride, stride)
	}

	n := rec.Len()
	windows := make([]models.Window, 0, WindowCount(n, size, stride))
	for i := 0; i <= n-size; i += stride {
		samples := make([]models.Sample, size)
		for j := range samples {
			samples[j] = rec.Rows[i+j].Sample()
		}
		windows = append(windows, models.Window{
			Index:   len(windows),
			Offset:  i,
			Label:   rec.Label,
			Samples: samples,
		})
	}
	return windows, nil
}

// WindowCount returns how many windows Segment produces for n rows.
func WindowCount(n, size, stride int) int {
	if size <= 0 || stride <= 0 || n < size {
		return 0
	}
	return (n-size)/stride + 1
}
