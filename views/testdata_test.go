package views_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"motion-dataset/dataset"
	"motion-dataset/models"
)

// recording builds n rows whose values encode the row number.
func recording(n int, label string) *models.Recording {
	rec := &models.Recording{Source: "mem", Label: label}
	for i := 0; i < n; i++ {
		f := float64(i)
		rec.Rows = append(rec.Rows, models.SensorRow{
			Timestamp: models.FormatInt(i * 20),
			AccelX:    f, AccelY: f + 0.5, AccelZ: 9.81,
			GyroX: -f, GyroY: 0, GyroZ: 0.25,
			Label: label,
		})
	}
	return rec
}

func windows(t *testing.T, n, size, stride int, label string) []models.Window {
	t.Helper()
	w, err := dataset.Segment(recording(n, label), size, stride)
	require.NoError(t, err)
	return w
}

func split(t *testing.T, n, size, stride int, label string) dataset.Split {
	t.Helper()
	s, err := dataset.Partition(windows(t, n, size, stride, label), 0.8)
	require.NoError(t, err)
	return s
}
