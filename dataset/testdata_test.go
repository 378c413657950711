package dataset_test

import (
	"fmt"
	"strings"

	"motion-dataset/models"
)

// makeRecording builds n rows whose channel values encode the row number,
// so every sample can be traced back to its source row.
func makeRecording(n int, label string) *models.Recording {
	rec := &models.Recording{Source: "mem", Label: label}
	for i := 0; i < n; i++ {
		f := float64(i)
		rec.Rows = append(rec.Rows, models.SensorRow{
			Timestamp: fmt.Sprint(i * 20),
			AccelX:    f, AccelY: f + 0.1, AccelZ: f + 0.2,
			GyroX: -f, GyroY: -f - 0.1, GyroZ: -f - 0.2,
			Label: label,
		})
	}
	return rec
}

func csvTable(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
