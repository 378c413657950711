package views

import (
	"fmt"

	"motion-dataset/models"
)

// Column layouts for every CSV artifact live here so the encoders and the
// merge reader agree on them.

// RecordingColumns is the header of a persisted recording.
func RecordingColumns() []string {
	return models.SensorRow{}.CSVHeader()
}

// MergedTableColumns returns the flattened-window header for windowSize
// timesteps: timestamp, accel_x_0 … gyro_z_0, …, gyro_z_{n-1}, label.
func MergedTableColumns(windowSize int) []string {
	cols := make([]string, 0, windowSize*models.NumChannels+2)
	cols = append(cols, "timestamp")
	for t := 0; t < windowSize; t++ {
		for _, ch := range models.ChannelNames {
			cols = append(cols, fmt.Sprintf("%s_%d", ch, t))
		}
	}
	return append(cols, "label")
}

// WindowFileColumns is the header of a per-window file.
func WindowFileColumns() []string {
	return RecordingColumns()
}

// ManifestColumns is the header of the per-window split manifests.
func ManifestColumns() []string {
	return []string{"path", "label"}
}
