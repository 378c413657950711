package models

// NumChannels is the number of motion channels carried by every sample.
const NumChannels = 6

// ChannelNames lists the channel columns in their canonical order. Every
// flattened representation follows this order within a timestep.
var ChannelNames = [NumChannels]string{
	"accel_x", "accel_y", "accel_z",
	"gyro_x", "gyro_y", "gyro_z",
}

// Sample is one timestep of channel values, ordered as ChannelNames.
type Sample [NumChannels]float64

// SensorRow holds one accelerometer + gyroscope reading as recorded.
type SensorRow struct {
	Timestamp string  `json:"timestamp"` // verbatim from the device, never interpreted
	AccelX    float64 `json:"accel_x"`   // m/s²
	AccelY    float64 `json:"accel_y"`
	AccelZ    float64 `json:"accel_z"`
	GyroX     float64 `json:"gyro_x"` // deg/s
	GyroY     float64 `json:"gyro_y"`
	GyroZ     float64 `json:"gyro_z"`
	Label     string  `json:"label"`
}

// Sample returns the row's channel values in canonical order.
func (r SensorRow) Sample() Sample {
	return Sample{r.AccelX, r.AccelY, r.AccelZ, r.GyroX, r.GyroY, r.GyroZ}
}

func (SensorRow) CSVHeader() []string {
	h := make([]string, 0, NumChannels+2)
	h = append(h, "timestamp")
	h = append(h, ChannelNames[:]...)
	return append(h, "label")
}

func (r SensorRow) CSVRow() []string {
	return []string{
		r.Timestamp,
		ftoa(r.AccelX), ftoa(r.AccelY), ftoa(r.AccelZ),
		ftoa(r.GyroX), ftoa(r.GyroY), ftoa(r.GyroZ),
		r.Label,
	}
}
