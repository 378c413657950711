package models

// Document is one window in the signed-envelope JSON layout accepted by
// Edge Impulse's ingestion service.
type Document struct {
	Protected Protected `json:"protected"`
	Signature string    `json:"signature"`
	Payload   Payload   `json:"payload"`
}

// Protected is the document envelope header.
type Protected struct {
	Ver string `json:"ver"`
	Alg string `json:"alg"`
	Iat int64  `json:"iat"` // issued-at, unix seconds
}

// Payload carries device metadata and the flattened window values.
type Payload struct {
	DeviceName string       `json:"device_name"`
	DeviceType string       `json:"device_type"`
	IntervalMs int          `json:"interval_ms"`
	Sensors    []SensorAxis `json:"sensors"`
	Values     []float64    `json:"values"`
	Label      string       `json:"label"`
}

// SensorAxis names one channel and its physical unit.
type SensorAxis struct {
	Name  string `json:"name"`
	Units string `json:"units"`
}

// SensorAxes returns the channel descriptors in canonical channel order.
func SensorAxes() []SensorAxis {
	return []SensorAxis{
		{Name: "accX", Units: "m/s2"},
		{Name: "accY", Units: "m/s2"},
		{Name: "accZ", Units: "m/s2"},
		{Name: "gyrX", Units: "dps"},
		{Name: "gyrY", Units: "dps"},
		{Name: "gyrZ", Units: "dps"},
	}
}
