package views

import (
	"fmt"
	"strings"

	"motion-dataset/models"
	"motion-dataset/utils"
)

// Envelope constants of the document format. Documents are unsigned.
const (
	DocumentVersion   = "v1"
	DocumentAlgorithm = "none"
)

// DeviceInfo is the fixed device metadata stamped into every document.
type DeviceInfo struct {
	Name string
	Type string
}

// DocumentEncoder renders each window as a signed-envelope JSON document.
type DocumentEncoder struct {
	WindowSize int
	IntervalMs int
	Device     DeviceInfo
	Clock      utils.Clock
}

func (e DocumentEncoder) Schema() string {
	return documentSchema(e.WindowSize*models.NumChannels, e.IntervalMs, models.SensorAxes())
}

// Encode builds one document per window. The issued-at time is the clock's
// reading in milliseconds, shifted by the window's row offset, in seconds.
func (e DocumentEncoder) Encode(label string, windows []models.Window) (Part[models.Document], error) {
	clock := e.Clock
	if clock == nil {
		clock = utils.SystemClock{}
	}
	part := Part[models.Document]{Schema: e.Schema(), Items: make([]models.Document, 0, len(windows))}
	for _, w := range windows {
		if w.Size() != e.WindowSize {
			return Part[models.Document]{}, fmt.Errorf("%w: window %d has %d samples, documents expect %d",
				ErrSchemaMismatch, w.Index, w.Size(), e.WindowSize)
		}
		issuedMs := clock.Now().UnixMilli() + int64(w.Offset)
		part.Items = append(part.Items, models.Document{
			Protected: models.Protected{
				Ver: DocumentVersion,
				Alg: DocumentAlgorithm,
				Iat: issuedMs / 1000,
			},
			Signature: "",
			Payload: models.Payload{
				DeviceName: e.Device.Name,
				DeviceType: e.Device.Type,
				IntervalMs: e.IntervalMs,
				Sensors:    models.SensorAxes(),
				Values:     w.Flatten(),
				Label:      label,
			},
		})
	}
	return part, nil
}

// DocumentSchema describes the layout of an existing document.
func DocumentSchema(d models.Document) string {
	return documentSchema(len(d.Payload.Values), d.Payload.IntervalMs, d.Payload.Sensors)
}

func documentSchema(values, intervalMs int, sensors []models.SensorAxis) string {
	axes := make([]string, len(sensors))
	for i, s := range sensors {
		axes[i] = s.Name + "[" + s.Units + "]"
	}
	return fmt.Sprintf("values=%d;interval_ms=%d;sensors=%s", values, intervalMs, strings.Join(axes, ","))
}

// Unflatten regroups timestep-major values into samples. It fails when the
// value count is not size whole timesteps.
func Unflatten(values []float64, size int) ([]models.Sample, error) {
	if size <= 0 || len(values) != size*models.NumChannels {
		return nil, fmt.Errorf("%w: %d values do not form %d samples", ErrSchemaMismatch, len(values), size)
	}
	out := make([]models.Sample, size)
	for t := range out {
		copy(out[t][:], values[t*models.NumChannels:(t+1)*models.NumChannels])
	}
	return out, nil
}
