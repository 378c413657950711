package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"motion-dataset/models"
)

// LineKind classifies one line received from the device.
type LineKind int

const (
	LineEmpty LineKind = iota
	LineStatus
	LineData
	LineInvalid
)

var lineKindNames = [...]string{"empty", "status", "data", "invalid"}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "unknown"
}

// StatusPrefixes mark out-of-band device messages. They never carry sensor
// data and must not reach a recording.
var StatusPrefixes = []string{"READY:", "FORMAT:", "ERROR:", "DATA_COLLECTION_STARTED"}

// deviceFields is timestamp + 6 channels, as sent by the firmware.
const deviceFields = 1 + models.NumChannels

// ClassifyLine reports what kind of line the device sent.
func ClassifyLine(line string) LineKind {
	_, err := ParseLine(line, "")
	switch {
	case err == nil:
		return LineData
	case errors.Is(err, ErrEmptyLine):
		return LineEmpty
	case errors.Is(err, ErrStatusLine):
		return LineStatus
	default:
		return LineInvalid
	}
}

// ParseLine validates one device line of the form
//
//	timestamp,ax,ay,az,gx,gy,gz
//
// and returns the row labelled with label. The timestamp is kept verbatim.
func ParseLine(line, label string) (models.SensorRow, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.SensorRow{}, ErrEmptyLine
	}
	for _, p := range StatusPrefixes {
		if strings.HasPrefix(line, p) {
			return models.SensorRow{}, ErrStatusLine
		}
	}

	parts := strings.Split(line, ",")
	if len(parts) != deviceFields {
		return models.SensorRow{}, fmt.Errorf("%w: %d", ErrFieldCount, len(parts))
	}

	var vals [models.NumChannels]float64
	for i := range vals {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.SensorRow{}, fmt.Errorf("%w: %s=%q", ErrNotNumeric, models.ChannelNames[i], parts[i+1])
		}
		vals[i] = v
	}

	return models.SensorRow{
		Timestamp: strings.TrimSpace(parts[0]),
		AccelX:    vals[0],
		AccelY:    vals[1],
		AccelZ:    vals[2],
		GyroX:     vals[3],
		GyroY:     vals[4],
		GyroZ:     vals[5],
		Label:     label,
	}, nil
}
