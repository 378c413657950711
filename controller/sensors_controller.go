package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"motion-dataset/models"
	"motion-dataset/services/ingest"
	"motion-dataset/utils"
)

// ErrUnknownSource is returned for a collector source we cannot build.
var ErrUnknownSource = errors.New("controller: unknown source")

// Source names accepted in collector.source.
const (
	SourceSerial   = "serial"
	SourceSimulate = "simulate"
	SourceReplay   = "replay"
	SourceMQTT     = "mqtt"
)

// SensorsController owns the lifecycle of the row source selected by the
// collector config and exposes its validated rows.
type SensorsController struct {
	kind string
	src  ingest.RowSource
}

// NewSensorsController builds the reader named by cfg.Source. Every row it
// produces carries label.
func NewSensorsController(cfg utils.CollectorConfig, label string) (*SensorsController, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Source))
	var (
		src ingest.RowSource
		err error
	)
	switch kind {
	case "", SourceSerial:
		kind = SourceSerial
		src, err = ingest.OpenSerialReader(cfg, label)
	case SourceSimulate, "sim", "simulation":
		kind = SourceSimulate
		src = ingest.NewSimulatedReader(cfg, label)
	case SourceReplay:
		src, err = ingest.OpenReplayReader(cfg.Replay, label, cfg.ChannelBuffer)
	case SourceMQTT:
		src = ingest.NewMQTTReader(cfg.MQTT, label, cfg.ChannelBuffer)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, cfg.Source)
	}
	if err != nil {
		return nil, err
	}
	return &SensorsController{kind: kind, src: src}, nil
}

// Kind names the active source.
func (sc *SensorsController) Kind() string { return sc.kind }

// Start launches the source goroutine.
func (sc *SensorsController) Start(ctx context.Context) {
	sc.src.Start(ctx)
	utils.L().Info("sensors controller: %s source launched", sc.kind)
}

// Rows is closed once the source stops.
func (sc *SensorsController) Rows() <-chan models.SensorRow { return sc.src.Rows() }

// Err reports why the source stopped early, if it failed.
func (sc *SensorsController) Err() error { return sc.src.Err() }

// Stats returns the source's counters so far.
func (sc *SensorsController) Stats() ingest.Stats { return sc.src.Stats() }

// LogStats prints the source's current counters.
func (sc *SensorsController) LogStats() {
	s := sc.Stats()
	utils.L().Info("  %-8s accepted=%d  rejected=%d  status=%d", sc.kind, s.Accepted, s.Rejected, s.Status)
}
