package controller

import (
	"context"
	"fmt"
	"time"

	"motion-dataset/utils"
)

// Collect records one labelled session: it starts the configured source,
// writes every valid row until the source ends, ctx is cancelled or
// cfg.DurationSeconds elapses, and commits the recording. A source failure
// discards the partial recording.
func Collect(ctx context.Context, cfg utils.CollectorConfig, label string, clock utils.Clock) (Summary, error) {
	sensors, err := NewSensorsController(cfg, label)
	if err != nil {
		return Summary{}, fmt.Errorf("init source: %w", err)
	}
	return CollectFrom(ctx, cfg, label, sensors, clock)
}

// CollectFrom runs a collection on an already built source.
func CollectFrom(ctx context.Context, cfg utils.CollectorConfig, label string, sensors *SensorsController, clock utils.Clock) (Summary, error) {
	recorder, err := NewRecordingController(cfg, label, clock)
	if err != nil {
		return Summary{}, fmt.Errorf("init recording: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.DurationSeconds > 0 {
		var timerCancel context.CancelFunc
		ctx, timerCancel = context.WithTimeout(ctx, time.Duration(cfg.DurationSeconds)*time.Second)
		defer timerCancel()
		utils.L().Info("recording will auto-stop after %ds", cfg.DurationSeconds)
	}

	sensors.Start(ctx)
	recorder.Start(ctx, sensors.Rows())

	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()
loop:
	for {
		select {
		case <-recorder.Done():
			break loop
		case <-statsTicker.C:
			sensors.LogStats()
		}
	}

	srcErr := sensors.Err()
	sum, err := recorder.Stop(srcErr == nil)
	if srcErr != nil {
		return sum, fmt.Errorf("%s source: %w", sensors.Kind(), srcErr)
	}
	if err != nil {
		return sum, err
	}

	sensors.LogStats()
	utils.L().Info("collection complete  samples=%d  duration=%.1fs  rate=%.1f Hz",
		sum.Samples, sum.Duration.Seconds(), sum.Rate())
	return sum, nil
}
