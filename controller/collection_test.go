package controller_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion-dataset/controller"
	"motion-dataset/dataset"
	"motion-dataset/services/ingest"
	"motion-dataset/utils"
)

const deviceLog = `READY: EpiWatch IMU
FORMAT: timestamp,ax,ay,az,gx,gy,gz
DATA_COLLECTION_STARTED
0,0.1,0.2,9.8,1,2,3
20,0.1,0.2
40,0.3,0.2,9.8,1,2,3
60,0.4,0.2,9.8,1,2,3
`

func replayConfig(t *testing.T, log string) utils.CollectorConfig {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "device.log")
	require.NoError(t, os.WriteFile(path, []byte(log), 0o644))

	cfg := utils.DefaultConfig().Collector
	cfg.Source = controller.SourceReplay
	cfg.Replay.Path = path
	cfg.OutputDir = filepath.Join(dir, "dataset")
	cfg.DurationSeconds = 0
	return cfg
}

func TestCollect_ReplayWritesRecording(t *testing.T) {
	cfg := replayConfig(t, deviceLog)

	sum, err := controller.Collect(context.Background(), cfg, "seizure", testClock)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum.Samples)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "seizure_20240301_120000.csv"), sum.Path)

	data, err := os.ReadFile(sum.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"timestamp,accel_x,accel_y,accel_z,gyro_x,gyro_y,gyro_z,label\n"+
			"0,0.1,0.2,9.8,1,2,3,seizure\n"+
			"40,0.3,0.2,9.8,1,2,3,seizure\n"+
			"60,0.4,0.2,9.8,1,2,3,seizure\n",
		string(data))

	// a collected recording loads back as a valid recording
	rec, err := dataset.LoadRecordingFile(sum.Path)
	require.NoError(t, err)
	assert.Equal(t, "seizure", rec.Label)
	assert.Equal(t, 3, rec.Len())
}

func TestCollect_NoSamplesLeavesNothing(t *testing.T) {
	cfg := replayConfig(t, "READY: EpiWatch IMU\nnot,a,row\n")

	_, err := controller.Collect(context.Background(), cfg, "normal", testClock)
	require.ErrorIs(t, err, controller.ErrNoSamples)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCollect_ExplicitOutput(t *testing.T) {
	cfg := replayConfig(t, deviceLog)
	cfg.Output = filepath.Join(t.TempDir(), "custom.csv")

	sum, err := controller.Collect(context.Background(), cfg, "normal", testClock)
	require.NoError(t, err)
	assert.Equal(t, cfg.Output, sum.Path)
	assert.FileExists(t, cfg.Output)
}

func TestNewSensorsController_UnknownSource(t *testing.T) {
	cfg := utils.DefaultConfig().Collector
	cfg.Source = "bluetooth"
	_, err := controller.NewSensorsController(cfg, "normal")
	assert.ErrorIs(t, err, controller.ErrUnknownSource)
}

func TestNewRecordingController_RequiresLabel(t *testing.T) {
	_, err := controller.NewRecordingController(utils.DefaultConfig().Collector, "", testClock)
	assert.Error(t, err)
}

func TestCollect_SimulatedStopsOnCancel(t *testing.T) {
	cfg := utils.DefaultConfig().Collector
	cfg.Source = controller.SourceSimulate
	cfg.SampleRateHz = 200
	cfg.DurationSeconds = 0
	cfg.OutputDir = t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	sum, err := controller.Collect(ctx, cfg, "normal", testClock)
	require.NoError(t, err)
	assert.Positive(t, sum.Samples)
	assert.Positive(t, sum.Rate())

	rec, err := dataset.LoadRecordingFile(sum.Path)
	require.NoError(t, err)
	assert.Equal(t, int(sum.Samples), rec.Len())
}

func TestSensorsController_Stats(t *testing.T) {
	cfg := replayConfig(t, deviceLog)
	sc, err := controller.NewSensorsController(cfg, "normal")
	require.NoError(t, err)
	assert.Equal(t, controller.SourceReplay, sc.Kind())

	sc.Start(context.Background())
	for range sc.Rows() {
	}
	assert.Equal(t, ingest.Stats{Accepted: 3, Rejected: 1, Status: 3}, sc.Stats())
	sc.LogStats()
}
