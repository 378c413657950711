package controller_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"motion-dataset/controller"
	"motion-dataset/dataset"
	"motion-dataset/services/storage"
	"motion-dataset/utils"
	"motion-dataset/views"
)

func prepare(t *testing.T, in, format string) (*controller.RunReport, string) {
	t.Helper()
	out := t.TempDir()
	pc, err := controller.NewPreparationController(prepareConfig(in, out, format), storage.NewLocalSink(out), testClock)
	require.NoError(t, err)
	report, err := pc.Run(context.Background())
	require.NoError(t, err)
	return report, out
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestPreparation_MergedTable(t *testing.T) {
	in := t.TempDir()
	writeRecording(t, in, "normal_20240101_100000.csv", "normal", 300)   // 5 windows
	writeRecording(t, in, "seizure_20240101_110000.csv", "seizure", 250) // 4 windows

	report, out := prepare(t, in, "merged-table")

	assert.ElementsMatch(t, []string{
		"normal_train.csv", "normal_test.csv",
		"seizure_train.csv", "seizure_test.csv",
		"training_data.csv", "testing_data.csv",
		"run.yaml",
	}, listFiles(t, out))

	train := readCSV(t, filepath.Join(out, "training_data.csv"))
	test := readCSV(t, filepath.Join(out, "testing_data.csv"))
	require.Len(t, train, 1+4+3)
	require.Len(t, test, 1+1+1)
	assert.Len(t, train[0], 602)
	assert.Equal(t, "normal", train[1][601])
	assert.Equal(t, "seizure", train[7][601])

	assert.Equal(t, 9, report.Totals.Windows)
	assert.Equal(t, 7, report.Totals.Train)
	assert.Equal(t, 2, report.Totals.Test)
	assert.Equal(t, 50, report.Params.Overlap)
}

func TestPreparation_RunReport(t *testing.T) {
	in := t.TempDir()
	writeRecording(t, in, "a_normal.csv", "normal", 300)
	writeRecording(t, in, "b_short.csv", "seizure", 99)
	writeRecording(t, in, "c_empty.csv", "seizure", 0)

	report, out := prepare(t, in, "structured-document")

	data, err := os.ReadFile(filepath.Join(out, controller.ReportName))
	require.NoError(t, err)
	var got controller.RunReport
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, report.RunID, got.RunID)
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, views.FormatDocuments, got.Format)
	require.Len(t, got.Recordings, 3)
	assert.Equal(t, controller.StatusOK, got.Recordings[0].Status)
	assert.Equal(t, controller.StatusShort, got.Recordings[1].Status)
	assert.Equal(t, 0, got.Recordings[1].Windows)
	assert.Equal(t, controller.StatusEmpty, got.Recordings[2].Status)
	assert.Equal(t, 2, got.Totals.Recordings)

	// the short recording still gets its (empty) per-label artifacts
	data, err = os.ReadFile(filepath.Join(out, "seizure_train.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestPreparation_WindowFiles(t *testing.T) {
	in := t.TempDir()
	writeRecording(t, in, "seizure_1.csv", "seizure", 200) // windows 0,1 | 2
	writeRecording(t, in, "seizure_2.csv", "seizure", 150) // windows 3 | 4

	_, out := prepare(t, in, "per-window-file")

	assert.ElementsMatch(t, []string{
		"seizure/seizure_0000.csv", "seizure/seizure_0001.csv", "seizure/seizure_0002.csv",
		"seizure/seizure_0003.csv", "seizure/seizure_0004.csv",
		"training_manifest.csv", "testing_manifest.csv", "run.yaml",
	}, listFiles(t, out))

	rows := readCSV(t, filepath.Join(out, "seizure", "seizure_0003.csv"))
	require.Len(t, rows, 101)
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "0", rows[1][1]) // first row of the second recording
	assert.Equal(t, "seizure", rows[1][7])

	manifest := readCSV(t, filepath.Join(out, "training_manifest.csv"))
	assert.Equal(t, []string{"seizure/seizure_0003.csv", "seizure"}, manifest[3])
}

func TestPreparation_InvalidRecordingsWriteNothing(t *testing.T) {
	in := t.TempDir()
	writeRecording(t, in, "good.csv", "normal", 300)
	require.NoError(t, os.WriteFile(filepath.Join(in, "mixed.csv"), []byte(
		"timestamp,accel_x,accel_y,accel_z,gyro_x,gyro_y,gyro_z,label\n"+
			"0,1,1,1,1,1,1,normal\n"+
			"20,1,1,1,1,1,1,seizure\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "nan.csv"), []byte(
		"timestamp,accel_x,accel_y,accel_z,gyro_x,gyro_y,gyro_z,label\n"+
			"0,x,1,1,1,1,1,normal\n"), 0o644))

	out := t.TempDir()
	pc, err := controller.NewPreparationController(prepareConfig(in, out, "merged-table"), storage.NewLocalSink(out), testClock)
	require.NoError(t, err)

	_, err = pc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrMixedLabels))
	assert.True(t, errors.Is(err, dataset.ErrNotNumeric))
	assert.Len(t, multierr.Errors(errors.Unwrap(err)), 2)
	assert.Empty(t, listFiles(t, out))
}

func TestPreparation_RejectsConfig(t *testing.T) {
	sink := storage.NewLocalSink(t.TempDir())
	for name, mutate := range map[string]func(*utils.PrepareConfig){
		"window":   func(c *utils.PrepareConfig) { c.WindowSize = 0 },
		"stride":   func(c *utils.PrepareConfig) { c.Stride = -1 },
		"ratio":    func(c *utils.PrepareConfig) { c.TrainRatio = 1 },
		"format":   func(c *utils.PrepareConfig) { c.Format = "xml" },
		"interval": func(c *utils.PrepareConfig) { c.IntervalMs = 0 },
	} {
		cfg := prepareConfig("in", "out", "merged-table")
		mutate(&cfg)
		_, err := controller.NewPreparationController(cfg, sink, testClock)
		assert.Error(t, err, name)
	}
}

func TestPreparation_NoRecordings(t *testing.T) {
	out := t.TempDir()
	pc, err := controller.NewPreparationController(prepareConfig(t.TempDir(), out, "merged-table"), storage.NewLocalSink(out), testClock)
	require.NoError(t, err)
	_, err = pc.Run(context.Background())
	assert.ErrorIs(t, err, controller.ErrNoRecordings)
}
