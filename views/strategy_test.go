package views_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion-dataset/dataset"
	"motion-dataset/utils"
	"motion-dataset/views"
)

func options() views.Options {
	return views.Options{
		WindowSize: 100,
		IntervalMs: 20,
		Device:     views.DeviceInfo{Name: "ESP32-EpiWatch", Type: "ESP32"},
		Clock:      utils.FixedClock(time.Unix(1_700_000_000, 0)),
	}
}

func keys(arts []views.Artifact) []string {
	out := make([]string, len(arts))
	for i, a := range arts {
		out[i] = a.Key
	}
	return out
}

func byKey(t *testing.T, arts []views.Artifact, key string) views.Artifact {
	t.Helper()
	for _, a := range arts {
		if a.Key == key {
			return a
		}
	}
	t.Fatalf("artifact %s not produced", key)
	return views.Artifact{}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]views.Format{
		"merged-table":        views.FormatMergedTable,
		"merged":              views.FormatMergedTable,
		"per-window-file":     views.FormatWindowFiles,
		"individual":          views.FormatWindowFiles,
		"structured-document": views.FormatDocuments,
		"JSON":                views.FormatDocuments,
	} {
		got, err := views.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := views.ParseFormat("parquet")
	assert.ErrorIs(t, err, views.ErrUnknownFormat)
}

func TestStrategy_MergedTable(t *testing.T) {
	s, err := views.NewStrategy(views.FormatMergedTable, options())
	require.NoError(t, err)

	require.NoError(t, s.Add("normal", split(t, 300, 100, 50, "normal")))   // 4 train, 1 test
	require.NoError(t, s.Add("seizure", split(t, 200, 100, 50, "seizure"))) // 2 train, 1 test

	arts, err := s.Artifacts()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"normal_train.csv", "normal_test.csv",
		"seizure_train.csv", "seizure_test.csv",
		views.TrainingTable, views.TestingTable,
	}, keys(arts))

	train := byKey(t, arts, views.TrainingTable)
	assert.Equal(t, 6, train.Windows)
	rows, err := csv.NewReader(bytes.NewReader(train.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Len(t, rows[0], 602)
	assert.Equal(t, "normal", rows[1][601])
	assert.Equal(t, "seizure", rows[6][601])

	test := byKey(t, arts, views.TestingTable)
	assert.Equal(t, 2, test.Windows)
	rows, err = csv.NewReader(bytes.NewReader(test.Data)).ReadAll()
	require.NoError(t, err)
	// every per-label split numbers its rows from 0
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "0", rows[2][0])
}

func TestStrategy_TableIndexPerSplit(t *testing.T) {
	s, err := views.NewStrategy(views.FormatMergedTable, options())
	require.NoError(t, err)
	require.NoError(t, s.Add("normal", split(t, 300, 100, 50, "normal"))) // 4 train, 1 test
	require.NoError(t, s.Add("normal", split(t, 200, 100, 50, "normal"))) // 2 train, 1 test

	arts, err := s.Artifacts()
	require.NoError(t, err)

	index := func(key string) []string {
		rows, err := csv.NewReader(bytes.NewReader(byKey(t, arts, key).Data)).ReadAll()
		require.NoError(t, err)
		var out []string
		for _, r := range rows[1:] {
			out = append(out, r[0])
		}
		return out
	}
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, index("normal_train.csv"))
	assert.Equal(t, []string{"0", "1"}, index("normal_test.csv"))
}

func TestStrategy_EmptyOutputsKeepHeader(t *testing.T) {
	s, err := views.NewStrategy(views.FormatMergedTable, options())
	require.NoError(t, err)
	require.NoError(t, s.Add("normal", dataset.Split{}))

	arts, err := s.Artifacts()
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(byKey(t, arts, views.TrainingTable).Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 602)
}

func TestStrategy_WindowFilesSameLabel(t *testing.T) {
	s, err := views.NewStrategy(views.FormatWindowFiles, options())
	require.NoError(t, err)

	require.NoError(t, s.Add("seizure", split(t, 200, 100, 50, "seizure"))) // 3 windows
	require.NoError(t, s.Add("seizure", split(t, 150, 100, 50, "seizure"))) // 2 windows

	arts, err := s.Artifacts()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"seizure/seizure_0000.csv", "seizure/seizure_0001.csv",
		"seizure/seizure_0003.csv",
		"seizure/seizure_0002.csv", "seizure/seizure_0004.csv",
		views.TrainingManifest, views.TestingManifest,
	}, keys(arts))

	manifest, err := csv.NewReader(bytes.NewReader(byKey(t, arts, views.TestingManifest).Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"path", "label"},
		{"seizure/seizure_0002.csv", "seizure"},
		{"seizure/seizure_0004.csv", "seizure"},
	}, manifest)
}

func TestStrategy_Documents(t *testing.T) {
	s, err := views.NewStrategy(views.FormatDocuments, options())
	require.NoError(t, err)
	require.NoError(t, s.Add("normal", split(t, 130, 100, 50, "normal"))) // 1 window, all test

	arts, err := s.Artifacts()
	require.NoError(t, err)
	assert.Equal(t, []string{"normal_train.json", "normal_test.json", views.TrainingDocs, views.TestingDocs}, keys(arts))
	assert.Equal(t, "[]", string(byKey(t, arts, views.TrainingDocs).Data))

	test, err := views.ReadDocumentPart(bytes.NewReader(byKey(t, arts, views.TestingDocs).Data))
	require.NoError(t, err)
	require.Equal(t, 1, test.Len())
	assert.Len(t, test.Items[0].Payload.Values, 600)
}

func TestStrategy_RejectsUnsafeLabel(t *testing.T) {
	s, err := views.NewStrategy(views.FormatWindowFiles, options())
	require.NoError(t, err)
	assert.Error(t, s.Add("../up", dataset.Split{}))
	assert.Error(t, s.Add("", dataset.Split{}))
}

func TestNewStrategy_UnknownFormat(t *testing.T) {
	_, err := views.NewStrategy("xml", options())
	assert.ErrorIs(t, err, views.ErrUnknownFormat)
}
