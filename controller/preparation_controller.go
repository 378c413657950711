package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"motion-dataset/dataset"
	"motion-dataset/models"
	"motion-dataset/services/storage"
	"motion-dataset/utils"
	"motion-dataset/views"
)

// ErrNoRecordings is returned when the input directory holds no recording.
var ErrNoRecordings = errors.New("controller: no recordings found")

// ReportName is the run report written beside the artifacts.
const ReportName = "run.yaml"

// Recording statuses in the run report.
const (
	StatusOK    = "ok"
	StatusShort = "short" // fewer rows than one window
	StatusEmpty = "empty" // header only, skipped
)

// PreparationController turns a directory of recordings into training and
// testing artifacts in one output format:
//
//	*.csv ─► load+validate ─► Segment ─► Partition ─► Strategy ─► Sink
//
// Every recording is validated before anything is written.
type PreparationController struct {
	cfg    utils.PrepareConfig
	params dataset.Params
	format views.Format
	sink   storage.Sink
	clock  utils.Clock
}

// NewPreparationController checks cfg and binds the output sink.
func NewPreparationController(cfg utils.PrepareConfig, sink storage.Sink, clock utils.Clock) (*PreparationController, error) {
	params := dataset.Params{WindowSize: cfg.WindowSize, Stride: cfg.Stride, TrainRatio: cfg.TrainRatio}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	format, err := views.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if cfg.IntervalMs <= 0 {
		return nil, fmt.Errorf("controller: interval_ms must be positive, got %d", cfg.IntervalMs)
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &PreparationController{cfg: cfg, params: params, format: format, sink: sink, clock: clock}, nil
}

// Format is the output format in use.
func (pc *PreparationController) Format() views.Format { return pc.format }

// ─── run report ─────────────────────────────────────────────────────────

// RunReport is the run.yaml written after a successful preparation.
type RunReport struct {
	RunID      string            `yaml:"run_id"`
	CreatedAt  time.Time         `yaml:"created_at"`
	Format     views.Format      `yaml:"format"`
	Location   string            `yaml:"location"`
	Params     ReportParams      `yaml:"params"`
	Recordings []RecordingReport `yaml:"recordings"`
	Totals     ReportTotals      `yaml:"totals"`
	Artifacts  []ArtifactReport  `yaml:"artifacts"`
}

// ReportParams records the windowing parameters of a run.
type ReportParams struct {
	WindowSize int     `yaml:"window_size"`
	Stride     int     `yaml:"stride"`
	Overlap    int     `yaml:"overlap"`
	TrainRatio float64 `yaml:"train_ratio"`
	IntervalMs int     `yaml:"interval_ms"`
}

// RecordingReport describes what one input recording contributed.
type RecordingReport struct {
	File    string `yaml:"file"`
	Label   string `yaml:"label,omitempty"`
	Rows    int    `yaml:"rows"`
	Windows int    `yaml:"windows"`
	Train   int    `yaml:"train"`
	Test    int    `yaml:"test"`
	Status  string `yaml:"status"`
}

// ReportTotals sums the recordings that were loaded.
type ReportTotals struct {
	Recordings int `yaml:"recordings"`
	Windows    int `yaml:"windows"`
	Train      int `yaml:"train"`
	Test       int `yaml:"test"`
}

// ArtifactReport names one stored artifact.
type ArtifactReport struct {
	Key     string `yaml:"key"`
	Windows int    `yaml:"windows"`
}

// ─── pipeline ───────────────────────────────────────────────────────────

// ListRecordings returns the *.csv files of dir in name order.
func ListRecordings(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRecordings, dir)
	}
	sort.Strings(files)
	return files, nil
}

// Run prepares every recording in the input directory. When any recording
// fails validation all failures are returned together and nothing is
// written.
func (pc *PreparationController) Run(ctx context.Context) (*RunReport, error) {
	files, err := ListRecordings(pc.cfg.InputDir)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:     uuid.NewString(),
		CreatedAt: pc.clock.Now().UTC(),
		Format:    pc.format,
		Location:  pc.sink.Location(),
		Params: ReportParams{
			WindowSize: pc.params.WindowSize,
			Stride:     pc.params.Stride,
			Overlap:    pc.params.Overlap(),
			TrainRatio: pc.params.TrainRatio,
			IntervalMs: pc.cfg.IntervalMs,
		},
	}
	log := utils.L().With("run", report.RunID)
	log.Info("preparing %d recording(s) from %s  format=%s  window=%d  stride=%d  train_ratio=%.2f",
		len(files), pc.cfg.InputDir, pc.format, pc.params.WindowSize, pc.params.Stride, pc.params.TrainRatio)

	recs, err := pc.load(files, report)
	if err != nil {
		return nil, err
	}

	strategy, err := views.NewStrategy(pc.format, views.Options{
		WindowSize: pc.params.WindowSize,
		IntervalMs: pc.cfg.IntervalMs,
		Device:     views.DeviceInfo{Name: pc.cfg.Device.Name, Type: pc.cfg.Device.Type},
		Clock:      pc.clock,
	})
	if err != nil {
		return nil, err
	}

	for i, rec := range recs {
		if rec == nil {
			continue
		}
		entry := &report.Recordings[i]
		windows, err := dataset.Segment(rec, pc.params.WindowSize, pc.params.Stride)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Source, err)
		}
		if len(windows) == 0 {
			entry.Status = StatusShort
			log.Warn("%s: recording shorter than one window (%d < %d rows), no windows",
				filepath.Base(rec.Source), rec.Len(), pc.params.WindowSize)
		}
		split, err := dataset.Partition(windows, pc.params.TrainRatio)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Source, err)
		}
		if err := strategy.Add(rec.Label, split); err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Source, err)
		}

		entry.Windows, entry.Train, entry.Test = len(windows), len(split.Train), len(split.Test)
		report.Totals.Windows += entry.Windows
		report.Totals.Train += entry.Train
		report.Totals.Test += entry.Test
		log.Info("  %-32s label=%-10s rows=%-6d windows=%-4d train=%-4d test=%d",
			filepath.Base(rec.Source), rec.Label, rec.Len(), entry.Windows, entry.Train, entry.Test)
	}

	artifacts, err := strategy.Artifacts()
	if err != nil {
		return nil, err
	}
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := pc.sink.Put(ctx, a.Key, a.Data); err != nil {
			return nil, err
		}
		report.Artifacts = append(report.Artifacts, ArtifactReport{Key: a.Key, Windows: a.Windows})
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode run report: %w", err)
	}
	if err := pc.sink.Put(ctx, ReportName, data); err != nil {
		return nil, err
	}

	log.Info("prepared %d windows (train=%d, test=%d) into %d artifact(s) at %s",
		report.Totals.Windows, report.Totals.Train, report.Totals.Test, len(artifacts), pc.sink.Location())
	return report, nil
}

// load validates every file. Header-only recordings are reported and
// skipped; any other failure is collected and returned after all files
// were read.
func (pc *PreparationController) load(files []string, report *RunReport) ([]*models.Recording, error) {
	var errs error
	recs := make([]*models.Recording, len(files))
	report.Recordings = make([]RecordingReport, len(files))

	for i, path := range files {
		report.Recordings[i] = RecordingReport{File: filepath.Base(path)}
		rec, err := dataset.LoadRecordingFile(path)
		switch {
		case errors.Is(err, dataset.ErrEmptyRecording):
			report.Recordings[i].Status = StatusEmpty
			utils.L().Warn("%s: no data rows, skipped", filepath.Base(path))
			continue
		case err != nil:
			errs = multierr.Append(errs, err)
			continue
		}
		recs[i] = rec
		report.Recordings[i].Label = rec.Label
		report.Recordings[i].Rows = rec.Len()
		report.Recordings[i].Status = StatusOK
		report.Totals.Recordings++
	}

	if errs != nil {
		for _, err := range multierr.Errors(errs) {
			utils.L().Error("invalid recording: %v", err)
		}
		return nil, fmt.Errorf("%d invalid recording(s), nothing written: %w", len(multierr.Errors(errs)), errs)
	}
	return recs, nil
}
