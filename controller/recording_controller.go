package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"motion-dataset/models"
	"motion-dataset/utils"
	"motion-dataset/views"
)

// ErrNoSamples is returned when a collection run ends without a single
// valid row; no recording file is left behind.
var ErrNoSamples = errors.New("controller: no samples collected")

// RecordingController is the final collection stage. It reads validated
// rows and writes them to one recording CSV:
//
//	timestamp,accel_x,accel_y,accel_z,gyro_x,gyro_y,gyro_z,label
//
// Rows go to a temp file with periodic flush; the recording only appears
// under its final name once Stop commits it.
type RecordingController struct {
	cfg    utils.CollectorConfig
	label  string
	writer *views.CSVWriter

	rowsWritten uint64
	started     time.Time
	done        chan struct{}
	wg          sync.WaitGroup

	errMu    sync.Mutex
	writeErr error
}

// Summary describes a finished collection run.
type Summary struct {
	Path     string
	Label    string
	Samples  uint64
	Duration time.Duration
}

// Rate is the average number of samples per second.
func (s Summary) Rate() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Samples) / s.Duration.Seconds()
}

// RecordingPath returns where a recording of label started at now is
// written: cfg.Output when set, otherwise <output_dir>/<label>_<stamp>.csv.
func RecordingPath(cfg utils.CollectorConfig, label string, now time.Time) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, utils.SessionName(label, now)+".csv")
}

// NewRecordingController opens the temp recording for label.
func NewRecordingController(cfg utils.CollectorConfig, label string, clock utils.Clock) (*RecordingController, error) {
	if label == "" {
		return nil, errors.New("controller: recording label is required")
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	path := RecordingPath(cfg, label, clock.Now())
	w, err := views.NewCSVWriter(path, 0, views.RecordingColumns())
	if err != nil {
		return nil, err
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 50
	}
	utils.L().Info("recording controller ready  file=%s  label=%s", path, label)
	return &RecordingController{
		cfg:    cfg,
		label:  label,
		writer: w,
		done:   make(chan struct{}),
	}, nil
}

// Start begins consuming rows until the channel is closed. It also starts
// a periodic flush goroutine.
func (rc *RecordingController) Start(ctx context.Context, rows <-chan models.SensorRow) {
	rc.started = time.Now()

	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-rc.done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := rc.writer.Flush(); err != nil {
					rc.setErr(err)
				}
			}
		}
	}()

	// Drain until the source closes rows so buffered samples are kept
	// after cancellation.
	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		defer close(rc.done)
		for row := range rows {
			rc.writeRow(row)
		}
	}()

	utils.L().Info("recording controller started")
}

func (rc *RecordingController) writeRow(row models.SensorRow) {
	if err := rc.writer.WriteModel(row); err != nil {
		rc.setErr(err)
		return
	}
	n := atomic.AddUint64(&rc.rowsWritten, 1)
	if n%uint64(rc.cfg.ProgressEvery) == 0 {
		utils.L().Info("collected %d samples…", n)
	}
}

func (rc *RecordingController) setErr(err error) {
	rc.errMu.Lock()
	if rc.writeErr == nil {
		rc.writeErr = err
	}
	rc.errMu.Unlock()
}

// Done is closed once every row has been consumed.
func (rc *RecordingController) Done() <-chan struct{} { return rc.done }

// Stop waits for the writer goroutines. The recording is committed when
// keep is set, at least one row was written and no write failed; otherwise
// the temp file is discarded.
func (rc *RecordingController) Stop(keep bool) (Summary, error) {
	rc.wg.Wait()
	sum := Summary{
		Path:     rc.writer.Path(),
		Label:    rc.label,
		Samples:  rc.RowsWritten(),
		Duration: time.Since(rc.started),
	}

	rc.errMu.Lock()
	err := rc.writeErr
	rc.errMu.Unlock()
	switch {
	case err != nil:
		rc.writer.Abort()
		return sum, fmt.Errorf("write recording: %w", err)
	case !keep:
		rc.writer.Abort()
		utils.L().Warn("recording discarded  (rows_written=%d)", sum.Samples)
		return sum, nil
	case sum.Samples == 0:
		rc.writer.Abort()
		return sum, ErrNoSamples
	}

	if err := rc.writer.Commit(); err != nil {
		return sum, err
	}
	utils.L().Info("recording controller stopped  (rows_written=%d, file=%s)", sum.Samples, sum.Path)
	return sum, nil
}

// RowsWritten returns the number of samples persisted so far.
func (rc *RecordingController) RowsWritten() uint64 {
	return atomic.LoadUint64(&rc.rowsWritten)
}
