package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"motion-dataset/utils"
)

// ReplayReader feeds previously captured device output through the same
// validation path as a live device. Useful for re-recording raw serial logs
// and for tests.
type ReplayReader struct {
	*linePump
	src      io.Reader
	closer   io.Closer
	interval time.Duration
}

// NewReplayReader replays lines from r. A positive interval paces the lines
// like a live device; zero replays as fast as the consumer reads.
func NewReplayReader(r io.Reader, label string, interval time.Duration, buf int) *ReplayReader {
	return &ReplayReader{
		linePump: newLinePump("replay", label, buf),
		src:      r,
		interval: interval,
	}
}

// OpenReplayReader replays the file named in cfg.
func OpenReplayReader(cfg utils.ReplayConfig, label string, buf int) (*ReplayReader, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	r := NewReplayReader(f, label, time.Duration(cfg.IntervalMs)*time.Millisecond, buf)
	r.closer = f
	return r, nil
}

func (r *ReplayReader) Start(ctx context.Context) {
	go r.run(ctx)
	utils.L().Info("replay reader started  (interval=%s)", r.interval)
}

func (r *ReplayReader) run(ctx context.Context) {
	defer close(r.out)
	if r.closer != nil {
		defer r.closer.Close()
	}

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		}
		if !r.feed(ctx, sc.Text()) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		r.fail(fmt.Errorf("replay read: %w", err))
		return
	}
	s := r.Stats()
	utils.L().Info("replay reader finished (accepted=%d, rejected=%d, status=%d)",
		s.Accepted, s.Rejected, s.Status)
}
