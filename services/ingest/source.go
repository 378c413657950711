package ingest

import (
	"context"
	"errors"
	"sync/atomic"

	"motion-dataset/models"
	"motion-dataset/utils"
)

// RowSource produces validated sensor rows. Status lines and malformed
// lines are filtered out before a row reaches Rows.
type RowSource interface {
	// Start launches the producer goroutine. Rows is closed when ctx is
	// cancelled or the source is exhausted.
	Start(ctx context.Context)
	Rows() <-chan models.SensorRow
	Stats() Stats
	// Err reports why the producer stopped early, if it failed.
	Err() error
}

// Stats counts what a source has seen so far.
type Stats struct {
	Accepted uint64 // rows delivered
	Rejected uint64 // malformed data lines
	Status   uint64 // device status lines
}

// linePump validates raw device lines and forwards the accepted rows. Every
// reader embeds one.
type linePump struct {
	name  string
	label string
	out   chan models.SensorRow

	accepted uint64
	rejected uint64
	status   uint64

	err atomic.Value // error
}

func newLinePump(name, label string, buf int) *linePump {
	if buf <= 0 {
		buf = 512
	}
	return &linePump{
		name:  name,
		label: label,
		out:   make(chan models.SensorRow, buf),
	}
}

// feed handles one raw line. It blocks until the row is delivered, so no
// accepted sample is dropped; it returns false once ctx is done.
func (p *linePump) feed(ctx context.Context, line string) bool {
	row, err := ParseLine(line, p.label)
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyLine):
		return true
	case errors.Is(err, ErrStatusLine):
		atomic.AddUint64(&p.status, 1)
		utils.L().Info("%s: device: %s", p.name, line)
		return true
	default:
		atomic.AddUint64(&p.rejected, 1)
		utils.L().Debug("%s: skipped line %q: %v", p.name, line, err)
		return true
	}

	select {
	case <-ctx.Done():
		return false
	case p.out <- row:
		atomic.AddUint64(&p.accepted, 1)
		return true
	}
}

func (p *linePump) fail(err error) {
	p.err.Store(err)
	utils.L().Error("%s: %v", p.name, err)
}

func (p *linePump) Rows() <-chan models.SensorRow { return p.out }

func (p *linePump) Stats() Stats {
	return Stats{
		Accepted: atomic.LoadUint64(&p.accepted),
		Rejected: atomic.LoadUint64(&p.rejected),
		Status:   atomic.LoadUint64(&p.status),
	}
}

func (p *linePump) Err() error {
	if err, ok := p.err.Load().(error); ok {
		return err
	}
	return nil
}
