package ingest

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	"motion-dataset/utils"
)

// Commands understood by the acquisition firmware.
const (
	cmdStart = "START\n"
	cmdStop  = "STOP\n"
)

// SerialReader drives an acquisition device over a serial link: it sends
// START, validates every line until ctx ends, then sends STOP.
type SerialReader struct {
	*linePump
	cfg  utils.CollectorConfig
	name string
	port serial.Port
}

// OpenSerialReader opens cfg.Port, or the single compatible port found when
// cfg.Port is empty.
func OpenSerialReader(cfg utils.CollectorConfig, label string) (*SerialReader, error) {
	name := cfg.Port
	if name == "" {
		var err error
		if name, err = DiscoverPort(); err != nil {
			return nil, err
		}
		utils.L().Info("auto-detected port: %s", name)
	}

	utils.L().Info("connecting to %s at %d baud…", name, cfg.BaudRate)
	port, err := serial.Open(name, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	timeout := time.Duration(cfg.ReadTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Second
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}

	return &SerialReader{
		linePump: newLinePump("serial", label, cfg.ChannelBuffer),
		cfg:      cfg,
		name:     name,
		port:     port,
	}, nil
}

func (r *SerialReader) Start(ctx context.Context) {
	go r.run(ctx)
	utils.L().Info("serial reader started  (port=%s, baud=%d)", r.name, r.cfg.BaudRate)
}

func (r *SerialReader) run(ctx context.Context) {
	defer close(r.out)
	defer r.port.Close()

	// the board resets when the port opens; give it time to boot
	if !sleepCtx(ctx, time.Duration(r.cfg.SettleMs)*time.Millisecond) {
		return
	}
	if _, err := r.port.Write([]byte(cmdStart)); err != nil {
		r.fail(fmt.Errorf("send START: %w", err))
		return
	}
	defer r.stop()

	var lb lineBuffer
	buf := make([]byte, 512)
	for ctx.Err() == nil {
		n, err := r.port.Read(buf)
		if err != nil {
			r.fail(fmt.Errorf("read %s: %w", r.name, err))
			return
		}
		if n == 0 {
			continue // read timeout
		}
		for _, line := range lb.push(buf[:n]) {
			if !r.feed(ctx, line) {
				return
			}
		}
	}
}

func (r *SerialReader) stop() {
	if _, err := r.port.Write([]byte(cmdStop)); err != nil {
		utils.L().Warn("serial: send STOP: %v", err)
		return
	}
	time.Sleep(500 * time.Millisecond)
	s := r.Stats()
	utils.L().Info("serial reader stopped  (accepted=%d, rejected=%d, status=%d)",
		s.Accepted, s.Rejected, s.Status)
}

// sleepCtx waits for d or until ctx is done; it reports whether the full
// duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
