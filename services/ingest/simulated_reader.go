package ingest

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"motion-dataset/utils"
)

// SimulatedReader synthesises device output for a wrist-worn IMU, including
// the firmware's status banner, so the full line path runs without hardware.
type SimulatedReader struct {
	*linePump
	rateHz int
	rng    *rand.Rand
}

func NewSimulatedReader(cfg utils.CollectorConfig, label string) *SimulatedReader {
	rate := cfg.SampleRateHz
	if rate <= 0 {
		rate = 50
	}
	return &SimulatedReader{
		linePump: newLinePump("simulator", label, cfg.ChannelBuffer),
		rateHz:   rate,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SimulatedReader) Start(ctx context.Context) {
	go r.run(ctx)
	utils.L().Info("simulated reader started (rate=%dHz, buffer=%d)", r.rateHz, cap(r.out))
}

func (r *SimulatedReader) run(ctx context.Context) {
	defer close(r.out)

	for _, banner := range []string{
		"READY: simulated IMU",
		"FORMAT: timestamp,ax,ay,az,gx,gy,gz",
		"DATA_COLLECTION_STARTED",
	} {
		if !r.feed(ctx, banner) {
			return
		}
	}

	interval := time.Second / time.Duration(r.rateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var step float64
	for {
		select {
		case <-ctx.Done():
			s := r.Stats()
			utils.L().Info("simulated reader stopped (accepted=%d, rejected=%d)", s.Accepted, s.Rejected)
			return
		case <-ticker.C:
			ms := int64(step * 1000 / float64(r.rateHz))
			if !r.feed(ctx, r.line(ms, step)) {
				return
			}
			step++
		}
	}
}

// line renders one sample the way the firmware prints it.
func (r *SimulatedReader) line(ms int64, step float64) string {
	ph := step * 0.05
	vals := []float64{
		0.2*math.Sin(ph) + r.rng.Float64()*0.05,
		0.1*math.Cos(ph) + r.rng.Float64()*0.05,
		9.81 + r.rng.Float64()*0.02,
		2*math.Sin(ph*2) + r.rng.Float64()*0.5,
		2*math.Cos(ph*2) + r.rng.Float64()*0.5,
		0.5 + r.rng.Float64()*0.2,
	}
	out := strconv.FormatInt(ms, 10)
	for _, v := range vals {
		out += "," + strconv.FormatFloat(v, 'f', 4, 64)
	}
	return out
}
