package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion-dataset/services/ingest"
	"motion-dataset/utils"
)

func TestSimulatedReader_ProducesValidRows(t *testing.T) {
	cfg := utils.DefaultConfig().Collector
	cfg.SampleRateHz = 200

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	r := ingest.NewSimulatedReader(cfg, "normal")
	r.Start(ctx)

	rows := drain(r.Rows())
	require.NotEmpty(t, rows)
	assert.Equal(t, "0", rows[0].Timestamp)
	for _, row := range rows {
		assert.Equal(t, "normal", row.Label)
		assert.InDelta(t, 9.82, row.AccelZ, 0.02)
	}

	s := r.Stats()
	assert.Equal(t, uint64(3), s.Status, "banner lines are status lines")
	assert.Equal(t, uint64(len(rows)), s.Accepted)
	assert.Zero(t, s.Rejected)
}
