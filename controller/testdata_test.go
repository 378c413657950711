package controller_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"motion-dataset/utils"
)

var testClock = utils.FixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

// writeRecording stores n rows of label as a recording CSV in dir.
func writeRecording(t *testing.T, dir, name, label string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("timestamp,accel_x,accel_y,accel_z,gyro_x,gyro_y,gyro_z,label\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,%d,0.5,9.81,%d,0,0.25,%s\n", i*20, i, -i, label)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func prepareConfig(in, out, format string) utils.PrepareConfig {
	cfg := utils.DefaultConfig().Prepare
	cfg.InputDir = in
	cfg.OutputDir = out
	cfg.Format = format
	return cfg
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return out
}
