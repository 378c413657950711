package models

// Window is a fixed-length run of consecutive samples cut from a Recording.
// Samples are copied out of the recording; a Window never aliases its source.
type Window struct {
	Index   int      // ordinal among the windows of its label
	Offset  int      // row offset of the first sample within the recording
	Label   string
	Samples []Sample
}

// Size returns the number of timesteps in the window.
func (w Window) Size() int { return len(w.Samples) }

// Flatten returns the window's values timestep-major, channel-minor:
// t0: ax,ay,az,gx,gy,gz, t1: ax,ay,az,…
func (w Window) Flatten() []float64 {
	out := make([]float64, 0, len(w.Samples)*NumChannels)
	for _, s := range w.Samples {
		out = append(out, s[:]...)
	}
	return out
}

// WithIndex returns a copy of w carrying a different index. Samples are
// shared since neither window ever mutates them.
func (w Window) WithIndex(index int) Window {
	w.Index = index
	return w
}
