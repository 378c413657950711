package dataset

import "fmt"

// Defaults recommended for 50 Hz motion data: two-second windows with 50%
// overlap.
const (
	DefaultWindowSize = 100
	DefaultStride     = 50
	DefaultTrainRatio = 0.8
	DefaultIntervalMs = 20
)

// Params fixes how a recording is windowed and split.
type Params struct {
	WindowSize int
	Stride     int
	TrainRatio float64
}

// DefaultParams returns the recommended parameters.
func DefaultParams() Params {
	return Params{
		WindowSize: DefaultWindowSize,
		Stride:     DefaultStride,
		TrainRatio: DefaultTrainRatio,
	}
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	if p.WindowSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWindowSize, p.WindowSize)
	}
	if p.Stride <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidStride, p.Stride)
	}
	if !(p.TrainRatio > 0 && p.TrainRatio < 1) {
		return fmt.Errorf("%w (got %v)", ErrInvalidTrainRatio, p.TrainRatio)
	}
	return nil
}

// Overlap returns the number of rows shared by consecutive windows; zero
// when the stride leaves gaps.
func (p Params) Overlap() int {
	if p.Stride >= p.WindowSize {
		return 0
	}
	return p.WindowSize - p.Stride
}
