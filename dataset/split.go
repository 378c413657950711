package dataset

import (
	"fmt"
	"math"

	"motion-dataset/models"
)

// Split is the positional train/test partition of one recording's windows.
// Train ++ Test is always the original window sequence.
type Split struct {
	Train []models.Window
	Test  []models.Window
}

// Len returns the total number of windows in the split.
func (s Split) Len() int { return len(s.Train) + len(s.Test) }

// Partition cuts windows at floor(len(windows) * ratio). Nothing is
// shuffled: the first windows train, the rest test. The window on each side
// of the cut may share rows when windows overlap.
func Partition(windows []models.Window, ratio float64) (Split, error) {
	if !(ratio > 0 && ratio < 1) {
		return Split{}, fmt.Errorf("%w (got %v)", ErrInvalidTrainRatio, ratio)
	}
	cut := CutIndex(len(windows), ratio)
	return Split{
		Train: windows[:cut:cut],
		Test:  windows[cut:],
	}, nil
}

// CutIndex returns the number of training windows for n windows.
func CutIndex(n int, ratio float64) int {
	cut := int(math.Floor(float64(n) * ratio))
	if cut > n {
		cut = n
	}
	return cut
}
