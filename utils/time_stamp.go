package utils

import (
	"fmt"
	"time"
)

// Clock supplies wall-clock time. Encoders that embed construction time take
// a Clock so that their output is reproducible under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// SessionName returns a unique recording name:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, now.Format("20060102_150405"))
}
