package timeutil

import "time"

// DateLayout is the day-granularity format used everywhere dates are
// compared or persisted.
const DateLayout = "2006-01-02"

// Clock is the wall-clock source consumed by the scheduling and streak
// components. All date math runs through it so tests can pin time.
type Clock interface {
	Now() time.Time
	// Today returns the current date at day granularity, formatted
	// with DateLayout.
	Today() string
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() string { return time.Now().Format(DateLayout) }

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

func (c FixedClock) Today() string { return c.Time.Format(DateLayout) }
