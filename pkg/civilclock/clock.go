// Package civilclock turns the UTC instant of a Clock into a civil date and
// time under one fixed UTC offset. No timezone database is consulted.
package civilclock

import (
	"time"

	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

const (
	minutesPerDay = 24 * 60

	// MaxOffsetMinutes bounds the configured offset to real-world UTC offsets
	MaxOffsetMinutes = 14 * 60
)

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock.
type SystemClock struct{}

// Now returns the current UTC instant.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Used in tests.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At.UTC()
}

// CivilClock applies a fixed offset to a Clock.
type CivilClock struct {
	clock         Clock
	offsetMinutes int
}

// New creates a CivilClock. offsetMinutes is the civil offset from UTC, e.g. -180 for UTC-3.
func New(clock Clock, offsetMinutes int) *CivilClock {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CivilClock{clock: clock, offsetMinutes: offsetMinutes}
}

// OffsetMinutes returns the configured offset.
func (c *CivilClock) OffsetMinutes() int {
	return c.offsetMinutes
}

// Now returns the current civil date and time.
func (c *CivilClock) Now() (types.Date, types.TimeString) {
	return Civil(c.clock.Now(), c.offsetMinutes)
}

// Today returns the current civil date.
func (c *CivilClock) Today() types.Date {
	d, _ := c.Now()
	return d
}

// IsPastDate reports whether d is strictly before today.
func (c *CivilClock) IsPastDate(d types.Date) bool {
	return d.Before(c.Today())
}

// IsPast reports whether (d, t) is strictly before the current civil minute.
func (c *CivilClock) IsPast(d types.Date, t types.TimeString) bool {
	today, now := c.Now()
	switch types.CompareDates(d, today) {
	case -1:
		return true
	case 1:
		return false
	default:
		return t.IsBefore(now)
	}
}

// Civil converts an instant to civil date/time under offsetMinutes. The
// offset is applied once to the minute count since the Unix epoch, and the
// day carry falls out of the floor division in both directions.
func Civil(instant time.Time, offsetMinutes int) (types.Date, types.TimeString) {
	minutes := floorDiv(instant.Unix(), 60) + int64(offsetMinutes)
	days := floorDiv(minutes, minutesPerDay)
	minuteOfDay := int(minutes - days*minutesPerDay)
	return types.DateFromDayNumber(days), types.FromMinutes(minuteOfDay)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
