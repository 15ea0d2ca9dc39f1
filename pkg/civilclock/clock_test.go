package civilclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

func TestCivil_OffsetCrossesMidnightBackwards(t *testing.T) {
	// 02:15 UTC at UTC-3 is 23:15 of the previous day.
	instant := time.Date(2025, 3, 1, 2, 15, 0, 0, time.UTC)

	d, tm := Civil(instant, -180)

	assert.Equal(t, types.MustDate(2025, 2, 28), d)
	assert.Equal(t, types.TimeString("23:15"), tm)
}

func TestCivil_OffsetCrossesMidnightForwards(t *testing.T) {
	// 22:30 UTC at UTC+5:30 is 04:00 of the next day, including a year carry.
	instant := time.Date(2025, 12, 31, 22, 30, 0, 0, time.UTC)

	d, tm := Civil(instant, 330)

	assert.Equal(t, types.MustDate(2026, 1, 1), d)
	assert.Equal(t, types.TimeString("04:00"), tm)
}

func TestCivil_JustAfterLocalMidnight(t *testing.T) {
	// 03:00:30 UTC is 00:00 civil at UTC-3: same day, never 24:xx.
	instant := time.Date(2025, 6, 10, 3, 0, 30, 0, time.UTC)

	d, tm := Civil(instant, -180)

	assert.Equal(t, types.MustDate(2025, 6, 10), d)
	assert.Equal(t, types.TimeString("00:00"), tm)

	// One minute earlier is still the previous civil day.
	d, tm = Civil(instant.Add(-time.Minute), -180)
	assert.Equal(t, types.MustDate(2025, 6, 9), d)
	assert.Equal(t, types.TimeString("23:59"), tm)
}

func TestCivil_NeverSkipsADay(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	prev, _ := Civil(start, -180)

	for m := 1; m <= 4*24*60; m++ {
		d, tm := Civil(start.Add(time.Duration(m)*time.Minute), -180)
		assert.NoError(t, tm.Validate())
		diff := d.DayNumber() - prev.DayNumber()
		if diff != 0 && diff != 1 {
			t.Fatalf("day jumped from %s to %s at minute %d", prev, d, m)
		}
		prev = d
	}
}

func TestCivilClock_IgnoresInstantLocation(t *testing.T) {
	loc := time.FixedZone("X", 9*3600)
	instant := time.Date(2025, 6, 10, 9, 0, 0, 0, loc) // 00:00 UTC

	c := New(FixedClock{At: instant}, -180)
	d, tm := c.Now()

	assert.Equal(t, types.MustDate(2025, 6, 9), d)
	assert.Equal(t, types.TimeString("21:00"), tm)
}

func TestCivilClock_IsPast(t *testing.T) {
	// Civil now: 2025-06-10 12:00 at UTC-3.
	c := New(FixedClock{At: time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)}, -180)

	assert.True(t, c.IsPastDate(types.MustDate(2025, 6, 9)))
	assert.False(t, c.IsPastDate(types.MustDate(2025, 6, 10)))

	assert.True(t, c.IsPast(types.MustDate(2025, 6, 10), "11:59"))
	assert.False(t, c.IsPast(types.MustDate(2025, 6, 10), "12:00"))
	assert.False(t, c.IsPast(types.MustDate(2025, 6, 11), "00:00"))
	assert.True(t, c.IsPast(types.MustDate(2025, 6, 9), "23:59"))
}
