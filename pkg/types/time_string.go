package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the wire and storage layout of a civil time of day.
const TimeLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" time of day
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when minute arithmetic leaves the [00:00, 24:00) range
	ErrTimeOverflow = errors.New("time string out of day range")
)

// TimeString is a whole-minute time of day on a 24h clock, always stored
// zero padded as "HH:MM" so that string equality is time equality.
type TimeString string

// NewTimeString takes the hour and minute of t as they are. The caller is
// responsible for t already being in civil time.
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString parses "HH:MM" (a trailing ":SS" is accepted and dropped).
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) == len("15:04:05") && s[5] == ':' && isDigits(s[6:]) {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes builds a TimeString from minutes since midnight. Values are
// taken modulo one day.
func FromMinutes(m int) TimeString {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Validate checks the "HH:MM" format and ranges.
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != len(TimeLayout) || s[2] != ':' || !isDigits(s[0:2]) || !isDigits(s[3:5]) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	h, errH := strconv.Atoi(s[0:2])
	m, errM := strconv.Atoi(s[3:5])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return nil
}

// IsZero reports whether t is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns minutes since midnight. Invalid values yield -1.
func (t TimeString) Minutes() int {
	if t.Validate() != nil {
		return -1
	}
	h, _ := strconv.Atoi(string(t[0:2]))
	m, _ := strconv.Atoi(string(t[3:5]))
	return h*60 + m
}

// AddMinutes returns t shifted by n minutes. The result must stay within the same day.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + n
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, t, n)
	}
	if total == minutesPerDay {
		// 24:00 is a valid end bound of an interval but not a start.
		return "24:00", nil
	}
	return FromMinutes(total), nil
}

// Compare returns -1, 0 or 1.
func (t TimeString) Compare(other TimeString) int {
	return CompareTimes(t, other)
}

// IsBefore reports whether t is strictly before other.
func (t TimeString) IsBefore(other TimeString) bool {
	return CompareTimes(t, other) < 0
}

// IsAfter reports whether t is strictly after other.
func (t TimeString) IsAfter(other TimeString) bool {
	return CompareTimes(t, other) > 0
}

// Between reports whether from <= t <= to.
func (t TimeString) Between(from, to TimeString) bool {
	return CompareTimes(from, t) <= 0 && CompareTimes(t, to) <= 0
}

func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME is returned as "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// CompareTimes compares two times of day on (hour, minute). "24:00" sorts
// after every valid start time.
func CompareTimes(a, b TimeString) int {
	return sign(minutesOf(a) - minutesOf(b))
}

func minutesOf(t TimeString) int {
	if t == "24:00" {
		return minutesPerDay
	}
	return t.Minutes()
}
