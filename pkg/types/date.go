package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire and storage layout of a civil date.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate is returned when a date string or component triple is not a valid calendar date
	ErrInvalidDate = errors.New("invalid civil date")
)

// Date is a civil calendar date without time-of-day and without a timezone.
// Comparison is lexicographic on (Year, Month, Day). Arithmetic uses a
// proleptic Gregorian day count and never goes through time.Location.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate builds a validated Date.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustDate is NewDate for literals known to be valid. Panics otherwise.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if !isDigits(s[0:4]) || !isDigits(s[5:7]) || !isDigits(s[8:10]) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	y, errY := strconv.Atoi(s[0:4])
	m, errM := strconv.Atoi(s[5:7])
	d, errD := strconv.Atoi(s[8:10])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(y, m, d)
}

// DateFromDayNumber converts a day count relative to 1970-01-01 into a Date.
func DateFromDayNumber(n int64) Date {
	y, m, d := civilFromDays(n)
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// DayNumber returns the number of days between 1970-01-01 and d.
func (d Date) DayNumber() int64 {
	return daysFromCivil(d.Year, d.Month, d.Day)
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateFromDayNumber(d.DayNumber() + int64(n))
}

// Compare returns -1, 0 or 1.
func (d Date) Compare(other Date) int {
	return CompareDates(d, other)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return CompareDates(d, other) < 0
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return CompareDates(d, other) > 0
}

// Between reports whether from <= d <= to.
func (d Date) Between(from, to Date) bool {
	return CompareDates(from, d) <= 0 && CompareDates(d, to) <= 0
}

// String formats d as "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner. Postgres DATE arrives as time.Time (lib/pq)
// or as text; only the calendar components are kept.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date{Year: v.Year(), Month: int(v.Month()), Day: v.Day()}
		return nil
	case []byte:
		return d.UnmarshalText(v[:min(len(v), len(DateLayout))])
	case string:
		return d.UnmarshalText([]byte(v[:min(len(v), len(DateLayout))]))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

// CompareDates compares two dates lexicographically on their components.
func CompareDates(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// daysFromCivil and civilFromDays follow H. Hinnant's chrono-compatible
// algorithms; eras are 400-year blocks of 146097 days.
func daysFromCivil(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((month + 9) % 12)
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func civilFromDays(z int64) (int, int, int) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

// isDigits reports whether s is non-empty and holds only ASCII digits.
// strconv.Atoi alone would also take a leading sign.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
