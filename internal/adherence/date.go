package adherence

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the storage and wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day and no time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its parts without normalizing it.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a strict YYYY-MM-DD string.
// The parts are split and range-checked by hand so that no time zone is ever
// involved in turning the string into a date.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}

	y, errY := atoiDigits(s[0:4])
	m, errM := atoiDigits(s[5:7])
	d, errD := atoiDigits(s[8:10])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}

	if y < 1 || m < 1 || m > 12 || d < 1 || d > DaysInMonth(y, time.Month(m)) {
		return Date{}, fmt.Errorf("date %q is out of range", s)
	}

	return Date{Year: y, Month: time.Month(m), Day: d}, nil
}

func atoiDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit in %q", s)
		}
	}
	return strconv.Atoi(s)
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

// Time returns midnight UTC of d. Only used for weekday math and for
// feeding recurrence rules; never for comparisons.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
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

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLengths = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeap(year) {
		return 29
	}
	return monthLengths[month-1]
}

// DateSet is a set of logged calendar dates.
type DateSet map[Date]struct{}

// NewDateSet parses raw YYYY-MM-DD strings into a set. Malformed entries are
// dropped: they could never equal a valid date anyway.
func NewDateSet(raw []string) DateSet {
	set := make(DateSet, len(raw))
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

// Add inserts d into the set.
func (s DateSet) Add(d Date) {
	s[d] = struct{}{}
}

// Has reports whether d is in the set. A nil set contains nothing.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}
