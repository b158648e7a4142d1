package adherence

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is returned when a calendar is requested for a year that
// cannot be represented.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	MinYear = 1
	MaxYear = 9999
)

// Status is the adherence classification of a single day.
type Status int

const (
	NotApplicable Status = iota
	Done
	Missed
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Missed:
		return "missed"
	default:
		return "not-applicable"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WeekdayInitials is the calendar header, Sunday first.
var WeekdayInitials = [7]string{"D", "S", "T", "Q", "Q", "S", "S"}

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the display name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Day is a classified calendar day.
type Day struct {
	Date   Date   `json:"date"`
	Status Status `json:"status"`
}

// Month groups the classified days of one month of the displayed year.
type Month struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	// Offset is the weekday of day 1 with Sunday as 0; it only drives grid
	// alignment.
	Offset int   `json:"offset"`
	Days   []Day `json:"days"`
}

// Calendar is the adherence grid of a whole year.
type Calendar struct {
	Year   int     `json:"year"`
	Months []Month `json:"months"`
}

// Summary counts the classified days of a calendar.
type Summary struct {
	Done   int     `json:"done"`
	Missed int     `json:"missed"`
	Rate   float64 `json:"rate"` // done / (done + missed), 0 when both are 0
}

// Classify returns the status of d. A logged day is always done; otherwise a
// day is missed when start <= d < today. Today itself is never missed.
func Classify(d Date, logged DateSet, start, today Date) Status {
	if logged.Has(d) {
		return Done
	}
	if !d.Before(start) && d.Before(today) {
		return Missed
	}
	return NotApplicable
}

// Build classifies every day of year. The result is freshly allocated on each
// call and nothing is retained between calls.
func Build(logged DateSet, start, today Date, year int) (Calendar, error) {
	if year < MinYear || year > MaxYear {
		return Calendar{}, fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidArgument, year, MinYear, MaxYear)
	}

	cal := Calendar{
		Year:   year,
		Months: make([]Month, 0, 12),
	}

	for m := time.January; m <= time.December; m++ {
		n := DaysInMonth(year, m)
		month := Month{
			Month:  m,
			Name:   MonthName(m),
			Offset: int(NewDate(year, m, 1).Weekday()),
			Days:   make([]Day, n),
		}
		for day := 1; day <= n; day++ {
			d := NewDate(year, m, day)
			month.Days[day-1] = Day{Date: d, Status: Classify(d, logged, start, today)}
		}
		cal.Months = append(cal.Months, month)
	}

	return cal, nil
}

// Day returns the classified day for d, if d falls inside the calendar year.
func (c Calendar) Day(d Date) (Day, bool) {
	if d.Year != c.Year || d.Month < time.January || d.Month > time.December {
		return Day{}, false
	}
	if int(d.Month) > len(c.Months) {
		return Day{}, false
	}
	days := c.Months[d.Month-1].Days
	if d.Day < 1 || d.Day > len(days) {
		return Day{}, false
	}
	return days[d.Day-1], true
}

// Counts totals done and missed days across the year.
func (c Calendar) Counts() Summary {
	var s Summary
	for _, m := range c.Months {
		for _, d := range m.Days {
			switch d.Status {
			case Done:
				s.Done++
			case Missed:
				s.Missed++
			}
		}
	}
	if total := s.Done + s.Missed; total > 0 {
		s.Rate = float64(s.Done) / float64(total)
	}
	return s
}
