package protocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/teambition/rrule-go"
)

var everyNDays = regexp.MustCompile(`^every (\d+) days?$`)
var everyNWeeks = regexp.MustCompile(`^every (\d+) weeks?$`)

// Frequency is a parsed exercise recurrence. It carries no start date; the
// protocol's start date anchors it when evaluated.
type Frequency struct {
	opts rrule.ROption
}

// ParseFrequency parses a natural language or raw RRULE frequency string.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	// Raw RRULE passthrough
	if isRawRRule(s) {
		raw := strings.ToUpper(s)
		raw = strings.TrimPrefix(raw, "RRULE:")
		opts, err := rrule.StrToROption(raw)
		if err != nil {
			return Frequency{}, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return Frequency{opts: *opts}, nil
	}

	switch s {
	case "every day", "daily", "diário", "diario", "todos os dias":
		return Frequency{opts: rrule.ROption{Freq: rrule.DAILY}}, nil

	case "every weekday", "weekdays", "dias úteis", "dias uteis":
		return Frequency{opts: rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		}}, nil

	case "every weekend", "weekends":
		return Frequency{opts: rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		}}, nil

	case "every other day":
		return Frequency{opts: rrule.ROption{Freq: rrule.DAILY, Interval: 2}}, nil

	case "weekly", "every week", "semanal":
		return Frequency{opts: rrule.ROption{Freq: rrule.WEEKLY}}, nil
	}

	if m := everyNDays.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Frequency{}, fmt.Errorf("invalid interval in frequency %q: %w", s, err)
		}
		if n < 1 {
			return Frequency{}, fmt.Errorf("unrecognized frequency %q", s)
		}
		return Frequency{opts: rrule.ROption{Freq: rrule.DAILY, Interval: n}}, nil
	}

	if m := everyNWeeks.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Frequency{}, fmt.Errorf("invalid interval in frequency %q: %w", s, err)
		}
		if n < 1 {
			return Frequency{}, fmt.Errorf("unrecognized frequency %q", s)
		}
		return Frequency{opts: rrule.ROption{Freq: rrule.WEEKLY, Interval: n}}, nil
	}

	// "every monday", "every monday and thursday", "every mon, wed, fri"
	if strings.HasPrefix(s, "every ") {
		if days, ok := parseWeekdayList(strings.TrimPrefix(s, "every ")); ok {
			return Frequency{opts: rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: days,
			}}, nil
		}
	}

	return Frequency{}, fmt.Errorf("unrecognized frequency %q", s)
}

// Occurs reports whether the frequency, anchored at start, has an occurrence
// on d.
func (f Frequency) Occurs(start, d adherence.Date) bool {
	if d.Before(start) {
		return false
	}
	opts := f.opts
	opts.Dtstart = start.Time()
	r, err := rrule.NewRRule(opts)
	if err != nil {
		return false
	}
	day := d.Time()
	return len(r.Between(day, day, true)) > 0
}

// Between lists the occurrence dates in [from, to], anchored at start.
func (f Frequency) Between(start, from, to adherence.Date) []adherence.Date {
	opts := f.opts
	opts.Dtstart = start.Time()
	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil
	}
	var out []adherence.Date
	for _, t := range r.Between(from.Time(), to.Time(), true) {
		out = append(out, adherence.DateOf(t))
	}
	return out
}

// ValidFrequency reports whether s parses as a frequency.
func ValidFrequency(s string) bool {
	_, err := ParseFrequency(s)
	return err == nil
}

func isRawRRule(s string) bool {
	return strings.HasPrefix(s, "freq=") || strings.HasPrefix(s, "rrule:")
}

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sun":       rrule.SU,
	"mon":       rrule.MO,
	"tue":       rrule.TU,
	"wed":       rrule.WE,
	"thu":       rrule.TH,
	"fri":       rrule.FR,
	"sat":       rrule.SA,
}

func parseWeekdayList(s string) ([]rrule.Weekday, bool) {
	s = strings.ReplaceAll(s, " and ", ",")
	var days []rrule.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		wd, ok := rruleWeekdays[part]
		if !ok {
			return nil, false
		}
		days = append(days, wd)
	}
	return days, len(days) > 0
}
