package protocol

import (
	"strconv"
	"testing"
	"time"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFreq  rrule.Frequency
		wantIntvl int
		wantDays  []rrule.Weekday
		wantErr   bool
	}{
		{name: "daily", input: "daily", wantFreq: rrule.DAILY},
		{name: "every day", input: "Every Day", wantFreq: rrule.DAILY},
		{name: "portuguese daily", input: "todos os dias", wantFreq: rrule.DAILY},
		{
			name:     "every weekday",
			input:    "every weekday",
			wantFreq: rrule.WEEKLY,
			wantDays: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		},
		{
			name:     "weekends",
			input:    "weekends",
			wantFreq: rrule.WEEKLY,
			wantDays: []rrule.Weekday{rrule.SA, rrule.SU},
		},
		{name: "every other day", input: "every other day", wantFreq: rrule.DAILY, wantIntvl: 2},
		{name: "every 3 days", input: "every 3 days", wantFreq: rrule.DAILY, wantIntvl: 3},
		{name: "every 2 weeks", input: "every 2 weeks", wantFreq: rrule.WEEKLY, wantIntvl: 2},
		{
			name:     "every monday",
			input:    "every monday",
			wantFreq: rrule.WEEKLY,
			wantDays: []rrule.Weekday{rrule.MO},
		},
		{
			name:     "weekday list",
			input:    "every mon, wed and fri",
			wantFreq: rrule.WEEKLY,
			wantDays: []rrule.Weekday{rrule.MO, rrule.WE, rrule.FR},
		},
		{
			name:     "raw rrule",
			input:    "FREQ=WEEKLY;BYDAY=TU,TH",
			wantFreq: rrule.WEEKLY,
			wantDays: []rrule.Weekday{rrule.TU, rrule.TH},
		},
		{
			name:      "raw rrule with prefix",
			input:     "RRULE:FREQ=DAILY;INTERVAL=3",
			wantFreq:  rrule.DAILY,
			wantIntvl: 3,
		},

		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "3x por semana", wantErr: true},
		{name: "every 0 days", input: "every 0 days", wantErr: true},
		{name: "unknown weekday", input: "every funday", wantErr: true},
		{name: "day interval overflow", input: "every 99999999999999999999 days", wantErr: true},
		{name: "week interval overflow", input: "every 99999999999999999999 weeks", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFrequency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFreq, f.opts.Freq)
			if tt.wantIntvl > 0 {
				assert.Equal(t, tt.wantIntvl, f.opts.Interval)
			}
			if tt.wantDays != nil {
				assert.Equal(t, tt.wantDays, f.opts.Byweekday)
			}
		})
	}
}

func TestParseFrequencyIntervalError(t *testing.T) {
	_, err := ParseFrequency("every 99999999999999999999 days")
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrRange)
	assert.False(t, ValidFrequency("every 99999999999999999999 weeks"))
}

func TestFrequencyOccurs(t *testing.T) {
	// 2025-01-06 is a Monday.
	start := adherence.NewDate(2025, time.January, 6)

	weekdays, err := ParseFrequency("every weekday")
	require.NoError(t, err)
	assert.True(t, weekdays.Occurs(start, adherence.NewDate(2025, time.January, 10)))
	assert.False(t, weekdays.Occurs(start, adherence.NewDate(2025, time.January, 11)))
	assert.False(t, weekdays.Occurs(start, adherence.NewDate(2025, time.January, 3)), "before start")

	everyOther, err := ParseFrequency("every other day")
	require.NoError(t, err)
	assert.True(t, everyOther.Occurs(start, start))
	assert.False(t, everyOther.Occurs(start, start.AddDays(1)))
	assert.True(t, everyOther.Occurs(start, start.AddDays(2)))
}

func TestFrequencyBetween(t *testing.T) {
	start := adherence.NewDate(2025, time.January, 6)
	f, err := ParseFrequency("every monday and thursday")
	require.NoError(t, err)

	got := f.Between(start, start, adherence.NewDate(2025, time.January, 19))
	assert.Equal(t, []adherence.Date{
		adherence.NewDate(2025, time.January, 6),
		adherence.NewDate(2025, time.January, 9),
		adherence.NewDate(2025, time.January, 13),
		adherence.NewDate(2025, time.January, 16),
	}, got)
}

func TestValidFrequency(t *testing.T) {
	assert.True(t, ValidFrequency("daily"))
	assert.False(t, ValidFrequency("sometimes"))
}
