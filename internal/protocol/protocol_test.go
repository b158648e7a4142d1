package protocol

import (
	"testing"
	"time"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusPaused.Valid())
	assert.False(t, Status("archived").Valid())
}

func TestIsTrainingDay(t *testing.T) {
	start := adherence.NewDate(2025, time.January, 6) // Monday
	saturday := adherence.NewDate(2025, time.January, 11)
	tuesday := adherence.NewDate(2025, time.January, 7)

	tests := []struct {
		name string
		p    Protocol
		day  adherence.Date
		want bool
	}{
		{
			name: "no exercises means every day",
			p:    Protocol{StartDate: start},
			day:  saturday,
			want: true,
		},
		{
			name: "before start",
			p:    Protocol{StartDate: start},
			day:  start.AddDays(-1),
			want: false,
		},
		{
			name: "after end date",
			p:    Protocol{StartDate: start, EndDate: &tuesday},
			day:  saturday,
			want: false,
		},
		{
			name: "exercise without frequency",
			p:    Protocol{StartDate: start, Exercises: []Exercise{{Name: "Agachamento"}}},
			day:  saturday,
			want: true,
		},
		{
			name: "weekday exercise on saturday",
			p: Protocol{StartDate: start, Exercises: []Exercise{
				{Name: "Ponte", Frequency: "every weekday"},
			}},
			day:  saturday,
			want: false,
		},
		{
			name: "any exercise due",
			p: Protocol{StartDate: start, Exercises: []Exercise{
				{Name: "Ponte", Frequency: "every weekday"},
				{Name: "Alongamento", Frequency: "every saturday"},
			}},
			day:  saturday,
			want: true,
		},
		{
			name: "unparseable frequency is never due",
			p: Protocol{StartDate: start, Exercises: []Exercise{
				{Name: "Ponte", Frequency: "às vezes"},
			}},
			day:  tuesday,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.IsTrainingDay(tt.day))
		})
	}
}
