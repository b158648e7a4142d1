package protocol

import (
	"time"

	"github.com/Flyrell/physiotrack/internal/adherence"
)

// Status is the lifecycle state of a protocol.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

// Exercise is a single prescribed exercise.
type Exercise struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Sets        int    `json:"sets" validate:"min=0"`
	Reps        int    `json:"reps" validate:"min=0"`
	Rest        string `json:"rest,omitempty"`
	Duration    int    `json:"duration,omitempty" validate:"min=0"` // seconds
	Frequency   string `json:"frequency,omitempty" validate:"omitempty,frequency"`
	VideoURL    string `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

// Protocol is an exercise plan a therapist assigns to an athlete.
type Protocol struct {
	ID          string          `json:"id"`
	TherapistID string          `json:"therapist_id"`
	AthleteID   string          `json:"athlete_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Exercises   []Exercise      `json:"exercises"`
	StartDate   adherence.Date  `json:"start_date"`
	EndDate     *adherence.Date `json:"end_date,omitempty"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsTrainingDay reports whether d is a day on which at least one exercise is
// due. Exercises without a frequency are due every day from the start date.
func (p Protocol) IsTrainingDay(d adherence.Date) bool {
	if d.Before(p.StartDate) {
		return false
	}
	if p.EndDate != nil && d.After(*p.EndDate) {
		return false
	}
	if len(p.Exercises) == 0 {
		return true
	}

	for _, ex := range p.Exercises {
		if ex.Frequency == "" {
			return true
		}
		f, err := ParseFrequency(ex.Frequency)
		if err != nil {
			continue
		}
		if f.Occurs(p.StartDate, d) {
			return true
		}
	}
	return false
}
