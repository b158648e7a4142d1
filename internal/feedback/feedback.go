package feedback

import (
	"time"

	"github.com/Flyrell/physiotrack/internal/adherence"
)

// Feedback is an athlete's daily recovery entry. There is at most one per
// athlete per calendar date.
type Feedback struct {
	ID                 string         `json:"id"`
	AthleteID          string         `json:"athlete_id"`
	ProtocolID         string         `json:"protocol_id"`
	Date               adherence.Date `json:"date"`
	PainLevel          int            `json:"pain_level"`
	FatigueLevel       int            `json:"fatigue_level"`
	MobilityRange      int            `json:"mobility_range"`
	Notes              string         `json:"notes,omitempty"`
	ExercisesCompleted []string       `json:"exercises_completed"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Summary aggregates a list of feedback entries.
type Summary struct {
	Sessions   int     `json:"sessions"`
	AvgPain    float64 `json:"avg_pain"`
	AvgFatigue float64 `json:"avg_fatigue"`
}

// Summarize counts sessions and averages pain and fatigue, rounded to one
// decimal. An empty list yields a zero Summary.
func Summarize(list []Feedback) Summary {
	if len(list) == 0 {
		return Summary{}
	}

	pain, fatigue := 0, 0
	for _, f := range list {
		pain += f.PainLevel
		fatigue += f.FatigueLevel
	}

	n := float64(len(list))
	return Summary{
		Sessions:   len(list),
		AvgPain:    round1(float64(pain) / n),
		AvgFatigue: round1(float64(fatigue) / n),
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
