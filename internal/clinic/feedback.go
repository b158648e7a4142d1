package clinic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/feedback"
	"github.com/Flyrell/physiotrack/internal/store"
)

// NewFeedback is the input for SubmitFeedback. Date defaults to today and
// must fall between the active protocol's start and today.
type NewFeedback struct {
	Date               *adherence.Date `json:"date,omitempty"`
	PainLevel          int             `json:"pain_level" validate:"min=0,max=10"`
	FatigueLevel       int             `json:"fatigue_level" validate:"min=0,max=10"`
	MobilityRange      int             `json:"mobility_range" validate:"min=0"`
	Notes              string          `json:"notes" validate:"max=2000"`
	ExercisesCompleted []string        `json:"exercises_completed" validate:"dive,notblank"`
}

// SubmitFeedback records the athlete's feedback against their active
// protocol. It fails with store.ErrNoActiveProtocol when there is none and
// store.ErrFeedbackExists when the day was already logged.
func (s *Service) SubmitFeedback(ctx context.Context, athleteID string, in NewFeedback) (feedback.Feedback, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := s.check(in); err != nil {
		return feedback.Feedback{}, err
	}

	today := s.Today()
	date := today
	if in.Date != nil {
		date = *in.Date
	}
	if date.After(today) {
		return feedback.Feedback{}, &ValidationError{Fields: map[string]string{
			"date": "date não pode estar no futuro",
		}}
	}

	active, err := s.store.ActiveProtocol(ctx, athleteID)
	if err != nil {
		return feedback.Feedback{}, err
	}
	if date.Before(active.StartDate) {
		return feedback.Feedback{}, &ValidationError{Fields: map[string]string{
			"date": fmt.Sprintf("date não pode ser anterior ao início do protocolo (%s)", active.StartDate),
		}}
	}

	f := feedback.Feedback{
		AthleteID:          athleteID,
		ProtocolID:         active.ID,
		Date:               date,
		PainLevel:          in.PainLevel,
		FatigueLevel:       in.FatigueLevel,
		MobilityRange:      in.MobilityRange,
		Notes:              in.Notes,
		ExercisesCompleted: in.ExercisesCompleted,
	}
	if err := s.store.InsertFeedback(ctx, &f); err != nil {
		return feedback.Feedback{}, err
	}
	s.logger.Info("feedback recorded", "athlete", athleteID, "date", date, "pain", f.PainLevel)
	return f, nil
}

// RecentFeedback returns the athlete's latest entries, newest first. A
// non-positive limit means RecentLimit.
func (s *Service) RecentFeedback(ctx context.Context, athleteID string, limit int) ([]feedback.Feedback, error) {
	if limit <= 0 {
		limit = RecentLimit
	}
	if _, err := s.profileWithRole(ctx, athleteID, store.RoleAthlete); err != nil {
		return nil, err
	}
	return s.store.RecentFeedback(ctx, athleteID, limit)
}

// FeedbackSummary aggregates all of the athlete's feedback.
func (s *Service) FeedbackSummary(ctx context.Context, athleteID string) (feedback.Summary, error) {
	all, err := s.store.AllFeedback(ctx, athleteID)
	if err != nil {
		return feedback.Summary{}, err
	}
	return feedback.Summarize(all), nil
}
