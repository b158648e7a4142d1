package clinic

import (
	"context"
	"errors"
	"fmt"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/report"
	"github.com/Flyrell/physiotrack/internal/store"
)

// Calendar builds the athlete's adherence calendar for year. Days are missed
// from the active protocol's start date up to yesterday; without an active
// protocol the window starts today, so nothing is missed.
func (s *Service) Calendar(ctx context.Context, athleteID string, year int) (adherence.Calendar, error) {
	if year < adherence.MinYear || year > adherence.MaxYear {
		return adherence.Calendar{}, fmt.Errorf("%w: year %d outside %d..%d",
			adherence.ErrInvalidArgument, year, adherence.MinYear, adherence.MaxYear)
	}
	if _, err := s.profileWithRole(ctx, athleteID, store.RoleAthlete); err != nil {
		return adherence.Calendar{}, err
	}

	raw, err := s.store.LoggedDates(ctx, athleteID)
	if err != nil {
		return adherence.Calendar{}, err
	}

	today := s.Today()
	start, err := s.adherenceStart(ctx, athleteID, today)
	if err != nil {
		return adherence.Calendar{}, err
	}

	return adherence.Build(adherence.NewDateSet(raw), start, today, year)
}

func (s *Service) adherenceStart(ctx context.Context, athleteID string, today adherence.Date) (adherence.Date, error) {
	active, err := s.store.ActiveProtocol(ctx, athleteID)
	if errors.Is(err, store.ErrNoActiveProtocol) {
		return today, nil
	}
	if err != nil {
		return adherence.Date{}, err
	}
	return active.StartDate, nil
}

// Report gathers the athlete's progress report: all feedback oldest first
// and the adherence counts of the current year.
func (s *Service) Report(ctx context.Context, athleteID string) (report.Data, error) {
	athlete, err := s.profileWithRole(ctx, athleteID, store.RoleAthlete)
	if err != nil {
		return report.Data{}, err
	}

	entries, err := s.store.AllFeedback(ctx, athleteID)
	if err != nil {
		return report.Data{}, err
	}

	cal, err := s.Calendar(ctx, athleteID, s.Today().Year)
	if err != nil {
		return report.Data{}, err
	}

	return report.Build(athlete, entries, cal.Counts(), s.now()), nil
}
