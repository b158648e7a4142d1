package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/feedback"
	"github.com/Flyrell/physiotrack/internal/hashutil"
)

const feedbackColumns = "id, athlete_id, protocol_id, date, pain_level, fatigue_level, mobility_range, notes, exercises_completed, created_at, updated_at"

// InsertFeedback stores a daily feedback entry. A second entry for the same
// athlete and date returns ErrFeedbackExists.
func (s *Store) InsertFeedback(ctx context.Context, f *feedback.Feedback) error {
	if f.ID == "" {
		f.ID = hashutil.GenerateID("feedback")
	}
	if f.ExercisesCompleted == nil {
		f.ExercisesCompleted = []string{}
	}
	now := s.now()
	f.CreatedAt, f.UpdatedAt = now.UTC(), now.UTC()

	completed, err := json.Marshal(f.ExercisesCompleted)
	if err != nil {
		return fmt.Errorf("failed to encode completed exercises: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO daily_feedback (`+feedbackColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.AthleteID, f.ProtocolID, f.Date.String(), f.PainLevel, f.FatigueLevel,
		f.MobilityRange, f.Notes, string(completed), formatTime(now), formatTime(now),
	)
	if isUniqueViolation(err) {
		return ErrFeedbackExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// RecentFeedback returns up to limit entries for the athlete, newest first.
// A limit of zero or less returns everything.
func (s *Store) RecentFeedback(ctx context.Context, athleteID string, limit int) ([]feedback.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM daily_feedback WHERE athlete_id = ? ORDER BY date DESC`
	args := []any{athleteID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryFeedback(ctx, query, args...)
}

// AllFeedback returns every entry for the athlete, oldest first.
func (s *Store) AllFeedback(ctx context.Context, athleteID string) ([]feedback.Feedback, error) {
	return s.queryFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM daily_feedback WHERE athlete_id = ? ORDER BY date ASC`,
		athleteID,
	)
}

// LoggedDates returns the raw date strings the athlete has logged feedback
// for, oldest first.
func (s *Store) LoggedDates(ctx context.Context, athleteID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date FROM daily_feedback WHERE athlete_id = ? ORDER BY date ASC`, athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query logged dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan logged date: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// HasFeedback reports whether the athlete has logged feedback on d.
func (s *Store) HasFeedback(ctx context.Context, athleteID string, d adherence.Date) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM daily_feedback WHERE athlete_id = ? AND date = ?)`,
		athleteID, d.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check feedback: %w", err)
	}
	return exists, nil
}

func (s *Store) queryFeedback(ctx context.Context, query string, args ...any) ([]feedback.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []feedback.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFeedback(r rowScanner) (feedback.Feedback, error) {
	var (
		f                    feedback.Feedback
		date, completed      string
		createdAt, updatedAt string
	)
	err := r.Scan(&f.ID, &f.AthleteID, &f.ProtocolID, &date, &f.PainLevel, &f.FatigueLevel,
		&f.MobilityRange, &f.Notes, &completed, &createdAt, &updatedAt)
	if err != nil {
		return feedback.Feedback{}, err
	}

	if f.Date, err = adherence.ParseDate(date); err != nil {
		return feedback.Feedback{}, fmt.Errorf("corrupt date for feedback '%s': %w", f.ID, err)
	}
	if err := json.Unmarshal([]byte(completed), &f.ExercisesCompleted); err != nil {
		return feedback.Feedback{}, fmt.Errorf("corrupt completed exercises for feedback '%s': %w", f.ID, err)
	}
	f.CreatedAt = parseTime(createdAt)
	f.UpdatedAt = parseTime(updatedAt)
	return f, nil
}
