package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/hashutil"
	"github.com/Flyrell/physiotrack/internal/protocol"
)

const protocolColumns = "id, therapist_id, athlete_id, title, description, exercises, start_date, end_date, status, created_at, updated_at"

// CreateProtocol archives the athlete's current active protocol, if any, and
// inserts p as the new active one. Both happen in one transaction. It returns
// the number of protocols that were archived.
func (s *Store) CreateProtocol(ctx context.Context, p *protocol.Protocol) (int64, error) {
	if p.ID == "" {
		p.ID = hashutil.GenerateID("protocol")
	}
	if p.Status == "" {
		p.Status = protocol.StatusActive
	}
	if p.Exercises == nil {
		p.Exercises = []protocol.Exercise{}
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now.UTC(), now.UTC()

	exercises, err := json.Marshal(p.Exercises)
	if err != nil {
		return 0, fmt.Errorf("failed to encode exercises: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var archived int64
	if p.Status == protocol.StatusActive {
		res, err := tx.ExecContext(ctx,
			`UPDATE protocols SET status = ?, updated_at = ? WHERE athlete_id = ? AND status = ?`,
			string(protocol.StatusCompleted), formatTime(now), p.AthleteID, string(protocol.StatusActive),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to archive active protocol: %w", err)
		}
		archived, _ = res.RowsAffected()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO protocols (`+protocolColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TherapistID, p.AthleteID, p.Title, p.Description, string(exercises),
		p.StartDate.String(), nullableDate(p.EndDate), string(p.Status),
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert protocol: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit protocol: %w", err)
	}
	return archived, nil
}

// GetProtocol returns the protocol with the given ID.
func (s *Store) GetProtocol(ctx context.Context, id string) (protocol.Protocol, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+protocolColumns+` FROM protocols WHERE id = ?`, id)
	p, err := scanProtocol(row)
	if errors.Is(err, sql.ErrNoRows) {
		return protocol.Protocol{}, fmt.Errorf("protocol '%s': %w", id, ErrNotFound)
	}
	if err != nil {
		return protocol.Protocol{}, fmt.Errorf("failed to query protocol: %w", err)
	}
	return p, nil
}

// ActiveProtocol returns the athlete's active protocol or ErrNoActiveProtocol.
func (s *Store) ActiveProtocol(ctx context.Context, athleteID string) (protocol.Protocol, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+protocolColumns+` FROM protocols WHERE athlete_id = ? AND status = ?`,
		athleteID, string(protocol.StatusActive),
	)
	p, err := scanProtocol(row)
	if errors.Is(err, sql.ErrNoRows) {
		return protocol.Protocol{}, ErrNoActiveProtocol
	}
	if err != nil {
		return protocol.Protocol{}, fmt.Errorf("failed to query active protocol: %w", err)
	}
	return p, nil
}

// ListActiveProtocols returns every active protocol ordered by athlete.
func (s *Store) ListActiveProtocols(ctx context.Context) ([]protocol.Protocol, error) {
	return s.queryProtocols(ctx,
		`SELECT `+protocolColumns+` FROM protocols WHERE status = ? ORDER BY athlete_id`,
		string(protocol.StatusActive),
	)
}

// ListProtocols returns the athlete's protocols, newest first.
func (s *Store) ListProtocols(ctx context.Context, athleteID string) ([]protocol.Protocol, error) {
	return s.queryProtocols(ctx,
		`SELECT `+protocolColumns+` FROM protocols WHERE athlete_id = ? ORDER BY created_at DESC, id`,
		athleteID,
	)
}

// SetProtocolStatus updates the status of a protocol. Reactivating a protocol
// fails with a unique violation if the athlete already has an active one.
func (s *Store) SetProtocolStatus(ctx context.Context, id string, status protocol.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE protocols SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(s.now()), id,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("athlete already has an active protocol: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to update protocol: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("protocol '%s': %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) queryProtocols(ctx context.Context, query string, args ...any) ([]protocol.Protocol, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query protocols: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []protocol.Protocol
	for rows.Next() {
		p, err := scanProtocol(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan protocol: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProtocol(r rowScanner) (protocol.Protocol, error) {
	var (
		p                    protocol.Protocol
		exercises, start     string
		end                  sql.NullString
		status               string
		createdAt, updatedAt string
	)
	err := r.Scan(&p.ID, &p.TherapistID, &p.AthleteID, &p.Title, &p.Description, &exercises,
		&start, &end, &status, &createdAt, &updatedAt)
	if err != nil {
		return protocol.Protocol{}, err
	}

	if err := json.Unmarshal([]byte(exercises), &p.Exercises); err != nil {
		return protocol.Protocol{}, fmt.Errorf("corrupt exercises for protocol '%s': %w", p.ID, err)
	}
	if p.StartDate, err = adherence.ParseDate(start); err != nil {
		return protocol.Protocol{}, fmt.Errorf("corrupt start date for protocol '%s': %w", p.ID, err)
	}
	if end.Valid && end.String != "" {
		if d, err := adherence.ParseDate(end.String); err == nil {
			p.EndDate = &d
		}
	}
	p.Status = protocol.Status(status)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func nullableDate(d *adherence.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
