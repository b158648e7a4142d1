package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Flyrell/physiotrack/internal/hashutil"
)

// Role distinguishes therapists from athletes.
type Role string

const (
	RoleTherapist Role = "therapist"
	RoleAthlete   Role = "athlete"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTherapist || r == RoleAthlete
}

// Profile is the application-side record of an identity-provider user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const profileColumns = "id, email, full_name, role, created_at, updated_at"

// CreateProfile inserts p, generating an ID when p.ID is empty.
func (s *Store) CreateProfile(ctx context.Context, p *Profile) error {
	if !p.Role.Valid() {
		return fmt.Errorf("invalid role %q", p.Role)
	}
	if p.ID == "" {
		p.ID = hashutil.GenerateID("profile")
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now.UTC(), now.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.FullName, string(p.Role), formatTime(now), formatTime(now),
	)
	if isUniqueViolation(err) {
		return ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetProfile returns the profile with the given ID.
func (s *Store) GetProfile(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("profile '%s': %w", id, ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}
	return p, nil
}

// UpdateProfileName sets the profile's full name and bumps updated_at.
func (s *Store) UpdateProfileName(ctx context.Context, id, fullName string) (Profile, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET full_name = ?, updated_at = ? WHERE id = ?`,
		fullName, formatTime(s.now()), id,
	)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Profile{}, fmt.Errorf("profile '%s': %w", id, ErrNotFound)
	}
	return s.GetProfile(ctx, id)
}

// ListProfiles returns all profiles with the given role ordered by name. An
// empty role lists everyone.
func (s *Store) ListProfiles(ctx context.Context, role Role) ([]Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	var args []any
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, string(role))
	}
	query += ` ORDER BY full_name, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProfile(r rowScanner) (Profile, error) {
	var (
		p                    Profile
		role                 string
		createdAt, updatedAt string
	)
	if err := r.Scan(&p.ID, &p.Email, &p.FullName, &role, &createdAt, &updatedAt); err != nil {
		return Profile{}, err
	}
	p.Role = Role(role)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}
