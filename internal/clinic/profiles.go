package clinic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Flyrell/physiotrack/internal/store"
)

// NewProfile is the input for RegisterProfile.
type NewProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"notblank,max=120"`
	Role     string `json:"role" validate:"required,oneof=therapist athlete"`
}

// RegisterProfile creates a therapist or athlete profile.
func (s *Service) RegisterProfile(ctx context.Context, in NewProfile) (store.Profile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.check(in); err != nil {
		return store.Profile{}, err
	}

	p := store.Profile{
		ID:       in.ID,
		Email:    in.Email,
		FullName: in.FullName,
		Role:     store.Role(in.Role),
	}
	if err := s.store.CreateProfile(ctx, &p); err != nil {
		return store.Profile{}, err
	}
	s.logger.Info("profile registered", "id", p.ID, "role", p.Role)
	return p, nil
}

// ProfileUpdate is the input for UpdateProfile.
type ProfileUpdate struct {
	FullName string `json:"full_name" validate:"notblank,max=120"`
}

// UpdateProfile renames the user's own profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (store.Profile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.check(in); err != nil {
		return store.Profile{}, err
	}

	p, err := s.store.UpdateProfileName(ctx, userID, in.FullName)
	if err != nil {
		return store.Profile{}, err
	}
	s.logger.Info("profile updated", "id", p.ID)
	return p, nil
}

func (s *Service) Profile(ctx context.Context, id string) (store.Profile, error) {
	return s.store.GetProfile(ctx, id)
}

func (s *Service) Profiles(ctx context.Context, role store.Role) ([]store.Profile, error) {
	return s.store.ListProfiles(ctx, role)
}

// profileWithRole loads a profile and checks its role.
func (s *Service) profileWithRole(ctx context.Context, id string, role store.Role) (store.Profile, error) {
	p, err := s.store.GetProfile(ctx, id)
	if err != nil {
		return store.Profile{}, err
	}
	if p.Role != role {
		return store.Profile{}, fmt.Errorf("profile '%s' is a %s, expected %s: %w", id, p.Role, role, ErrWrongRole)
	}
	return p, nil
}
