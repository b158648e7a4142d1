package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/protocol"
	"github.com/Flyrell/physiotrack/internal/store"
)

// NewProtocol is the input for CreateProtocol.
type NewProtocol struct {
	AthleteID   string              `json:"athlete_id" validate:"required"`
	Title       string              `json:"title" validate:"notblank,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Exercises   []protocol.Exercise `json:"exercises" validate:"dive"`
	EndDate     *adherence.Date     `json:"end_date,omitempty"`
}

// CreateProtocol assigns a new active protocol, starting today, to an
// athlete. The athlete's previous active protocol is archived. The athlete is
// notified in the background.
func (s *Service) CreateProtocol(ctx context.Context, therapistID string, in NewProtocol) (protocol.Protocol, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in); err != nil {
		return protocol.Protocol{}, err
	}

	if err := s.requireTherapist(ctx, therapistID); err != nil {
		return protocol.Protocol{}, err
	}
	if _, err := s.profileWithRole(ctx, in.AthleteID, store.RoleAthlete); err != nil {
		return protocol.Protocol{}, err
	}

	today := s.Today()
	if in.EndDate != nil && in.EndDate.Before(today) {
		return protocol.Protocol{}, &ValidationError{Fields: map[string]string{
			"end_date": "end_date não pode ser anterior à data de início",
		}}
	}

	p := protocol.Protocol{
		TherapistID: therapistID,
		AthleteID:   in.AthleteID,
		Title:       in.Title,
		Description: in.Description,
		Exercises:   in.Exercises,
		StartDate:   today,
		EndDate:     in.EndDate,
		Status:      protocol.StatusActive,
	}
	archived, err := s.store.CreateProtocol(ctx, &p)
	if err != nil {
		return protocol.Protocol{}, err
	}
	s.logger.Info("protocol created", "id", p.ID, "athlete", p.AthleteID, "archived", archived)

	s.notifyAsync(p.AthleteID, notify.Message{
		Title: "Novo Treino Disponível!",
		Body:  fmt.Sprintf("O protocolo %q foi criado para você. Toque para ver.", p.Title),
		URL:   "/dashboard/workout",
		Type:  store.NotificationProtocolUpdate,
	})
	return p, nil
}

// FinishProtocol marks a protocol completed. Only the therapist who
// prescribed it may finish it.
func (s *Service) FinishProtocol(ctx context.Context, therapistID, protocolID string) error {
	if err := s.requireTherapist(ctx, therapistID); err != nil {
		return err
	}
	p, err := s.store.GetProtocol(ctx, protocolID)
	if err != nil {
		return err
	}
	if p.TherapistID != therapistID {
		return fmt.Errorf("protocol '%s' belongs to another therapist: %w", protocolID, ErrForbidden)
	}

	if err := s.store.SetProtocolStatus(ctx, protocolID, protocol.StatusCompleted); err != nil {
		return err
	}
	s.logger.Info("protocol finished", "id", protocolID, "therapist", therapistID)
	return nil
}

// requireTherapist checks that the acting profile exists and is a therapist.
func (s *Service) requireTherapist(ctx context.Context, id string) error {
	_, err := s.profileWithRole(ctx, id, store.RoleTherapist)
	switch {
	case errors.Is(err, ErrWrongRole), errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	case err != nil:
		return err
	}
	return nil
}

// ActiveProtocol returns the athlete's current protocol or
// store.ErrNoActiveProtocol.
func (s *Service) ActiveProtocol(ctx context.Context, athleteID string) (protocol.Protocol, error) {
	return s.store.ActiveProtocol(ctx, athleteID)
}

func (s *Service) Protocol(ctx context.Context, id string) (protocol.Protocol, error) {
	return s.store.GetProtocol(ctx, id)
}
