// Package clinic implements PhysioTrack's use cases on top of the store:
// profiles, protocols, daily feedback, the adherence calendar, reports and
// push reminders. Both the CLI and the HTTP server go through a Service.
package clinic

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/store"
)

var (
	// ErrForbidden is returned when the acting profile has the wrong role
	// for the operation.
	ErrForbidden = errors.New("operation not allowed for this profile")
	// ErrWrongRole is returned when a referenced profile has an unexpected
	// role, e.g. a protocol assigned to a therapist.
	ErrWrongRole = errors.New("profile has the wrong role")
)

// RecentLimit is how many feedback entries the clinical panel shows.
const RecentLimit = 14

// Notifier delivers push messages. *notify.Notifier implements it.
type Notifier interface {
	Send(ctx context.Context, userID string, msg notify.Message) error
	SendTest(ctx context.Context, userID, email string) error
}

// Service is the application layer.
type Service struct {
	store    *store.Store
	notifier Notifier
	logger   *log.Logger
	validate *validator.Validate
	trans    ut.Translator
	now      func() time.Time

	// background tracks fire-and-forget notifications.
	background sync.WaitGroup
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock "today" is derived from.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service. A nil notifier disables push notifications.
func New(st *store.Store, n Notifier, logger *log.Logger, opts ...Option) (*Service, error) {
	v, trans, err := newValidator()
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:    st,
		notifier: n,
		logger:   logger,
		validate: v,
		trans:    trans,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Today is the current local calendar date.
func (s *Service) Today() adherence.Date {
	return adherence.DateOf(s.now())
}

// Wait blocks until background notifications have finished.
func (s *Service) Wait() {
	s.background.Wait()
}

// notifyAsync sends msg without blocking the caller. Failures are logged.
func (s *Service) notifyAsync(userID string, msg notify.Message) {
	if s.notifier == nil {
		return
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.Send(ctx, userID, msg); err != nil {
			s.logger.Warn("push notification not delivered", "user", userID, "title", msg.Title, "err", err)
		}
	}()
}
