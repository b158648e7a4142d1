package clinic

import (
	"context"
	"errors"
	"fmt"

	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/store"
)

// NewSubscription is the browser's PushSubscription JSON.
type NewSubscription struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// SaveSubscription stores the user's push subscription, replacing any
// previous one.
func (s *Service) SaveSubscription(ctx context.Context, userID string, in NewSubscription) error {
	if err := s.check(in); err != nil {
		return err
	}
	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		return err
	}

	sub := store.Subscription{
		Endpoint: in.Endpoint,
		Keys:     store.SubscriptionKeys{P256dh: in.Keys.P256dh, Auth: in.Keys.Auth},
	}
	if err := s.store.SaveSubscription(ctx, userID, sub); err != nil {
		return err
	}
	s.logger.Info("push subscription saved", "user", userID)
	return nil
}

// TestNotification sends the confirmation push to the user.
func (s *Service) TestNotification(ctx context.Context, userID string) error {
	if s.notifier == nil {
		return notify.ErrNotConfigured
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	return s.notifier.SendTest(ctx, userID, p.Email)
}

// ReminderResult counts what SendReminders did.
type ReminderResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SendReminders pushes an exercise reminder to every athlete with an active
// protocol who trains today and has not logged feedback yet. Athletes
// without a subscription are skipped; other delivery failures are counted
// and logged.
func (s *Service) SendReminders(ctx context.Context) (ReminderResult, error) {
	var res ReminderResult
	if s.notifier == nil {
		return res, notify.ErrNotConfigured
	}

	active, err := s.store.ListActiveProtocols(ctx)
	if err != nil {
		return res, err
	}

	today := s.Today()
	for _, p := range active {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !p.IsTrainingDay(today) {
			res.Skipped++
			continue
		}
		done, err := s.store.HasFeedback(ctx, p.AthleteID, today)
		if err != nil {
			return res, err
		}
		if done {
			res.Skipped++
			continue
		}

		err = s.notifier.Send(ctx, p.AthleteID, notify.Message{
			Title: "Hora do treino!",
			Body:  fmt.Sprintf("Não se esqueça do protocolo %q e de registrar como você está hoje.", p.Title),
			URL:   "/dashboard/workout",
			Type:  store.NotificationReminder,
		})
		switch {
		case err == nil:
			res.Sent++
		case errors.Is(err, notify.ErrNoSubscription):
			res.Skipped++
		case errors.Is(err, notify.ErrNotConfigured):
			return res, err
		default:
			res.Failed++
			s.logger.Warn("reminder not delivered", "athlete", p.AthleteID, "err", err)
		}
	}

	s.logger.Info("reminders processed", "sent", res.Sent, "skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

// Notifications lists the user's notification inbox, newest first.
func (s *Service) Notifications(ctx context.Context, userID string) ([]store.Notification, error) {
	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListNotifications(ctx, userID)
}

func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	return s.store.MarkRead(ctx, id)
}
