package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SubscriptionKeys are the browser-generated keys of a push subscription.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Subscription is a Web Push subscription as the browser serializes it.
type Subscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// SaveSubscription stores sub for the user, replacing any previous one.
func (s *Store) SaveSubscription(ctx context.Context, userID string, sub Subscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode subscription: %w", err)
	}
	now := formatTime(s.now())

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO push_subscriptions (user_id, subscription, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			subscription = excluded.subscription,
			updated_at = excluded.updated_at`,
		userID, string(raw), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

// GetSubscription returns the user's push subscription or ErrNotFound.
func (s *Store) GetSubscription(ctx context.Context, userID string) (Subscription, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT subscription FROM push_subscriptions WHERE user_id = ?`, userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Subscription{}, fmt.Errorf("subscription for '%s': %w", userID, ErrNotFound)
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to query subscription: %w", err)
	}

	var sub Subscription
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return Subscription{}, fmt.Errorf("corrupt subscription for '%s': %w", userID, err)
	}
	return sub, nil
}

// DeleteSubscription removes the user's subscription. Deleting a missing
// subscription is not an error.
func (s *Store) DeleteSubscription(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
