package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification row.
type NotificationType string

const (
	NotificationReminder       NotificationType = "exercise_reminder"
	NotificationMessage        NotificationType = "message"
	NotificationProtocolUpdate NotificationType = "protocol_update"
)

// Notification is the in-app record of a message sent to a user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	URL       string           `json:"url,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// RecordNotification inserts n with a fresh UUID.
func (s *Store) RecordNotification(ctx context.Context, n *Notification) error {
	if n.Type == "" {
		n.Type = NotificationMessage
	}
	n.ID = uuid.New().String()
	n.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, url, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Title, n.Message, n.URL, n.Read, formatTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, title, message, url, read, created_at
		FROM notifications WHERE user_id = ?
		ORDER BY created_at DESC, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Notification
	for rows.Next() {
		var (
			n              Notification
			typ, createdAt string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &n.URL, &n.Read, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = NotificationType(typ)
		n.CreatedAt = parseTime(createdAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification '%s': %w", id, ErrNotFound)
	}
	return nil
}
