// Package notify delivers Web Push notifications to subscribed users and
// records each delivery as an in-app notification.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/charmbracelet/log"

	"github.com/Flyrell/physiotrack/internal/config"
	"github.com/Flyrell/physiotrack/internal/store"
)

var (
	ErrNotConfigured  = errors.New("push notifications are not configured (missing VAPID keys)")
	ErrNoSubscription = errors.New("user has no push subscription")
)

// DefaultURL is opened when the user clicks a notification without a URL.
const DefaultURL = "/dashboard"

// Message is what the service worker receives.
type Message struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	URL   string                 `json:"url"`
	Type  store.NotificationType `json:"-"`
}

// Store is the subset of the store the notifier needs.
type Store interface {
	GetSubscription(ctx context.Context, userID string) (store.Subscription, error)
	DeleteSubscription(ctx context.Context, userID string) error
	RecordNotification(ctx context.Context, n *store.Notification) error
}

// SendFunc matches webpush.SendNotificationWithContext.
type SendFunc func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

// Notifier sends push messages signed with the configured VAPID keys.
type Notifier struct {
	store  Store
	cfg    config.PushConfig
	logger *log.Logger
	send   SendFunc
	client webpush.HTTPClient
}

// Option customizes a Notifier.
type Option func(*Notifier)

// WithSendFunc replaces the Web Push transport.
func WithSendFunc(fn SendFunc) Option {
	return func(n *Notifier) { n.send = fn }
}

// WithHTTPClient sets the client used to reach push services.
func WithHTTPClient(c webpush.HTTPClient) Option {
	return func(n *Notifier) { n.client = c }
}

func New(s Store, cfg config.PushConfig, logger *log.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		store:  s,
		cfg:    cfg,
		logger: logger,
		send:   webpush.SendNotificationWithContext,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Configured reports whether VAPID keys are present.
func (n *Notifier) Configured() bool {
	return n.cfg.Enabled()
}

// Send pushes msg to the user's subscription. A subscription the push
// service reports as gone (404 or 410) is deleted and ErrNoSubscription is
// returned.
func (n *Notifier) Send(ctx context.Context, userID string, msg Message) error {
	if !n.Configured() {
		return ErrNotConfigured
	}
	if msg.URL == "" {
		msg.URL = DefaultURL
	}
	if msg.Type == "" {
		msg.Type = store.NotificationMessage
	}

	sub, err := n.store.GetSubscription(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoSubscription
	}
	if err != nil {
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	resp, err := n.send(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     webpush.Keys{P256dh: sub.Keys.P256dh, Auth: sub.Keys.Auth},
	}, &webpush.Options{
		HTTPClient:      n.client,
		Subscriber:      strings.TrimPrefix(n.cfg.Subject, "mailto:"),
		VAPIDPublicKey:  n.cfg.PublicKey,
		VAPIDPrivateKey: n.cfg.PrivateKey,
		TTL:             n.cfg.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		n.logger.Info("removing expired push subscription", "user", userID, "status", resp.StatusCode)
		if err := n.store.DeleteSubscription(ctx, userID); err != nil {
			return err
		}
		return ErrNoSubscription
	case resp.StatusCode >= 300:
		return fmt.Errorf("push service rejected notification: %s", resp.Status)
	}

	record := store.Notification{
		UserID:  userID,
		Type:    msg.Type,
		Title:   msg.Title,
		Message: msg.Body,
		URL:     msg.URL,
	}
	if err := n.store.RecordNotification(ctx, &record); err != nil {
		// The push already went out.
		n.logger.Warn("failed to record notification", "user", userID, "err", err)
	}

	n.logger.Debug("push sent", "user", userID, "title", msg.Title)
	return nil
}

// SendTest sends the confirmation message the settings page triggers.
func (n *Notifier) SendTest(ctx context.Context, userID, email string) error {
	return n.Send(ctx, userID, Message{
		Title: "Funciona!",
		Body:  fmt.Sprintf("Olá, %s! O sistema de notificações do PhysioTrack está ativo.", email),
		URL:   DefaultURL,
	})
}
