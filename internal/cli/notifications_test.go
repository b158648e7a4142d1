package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/store"
)

func TestNotifications(t *testing.T) {
	tc := newTestClinic(t)
	ctx := context.Background()

	cmd, stdout := testCommand()
	require.NoError(t, runNotificationsList(cmd, tc.svc, "at-1", false))
	assert.Contains(t, stdout.String(), "No notifications.")

	n := store.Notification{UserID: "at-1", Type: store.NotificationReminder, Title: "Hora do treino!", Message: "Não se esqueça do protocolo."}
	require.NoError(t, tc.store.RecordNotification(ctx, &n))

	cmd, stdout = testCommand()
	require.NoError(t, runNotificationsList(cmd, tc.svc, "at-1", true))
	assert.Contains(t, stdout.String(), "Hora do treino!")
	assert.Contains(t, stdout.String(), "Não se esqueça do protocolo.")
	assert.Contains(t, stdout.String(), n.ID)

	cmd, stdout = testCommand()
	require.NoError(t, runNotificationsRead(cmd, tc.svc, n.ID))
	assert.Contains(t, stdout.String(), "marked as read")

	cmd, stdout = testCommand()
	require.NoError(t, runNotificationsList(cmd, tc.svc, "at-1", true))
	assert.Contains(t, stdout.String(), "No notifications.")

	cmd, stdout = testCommand()
	require.NoError(t, runNotificationsList(cmd, tc.svc, "at-1", false))
	assert.Contains(t, stdout.String(), "Hora do treino!")
}

func TestNotificationsErrors(t *testing.T) {
	tc := newTestClinic(t)

	cmd, _ := testCommand()
	assert.ErrorIs(t, runNotificationsRead(cmd, tc.svc, "missing"), store.ErrNotFound)

	cmd, _ = testCommand()
	assert.ErrorIs(t, runNotificationsList(cmd, tc.svc, "ghost", false), store.ErrNotFound)
}
