package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/store"
)

func isReminder(m notify.Message) bool {
	return m.Type == store.NotificationReminder
}

func TestRemind(t *testing.T) {
	tc := newTestClinic(t)
	tc.assign(t, 10, clinic.NewProtocol{})
	tc.notifier.On("Send", mock.Anything, "at-1", mock.MatchedBy(isReminder)).Return(nil).Once()

	cmd, stdout := testCommand()
	err := runRemind(cmd, tc.svc)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "reminders: 1 sent, 0 skipped, 0 failed")
	tc.notifier.AssertExpectations(t)
}

func TestRemindSkipsLoggedAthletes(t *testing.T) {
	tc := newTestClinic(t)
	tc.assign(t, 10, clinic.NewProtocol{})
	_, err := execFeedbackLog(tc.svc, feedbackInput{pain: "1", fatigue: "1"}, PromptKit{})
	require.NoError(t, err)

	cmd, stdout := testCommand()
	require.NoError(t, runRemind(cmd, tc.svc))
	assert.Contains(t, stdout.String(), "0 sent, 1 skipped")
}

func TestRemindFailures(t *testing.T) {
	tc := newTestClinic(t)
	tc.assign(t, 10, clinic.NewProtocol{})
	tc.notifier.On("Send", mock.Anything, "at-1", mock.MatchedBy(isReminder)).Return(errors.New("push service unavailable")).Once()

	cmd, stdout := testCommand()
	err := runRemind(cmd, tc.svc)

	assert.EqualError(t, err, "1 reminder(s) could not be delivered")
	assert.Contains(t, stdout.String(), "1 failed")
}
