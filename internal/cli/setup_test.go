package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/logging"
	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/store"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, userID string, msg notify.Message) error {
	return m.Called(ctx, userID, msg).Error(0)
}

func (m *mockNotifier) SendTest(ctx context.Context, userID, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}

// testClinic is a clinic over an in-memory store, fixed at 2025-01-16, with
// one therapist (th-1) and one athlete (at-1).
type testClinic struct {
	svc      *clinic.Service
	store    *store.Store
	notifier *mockNotifier
	now      time.Time
}

func newTestClinic(t *testing.T) *testClinic {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tc := &testClinic{
		store:    st,
		notifier: new(mockNotifier),
		now:      time.Date(2025, time.January, 16, 9, 0, 0, 0, time.UTC),
	}
	tc.svc, err = clinic.New(st, tc.notifier, logging.Discard(), clinic.WithClock(func() time.Time { return tc.now }))
	require.NoError(t, err)

	_, err = tc.svc.RegisterProfile(ctx, clinic.NewProfile{ID: "th-1", Email: "ana@clinic.pt", FullName: "Ana Costa", Role: "therapist"})
	require.NoError(t, err)
	_, err = tc.svc.RegisterProfile(ctx, clinic.NewProfile{ID: "at-1", Email: "joao@mail.pt", FullName: "João Silva", Role: "athlete"})
	require.NoError(t, err)
	return tc
}

// assign gives at-1 an active protocol starting on the given January day.
func (tc *testClinic) assign(t *testing.T, startDay int, in clinic.NewProtocol) {
	t.Helper()
	tc.notifier.On("Send", mock.Anything, "at-1", mock.Anything).Return(nil).Once()

	prev := tc.now
	tc.now = time.Date(2025, time.January, startDay, 9, 0, 0, 0, time.UTC)
	defer func() { tc.now = prev }()

	if in.AthleteID == "" {
		in.AthleteID = "at-1"
	}
	if in.Title == "" {
		in.Title = "Reabilitação do joelho"
	}
	_, err := tc.svc.CreateProtocol(context.Background(), "th-1", in)
	require.NoError(t, err)
	tc.svc.Wait()
}

// testCommand returns a bare command writing to a buffer.
func testCommand() (*cobra.Command, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	cmd.SetContext(context.Background())
	return cmd, stdout
}

// scripted returns a PromptFunc answering with the given responses in order.
func scripted(t *testing.T, answers ...string) PromptFunc {
	t.Helper()
	return func(prompt string) (string, error) {
		require.NotEmpty(t, answers, "unexpected prompt %q", prompt)
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
}
