package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/store"
)

func execProfileAdd(svc *clinic.Service, role store.Role, id string, args []string, prompt PromptFunc) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := athleteAddCmd
	cmd.SetOut(stdout)
	cmd.SetContext(context.Background())
	err := runProfileAdd(cmd, svc, role, id, args, prompt)
	return stdout.String(), err
}

func execAthleteList(svc *clinic.Service) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := athleteListCmd
	cmd.SetOut(stdout)
	cmd.SetContext(context.Background())
	err := runAthleteList(cmd, svc)
	return stdout.String(), err
}

func TestAthleteAddHappyPath(t *testing.T) {
	tc := newTestClinic(t)

	stdout, err := execProfileAdd(tc.svc, store.RoleAthlete, "at-2", []string{"Maria@Mail.pt", "Maria Souza"}, nil)

	require.NoError(t, err)
	assert.Contains(t, stdout, "athlete 'Maria Souza' registered (at-2)")

	p, err := tc.svc.Profile(context.Background(), "at-2")
	require.NoError(t, err)
	assert.Equal(t, "maria@mail.pt", p.Email)
	assert.Equal(t, store.RoleAthlete, p.Role)
}

func TestAthleteAddPromptsForName(t *testing.T) {
	tc := newTestClinic(t)

	stdout, err := execProfileAdd(tc.svc, store.RoleAthlete, "", []string{"maria@mail.pt"}, scripted(t, "Maria Souza"))

	require.NoError(t, err)
	assert.Contains(t, stdout, "athlete 'Maria Souza' registered (")
}

func TestAthleteAddWithoutName(t *testing.T) {
	tc := newTestClinic(t)

	_, err := execProfileAdd(tc.svc, store.RoleAthlete, "", []string{"maria@mail.pt"}, nil)

	var verr *clinic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "full_name")
}

func TestAthleteAddDuplicateEmail(t *testing.T) {
	tc := newTestClinic(t)

	_, err := execProfileAdd(tc.svc, store.RoleAthlete, "", []string{"joao@mail.pt", "Outro João"}, nil)

	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestTherapistAdd(t *testing.T) {
	tc := newTestClinic(t)

	stdout, err := execProfileAdd(tc.svc, store.RoleTherapist, "th-2", []string{"rui@clinic.pt", "Rui Lopes"}, nil)

	require.NoError(t, err)
	assert.Contains(t, stdout, "therapist 'Rui Lopes' registered (th-2)")
}

func TestAthleteList(t *testing.T) {
	tc := newTestClinic(t)

	stdout, err := execAthleteList(tc.svc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "João Silva <joao@mail.pt>")
	assert.Contains(t, stdout, "no active protocol")
	assert.NotContains(t, stdout, "Ana Costa")

	tc.assign(t, 10, clinic.NewProtocol{})

	stdout, err = execAthleteList(tc.svc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reabilitação do joelho since 2025-01-10")
}

func TestAthleteSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range athleteCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"add", "list"}, names)

	names = names[:0]
	for _, c := range therapistCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"add"}, names)
}
