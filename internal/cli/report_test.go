package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/store"
)

func execReport(svc *clinic.Service, athleteID, output string) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := reportCmd
	cmd.SetOut(stdout)
	cmd.SetContext(context.Background())
	err := runReport(cmd, svc, athleteID, output)
	return stdout.String(), err
}

func TestReportExport(t *testing.T) {
	tc := newTestClinic(t)
	tc.assign(t, 10, clinic.NewProtocol{})
	_, err := execFeedbackLog(tc.svc, feedbackInput{pain: "3", fatigue: "2", notes: "Sem dor"}, PromptKit{})
	require.NoError(t, err)

	output := filepath.Join(t.TempDir(), "joao.pdf")
	stdout, err := execReport(tc.svc, "at-1", output)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported report to "+output+" (1 sessions)")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReportDefaultFileName(t *testing.T) {
	tc := newTestClinic(t)
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, err := execReport(tc.svc, "at-1", "")

	require.NoError(t, err)
	assert.Contains(t, stdout, "relatorio-joao-silva.pdf")
	_, err = os.Stat(filepath.Join(dir, "relatorio-joao-silva.pdf"))
	assert.NoError(t, err)
}

func TestReportUnknownAthlete(t *testing.T) {
	tc := newTestClinic(t)

	_, err := execReport(tc.svc, "ghost", filepath.Join(t.TempDir(), "x.pdf"))

	assert.ErrorIs(t, err, store.ErrNotFound)
}
