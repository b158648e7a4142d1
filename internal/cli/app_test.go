package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/store"
)

func appCommand(t *testing.T, configPath string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().String("config", configPath, "")
	cmd.SetContext(context.Background())
	cmd.SetErr(new(bytes.Buffer))
	return cmd
}

func TestWithAppPersists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	dbPath := filepath.Join(dir, "data", "physiotrack.db")
	configPath := filepath.Join(dir, "physiotrack.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf("database:\n  path: %s\nlog:\n  level: error\n", dbPath)), 0o644))

	err := withApp(appCommand(t, configPath), func(a *app) error {
		assert.Equal(t, dbPath, a.cfg.Database.Path)
		_, err := a.clinic.RegisterProfile(context.Background(), clinic.NewProfile{
			ID: "at-1", Email: "joao@mail.pt", FullName: "João Silva", Role: "athlete",
		})
		return err
	})
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	err = withApp(appCommand(t, configPath), func(a *app) error {
		athletes, err := a.clinic.Profiles(context.Background(), store.RoleAthlete)
		require.NoError(t, err)
		assert.Len(t, athletes, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestWithAppMissingConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	called := false
	err := withApp(appCommand(t, filepath.Join(dir, "missing.yaml")), func(a *app) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestCurrentUser(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("as", "", "")
	cmd.Flags().String("athlete", "", "")

	_, err := currentUser(cmd)
	assert.ErrorIs(t, err, errNoUser)
	_, err = athleteFlag(cmd)
	assert.ErrorContains(t, err, "no athlete selected")

	require.NoError(t, cmd.Flags().Set("as", "at-1"))
	id, err := currentUser(cmd)
	require.NoError(t, err)
	assert.Equal(t, "at-1", id)

	id, err = athleteFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, "at-1", id, "falls back to --as")

	require.NoError(t, cmd.Flags().Set("athlete", "at-2"))
	id, err = athleteFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, "at-2", id)
}

func TestRootCommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{
		"athlete", "therapist", "profile", "protocol", "feedback", "calendar", "report",
		"push", "notifications", "remind", "serve", "version", "completion",
	} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("as"))
}
