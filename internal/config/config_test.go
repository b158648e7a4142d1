package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs so no
// real config or .env leaks into the test.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".physiotrack", "physiotrack.db"), cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mailto:suporte@physiotrack.com", cfg.Push.Subject)
	assert.Equal(t, 60, cfg.Push.TTL)
	assert.False(t, cfg.Push.Enabled())
}

func TestLoadConfigFile(t *testing.T) {
	_, wd := isolate(t)

	content := "database:\n  path: /tmp/clinic.db\nserver:\n  addr: \":9090\"\n  shutdown_timeout: 3s\npush:\n  ttl: 120\n"
	require.NoError(t, os.WriteFile(filepath.Join(wd, "physiotrack.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/clinic.db", cfg.Database.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 120, cfg.Push.TTL)
}

func TestLoadExplicitPath(t *testing.T) {
	_, wd := isolate(t)

	path := filepath.Join(wd, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, wd := isolate(t)

	_, err := Load(filepath.Join(wd, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	_, wd := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(wd, "physiotrack.yaml"), []byte("log:\n  level: warn\n"), 0o644))
	t.Setenv("PHYSIOTRACK_LOG_LEVEL", "error")
	t.Setenv("PHYSIOTRACK_SERVER_ADDR", "127.0.0.1:7000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
}

func TestLoadVAPIDKeysFromClientNames(t *testing.T) {
	isolate(t)
	t.Setenv("NEXT_PUBLIC_VAPID_PUBLIC_KEY", "pub")
	t.Setenv("VAPID_PRIVATE_KEY", "priv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pub", cfg.Push.PublicKey)
	assert.Equal(t, "priv", cfg.Push.PrivateKey)
	assert.True(t, cfg.Push.Enabled())
}

func TestLoadDotEnv(t *testing.T) {
	_, wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, DotEnvFile), []byte("PHYSIOTRACK_DATABASE_PATH=/data/from-env.db\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("PHYSIOTRACK_DATABASE_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/from-env.db", cfg.Database.Path)
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("PHYSIOTRACK_PUSH_TTL", "-5")

	_, err := Load("")
	assert.Error(t, err)
}
