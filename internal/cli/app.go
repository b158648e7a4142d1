package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/config"
	"github.com/Flyrell/physiotrack/internal/logging"
	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/store"
)

var errNoUser = errors.New("no profile selected (use --as <profile id>)")

// app is what a command needs to reach the clinic.
type app struct {
	cfg    config.Config
	logger *log.Logger
	store  *store.Store
	clinic *clinic.Service
}

func openApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	st, err := store.Open(commandContext(cmd), cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	svc, err := clinic.New(st, notify.New(st, cfg.Push, logger), logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: st, clinic: svc}, nil
}

// Close waits for in-flight notifications before closing the database.
func (a *app) Close() error {
	a.clinic.Wait()
	return a.store.Close()
}

// withApp opens the app, runs fn and closes the app again.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Warn("failed to close database", "err", err)
		}
	}()
	return fn(a)
}

// currentUser returns the --as profile ID.
func currentUser(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString("as")
	if id == "" {
		return "", errNoUser
	}
	return id, nil
}

// athleteFlag returns --athlete, falling back to --as.
func athleteFlag(cmd *cobra.Command) (string, error) {
	if id, _ := cmd.Flags().GetString("athlete"); id != "" {
		return id, nil
	}
	id, err := currentUser(cmd)
	if err != nil {
		return "", errors.New("no athlete selected (use --athlete <profile id> or --as <profile id>)")
	}
	return id, nil
}

// commandContext is cmd's context, or Background when cmd was not executed
// through cobra.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
