// Package config loads PhysioTrack settings from an optional config file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment overrides, e.g. PHYSIOTRACK_DATABASE_PATH.
const EnvPrefix = "PHYSIOTRACK"

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Push     PushConfig     `mapstructure:"push"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// PushConfig holds the VAPID credentials used to sign Web Push requests.
type PushConfig struct {
	Subject    string `mapstructure:"subject"`
	PublicKey  string `mapstructure:"public_key"`
	PrivateKey string `mapstructure:"private_key"`
	TTL        int    `mapstructure:"ttl"`
}

// Enabled reports whether both VAPID keys are set.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// Dir returns the default data directory, $HOME/.physiotrack.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".physiotrack"), nil
}

// Load builds the configuration. An explicit path must exist; without one,
// physiotrack.{yaml,toml,json} is looked up in the data directory and the
// working directory, and a missing file just means defaults.
func Load(path string) (Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return Config{}, err
	}

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("database.path", filepath.Join(dir, "physiotrack.db"))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("push.subject", "mailto:suporte@physiotrack.com")
	v.SetDefault("push.public_key", "")
	v.SetDefault("push.private_key", "")
	v.SetDefault("push.ttl", 60)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The web client's variable names keep working.
	if err := v.BindEnv("push.public_key", EnvPrefix+"_PUSH_PUBLIC_KEY", "NEXT_PUBLIC_VAPID_PUBLIC_KEY"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv("push.private_key", EnvPrefix+"_PUSH_PRIVATE_KEY", "VAPID_PRIVATE_KEY"); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("physiotrack")
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Push.TTL < 0 {
		return Config{}, fmt.Errorf("push.ttl must not be negative, got %d", cfg.Push.TTL)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("server.shutdown_timeout must be positive, got %s", cfg.Server.ShutdownTimeout)
	}
	return cfg, nil
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
