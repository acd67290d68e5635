package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/history"
	"github.com/oukeidos/quicktrans/internal/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "QUICKTRANS"

// Config holds the construction-time settings. None of these change
// during a session.
type Config struct {
	Model      string `mapstructure:"model"`
	Provider   string `mapstructure:"provider"`
	MaxHistory int    `mapstructure:"max_history"`
	AllowEnv   bool   `mapstructure:"allow_env"`
	LogFile    string `mapstructure:"log_file"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"model":       "model",
	"provider":    "provider",
	"max-history": "max_history",
	"allow-env":   "allow_env",
	"log-file":    "log_file",
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "quicktrans"), nil
}

// Load resolves configuration with precedence flags > QUICKTRANS_* env >
// config file > defaults. An explicit configPath must exist; the default
// location is optional.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("model", session.DefaultModel)
	v.SetDefault("provider", session.DefaultProvider)
	v.SetDefault("max_history", history.DefaultCapacity)
	v.SetDefault("allow_env", true)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, apperrors.New(apperrors.KindConfig, fmt.Sprintf("failed to read config file: %v", err), err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, apperrors.New(apperrors.KindConfig, fmt.Sprintf("invalid configuration: %v", err), err)
	}
	if cfg.MaxHistory < 1 {
		return Config{}, apperrors.Config(fmt.Sprintf("max history must be a positive integer, got %d", cfg.MaxHistory))
	}
	return cfg, nil
}
