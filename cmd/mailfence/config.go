package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-mailfence/pkg/brand"
)

const (
	envPrefix         = "MAILFENCE"
	defaultConfigName = "mailfence"
)

// Config is the CLI configuration read from mailfence.yaml and MAILFENCE_*
// environment variables.
type Config struct {
	// Brand is applied by render and set when the snapshot names none.
	Brand string `mapstructure:"brand"`
	// Brands is a directory of extra preset files merged over the bundled
	// presets.
	Brands string `mapstructure:"brands"`
	// Template is the template used by render when --template is absent.
	Template string    `mapstructure:"template"`
	Log      LogConfig `mapstructure:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func newViper() *viper.Viper {
	v := viper.New()
	// Every key needs a default so Unmarshal sees env-only values.
	v.SetDefault("brand", "")
	v.SetDefault("brands", "")
	v.SetDefault("template", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file, if any, and decodes the merged settings.
// An explicit path must exist; the default mailfence.yaml is optional.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.Format)
}

// loadBrands returns the bundled presets, merged with the presets found in
// dir when one is configured.
func loadBrands(dir string) (*brand.Store, error) {
	store := brand.Defaults()
	if strings.TrimSpace(dir) == "" {
		return store, nil
	}
	extra, err := brand.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("load brands from %s: %w", dir, err)
	}
	return store.Merge(extra), nil
}
