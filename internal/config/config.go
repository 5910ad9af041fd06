// Package config loads palette-extract settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file. Variables already set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/palette-extract/internal/palette"
)

// Environment variable names.
const (
	EnvMinCount   = "PALETTE_MIN_COUNT"
	EnvMaxColors  = "PALETTE_MAX_COLORS"
	EnvFormat     = "PALETTE_FORMAT"
	EnvLogLevel   = "PALETTE_LOG_LEVEL"
	EnvAutoOrient = "PALETTE_AUTO_ORIENT"
	EnvRegion     = "PALETTE_REGION"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings for one run.
type Config struct {
	MinCount   int
	MaxColors  int
	Format     string
	LogLevel   logrus.Level
	AutoOrient bool
	Region     string
}

// Default returns the built-in settings.
func Default() Config {
	opts := palette.DefaultOptions()
	return Config{
		MinCount:   opts.MinCount,
		MaxColors:  opts.MaxColors,
		Format:     FormatText,
		LogLevel:   logrus.WarnLevel,
		AutoOrient: opts.AutoOrient,
	}
}

// Load reads the given .env files (or ".env" when none are named) and then
// the environment. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, starting from Default.
// Empty values keep the default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv(EnvMinCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("%s: expected a non-negative integer, got %q", EnvMinCount, v)
		}
		cfg.MinCount = n
	}

	if v := getenv(EnvMaxColors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s: expected a positive integer, got %q", EnvMaxColors, v)
		}
		cfg.MaxColors = n
	}

	if v := getenv(EnvFormat); v != "" {
		f, err := ParseFormat(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFormat, err)
		}
		cfg.Format = f
	}

	if v := getenv(EnvLogLevel); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if v := getenv(EnvAutoOrient); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: expected a boolean, got %q", EnvAutoOrient, v)
		}
		cfg.AutoOrient = b
	}

	cfg.Region = strings.TrimSpace(getenv(EnvRegion))

	return cfg, nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s or %s)", s, FormatText, FormatJSON)
	}
}

// PaletteOptions returns the extractor options described by cfg.
func (c Config) PaletteOptions() palette.Options {
	return palette.Options{
		MinCount:   c.MinCount,
		MaxColors:  c.MaxColors,
		AutoOrient: c.AutoOrient,
		Region:     c.Region,
	}
}
