// Package cliconfig holds the CLI configuration surface: defaults,
// validation, TOML file loading, and environment overrides, with explicit
// flag precedence.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmsight/thermalmap/internal/acquire"
	"github.com/farmsight/thermalmap/internal/app"
	"github.com/farmsight/thermalmap/internal/domain"
)

// DefaultBaud is the sensor board's serial bit rate.
const DefaultBaud = 115200

// DefaultReadTimeout bounds every individual transport line read.
const DefaultReadTimeout = 2 * time.Second

// Config holds CLI configuration for thermalmap.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration

	Marker      string
	MaxAttempts int

	TickInterval time.Duration
	TickBudget   int

	BrokerURL string
	Topic     string
	ClientID  string

	RawMin          float64
	RawMax          float64
	InterpolatedMin float64
	InterpolatedMax float64

	LogLevel string

	// ConfigPath is the resolved config file path, used for hot reload.
	// It is set by the CLI, never by the file itself.
	ConfigPath string
}

// DefaultConfig returns a Config with default values. Device must be set
// before the configuration validates.
func DefaultConfig() Config {
	return Config{
		Baud:            DefaultBaud,
		ReadTimeout:     DefaultReadTimeout,
		Marker:          acquire.DefaultMarker,
		MaxAttempts:     acquire.DefaultMaxAttempts,
		TickInterval:    app.DefaultTickInterval,
		TickBudget:      app.DefaultTickBudget,
		BrokerURL:       "",
		Topic:           "thermalmap/frames",
		ClientID:        "thermalmap",
		RawMin:          15,
		RawMax:          25,
		InterpolatedMin: 5,
		InterpolatedMax: 25,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("%w: device is required", domain.ErrInvalidConfig)
	}
	if c.Baud <= 0 {
		return fmt.Errorf("%w: baud must be positive", domain.ErrInvalidConfig)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.Marker == "" {
		return fmt.Errorf("%w: marker is required", domain.ErrInvalidConfig)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive", domain.ErrInvalidConfig)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", domain.ErrInvalidConfig)
	}
	if c.TickBudget <= 0 {
		return fmt.Errorf("%w: tick budget must be positive", domain.ErrInvalidConfig)
	}
	if !c.RawRange().Valid() {
		return fmt.Errorf("%w: raw display range is empty", domain.ErrInvalidConfig)
	}
	if !c.InterpolatedRange().Valid() {
		return fmt.Errorf("%w: interpolated display range is empty", domain.ErrInvalidConfig)
	}
	return nil
}

// RawRange returns the display clamp band for the raw channel.
func (c *Config) RawRange() domain.Range {
	return domain.Range{Lo: c.RawMin, Hi: c.RawMax}
}

// InterpolatedRange returns the display clamp band for the upsampled channel.
func (c *Config) InterpolatedRange() domain.Range {
	return domain.Range{Lo: c.InterpolatedMin, Hi: c.InterpolatedMax}
}

// Logger returns a console logger honoring the configured level.
func (c *Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if non-zero and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}
