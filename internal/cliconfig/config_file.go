package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Device          string  `toml:"device"`
	Baud            int     `toml:"baud"`
	ReadTimeout     string  `toml:"read_timeout"`
	Marker          string  `toml:"marker"`
	MaxAttempts     int     `toml:"max_attempts"`
	TickInterval    string  `toml:"tick_interval"`
	TickBudget      int     `toml:"tick_budget"`
	BrokerURL       string  `toml:"broker_url"`
	Topic           string  `toml:"topic"`
	ClientID        string  `toml:"client_id"`
	RawMin          float64 `toml:"raw_min"`
	RawMax          float64 `toml:"raw_max"`
	InterpolatedMin float64 `toml:"interpolated_min"`
	InterpolatedMax float64 `toml:"interpolated_max"`
	LogLevel        string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.thermalmap/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".thermalmap", "config.toml")
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", fc.Device, &cfg.Device)
	s.setString("marker", fc.Marker, &cfg.Marker)
	s.setString("broker", fc.BrokerURL, &cfg.BrokerURL)
	s.setString("topic", fc.Topic, &cfg.Topic)
	s.setString("client-id", fc.ClientID, &cfg.ClientID)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("baud", fc.Baud, &cfg.Baud)
	s.setInt("max-attempts", fc.MaxAttempts, &cfg.MaxAttempts)
	s.setInt("ticks", fc.TickBudget, &cfg.TickBudget)

	if err := s.setDuration("read-timeout", fc.ReadTimeout, &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", fc.TickInterval, &cfg.TickInterval); err != nil {
		return err
	}

	s.setFloat("raw-min", fc.RawMin, &cfg.RawMin)
	s.setFloat("raw-max", fc.RawMax, &cfg.RawMax)
	s.setFloat("interpolated-min", fc.InterpolatedMin, &cfg.InterpolatedMin)
	s.setFloat("interpolated-max", fc.InterpolatedMax, &cfg.InterpolatedMax)

	return nil
}
