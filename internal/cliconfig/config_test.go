package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/farmsight/thermalmap/internal/domain"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Device = "/dev/ttyUSB0"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Baud != 115200 {
		t.Fatalf("Baud = %d, want 115200", cfg.Baud)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Fatalf("ReadTimeout = %v, want 2s", cfg.ReadTimeout)
	}
	if cfg.Marker != "Thermal data:" {
		t.Fatalf("Marker = %q, want \"Thermal data:\"", cfg.Marker)
	}
	if cfg.MaxAttempts != 10 {
		t.Fatalf("MaxAttempts = %d, want 10", cfg.MaxAttempts)
	}
	if cfg.TickInterval != time.Second {
		t.Fatalf("TickInterval = %v, want 1s", cfg.TickInterval)
	}
	if cfg.TickBudget != 500 {
		t.Fatalf("TickBudget = %d, want 500", cfg.TickBudget)
	}
	if got, want := cfg.RawRange(), (domain.Range{Lo: 15, Hi: 25}); got != want {
		t.Fatalf("RawRange = %v, want %v", got, want)
	}
	if got, want := cfg.InterpolatedRange(), (domain.Range{Lo: 5, Hi: 25}); got != want {
		t.Fatalf("InterpolatedRange = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing device", func(c *Config) { c.Device = "" }, true},
		{"zero baud", func(c *Config) { c.Baud = 0 }, true},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, true},
		{"empty marker", func(c *Config) { c.Marker = "" }, true},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, true},
		{"zero interval", func(c *Config) { c.TickInterval = 0 }, true},
		{"zero budget", func(c *Config) { c.TickBudget = 0 }, true},
		{"inverted raw range", func(c *Config) { c.RawMin, c.RawMax = 25, 15 }, true},
		{"inverted interpolated range", func(c *Config) { c.InterpolatedMin, c.InterpolatedMax = 25, 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidConfig) {
					t.Fatalf("err = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
		})
	}
}
