package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		changed map[string]bool
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name: "applies valid env vars",
			envVars: map[string]string{
				"THERMALMAP_DEVICE":        "/dev/env0",
				"THERMALMAP_BAUD":          "57600",
				"THERMALMAP_TICK_INTERVAL": "10s",
				"THERMALMAP_RAW_MIN":       "18.5",
				"THERMALMAP_MARKER":        "Data:",
			},
			changed: map[string]bool{},
			check: func(t *testing.T, cfg Config) {
				if cfg.Device != "/dev/env0" {
					t.Fatalf("Device = %q", cfg.Device)
				}
				if cfg.Baud != 57600 {
					t.Fatalf("Baud = %d", cfg.Baud)
				}
				if cfg.TickInterval != 10*time.Second {
					t.Fatalf("TickInterval = %v", cfg.TickInterval)
				}
				if cfg.RawMin != 18.5 {
					t.Fatalf("RawMin = %v", cfg.RawMin)
				}
				if cfg.Marker != "Data:" {
					t.Fatalf("Marker = %q", cfg.Marker)
				}
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"THERMALMAP_DEVICE": "/dev/env0",
				"THERMALMAP_TOPIC":  "env/topic",
			},
			changed: map[string]bool{"device": true},
			check: func(t *testing.T, cfg Config) {
				if cfg.Device != "" {
					t.Fatalf("Device = %q, changed flag must block env", cfg.Device)
				}
				if cfg.Topic != "env/topic" {
					t.Fatalf("Topic = %q", cfg.Topic)
				}
			},
		},
		{
			name:    "rejects malformed duration",
			envVars: map[string]string{"THERMALMAP_READ_TIMEOUT": "whenever"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "rejects malformed int",
			envVars: map[string]string{"THERMALMAP_BAUD": "fast"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			var cfg Config
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}
