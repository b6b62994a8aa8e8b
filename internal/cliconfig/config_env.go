package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (THERMALMAP_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", os.Getenv("THERMALMAP_DEVICE"), &cfg.Device)
	s.setString("marker", os.Getenv("THERMALMAP_MARKER"), &cfg.Marker)
	s.setString("broker", os.Getenv("THERMALMAP_BROKER_URL"), &cfg.BrokerURL)
	s.setString("topic", os.Getenv("THERMALMAP_TOPIC"), &cfg.Topic)
	s.setString("client-id", os.Getenv("THERMALMAP_CLIENT_ID"), &cfg.ClientID)
	s.setString("log-level", os.Getenv("THERMALMAP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("baud", os.Getenv("THERMALMAP_BAUD"), &cfg.Baud); err != nil {
		return err
	}
	if err := s.setIntFromString("max-attempts", os.Getenv("THERMALMAP_MAX_ATTEMPTS"), &cfg.MaxAttempts); err != nil {
		return err
	}
	if err := s.setIntFromString("ticks", os.Getenv("THERMALMAP_TICK_BUDGET"), &cfg.TickBudget); err != nil {
		return err
	}

	if err := s.setDuration("read-timeout", os.Getenv("THERMALMAP_READ_TIMEOUT"), &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", os.Getenv("THERMALMAP_TICK_INTERVAL"), &cfg.TickInterval); err != nil {
		return err
	}

	if err := s.setFloatFromString("raw-min", os.Getenv("THERMALMAP_RAW_MIN"), &cfg.RawMin); err != nil {
		return err
	}
	if err := s.setFloatFromString("raw-max", os.Getenv("THERMALMAP_RAW_MAX"), &cfg.RawMax); err != nil {
		return err
	}
	if err := s.setFloatFromString("interpolated-min", os.Getenv("THERMALMAP_INTERPOLATED_MIN"), &cfg.InterpolatedMin); err != nil {
		return err
	}
	if err := s.setFloatFromString("interpolated-max", os.Getenv("THERMALMAP_INTERPOLATED_MAX"), &cfg.InterpolatedMax); err != nil {
		return err
	}

	return nil
}
