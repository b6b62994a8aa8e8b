// Package thermalmap acquires 8x8 temperature frames from a thermal sensor
// over a serial line, upsamples them to an 80x80 surface, and forwards the
// pair to a presenter on a fixed tick schedule.
//
// Example usage:
//
//	cfg := thermalmap.DefaultConfig()
//	cfg.Device = "/dev/ttyUSB0"
//	cfg.BrokerURL = "tcp://127.0.0.1:1883"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := thermalmap.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package thermalmap

import (
	"context"

	"github.com/farmsight/thermalmap/internal/acquire"
	"github.com/farmsight/thermalmap/internal/adapters/console"
	logAdapter "github.com/farmsight/thermalmap/internal/adapters/log"
	mqttAdapter "github.com/farmsight/thermalmap/internal/adapters/mqtt"
	"github.com/farmsight/thermalmap/internal/adapters/serialport"
	"github.com/farmsight/thermalmap/internal/app"
	"github.com/farmsight/thermalmap/internal/cliconfig"
	"github.com/farmsight/thermalmap/internal/interp"
	"github.com/farmsight/thermalmap/internal/ports"
)

// Config holds the configuration for the acquisition pipeline.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values.
// At minimum, Device must be set before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// options holds optional dependencies for Run.
type options struct {
	logger    ports.Logger
	transport ports.Transport
	presenter ports.Presenter
}

// Option customizes Run.
type Option func(*options)

// WithLogger supplies a structured logger. The default discards all output.
func WithLogger(logger ports.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTransport replaces the serial transport, for embedding and tests.
func WithTransport(t ports.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithPresenter replaces the presenter selected from the configuration.
func WithPresenter(p ports.Presenter) Option {
	return func(o *options) { o.presenter = p }
}

// Run builds the pipeline from the configuration and drives it until the
// tick budget completes or the context is canceled. Only startup failures
// (invalid config, serial open, broker connect) are returned; everything
// inside the run is recovered via retry or fallback.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}

	transport := o.transport
	if transport == nil {
		port, err := serialport.Open(serialport.Config{
			Device:      cfg.Device,
			Baud:        cfg.Baud,
			ReadTimeout: cfg.ReadTimeout,
		})
		if err != nil {
			return err
		}
		transport = port
	}

	reader := acquire.NewReader(transport, acquire.Config{
		Marker:      cfg.Marker,
		MaxAttempts: cfg.MaxAttempts,
	}, logger)
	defer reader.Close()

	presenter := o.presenter
	if presenter == nil {
		if cfg.BrokerURL != "" {
			mp, err := mqttAdapter.NewPresenter(mqttAdapter.Config{
				BrokerURL:         cfg.BrokerURL,
				ClientID:          cfg.ClientID,
				Topic:             cfg.Topic,
				RawRange:          cfg.RawRange(),
				InterpolatedRange: cfg.InterpolatedRange(),
			}, logger)
			if err != nil {
				return err
			}
			defer mp.Close()
			presenter = mp
		} else {
			presenter = console.NewPresenter(logger)
		}
	}

	scheduler := app.NewScheduler(app.SchedulerConfig{
		TickInterval: cfg.TickInterval,
		TickBudget:   cfg.TickBudget,
	}, reader, interp.NewBicubicUpsampler(), presenter, logger)

	if cfg.ConfigPath != "" {
		watcher := cliconfig.NewConfigWatcher(cfg.ConfigPath, scheduler, logger)
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go watcher.Run(watchCtx)
	}

	return scheduler.Run(ctx)
}
