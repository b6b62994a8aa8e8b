package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/farmsight/thermalmap"
	logAdapter "github.com/farmsight/thermalmap/internal/adapters/log"
	"github.com/farmsight/thermalmap/internal/cliconfig"
)

const longHelp = `Stream 8x8 thermal sensor frames from a serial port, upsample them to an
80x80 surface, and publish the pair for display.

Highlights:
  - Resynchronizes on the frame marker and retries corrupted frames; a bad
    frame degrades to a marked fallback instead of stopping the run.
  - Cubic upsampling of the sensor grid for a continuous surface estimate.
  - Publishes JSON frames over MQTT; configure via file, env, or flags.`

const exampleUsage = `  thermalmap --device /dev/ttyUSB0
  thermalmap --device COM5 --broker tcp://127.0.0.1:1883 --interval 500ms
  thermalmap --config $HOME/.thermalmap/config.toml --ticks 100`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "thermalmap",
		Short:   "Stream and upsample thermal sensor frames from a serial port",
		Long:    longHelp,
		Example: exampleUsage,
		Version: getVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.thermalmap/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
				cfg.ConfigPath = cfgFile
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log := cfg.Logger()
			log.Info().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err := thermalmap.Run(ctx, cfg,
				thermalmap.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
			)
			if errors.Is(err, context.Canceled) {
				log.Info().Msg("received signal, stopping")
				return nil
			}
			return err
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.thermalmap/config.toml)")
	root.Flags().StringVar(&cfg.Device, "device", cfg.Device, "serial device (e.g. /dev/ttyUSB0, COM5)")
	root.Flags().IntVar(&cfg.Baud, "baud", cfg.Baud, "serial bit rate")
	root.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "per-read timeout on the serial line")

	root.Flags().StringVar(&cfg.Marker, "marker", cfg.Marker, "frame marker substring")
	root.Flags().IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "acquisition attempts per frame before fallback")

	root.Flags().DurationVar(&cfg.TickInterval, "interval", cfg.TickInterval, "pause between ticks")
	root.Flags().IntVar(&cfg.TickBudget, "ticks", cfg.TickBudget, "total number of ticks to run")

	root.Flags().StringVar(&cfg.BrokerURL, "broker", cfg.BrokerURL, "MQTT broker URL (empty: log frames to the console)")
	root.Flags().StringVar(&cfg.Topic, "topic", cfg.Topic, "MQTT topic for published frames")
	root.Flags().StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "MQTT client identifier")

	root.Flags().Float64Var(&cfg.RawMin, "raw-min", cfg.RawMin, "raw channel display clamp, low end")
	root.Flags().Float64Var(&cfg.RawMax, "raw-max", cfg.RawMax, "raw channel display clamp, high end")
	root.Flags().Float64Var(&cfg.InterpolatedMin, "interpolated-min", cfg.InterpolatedMin, "interpolated channel display clamp, low end")
	root.Flags().Float64Var(&cfg.InterpolatedMax, "interpolated-max", cfg.InterpolatedMax, "interpolated channel display clamp, high end")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "thermalmap: %v\n", err)
		os.Exit(1)
	}
}
