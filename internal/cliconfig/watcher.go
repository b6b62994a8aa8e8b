package cliconfig

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/farmsight/thermalmap/internal/ports"
)

// IntervalSetter receives runtime tick-interval updates. The scheduler
// satisfies it.
type IntervalSetter interface {
	SetInterval(d time.Duration)
}

// ConfigWatcher monitors the TOML config file via fsnotify and applies
// runtime-adjustable settings to the running pipeline. Malformed files are
// logged and ignored; the previous settings stay in effect.
type ConfigWatcher struct {
	path   string
	target IntervalSetter
	logger ports.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, target IntervalSetter, logger ports.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:   path,
		target: target,
		logger: logger,
	}
}

// Run watches the config file's directory until the context is canceled.
// Editors typically replace files on save, so the watcher covers the
// directory and filters on the base name to catch both writes and renames.
func (w *ConfigWatcher) Run(ctx context.Context) {
	if w.path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("config watcher: create failed", ports.Err(err))
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		w.logger.Error("config watcher: watch failed",
			ports.String("dir", dir),
			ports.Err(err),
		)
		return
	}

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher: error", ports.Err(err))
		}
	}
}

func (w *ConfigWatcher) debounceReload(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, w.reload)
}

// reload re-parses the file and applies the tick interval.
func (w *ConfigWatcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config watcher: reload failed, keeping current settings",
			ports.String("path", w.path),
			ports.Err(err),
		)
		return
	}

	if fc.TickInterval == "" {
		return
	}
	d, err := time.ParseDuration(fc.TickInterval)
	if err != nil {
		w.logger.Warn("config watcher: bad tick_interval, keeping current settings",
			ports.String("value", fc.TickInterval),
			ports.Err(err),
		)
		return
	}
	w.target.SetInterval(d)
}
