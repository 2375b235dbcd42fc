// Package watch re-parses a template whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-mailfence/pkg/fence"
)

// DefaultDebounce is the quiet period after the last change before a file is
// parsed again. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Report is the result of parsing the watched file once.
type Report struct {
	Path     string
	Blocks   []fence.Block
	Problems []error
	// Err is set when the file could not be read.
	Err error
}

// Fatal returns the first structural error that stopped the scan.
func (r Report) Fatal() error {
	return fence.FirstFatal(r.Problems)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watcher events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches one template file. The parent directory is watched so
// files replaced by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New returns a watcher for path.
func New(path string, options ...Option) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch: path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run reports the current state of the file, then one report per settled
// change, until ctx is done.
func (w *Watcher) Run(ctx context.Context, onReport func(Report)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching template", "path", w.path, "debounce_ms", w.debounce.Milliseconds())
	onReport(w.parse())

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("template changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onReport(w.parse())
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) parse() Report {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Report{Path: w.path, Err: err}
	}
	blocks, problems := fence.Parse(string(data))
	return Report{Path: w.path, Blocks: blocks, Problems: problems}
}
