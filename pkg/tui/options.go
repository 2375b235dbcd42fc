package tui

import (
	"log/slog"

	"github.com/goliatone/go-mailfence/pkg/brand"
)

// Theme captures optional message prefixes the editor applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithBrands sets the presets offered by the brand picker. It should match
// the store the session was created with.
func WithBrands(store *brand.Store) Option {
	return func(e *Editor) {
		if store != nil {
			e.brands = store
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}

// WithLogger sets the logger used for editor events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
