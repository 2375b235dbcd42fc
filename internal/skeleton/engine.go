// Package skeleton renders the fixed markup skeletons that wrap section
// content. Templates are pongo2 files loaded from an fs.FS and cached after
// the first parse.
package skeleton

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Filter is a pongo2 filter function registered by name.
type Filter = pongo2.FilterFunction

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	filters   map[string]Filter
}

// WithFS sets the file system templates are loaded from.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".tpl" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFilter registers an extra filter. Filters are process-wide in pongo2;
// a name that already exists keeps its first registration.
func WithFilter(name string, fn Filter) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]Filter)
		}
		cfg.filters[name] = fn
	}
}

// Engine renders named skeleton templates.
type Engine struct {
	mu sync.RWMutex

	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
	ext   string
}

// New builds an engine. A template file system is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		return nil, errors.New("skeleton: template fs is required")
	}

	registerFilters(cfg.filters)

	set := pongo2.NewSet("mailfence", pongo2.NewFSLoader(cfg.templates))
	return &Engine{
		set:   set,
		cache: make(map[string]*pongo2.Template),
		ext:   cfg.extension,
	}, nil
}

// Render executes the named template with data. Names without an extension
// get the configured one.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("skeleton: engine is nil")
	}
	path := e.path(name)
	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(context(data), &buf); err != nil {
		return "", fmt.Errorf("skeleton: execute %q: %w", path, err)
	}
	return buf.String(), nil
}

func (e *Engine) path(name string) string {
	if path.Ext(name) != "" {
		return name
	}
	return name + e.ext
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("skeleton: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func context(data map[string]any) pongo2.Context {
	if data == nil {
		return pongo2.Context{}
	}
	return pongo2.Context(data)
}

var filterMu sync.Mutex

func registerFilters(extra map[string]Filter) {
	filterMu.Lock()
	defer filterMu.Unlock()

	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	for name, fn := range extra {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
