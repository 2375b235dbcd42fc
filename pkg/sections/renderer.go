package sections

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-mailfence/internal/skeleton"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in skeleton templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	filters   map[string]pongo2.FilterFunction
	registry  *Registry
	palette   Palette
}

// WithTemplatesFS replaces the skeleton templates. The file system must hold
// a .tpl file for every template a registered builder names.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplateExtension changes the ".tpl" extension added to builder
// template names.
func WithTemplateExtension(ext string) Option {
	return func(cfg *config) {
		cfg.extension = ext
	}
}

// WithFilter makes a pongo2 filter available to skeleton templates. Filters
// are process-wide; the first registration of a name wins.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction)
		}
		cfg.filters[name] = fn
	}
}

// WithRegistry replaces the builder registry.
func WithRegistry(r *Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.registry = r
		}
	}
}

// WithDefaultAccent sets the CTA color used when a section carries none or a
// malformed one. Invalid values are ignored.
func WithDefaultAccent(color string) Option {
	return func(cfg *config) {
		cfg.palette.Accent = HexOr(color, cfg.palette.Accent)
	}
}

// WithPalette overrides the fallback colors. Empty or invalid entries keep the
// built-in defaults.
func WithPalette(p Palette) Option {
	return func(cfg *config) {
		cfg.palette = p.merge(cfg.palette)
	}
}

// Renderer compiles section lists into markup.
type Renderer struct {
	engine   *skeleton.Engine
	registry *Registry
	palette  Palette
}

// NewRenderer constructs a renderer with the built-in builders and templates
// unless options replace them.
func NewRenderer(options ...Option) (*Renderer, error) {
	cfg := config{
		templates: TemplatesFS(),
		palette:   DefaultPalette(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	engineOpts := []skeleton.Option{skeleton.WithFS(cfg.templates)}
	if cfg.extension != "" {
		engineOpts = append(engineOpts, skeleton.WithExtension(cfg.extension))
	}
	for name, fn := range cfg.filters {
		engineOpts = append(engineOpts, skeleton.WithFilter(name, fn))
	}
	engine, err := skeleton.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("sections: configure skeleton engine: %w", err)
	}
	return &Renderer{engine: engine, registry: cfg.registry, palette: cfg.palette}, nil
}

// MustNewRenderer is NewRenderer for static wiring; it panics on error.
func MustNewRenderer(options ...Option) *Renderer {
	r, err := NewRenderer(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// Palette returns the fallback colors in effect.
func (r *Renderer) Palette() Palette {
	return r.palette
}

// Handles reports whether a builder is registered for typ.
func (r *Renderer) Handles(typ Type) bool {
	return r.registry.Has(typ)
}

// WithAccent returns a copy of r whose CTA fallback color is accent. The
// engine and registry are shared.
func (r *Renderer) WithAccent(accent string) *Renderer {
	out := *r
	out.palette.Accent = HexOr(accent, r.palette.Accent)
	return &out
}

// Render compiles list in order. Sections of unknown type contribute nothing;
// fragments are joined with a line break.
func (r *Renderer) Render(list []Section) (string, error) {
	fragments := make([]string, 0, len(list))
	for _, s := range list {
		out, ok, err := r.RenderSection(s)
		if err != nil {
			return "", err
		}
		if ok {
			fragments = append(fragments, out)
		}
	}
	return strings.Join(fragments, "\n"), nil
}

// RenderSection compiles one section. ok is false when no builder handles the
// section type.
func (r *Renderer) RenderSection(s Section) (string, bool, error) {
	b, err := r.registry.Get(s.Type)
	if err != nil {
		return "", false, nil
	}
	frag := b.Build(s, r.palette)
	out, err := r.engine.Render(frag.Template, frag.Data)
	if err != nil {
		return "", false, fmt.Errorf("sections: render %s section %q: %w", s.Type, s.ID, err)
	}
	return strings.TrimSpace(out), true, nil
}
