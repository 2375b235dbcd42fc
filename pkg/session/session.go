// Package session owns one editing session: the current document, the
// ordered section list and the selected brand. Every mutation re-scans the
// document, goes through the sanitizer and the block replacer, and is applied
// all-or-nothing under a single lock.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-mailfence/pkg/brand"
	"github.com/goliatone/go-mailfence/pkg/fence"
	"github.com/goliatone/go-mailfence/pkg/sections"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	brands   *brand.Store
	renderer *sections.Renderer
	sections []sections.Section
	brand    string
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithBrands sets the preset store used by ApplyBrand. Defaults to the
// bundled presets.
func WithBrands(store *brand.Store) Option {
	return func(cfg *config) {
		if store != nil {
			cfg.brands = store
		}
	}
}

// WithRenderer replaces the section renderer.
func WithRenderer(r *sections.Renderer) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.renderer = r
		}
	}
}

// WithSections seeds the section list. The SECTIONS block is compiled from it
// when the session is created.
func WithSections(list []sections.Section) Option {
	return func(cfg *config) {
		cfg.sections = append([]sections.Section(nil), list...)
	}
}

// WithBrand applies the named preset when the session is created.
func WithBrand(name string) Option {
	return func(cfg *config) {
		cfg.brand = strings.TrimSpace(name)
	}
}

// Session is safe for concurrent use; mutations are serialized.
type Session struct {
	mu sync.Mutex

	logger *slog.Logger
	brands *brand.Store
	base   *sections.Renderer

	st state
}

// New parses template and applies the seeded brand and sections. Structural
// problems in the template do not fail construction; they are reported by
// Problems.
func New(template string, options ...Option) (*Session, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.brands == nil {
		cfg.brands = brand.Defaults()
	}
	if cfg.renderer == nil {
		r, err := sections.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		cfg.renderer = r
	}

	s := &Session{
		logger: cfg.logger,
		brands: cfg.brands,
		base:   cfg.renderer,
		st:     newState(template, cfg.renderer),
	}
	if len(s.st.problems) > 0 {
		s.logger.Warn("template has structural problems", "count", len(s.st.problems), "first", s.st.problems[0].Error())
	}

	next := s.st.clone()
	if cfg.brand != "" {
		if err := s.applyBrand(&next, cfg.brand); err != nil {
			return nil, err
		}
	}
	if len(cfg.sections) > 0 {
		if err := next.setSections(cfg.sections); err != nil {
			return nil, err
		}
	}
	s.st = next
	return s, nil
}

// HTML returns the current document, markers included.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.doc
}

// Publish returns the current document with every marker removed.
func (s *Session) Publish() (string, error) {
	return fence.Strip(s.HTML())
}

// Blocks returns the blocks of the current document.
func (s *Session) Blocks() []fence.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fence.Block(nil), s.st.blocks...)
}

// Problems returns the structural errors of the current document.
func (s *Session) Problems() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.st.problems...)
}

// Editable reports whether the document scanned without a fatal structural
// error. Blocks before a fatal error stay editable either way.
func (s *Session) Editable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fence.FirstFatal(s.st.problems) == nil
}

// Value returns the trimmed content of the named block.
func (s *Session) Value(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	block, ok := fence.Lookup(s.st.blocks, name)
	if !ok {
		return "", false
	}
	return block.Value(), true
}

// Brand returns the name of the applied preset, if any.
func (s *Session) Brand() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.brand
}

// Sections returns a copy of the section list.
func (s *Session) Sections() []sections.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sections.Section(nil), s.st.sections...)
}

// SetField sanitizes value for the named block and writes it.
func (s *Session) SetField(name, value string) error {
	return s.mutate("set field", func(next *state) error {
		return next.setField(name, value)
	}, "block", name)
}

// ApplyBrand writes the preset header and footer into the HEADER and FOOTER
// blocks, when the template has them, and switches the CTA fallback color to
// the brand accent.
func (s *Session) ApplyBrand(name string) error {
	return s.mutate("apply brand", func(next *state) error {
		return s.applyBrand(next, name)
	}, "brand", name)
}

func (s *Session) applyBrand(next *state, name string) error {
	preset, ok := s.brands.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBrand, name)
	}
	next.writeTrusted(fence.NameHeader, preset.Header)
	next.writeTrusted(fence.NameFooter, preset.Footer)
	next.brand = preset.Name
	next.renderer = s.base.WithAccent(preset.Accent())
	return next.setSections(next.sections)
}

// AddSection appends a section. An empty ID is replaced with a fresh one.
// The stored section is returned.
func (s *Session) AddSection(section sections.Section) (sections.Section, error) {
	if section.ID == "" {
		section.ID = sections.NewID()
	}
	err := s.mutate("add section", func(next *state) error {
		if !next.renderer.Handles(section.Type) {
			return fmt.Errorf("%w: %q", ErrUnknownSectionType, section.Type)
		}
		if next.indexOf(section.ID) >= 0 {
			return fmt.Errorf("%w: %q", ErrDuplicateSection, section.ID)
		}
		return next.setSections(append(next.sections, section))
	}, "id", section.ID, "type", string(section.Type))
	if err != nil {
		return sections.Section{}, err
	}
	return section, nil
}

// UpdateSection applies patch to the section with the given ID.
func (s *Session) UpdateSection(id string, patch sections.Patch) (sections.Section, error) {
	var updated sections.Section
	err := s.mutate("update section", func(next *state) error {
		idx := next.indexOf(id)
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrSectionNotFound, id)
		}
		list := append([]sections.Section(nil), next.sections...)
		list[idx] = patch.Apply(list[idx])
		updated = list[idx]
		return next.setSections(list)
	}, "id", id)
	return updated, err
}

// RemoveSection deletes the section with the given ID.
func (s *Session) RemoveSection(id string) error {
	return s.mutate("remove section", func(next *state) error {
		idx := next.indexOf(id)
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrSectionNotFound, id)
		}
		list := make([]sections.Section, 0, len(next.sections)-1)
		list = append(list, next.sections[:idx]...)
		list = append(list, next.sections[idx+1:]...)
		return next.setSections(list)
	}, "id", id)
}

// MoveSection moves the section with the given ID to position to, clamped to
// the list bounds. Only the order changes.
func (s *Session) MoveSection(id string, to int) error {
	return s.mutate("move section", func(next *state) error {
		from := next.indexOf(id)
		if from < 0 {
			return fmt.Errorf("%w: %q", ErrSectionNotFound, id)
		}
		return next.setSections(move(next.sections, from, to))
	}, "id", id, "to", to)
}

// Export captures the session as a snapshot. Fields hold the value of every
// block except the brand-owned and section blocks.
func (s *Session) Export() snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := make(map[string]string)
	for _, block := range s.st.blocks {
		if !exportable(block.Name) {
			continue
		}
		if _, seen := fields[block.Name]; seen {
			continue
		}
		fields[block.Name] = block.Value()
	}
	if len(fields) == 0 {
		fields = nil
	}
	return snapshot.Snapshot{
		Version:  snapshot.Version,
		Brand:    s.st.brand,
		Fields:   fields,
		Sections: append([]sections.Section(nil), s.st.sections...),
	}
}

// Import validates snap and applies its brand, fields and sections. Either
// the whole snapshot is applied or the session is left unchanged. Fields
// naming blocks the template lacks are skipped.
func (s *Session) Import(snap snapshot.Snapshot) error {
	if err := snapshot.Validate(snap); err != nil {
		return err
	}
	return s.mutate("import snapshot", func(next *state) error {
		if snap.Brand != "" {
			if err := s.applyBrand(next, snap.Brand); err != nil {
				return err
			}
		}
		for _, name := range sortedKeys(snap.Fields) {
			err := next.setField(name, snap.Fields[name])
			if err != nil && (errors.Is(err, ErrBlockNotFound) || errors.Is(err, ErrReservedBlock)) {
				s.logger.Warn("snapshot field skipped", "block", name, "reason", err.Error())
				continue
			}
			if err != nil {
				return err
			}
		}
		for _, section := range snap.Sections {
			if !next.renderer.Handles(section.Type) {
				return fmt.Errorf("%w: %q", ErrUnknownSectionType, section.Type)
			}
		}
		return next.setSections(snap.Sections)
	}, "sections", len(snap.Sections), "fields", len(snap.Fields))
}

// mutate runs fn against a copy of the state and swaps it in on success.
func (s *Session) mutate(op string, fn func(*state) error, attrs ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	if err := fn(&next); err != nil {
		s.logger.Debug(op+" rejected", append(attrs, "error", err.Error())...)
		return err
	}
	s.st = next
	s.logger.Debug(op, append(attrs, "blocks", len(next.blocks), "bytes", len(next.doc))...)
	return nil
}
