// Package brand loads the named presets that fill the HEADER and FOOTER
// blocks and supply the brand colors.
package brand

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Colors is the brand palette. Values are CSS colors.
type Colors struct {
	Primary string `json:"primary" yaml:"primary"`
	Accent  string `json:"accent" yaml:"accent"`
	Text    string `json:"text" yaml:"text"`
	BG      string `json:"bg" yaml:"bg"`
	CTA     string `json:"cta" yaml:"cta"`
}

// Brand is one preset. Header and Footer are trusted markup written into the
// blocks of the same name without sanitizing.
type Brand struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Colors      Colors `json:"colors" yaml:"colors"`
	Header      string `json:"header" yaml:"header"`
	Footer      string `json:"footer" yaml:"footer"`
}

// Accent returns the CTA color, falling back to the accent color.
func (b Brand) Accent() string {
	if c := strings.TrimSpace(b.Colors.CTA); c != "" {
		return c
	}
	return strings.TrimSpace(b.Colors.Accent)
}

// Title returns the display name, or the name when none is set.
func (b Brand) Title() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return b.Name
}

// Store holds presets keyed by lower-cased name.
type Store struct {
	brands map[string]Brand
}

type presetFile struct {
	Brands []Brand `json:"brands" yaml:"brands"`
}

// LoadFS walks fsys and reads every .json, .yaml or .yml file as a list of
// presets. Empty and duplicate names are errors. A nil fsys yields an empty
// store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{brands: make(map[string]Brand)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPresetFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("brand: read %s: %w", path, err)
		}
		doc, err := parseFile(data, path)
		if err != nil {
			return err
		}
		for _, b := range doc.Brands {
			key := normalize(b.Name)
			if key == "" {
				return fmt.Errorf("brand: file %s defines a preset without a name", path)
			}
			if _, exists := store.brands[key]; exists {
				return fmt.Errorf("brand: duplicate preset %q (file %s)", key, path)
			}
			b.Name = key
			store.brands[key] = b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func parseFile(data []byte, source string) (presetFile, error) {
	var doc presetFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return presetFile{}, fmt.Errorf("brand: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = presetFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return presetFile{}, fmt.Errorf("brand: parse %s: invalid JSON or YAML", source)
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

//go:embed presets/*.yaml
var embeddedPresets embed.FS

// PresetsFS returns the bundled preset files.
func PresetsFS() fs.FS {
	sub, err := fs.Sub(embeddedPresets, "presets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Defaults returns a store holding the bundled presets.
func Defaults() *Store {
	store, err := LoadFS(PresetsFS())
	if err != nil {
		panic(err)
	}
	return store
}

// Get returns the preset called name, ignoring case.
func (s *Store) Get(name string) (Brand, bool) {
	if s == nil {
		return Brand{}, false
	}
	b, ok := s.brands[normalize(name)]
	return b, ok
}

// Has reports whether a preset called name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the preset names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.brands))
	for name := range s.brands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds no presets.
func (s *Store) Empty() bool {
	return s == nil || len(s.brands) == 0
}

// Merge returns a new store with the presets of s overlaid by those of
// others, later stores winning on name clashes.
func (s *Store) Merge(others ...*Store) *Store {
	out := &Store{brands: make(map[string]Brand)}
	for _, src := range append([]*Store{s}, others...) {
		if src == nil {
			continue
		}
		for name, b := range src.brands {
			out.brands[name] = b
		}
	}
	return out
}
