// Package snapshot encodes the interchange record of an editing session: the
// brand, the plain field values and the ordered section list.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mailfence/pkg/sections"
)

// Version is the snapshot format version written by Encode and accepted by
// Decode.
const Version = 1

// ErrInvalid wraps every decode and validation failure.
var ErrInvalid = errors.New("snapshot: invalid snapshot")

// Snapshot is the externally exchanged session state.
type Snapshot struct {
	Version  int                `json:"version" yaml:"version"`
	Brand    string             `json:"brand,omitempty" yaml:"brand,omitempty"`
	Fields   map[string]string  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Sections []sections.Section `json:"sections" yaml:"sections"`
}

// Format selects the encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension; anything that is not
// .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses a snapshot from JSON, falling back to YAML, and validates it.
// On failure the zero Snapshot is returned with an error wrapping ErrInvalid.
func Decode(data []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty payload", ErrInvalid)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		snap = Snapshot{}
		if yerr := yaml.Unmarshal(data, &snap); yerr != nil {
			return Snapshot{}, fmt.Errorf("%w: not valid JSON or YAML", ErrInvalid)
		}
	}
	if err := Validate(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Encode serialises s in the requested format after validating it.
func Encode(s Snapshot, format Format) ([]byte, error) {
	if s.Version == 0 {
		s.Version = Version
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("snapshot: encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("snapshot: encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("snapshot: unknown format %q", format)
}

// Validate checks the version, field names, section types and section IDs.
func Validate(s Snapshot) error {
	if s.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalid, s.Version)
	}
	for name := range s.Fields {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalid)
		}
	}
	seen := make(map[string]struct{}, len(s.Sections))
	for i, section := range s.Sections {
		if strings.TrimSpace(section.ID) == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalid, i)
		}
		if _, dup := seen[section.ID]; dup {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalid, section.ID)
		}
		seen[section.ID] = struct{}{}
		if !sections.KnownType(section.Type) {
			return fmt.Errorf("%w: section %q has unknown type %q", ErrInvalid, section.ID, section.Type)
		}
	}
	return nil
}
