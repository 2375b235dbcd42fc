package session

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-mailfence/pkg/fence"
	"github.com/goliatone/go-mailfence/pkg/sanitize"
	"github.com/goliatone/go-mailfence/pkg/sections"
)

// state is one immutable-by-convention version of the session. Mutations
// work on a clone and the session swaps it in when they succeed.
type state struct {
	doc      string
	blocks   []fence.Block
	problems []error
	sections []sections.Section
	brand    string
	renderer *sections.Renderer
}

func newState(doc string, renderer *sections.Renderer) state {
	st := state{renderer: renderer}
	st.setDocument(doc)
	return st
}

func (st state) clone() state {
	out := st
	out.sections = append([]sections.Section(nil), st.sections...)
	return out
}

// setDocument replaces the document and re-parses it.
func (st *state) setDocument(doc string) {
	st.doc = doc
	st.blocks, st.problems = fence.Parse(doc)
}

func (st *state) setField(name, value string) error {
	block, ok := fence.Lookup(st.blocks, name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrBlockNotFound, name)
	}
	if block.Name == fence.NameSections {
		return fmt.Errorf("%w: %q", ErrReservedBlock, name)
	}
	st.setDocument(fence.Replace(st.doc, block.Name, fence.Wrap(prepare(block, value))))
	return nil
}

// prepare coerces value to the block constraints and sanitizes it with the
// profile of the block type.
func prepare(block fence.Block, value string) string {
	if block.Type == fence.TypeSelect && len(block.Options) > 0 && !block.HasOption(value) {
		value = block.Options[0]
	}
	if block.MaxLength > 0 {
		value = truncate(value, block.MaxLength)
	}
	return sanitize.Sanitize(value, block.Profile())
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}

// writeTrusted writes preset markup into a brand-owned block without
// sanitizing. Missing blocks are skipped.
func (st *state) writeTrusted(name, markup string) {
	if _, ok := fence.Lookup(st.blocks, name); !ok {
		return
	}
	st.setDocument(fence.Replace(st.doc, name, fence.Wrap(markup)))
}

// setSections compiles list into the SECTIONS block and stores it.
func (st *state) setSections(list []sections.Section) error {
	compiled, err := st.renderer.Render(list)
	if err != nil {
		return fmt.Errorf("session: compile sections: %w", err)
	}
	st.sections = append([]sections.Section(nil), list...)
	if _, ok := fence.Lookup(st.blocks, fence.NameSections); ok {
		st.setDocument(fence.Replace(st.doc, fence.NameSections, fence.Wrap(compiled)))
	}
	return nil
}

func (st state) indexOf(id string) int {
	for i, section := range st.sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

// move returns a copy of list with the element at from moved to to.
func move(list []sections.Section, from, to int) []sections.Section {
	if to < 0 {
		to = 0
	}
	if to > len(list)-1 {
		to = len(list) - 1
	}
	out := make([]sections.Section, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	moved := list[from]
	out = append(out[:to], append([]sections.Section{moved}, out[to:]...)...)
	return out
}

// exportable reports whether a block value belongs in snapshot fields.
func exportable(name string) bool {
	return !fence.Reserved(name) && name != fence.NameSections
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
