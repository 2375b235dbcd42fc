package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-mailfence/pkg/sanitize"
	"github.com/goliatone/go-mailfence/pkg/sections"
)

const (
	actionAdd    = "Add section"
	actionEdit   = "Edit section"
	actionMove   = "Move section"
	actionRemove = "Remove section"
	actionBack   = "Back"
)

// EditSections runs the section menu until the user goes back. Rejected
// edits are reported and the menu continues.
func (e *Editor) EditSections(ctx context.Context) error {
	actions := []string{actionAdd, actionEdit, actionMove, actionRemove, actionBack}
	for {
		idx, err := e.driver.Select(ctx, SelectConfig{Message: "Sections", Options: actions})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case actionAdd:
			err = e.addSection(ctx)
		case actionEdit:
			err = e.editSection(ctx)
		case actionMove:
			err = e.moveSection(ctx)
		case actionRemove:
			err = e.removeSection(ctx)
		case actionBack:
			return nil
		}
		if err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return err
			}
			if err := e.fail(ctx, err); err != nil {
				return err
			}
		}
	}
}

func (e *Editor) addSection(ctx context.Context) error {
	types := sections.Types()
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = string(t)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Section type", Options: labels})
	if err != nil || idx < 0 || idx >= len(types) {
		return err
	}
	draft := sections.New(types[idx])
	patch, err := e.promptSection(ctx, draft)
	if err != nil {
		return err
	}
	added, err := e.session.AddSection(patch.Apply(draft))
	if err != nil {
		return err
	}
	e.logger.Debug("section added", "id", added.ID, "type", string(added.Type))
	return nil
}

func (e *Editor) editSection(ctx context.Context) error {
	current, ok, err := e.pickSection(ctx, "Edit which section?")
	if err != nil || !ok {
		return err
	}
	patch, err := e.promptSection(ctx, current)
	if err != nil {
		return err
	}
	_, err = e.session.UpdateSection(current.ID, patch)
	return err
}

func (e *Editor) moveSection(ctx context.Context) error {
	current, ok, err := e.pickSection(ctx, "Move which section?")
	if err != nil || !ok {
		return err
	}
	count := len(e.session.Sections())
	raw, err := e.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("New position (1-%d)", count),
		Validator: positiveInt,
	})
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("tui: invalid position %q", raw)
	}
	return e.session.MoveSection(current.ID, pos-1)
}

func (e *Editor) removeSection(ctx context.Context) error {
	current, ok, err := e.pickSection(ctx, "Remove which section?")
	if err != nil || !ok {
		return err
	}
	confirmed, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Remove " + Summary(current) + "?"})
	if err != nil || !confirmed {
		return err
	}
	return e.session.RemoveSection(current.ID)
}

// pickSection lets the user choose one of the current sections. ok is false
// when there is nothing to pick.
func (e *Editor) pickSection(ctx context.Context, message string) (sections.Section, bool, error) {
	list := e.session.Sections()
	if len(list) == 0 {
		return sections.Section{}, false, e.info(ctx, "no sections yet")
	}
	labels := make([]string, len(list))
	for i, s := range list {
		labels[i] = fmt.Sprintf("%d. %s", i+1, Summary(s))
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return sections.Section{}, false, err
	}
	if idx < 0 || idx >= len(list) {
		return sections.Section{}, false, nil
	}
	return list[idx], true, nil
}

// promptSection asks for the fields relevant to the section type and returns
// the changes as a patch.
func (e *Editor) promptSection(ctx context.Context, s sections.Section) (sections.Patch, error) {
	var patch sections.Patch
	var err error
	ask := func(target **string, message, current string, multiline bool, validate func(string) error) {
		if err != nil {
			return
		}
		var value string
		if multiline {
			value, err = e.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current})
		} else {
			value, err = e.driver.Input(ctx, InputConfig{Message: message, Default: current, Validator: validate})
		}
		if err == nil && value != "" && value != current {
			*target = &value
		}
	}

	switch s.Type {
	case sections.TypeParagraph:
		ask(&patch.Content, "Paragraph", s.Content, true, nil)
	case sections.TypeCTA:
		ask(&patch.Label, "Button label", s.Label, false, nil)
		ask(&patch.Href, "Button link", s.Href, false, nil)
		ask(&patch.Color, "Button color (hex, blank for brand accent)", s.Color, false, optionalHex)
	case sections.TypeImageText:
		ask(&patch.Img, "Image URL", s.Img, false, nil)
		ask(&patch.Alt, "Image alt text", s.Alt, false, nil)
		ask(&patch.Content, "Text", s.Content, true, nil)
		if err == nil {
			err = e.promptVariant(ctx, s, &patch)
		}
	case sections.TypeSeparator:
		ask(&patch.Color, "Line color (hex)", s.Color, false, optionalHex)
	case sections.TypeFullWidthHeader, sections.TypeFullWidthFooter:
		ask(&patch.HTML, "Band content", s.HTML, true, nil)
		ask(&patch.Color, "Background color (hex)", s.Color, false, optionalHex)
		ask(&patch.TextColor, "Text color (hex)", s.TextColor, false, optionalHex)
		var size *string
		ask(&size, "Font size (px)", strconv.Itoa(s.FontSize), false, fontSize)
		if err == nil && size != nil {
			n, _ := strconv.Atoi(strings.TrimSpace(*size))
			n = sections.ClampFontSize(n)
			patch.FontSize = &n
		}
	}
	return patch, err
}

func (e *Editor) promptVariant(ctx context.Context, s sections.Section, patch *sections.Patch) error {
	options := []string{string(sections.VariantLeft), string(sections.VariantRight)}
	current := string(s.Variant)
	if current == "" {
		current = string(sections.VariantLeft)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Image side",
		Options:      options,
		DefaultIndex: indexOf(options, current),
	})
	if err != nil || idx < 0 || idx >= len(options) || options[idx] == current {
		return err
	}
	v := sections.Variant(options[idx])
	patch.Variant = &v
	return nil
}

// Summary renders a one line description of a section for menus.
func Summary(s sections.Section) string {
	var text string
	switch s.Type {
	case sections.TypeCTA:
		text = s.Label
	case sections.TypeFullWidthHeader, sections.TypeFullWidthFooter:
		text = s.HTML
	case sections.TypeSeparator:
		return string(s.Type)
	default:
		text = s.Content
	}
	var b strings.Builder
	for _, n := range sanitize.ParseFragment(text) {
		b.WriteString(n.TextContent())
	}
	plain := strings.Join(strings.Fields(b.String()), " ")
	if runes := []rune(plain); len(runes) > 40 {
		plain = string(runes[:40]) + "..."
	}
	if plain == "" {
		return string(s.Type)
	}
	return fmt.Sprintf("%s: %s", s.Type, plain)
}

func optionalHex(value string) error {
	if value == "" || sanitize.IsHexColor(strings.TrimSpace(value)) {
		return nil
	}
	return fmt.Errorf("%q is not a hex color", value)
}

func fontSize(value string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%q is not a number", value)
	}
	return nil
}

func positiveInt(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fmt.Errorf("%q is not a position", value)
	}
	return nil
}
