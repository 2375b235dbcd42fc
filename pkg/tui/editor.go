// Package tui drives an editing session from the terminal: block values,
// the brand preset and the body sections are edited through a PromptDriver.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/goliatone/go-mailfence/pkg/brand"
	"github.com/goliatone/go-mailfence/pkg/fence"
	"github.com/goliatone/go-mailfence/pkg/session"
)

// Editor walks a user through a session.
type Editor struct {
	session *session.Session
	driver  PromptDriver
	brands  *brand.Store
	theme   Theme
	logger  *slog.Logger
}

// NewEditor binds an editor to s. The survey driver is used unless
// WithPromptDriver is given.
func NewEditor(s *session.Session, options ...Option) (*Editor, error) {
	if s == nil {
		return nil, errors.New("tui: session is required")
	}
	e := &Editor{
		session: s,
		brands:  brand.Defaults(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver(nil)
	}
	return e, nil
}

const (
	menuFields   = "Edit fields"
	menuBrand    = "Choose brand"
	menuSections = "Edit sections"
	menuDone     = "Done"
)

// Run shows the main menu until the user picks Done. Ctrl+C surfaces as
// ErrAborted; changes made before it stay in the session.
func (e *Editor) Run(ctx context.Context) error {
	if !e.session.Editable() {
		return fmt.Errorf("%w: %v", ErrNotEditable, fence.FirstFatal(e.session.Problems()))
	}
	menu := []string{menuFields, menuBrand, menuSections, menuDone}
	for {
		idx, err := e.driver.Select(ctx, SelectConfig{Message: "What do you want to edit?", Options: menu})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			continue
		}
		switch menu[idx] {
		case menuFields:
			err = e.EditFields(ctx)
		case menuBrand:
			err = e.ChooseBrand(ctx)
		case menuSections:
			err = e.EditSections(ctx)
		case menuDone:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// EditFields prompts for every editable block of the template in document
// order. Brand blocks and SECTIONS are skipped; an empty answer keeps the
// current value.
func (e *Editor) EditFields(ctx context.Context) error {
	seen := make(map[string]struct{})
	for _, block := range e.session.Blocks() {
		if block.Name == fence.NameSections || fence.Reserved(block.Name) {
			continue
		}
		if _, dup := seen[block.Name]; dup {
			continue
		}
		seen[block.Name] = struct{}{}

		value, changed, err := e.promptBlock(ctx, block)
		if err != nil {
			return err
		}
		if !changed {
			continue
		}
		if err := e.session.SetField(block.Name, value); err != nil {
			return err
		}
		e.logger.Debug("field updated", "block", block.Name)
	}
	return nil
}

func (e *Editor) promptBlock(ctx context.Context, block fence.Block) (string, bool, error) {
	current := block.Value()
	message := block.Label
	switch {
	case block.Type == fence.TypeSelect && len(block.Options) > 0:
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      block.Options,
			DefaultIndex: indexOf(block.Options, current),
		})
		if err != nil || idx < 0 || idx >= len(block.Options) {
			return "", false, err
		}
		return block.Options[idx], block.Options[idx] != current, nil
	case block.Type == fence.TypeText:
		value, err := e.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   current,
			Help:      maxHelp(block.MaxLength),
			Validator: maxLength(block.MaxLength),
		})
		if err != nil {
			return "", false, err
		}
		return value, value != "" && value != current, nil
	default:
		value, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: current,
			Help:    fmt.Sprintf("%s field, markup outside the %s profile is removed", block.Type, block.Profile().Name()),
		})
		if err != nil {
			return "", false, err
		}
		return value, value != "" && value != current, nil
	}
}

// ChooseBrand offers the known presets and applies the selected one.
func (e *Editor) ChooseBrand(ctx context.Context) error {
	names := e.brands.Names()
	if len(names) == 0 {
		return e.info(ctx, "no brand presets available")
	}
	labels := make([]string, len(names))
	for i, name := range names {
		preset, _ := e.brands.Get(name)
		labels[i] = preset.Title()
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Brand",
		Options:      labels,
		DefaultIndex: indexOf(names, e.session.Brand()),
	})
	if err != nil || idx < 0 || idx >= len(names) {
		return err
	}
	if err := e.session.ApplyBrand(names[idx]); err != nil {
		return e.fail(ctx, err)
	}
	e.logger.Debug("brand applied", "brand", names[idx])
	return nil
}

func (e *Editor) info(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}

// fail reports a rejected edit and keeps the editor running.
func (e *Editor) fail(ctx context.Context, err error) error {
	e.logger.Warn("edit rejected", "error", err.Error())
	return e.driver.Info(ctx, e.theme.ErrorPrefix+err.Error())
}

func maxLength(limit int) func(string) error {
	if limit <= 0 {
		return nil
	}
	return func(value string) error {
		if n := utf8.RuneCountInString(value); n > limit {
			return fmt.Errorf("at most %d characters, got %d", limit, n)
		}
		return nil
	}
}

func maxHelp(limit int) string {
	if limit <= 0 {
		return ""
	}
	return "max " + strconv.Itoa(limit) + " characters"
}
