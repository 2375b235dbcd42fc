package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailfence/pkg/sections"
	"github.com/goliatone/go-mailfence/pkg/session"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int

	inputConfigs  []InputConfig
	selectConfigs []SelectConfig
	infoMessages  []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type abortDriver struct{ stubDriver }

func (abortDriver) Select(context.Context, SelectConfig) (int, error) { return 0, ErrAborted }

const editorTemplate = `<table><tr>
<!-- editable:start name="HEADER" -->
<!-- editable:end -->
</tr></table>
<h1><!-- editable:start name="GREETING" label="Greeting" type="text" max="10" -->Hello<!-- editable:end --></h1>
<p><!-- editable:start name="TONE" type="select" options="warm|formal" -->warm<!-- editable:end --></p>
<div><!-- editable:start name="NOTE" type="rich" --><p>Note</p><!-- editable:end --></div>
<!-- editable:start name="SECTIONS" -->
<!-- editable:end -->`

func newEditor(t *testing.T, driver PromptDriver, options ...session.Option) (*Editor, *session.Session) {
	t.Helper()
	s, err := session.New(editorTemplate, options...)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	e, err := NewEditor(s, WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return e, s
}

func TestEditorRunFullFlow(t *testing.T) {
	driver := &stubDriver{
		// menu:fields, TONE, menu:brand, brand, menu:sections, add, type:cta, back, menu:done
		selectIdx: []int{0, 1, 1, 1, 2, 0, 1, 4, 3},
		// GREETING, cta label, cta href, cta color
		inputs:    []string{"Hi all", "Buy", "", ""},
		textAreas: []string{""},
	}
	e, s := newEditor(t, driver)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, _ := s.Value("GREETING"); got != "Hi all" {
		t.Fatalf("GREETING = %q", got)
	}
	if got, _ := s.Value("TONE"); got != "formal" {
		t.Fatalf("TONE = %q", got)
	}
	if got, _ := s.Value("NOTE"); got != "<p>Note</p>" {
		t.Fatalf("empty answer should keep NOTE, got %q", got)
	}
	if s.Brand() != "myclub" {
		t.Fatalf("Brand = %q", s.Brand())
	}

	list := s.Sections()
	if len(list) != 1 {
		t.Fatalf("expected one section, got %d", len(list))
	}
	want := sections.Section{ID: list[0].ID, Type: sections.TypeCTA, Label: "Buy", Href: sections.DefaultCTAHref}
	if diff := cmp.Diff(want, list[0]); diff != "" {
		t.Fatalf("section mismatch (-want +got):\n%s", diff)
	}

	greeting := driver.inputConfigs[0]
	if greeting.Message != "Greeting" || greeting.Default != "Hello" || greeting.Validator == nil {
		t.Fatalf("unexpected greeting prompt %+v", greeting)
	}
	if err := greeting.Validator("01234567890"); err == nil {
		t.Fatalf("expected max length validator to reject 11 characters")
	}
	if tone := driver.selectConfigs[1]; tone.DefaultIndex != 0 {
		t.Fatalf("TONE prompt should default to the current option, got %d", tone.DefaultIndex)
	}
}

func TestEditorRunAborted(t *testing.T) {
	e, _ := newEditor(t, &abortDriver{})
	if err := e.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestEditorRejectsBrokenTemplate(t *testing.T) {
	s, err := session.New(`<!-- editable:start name="A" -->a`)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	e, err := NewEditor(s, WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	if err := e.Run(context.Background()); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable, got %v", err)
	}
}

func TestNewEditorRequiresSession(t *testing.T) {
	if _, err := NewEditor(nil); err == nil {
		t.Fatalf("expected error for nil session")
	}
}

func TestEditSectionsMenu(t *testing.T) {
	driver := &stubDriver{
		// edit, pick 2, move, pick 2, bad move, pick 1, remove, pick 1, back
		selectIdx: []int{1, 1, 2, 1, 2, 0, 3, 0, 4},
		// move to 1, invalid position
		inputs:    []string{"1", "abc"},
		textAreas: []string{"Second <b>edited</b>"},
		confirm:   []bool{true},
	}
	e, s := newEditor(t, driver, session.WithSections([]sections.Section{
		{ID: "one", Type: sections.TypeParagraph, Content: "First"},
		{ID: "two", Type: sections.TypeParagraph, Content: "Second"},
	}))

	if err := e.EditSections(context.Background()); err != nil {
		t.Fatalf("EditSections: %v", err)
	}

	list := s.Sections()
	if len(list) != 1 || list[0].ID != "one" {
		t.Fatalf("expected only section one to remain, got %+v", list)
	}
	if len(driver.infoMessages) != 1 || !strings.HasPrefix(driver.infoMessages[0], "! ") {
		t.Fatalf("expected the invalid move to be reported, got %v", driver.infoMessages)
	}
}

func TestEditSectionsEmpty(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1, 4}}
	e, _ := newEditor(t, driver)
	if err := e.EditSections(context.Background()); err != nil {
		t.Fatalf("EditSections: %v", err)
	}
	if diff := cmp.Diff([]string{"no sections yet"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBandClampsFontSize(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 4, 4},
		inputs:    []string{"", "", "99"},
		textAreas: []string{"<strong>Sale</strong>"},
	}
	e, s := newEditor(t, driver)
	if err := e.EditSections(context.Background()); err != nil {
		t.Fatalf("EditSections: %v", err)
	}
	list := s.Sections()
	if len(list) != 1 || list[0].Type != sections.TypeFullWidthHeader {
		t.Fatalf("unexpected sections %+v", list)
	}
	if list[0].FontSize != sections.MaxFontSize || list[0].HTML != "<strong>Sale</strong>" {
		t.Fatalf("unexpected band %+v", list[0])
	}
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("a", 50)
	cases := []struct {
		section sections.Section
		want    string
	}{
		{sections.Section{Type: sections.TypeParagraph, Content: "<p>Hello <b>world</b></p>"}, "paragraph: Hello world"},
		{sections.Section{Type: sections.TypeCTA, Label: "Buy"}, "cta: Buy"},
		{sections.Section{Type: sections.TypeSeparator}, "separator"},
		{sections.Section{Type: sections.TypeFullWidthFooter}, "fullwidthfooter"},
		{sections.Section{Type: sections.TypeParagraph, Content: long}, "paragraph: " + long[:40] + "..."},
	}
	for _, tc := range cases {
		if got := Summary(tc.section); got != tc.want {
			t.Errorf("Summary(%+v) = %q, want %q", tc.section, got, tc.want)
		}
	}
}
