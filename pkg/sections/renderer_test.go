package sections_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailfence/pkg/sections"
)

func newRenderer(t *testing.T, opts ...sections.Option) *sections.Renderer {
	t.Helper()
	r, err := sections.NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestParagraphSanitizesContent(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Render([]sections.Section{{
		ID:      "p1",
		Type:    sections.TypeParagraph,
		Content: `Hi ${Leads.First Name}, <b>welcome</b><script>x()</script> <a href="javascript:evil()">here</a>`,
	}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<div style="margin:0 0 24px 0; color:rgb(71, 85, 105)">Hi ${Leads.First Name}, <strong>welcome</strong> <a>here</a></div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paragraph mismatch (-want +got):\n%s", diff)
	}
}

func TestCTAInvalidColorFallsBack(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Render([]sections.Section{{ID: "c1", Type: sections.TypeCTA, Label: "Go", Href: "https://x.test", Color: "not-a-color"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "not-a-color") {
		t.Fatalf("invalid color leaked into output:\n%s", got)
	}
	if !strings.Contains(got, "background:#667eea;") {
		t.Fatalf("expected default accent, got:\n%s", got)
	}
}

func TestCTAColorAndDefaults(t *testing.T) {
	r := newRenderer(t, sections.WithDefaultAccent("#123"))

	got, err := r.Render([]sections.Section{{ID: "c1", Type: sections.TypeCTA, Color: " #ABCDEF "}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"background:#ABCDEF;", `href="https://example.com"`, "Click here"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}

	got, _ = r.Render([]sections.Section{{ID: "c2", Type: sections.TypeCTA, Color: "#12"}})
	if !strings.Contains(got, "background:#123;") {
		t.Fatalf("expected configured accent, got:\n%s", got)
	}
}

func TestCTALabelIsEscapedNotSanitized(t *testing.T) {
	r := newRenderer(t)
	got, _ := r.Render([]sections.Section{{
		ID:    "c1",
		Type:  sections.TypeCTA,
		Label: `<b>Buy</b> & save`,
		Href:  `https://survey.test/zs?a=1&lead=${Leads.Lead Id}`,
	}})
	if !strings.Contains(got, "&lt;b&gt;Buy&lt;/b&gt; &amp; save") {
		t.Fatalf("label not escaped:\n%s", got)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("label markup leaked:\n%s", got)
	}
	if !strings.Contains(got, `href="https://survey.test/zs?a=1&amp;lead=${Leads.Lead Id}"`) {
		t.Fatalf("href not interpolated as given:\n%s", got)
	}
}

func TestImageTextCellOrder(t *testing.T) {
	r := newRenderer(t)
	for _, tc := range []struct {
		variant    sections.Variant
		imageFirst bool
	}{
		{"", true},
		{sections.VariantLeft, true},
		{sections.VariantRight, false},
		{"RIGHT", false},
		{"diagonal", true},
	} {
		got, err := r.Render([]sections.Section{{
			ID: "i1", Type: sections.TypeImageText, Variant: tc.variant,
			Img: "https://img.test/a.png", Alt: `kit "photo"`, Content: "<p>Text</p><img src=x>",
		}})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		img := strings.Index(got, "<img")
		text := strings.Index(got, "<p>Text</p>")
		if img < 0 || text < 0 {
			t.Fatalf("missing cells:\n%s", got)
		}
		if (img < text) != tc.imageFirst {
			t.Fatalf("variant %q: image first = %v, want %v", tc.variant, img < text, tc.imageFirst)
		}
		if strings.Count(got, "<img") != 1 {
			t.Fatalf("content image should be sanitized away:\n%s", got)
		}
		if !strings.Contains(got, `alt="kit &quot;photo&quot;"`) {
			t.Fatalf("alt not escaped:\n%s", got)
		}
	}
}

func TestSeparatorAndBands(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Render([]sections.Section{
		{ID: "s1", Type: sections.TypeSeparator, Color: "blue"},
		{ID: "h1", Type: sections.TypeFullWidthHeader, HTML: `<b>Big</b><div>news</div>`, Color: "#000", TextColor: "nope", FontSize: 99},
		{ID: "f1", Type: sections.TypeFullWidthFooter, FontSize: 2},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parts := strings.Split(got, "\n<table")
	if len(parts) != 3 {
		t.Fatalf("expected three fragments, got %d:\n%s", len(parts), got)
	}
	for _, want := range []string{
		"border-top:1px solid #e2e8f0",
		`class="band-header"`,
		"background:#000; color:#ffffff; font-size:40px",
		"<strong>Big</strong>news",
		`class="band-footer"`,
		"background:#0a1a36; color:#ffffff; font-size:10px",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestUnknownTypesProduceNothing(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Render([]sections.Section{
		{ID: "p1", Type: sections.TypeParagraph, Content: "one"},
		{ID: "x", Type: "carousel", Content: "ignored"},
		{ID: "p2", Type: sections.TypeParagraph, Content: "two"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<div style="margin:0 0 24px 0; color:rgb(71, 85, 105)">one</div>` + "\n" +
		`<div style="margin:0 0 24px 0; color:rgb(71, 85, 105)">two</div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}

	empty, err := r.Render(nil)
	if err != nil || empty != "" {
		t.Fatalf("empty list = %q, %v", empty, err)
	}
}

func TestCustomBuilderAndTemplates(t *testing.T) {
	files := fstest.MapFS{
		"quote.tpl": {Data: []byte(`<blockquote style="color:{{ color }}">{{ text }}</blockquote>`)},
	}
	reg := sections.NewRegistry()
	reg.MustRegister(sections.BuilderFunc{For: "quote", Fn: func(s sections.Section, p sections.Palette) sections.Fragment {
		return sections.Fragment{Template: "quote", Data: map[string]any{"text": s.Content, "color": p.Accent}}
	}})
	if err := reg.Register(sections.BuilderFunc{For: "quote"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}

	r := newRenderer(t, sections.WithRegistry(reg), sections.WithTemplatesFS(files), sections.WithPalette(sections.Palette{Accent: "#010203"}))
	got, err := r.Render([]sections.Section{{ID: "q", Type: "quote", Content: "a < b"}, {ID: "p", Type: sections.TypeParagraph}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<blockquote style="color:#010203">a &lt; b</blockquote>`; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]sections.Type{"quote"}, reg.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateExtensionAndFilters(t *testing.T) {
	files := fstest.MapFS{
		"paragraph.html": {Data: []byte(`<div>{{ content|safe }}</div>`)},
		"note.html":      {Data: []byte(`<em>{{ text|reverse_words }}</em>`)},
	}
	reverse := func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		words := strings.Fields(in.String())
		for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
			words[i], words[j] = words[j], words[i]
		}
		return pongo2.AsValue(strings.Join(words, " ")), nil
	}
	reg := sections.DefaultRegistry()
	reg.MustRegister(sections.BuilderFunc{For: "note", Fn: func(s sections.Section, _ sections.Palette) sections.Fragment {
		return sections.Fragment{Template: "note", Data: map[string]any{"text": s.Content}}
	}})

	r := newRenderer(t,
		sections.WithRegistry(reg),
		sections.WithTemplatesFS(files),
		sections.WithTemplateExtension("html"),
		sections.WithFilter("reverse_words", reverse),
	)
	got, err := r.Render([]sections.Section{
		{ID: "p", Type: sections.TypeParagraph, Content: "<b>hi</b>"},
		{ID: "n", Type: "note", Content: "one two <three>"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "<div><strong>hi</strong></div>\n<em>&lt;three&gt; two one</em>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestCTALabelIsTrimmed(t *testing.T) {
	r := newRenderer(t)
	got, _, err := r.RenderSection(sections.Section{ID: "c", Type: sections.TypeCTA, Label: "  Join now \n"})
	if err != nil {
		t.Fatalf("RenderSection: %v", err)
	}
	if !strings.Contains(got, "\n        Join now\n") {
		t.Fatalf("expected trimmed label, got %q", got)
	}
}

func TestMissingTemplateIsAnError(t *testing.T) {
	r := newRenderer(t, sections.WithTemplatesFS(fstest.MapFS{}))
	if _, err := r.Render([]sections.Section{{ID: "p", Type: sections.TypeParagraph}}); err == nil {
		t.Fatalf("expected error for missing skeleton template")
	}
}

func TestWithAccentCopiesRenderer(t *testing.T) {
	base := newRenderer(t)
	branded := base.WithAccent("#ff0000")
	if base.Palette().Accent != sections.DefaultAccent || branded.Palette().Accent != "#ff0000" {
		t.Fatalf("unexpected palettes %v / %v", base.Palette(), branded.Palette())
	}
	if base.WithAccent("nope").Palette().Accent != sections.DefaultAccent {
		t.Fatalf("invalid accent should be ignored")
	}
}

func TestNewAndPatch(t *testing.T) {
	a, b := sections.New(sections.TypeCTA), sections.New(sections.TypeCTA)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("IDs must be unique, got %q and %q", a.ID, b.ID)
	}
	if a.Label != sections.DefaultCTALabel || a.Href != sections.DefaultCTAHref {
		t.Fatalf("unexpected CTA defaults %+v", a)
	}

	label := "Book now"
	size := 20
	patched := sections.Patch{Label: &label, FontSize: &size}.Apply(a)
	if patched.ID != a.ID || patched.Label != "Book now" || patched.Href != a.Href || patched.FontSize != 20 {
		t.Fatalf("unexpected patch result %+v", patched)
	}
}
