package snapshot_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailfence/pkg/sections"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
)

func sample() snapshot.Snapshot {
	return snapshot.Snapshot{
		Version: snapshot.Version,
		Brand:   "myclub",
		Fields:  map[string]string{"GREETING": "Dear ${Leads.First Name},"},
		Sections: []sections.Section{
			{ID: "a", Type: sections.TypeParagraph, Content: "Hello <strong>there</strong>"},
			{ID: "b", Type: sections.TypeCTA, Label: "Go", Href: "https://x.test?a=1&b=2", Color: "#fff"},
			{ID: "c", Type: sections.TypeImageText, Variant: sections.VariantRight, Img: "i.png", Alt: "alt"},
			{ID: "d", Type: sections.TypeFullWidthFooter, HTML: "<p>f</p>", FontSize: 12, TextColor: "#000"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []snapshot.Format{snapshot.FormatJSON, snapshot.FormatYAML} {
		data, err := snapshot.Encode(sample(), format)
		if err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		got, err := snapshot.Decode(data)
		if err != nil {
			t.Fatalf("Decode(%s): %v\n%s", format, err, data)
		}
		if diff := cmp.Diff(sample(), got); diff != "" {
			t.Fatalf("%s round trip mismatch (-want +got):\n%s", format, diff)
		}
	}
}

func TestDecodeJSONKeys(t *testing.T) {
	data := []byte(`{"version":1,"brand":"decathlon","fields":{"snippet_text":"Hi"},
		"sections":[{"id":"x","type":"fullwidthheader","textColor":"#111","fontSize":22,"html":"<b>h</b>"}]}`)
	got, err := snapshot.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := sections.Section{ID: "x", Type: sections.TypeFullWidthHeader, TextColor: "#111", FontSize: 22, HTML: "<b>h</b>"}
	if diff := cmp.Diff([]sections.Section{want}, got.Sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYAML(t *testing.T) {
	data := []byte(`version: 1
brand: myclub
fields:
  GREETING: Hello
sections:
  - id: one
    type: separator
    color: "#e2e8f0"
`)
	got, err := snapshot.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Brand != "myclub" || got.Fields["GREETING"] != "Hello" || len(got.Sections) != 1 || got.Sections[0].Color != "#e2e8f0" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestDecodeRejectsInvalidPayloads(t *testing.T) {
	cases := map[string]string{
		"empty":           "  ",
		"garbage":         "{not json: [",
		"missing version": `{"sections":[]}`,
		"future version":  `{"version":2,"sections":[]}`,
		"missing id":      `{"version":1,"sections":[{"type":"paragraph"}]}`,
		"duplicate id":    `{"version":1,"sections":[{"id":"a","type":"paragraph"},{"id":"a","type":"cta"}]}`,
		"unknown type":    `{"version":1,"sections":[{"id":"a","type":"carousel"}]}`,
		"empty field":     `{"version":1,"fields":{" ":"x"}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := snapshot.Decode([]byte(payload))
			if !errors.Is(err, snapshot.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if diff := cmp.Diff(snapshot.Snapshot{}, got); diff != "" {
				t.Fatalf("expected zero snapshot on failure, got %+v", got)
			}
		})
	}
}

func TestEncodeDefaultsVersionAndRejectsInvalid(t *testing.T) {
	data, err := snapshot.Encode(snapshot.Snapshot{}, snapshot.FormatJSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := "{\n  \"version\": 1,\n  \"sections\": null\n}\n"; string(data) != want {
		t.Fatalf("Encode = %q, want %q", data, want)
	}

	bad := sample()
	bad.Sections[1].ID = "a"
	if _, err := snapshot.Encode(bad, snapshot.FormatJSON); !errors.Is(err, snapshot.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := snapshot.Encode(sample(), "toml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]snapshot.Format{
		"a.json": snapshot.FormatJSON,
		"a.YAML": snapshot.FormatYAML,
		"a.yml":  snapshot.FormatYAML,
		"a":      snapshot.FormatJSON,
	} {
		if got := snapshot.FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
