package fence_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-mailfence/pkg/fence"
)

// markerFreeText generates content that cannot contain a comment opener.
func markerFreeText() gopter.Gen {
	return gen.RegexMatch(`^[a-zA-Z0-9 <>/="\n]{0,40}$`).SuchThat(func(s string) bool {
		return !strings.Contains(s, "<!--")
	})
}

func TestFenceProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("replace then parse reads the content back", prop.ForAll(
		func(prefix, suffix, content string) bool {
			doc := prefix + `<!-- editable:start name="P" -->seed<!-- editable:end -->` + suffix
			out := fence.Replace(doc, "P", content)
			blocks, errs := fence.Parse(out)
			if len(errs) != 0 || len(blocks) != 1 {
				return false
			}
			return blocks[0].Raw == content &&
				out[:blocks[0].Content.Start] == prefix+`<!-- editable:start name="P" -->` &&
				out[blocks[0].Content.End:] == `<!-- editable:end -->`+suffix
		},
		markerFreeText(),
		markerFreeText(),
		markerFreeText(),
	))

	properties.Property("replacing a missing name is the identity", prop.ForAll(
		func(content string) bool {
			doc := `x<!-- editable:start name="P" -->v<!-- editable:end -->y`
			return fence.Replace(doc, "missing", content) == doc
		},
		markerFreeText(),
	))

	properties.Property("strip removes exactly the markers", prop.ForAll(
		func(parts []string) bool {
			var doc, want strings.Builder
			for i, part := range parts {
				if i%2 == 1 {
					doc.WriteString(`<!-- editable:start -->` + part + `<!-- editable:end -->`)
				} else {
					doc.WriteString(part)
				}
				want.WriteString(part)
			}
			got, err := fence.Strip(doc.String())
			return err == nil && got == want.String()
		},
		gen.SliceOfN(6, markerFreeText()),
	))

	properties.Property("block spans never overlap", prop.ForAll(
		func(parts []string) bool {
			var doc strings.Builder
			for _, part := range parts {
				doc.WriteString(part + `<!-- editable:start -->` + part + `<!-- editable:end -->`)
			}
			blocks, errs := fence.Parse(doc.String())
			if len(errs) != 0 || len(blocks) != len(parts) {
				return false
			}
			for i := 1; i < len(blocks); i++ {
				if blocks[i-1].Outer.End > blocks[i].Outer.Start {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, markerFreeText()),
	))

	properties.TestingRun(t)
}
