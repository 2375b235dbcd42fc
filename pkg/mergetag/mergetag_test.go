package mergetag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailfence/pkg/mergetag"
)

func values(list []mergetag.Suggestion) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Value)
	}
	return out
}

func TestSuggest(t *testing.T) {
	c := mergetag.Default()

	got := values(c.Suggest("lead o"))
	if diff := cmp.Diff([]string{"${Leads.Lead Owner}"}, got); diff != "" {
		t.Fatalf("suggest mismatch (-want +got):\n%s", diff)
	}

	got = values(c.Suggest("USERS.first"))
	if diff := cmp.Diff([]string{"${Users.First Name}"}, got); diff != "" {
		t.Fatalf("value matching mismatch (-want +got):\n%s", diff)
	}

	if n := len(c.Suggest("")); n != 14 {
		t.Fatalf("empty query should match the whole catalog, got %d", n)
	}
	if got := c.Suggest("zzz"); len(got) != 0 {
		t.Fatalf("unexpected suggestions %v", got)
	}
	first := c.Suggest("first name")
	if first[0].Group != "Leads" || first[1].Group != "Users" {
		t.Fatalf("suggestions should keep catalog order, got %+v", first)
	}
}

func TestTokens(t *testing.T) {
	text := "Dear ${Leads.First Name}, call ${Leads.Lead Owner} or ${Leads.First Name}. Not $ {this} or ${}"
	want := []string{"${Leads.First Name}", "${Leads.Lead Owner}", "${Leads.First Name}"}
	if diff := cmp.Diff(want, mergetag.Tokens(text)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if mergetag.Token("Deals", "Amount") != "${Deals.Amount}" {
		t.Fatalf("unexpected token syntax")
	}
}

func TestDecode(t *testing.T) {
	yamlData := []byte("groups:\n  - group: Deals\n    items:\n      - label: Amount\n        value: ${Deals.Amount}\n")
	c, err := mergetag.Decode(yamlData)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := mergetag.Catalog{Groups: []mergetag.Group{{Group: "Deals", Items: []mergetag.Item{{Label: "Amount", Value: "${Deals.Amount}"}}}}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}

	if _, err := mergetag.Decode([]byte("groups: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
