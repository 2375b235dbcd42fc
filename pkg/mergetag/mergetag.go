// Package mergetag holds the catalog of mail-merge placeholders offered to
// editors. Tokens such as ${Leads.First Name} are opaque: nothing in this
// module substitutes or validates them.
package mergetag

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one insertable placeholder.
type Item struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Group collects related items under a heading.
type Group struct {
	Group string `json:"group" yaml:"group"`
	Items []Item `json:"items" yaml:"items"`
}

// Catalog is an ordered list of groups.
type Catalog struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Token returns the placeholder syntax for a group and field name.
func Token(group, field string) string {
	return "${" + group + "." + field + "}"
}

func item(group, field string) Item {
	return Item{Label: field, Value: Token(group, field)}
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{Groups: []Group{
		{Group: "Leads", Items: []Item{
			item("Leads", "First Name"),
			item("Leads", "Last Name"),
			item("Leads", "Email"),
			item("Leads", "Phone"),
			item("Leads", "Company"),
			item("Leads", "Lead Owner"),
			item("Leads", "Lead Id"),
		}},
		{Group: "Users", Items: []Item{
			item("Users", "First Name"),
			item("Users", "Last Name"),
			item("Users", "Email"),
			item("Users", "Phone"),
		}},
		{Group: "Organization", Items: []Item{
			item("Organization", "Name"),
			item("Organization", "Website"),
			item("Organization", "Phone"),
		}},
	}}
}

// Decode reads a catalog from JSON or YAML.
func Decode(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err == nil {
		return c, nil
	}
	c = Catalog{}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("mergetag: parse catalog: %w", err)
	}
	return c, nil
}

// Suggestion is a matching item with the group it belongs to.
type Suggestion struct {
	Group string
	Item
}

// Suggest returns items whose label or value contains query, ignoring case,
// in catalog order. An empty query matches everything.
func (c Catalog) Suggest(query string) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Suggestion
	for _, g := range c.Groups {
		for _, it := range g.Items {
			if q == "" || strings.Contains(strings.ToLower(it.Label), q) || strings.Contains(strings.ToLower(it.Value), q) {
				out = append(out, Suggestion{Group: g.Group, Item: it})
			}
		}
	}
	return out
}

var tokenPattern = regexp.MustCompile(`\$\{[^{}]+\}`)

// Tokens lists the placeholders in text in order of appearance, duplicates
// included.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}
