package mailfence

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailfence/pkg/fence"
)

func TestDefaultTemplateBlocks(t *testing.T) {
	blocks, errs := Parse(DefaultTemplate())
	if len(errs) != 0 {
		t.Fatalf("default template has structural errors: %v", errs)
	}
	want := []string{"snippet_text", "HEADER", "GREETING", "SECTIONS", "SIGNOFF_NAME", "FOOTER"}
	if diff := cmp.Diff(want, fence.Names(blocks)); diff != "" {
		t.Fatalf("block names mismatch (-want +got):\n%s", diff)
	}
	greeting, _ := fence.Lookup(blocks, "GREETING")
	if greeting.Value() != "Dear ${Leads.First Name}," || greeting.MaxLength != 120 || greeting.Label != "Greeting (H1)" {
		t.Fatalf("unexpected greeting block %+v", greeting)
	}
}

func TestTemplatesFS(t *testing.T) {
	data, err := fs.ReadFile(TemplatesFS(), DefaultTemplateName)
	if err != nil {
		t.Fatalf("expected default template to be readable: %v", err)
	}
	if string(data) != DefaultTemplate() {
		t.Fatalf("TemplatesFS and DefaultTemplate disagree")
	}
}

func TestRenderStarterSnapshot(t *testing.T) {
	snap := StarterSnapshot()
	if snap.Sections[0].ID == StarterSnapshot().Sections[0].ID {
		t.Fatalf("starter sections should get fresh IDs")
	}

	out, err := Render(DefaultTemplate(), snap)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"CLICK HERE TO ADD MORE INFORMATION",
		`href="https://survey.myclubgroup.co.uk/zs/BBajDY?fromservice=ZCRM&amp;zs_leads=${Leads.Lead Id}"`,
		`<a href="mailto:customerservices@myclub.group">customerservices@myclub.group</a>`,
		"My Club Group and Decathlon My Club are trading names",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered output", want)
		}
	}

	published, err := Publish(out)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if strings.Contains(published, "editable:") {
		t.Fatalf("published output still has markers")
	}
}

func TestSanitizeFacade(t *testing.T) {
	got, err := Sanitize("inline", "<p>Hi <b>there</b></p>")
	if err != nil || got != "Hi <strong>there</strong>" {
		t.Fatalf("Sanitize = %q, %v", got, err)
	}
}
