package mailfence

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-mailfence/pkg/sections"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// DefaultTemplateName is the file name of the bundled email template.
const DefaultTemplateName = "default.html"

// TemplatesFS exposes the bundled fenced email templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// DefaultTemplate returns the bundled email template: a snippet line, brand
// header and footer, greeting, sign-off and the SECTIONS body.
func DefaultTemplate() string {
	data, err := fs.ReadFile(embeddedTemplates, "templates/"+DefaultTemplateName)
	if err != nil {
		return ""
	}
	return string(data)
}

// StarterSnapshot returns the snapshot written by `mailfence init`: the
// myclub brand and a kit-enquiry body. Section IDs are generated afresh on
// every call.
func StarterSnapshot() snapshot.Snapshot {
	paragraph := func(content string) sections.Section {
		s := sections.New(sections.TypeParagraph)
		s.Content = content
		return s
	}
	cta := sections.New(sections.TypeCTA)
	cta.Label = "CLICK HERE TO ADD MORE INFORMATION"
	cta.Href = "https://survey.myclubgroup.co.uk/zs/BBajDY?fromservice=ZCRM&zs_leads=${Leads.Lead Id}"

	return snapshot.Snapshot{
		Version: snapshot.Version,
		Brand:   "myclub",
		Sections: []sections.Section{
			paragraph("Thank you for your kit enquiry, we hope we can help you with your team's kit needs and we are excited to help you bring your dream kit to life!"),
			paragraph("To get things moving quickly, it would be really helpful if you could provide a few more details ahead of our call. Please take a moment to fill out the form below so we can better understand your specific requirements."),
			cta,
			paragraph("We aim to follow up with you within the next day or so. If you have a preferred time for us to call, just let us know, and we’ll do our best to accommodate."),
			paragraph("Just a quick reminder: we have a minimum order of 10 items (e.g., 5 shirts/5 shorts), and all custom kit orders typically take 5-6 weeks to deliver."),
			paragraph(`In the meantime, if you'd like to speak with someone, feel free to call us at 01883 772929 (Monday-Friday, 9am-5pm) or email us at <a href="mailto:customerservices@myclub.group">customerservices@myclub.group</a>.`),
		},
	}
}
