// Package mailfence edits fenced regions of HTML email templates. A template
// marks the parts an editor may change with paired comments:
//
//	<!-- editable:start name="GREETING" type="text" max="120" -->
//	Dear ${Leads.First Name},
//	<!-- editable:end -->
//
// Everything outside the markers stays byte-identical. Values written into a
// block are sanitized with the profile of its type, and the reserved SECTIONS
// block is compiled from an ordered list of typed sections.
//
// The root package re-exports the common entry points; the pieces live in
// pkg/fence, pkg/sanitize, pkg/sections and pkg/session.
package mailfence

import (
	"github.com/goliatone/go-mailfence/pkg/fence"
	"github.com/goliatone/go-mailfence/pkg/sanitize"
	"github.com/goliatone/go-mailfence/pkg/sections"
	"github.com/goliatone/go-mailfence/pkg/session"
	"github.com/goliatone/go-mailfence/pkg/snapshot"
)

// Block aliases fence.Block.
type Block = fence.Block

// Section aliases sections.Section.
type Section = sections.Section

// Snapshot aliases snapshot.Snapshot.
type Snapshot = snapshot.Snapshot

// Session aliases session.Session.
type Session = session.Session

// Parse scans a document for editable blocks.
func Parse(document string) ([]Block, []error) {
	return fence.Parse(document)
}

// Replace rewrites the content of the first block called name.
func Replace(document, name, content string) string {
	return fence.Replace(document, name, content)
}

// Sanitize cleans markup with the named profile: inline, rich or plain.
func Sanitize(profile sanitize.Name, markup string) (string, error) {
	return sanitize.SanitizeNamed(profile, markup)
}

// Publish strips every marker from document.
func Publish(document string) (string, error) {
	return fence.Strip(document)
}

// NewSession starts an editing session over template.
func NewSession(template string, options ...session.Option) (*Session, error) {
	return session.New(template, options...)
}

// Render applies snap to template and returns the resulting document with
// markers kept, ready for further editing.
func Render(template string, snap Snapshot, options ...session.Option) (string, error) {
	s, err := session.New(template, options...)
	if err != nil {
		return "", err
	}
	if err := s.Import(snap); err != nil {
		return "", err
	}
	return s.HTML(), nil
}
