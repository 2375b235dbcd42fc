// Package fence locates and rewrites editable regions in a frozen document.
//
// A region is bounded by a start marker carrying a double-quoted attribute
// payload and an end marker:
//
//	<!-- editable:start name="GREETING" label="Greeting" type="text" max="120" -->
//	Dear ${Leads.First Name},
//	<!-- editable:end -->
//
// Parse yields the regions as Block descriptors; Replace swaps the content of
// one region by name and leaves every other byte of the document untouched.
// Both functions scan the document with the same forward-only scanner, so
// Replace never relies on offsets from an earlier parse.
package fence
