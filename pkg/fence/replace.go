package fence

import "strings"

// Replace returns document with the content of the first block named name
// replaced by newContent. The markers and their payload are kept verbatim.
// The document is scanned afresh on every call, so offsets from an earlier
// Parse are never trusted. A document without such a block is returned
// unchanged.
func Replace(document, name, newContent string) string {
	var target *region
	walk(document, func(r region) (bool, error) {
		if r.name() == name {
			found := r
			target = &found
			return false, nil
		}
		return true, nil
	})
	if target == nil {
		return document
	}

	var b strings.Builder
	b.Grow(len(document) - (target.close.Start - target.open.End) + len(newContent))
	b.WriteString(document[:target.open.End])
	b.WriteString(newContent)
	b.WriteString(document[target.close.Start:])
	return b.String()
}

// Wrap surrounds content with the line breaks written around every replaced
// value, keeping markers on their own lines.
func Wrap(content string) string {
	return "\n" + content + "\n"
}

// Unwrap removes one leading and one trailing line break added by Wrap.
func Unwrap(raw string) string {
	raw = strings.TrimPrefix(raw, "\r\n")
	raw = strings.TrimPrefix(raw, "\n")
	if strings.HasSuffix(raw, "\r\n") {
		return strings.TrimSuffix(raw, "\r\n")
	}
	return strings.TrimSuffix(raw, "\n")
}
