package fence

import "strings"

// Strip removes every start and end marker from document and keeps the
// content between them, producing publishable output. When the marker
// structure is broken the document is returned unchanged together with the
// first fatal structural error.
func Strip(document string) (string, error) {
	if err := FirstFatal(validate(document)); err != nil {
		return document, err
	}

	var b strings.Builder
	b.Grow(len(document))
	sc := newScanner(document)
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		if tok.Kind == tokenText {
			b.WriteString(document[tok.Start:tok.End])
		}
	}
	return b.String(), nil
}

func validate(document string) []error {
	return walk(document, func(region) (bool, error) { return true, nil })
}
