package fence

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	startKeyword = "editable:start"
	endKeyword   = "editable:end"
)

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenStart
	tokenEnd
)

// token is one lexeme of a document. Start and End are byte offsets; Payload
// holds the raw attribute text of a start marker.
type token struct {
	Kind    tokenKind
	Start   int
	End     int
	Payload string
}

// scanner splits a document into literal text, start markers and end markers.
// The cursor only ever moves forward.
type scanner struct {
	src string
	pos int
	// unclosed is set once no comment terminator remains past the cursor, at
	// which point no further marker can exist.
	unclosed bool
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) next() (token, bool) {
	if s.pos >= len(s.src) {
		return token{}, false
	}
	from := s.pos
	search := s.pos
	for !s.unclosed {
		idx := strings.Index(s.src[search:], commentOpen)
		if idx < 0 {
			break
		}
		at := search + idx
		marker, ok := s.markerAt(at)
		if ok {
			if at > from {
				s.pos = at
				return token{Kind: tokenText, Start: from, End: at}, true
			}
			s.pos = marker.End
			return marker, true
		}
		search = at + len(commentOpen)
	}
	s.pos = len(s.src)
	return token{Kind: tokenText, Start: from, End: len(s.src)}, true
}

// markerAt reports whether a marker begins at offset at, which must point at
// a comment opener.
func (s *scanner) markerAt(at int) (token, bool) {
	body := at + len(commentOpen)
	i := skipSpace(s.src, body)
	rest := s.src[i:]

	switch {
	case strings.HasPrefix(rest, startKeyword):
		payloadStart := i + len(startKeyword)
		if payloadStart < len(s.src) && !isSpace(s.src[payloadStart]) && s.src[payloadStart] != '-' {
			return token{}, false
		}
		closeIdx := strings.Index(s.src[payloadStart:], commentClose)
		if closeIdx < 0 {
			s.unclosed = true
			return token{}, false
		}
		payloadEnd := payloadStart + closeIdx
		return token{
			Kind:    tokenStart,
			Start:   at,
			End:     payloadEnd + len(commentClose),
			Payload: s.src[payloadStart:payloadEnd],
		}, true
	case strings.HasPrefix(rest, endKeyword):
		j := skipSpace(s.src, i+len(endKeyword))
		if !strings.HasPrefix(s.src[j:], commentClose) {
			return token{}, false
		}
		return token{Kind: tokenEnd, Start: at, End: j + len(commentClose)}, true
	}
	return token{}, false
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// region pairs a start marker with the end marker that closes it.
type region struct {
	open    token
	close   token
	ordinal int
	attrs   map[string]string
}

func (r region) name() string {
	return nameFor(r.attrs, r.ordinal)
}

// walk visits every well-formed region in document order until visit returns
// false or a fatal structural error halts the scan. Structural errors met on
// the way, and any error visit reports, are returned in document order.
func walk(document string, visit func(region) (bool, error)) []error {
	var errs []error
	sc := newScanner(document)
	var open *token
	ordinal := 0

	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		switch tok.Kind {
		case tokenStart:
			if open != nil {
				errs = append(errs, &StructuralError{Kind: ErrNestedStart, Offset: tok.Start, BlockOffset: open.Start})
				return errs
			}
			started := tok
			open = &started
		case tokenEnd:
			if open == nil {
				errs = append(errs, &StructuralError{Kind: ErrUnexpectedEnd, Offset: tok.Start})
				continue
			}
			ordinal++
			r := region{open: *open, close: tok, ordinal: ordinal, attrs: parseAttrs(open.Payload)}
			open = nil
			more, err := visit(r)
			if err != nil {
				errs = append(errs, err)
			}
			if !more {
				return errs
			}
		}
	}

	if open != nil {
		errs = append(errs, &StructuralError{Kind: ErrMissingEnd, Offset: open.Start})
	}
	return errs
}
