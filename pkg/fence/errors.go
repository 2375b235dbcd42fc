package fence

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingEnd marks a start marker with no end marker before the end of
	// the document. Scanning halts when it is reported.
	ErrMissingEnd = errors.New("fence: missing end marker")
	// ErrNestedStart marks a start marker found inside another block. Nested
	// blocks are not supported and scanning halts.
	ErrNestedStart = errors.New("fence: nested start marker")
	// ErrUnexpectedEnd marks an end marker that closes nothing.
	ErrUnexpectedEnd = errors.New("fence: unexpected end marker")
	// ErrDuplicateName marks a block whose name was already used earlier in
	// the same document. Replace only ever touches the first one.
	ErrDuplicateName = errors.New("fence: duplicate block name")
)

// StructuralError describes a problem with the marker structure of a document.
// Offsets are byte offsets into the scanned document.
type StructuralError struct {
	Kind error
	// Offset is where the offending marker starts.
	Offset int
	// BlockOffset is the start of the enclosing block, when there is one.
	BlockOffset int
	Name        string
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case ErrMissingEnd:
		return fmt.Sprintf("missing end marker for block starting at offset %d", e.Offset)
	case ErrNestedStart:
		return fmt.Sprintf("nested start marker at offset %d inside block starting at offset %d", e.Offset, e.BlockOffset)
	case ErrUnexpectedEnd:
		return fmt.Sprintf("unexpected end marker at offset %d", e.Offset)
	case ErrDuplicateName:
		return fmt.Sprintf("duplicate block name %q at offset %d", e.Name, e.Offset)
	default:
		return fmt.Sprintf("structural error at offset %d", e.Offset)
	}
}

func (e *StructuralError) Unwrap() error {
	return e.Kind
}

// Fatal reports whether the error stopped the scan. Blocks found before a
// fatal error remain valid.
func (e *StructuralError) Fatal() bool {
	return e.Kind == ErrMissingEnd || e.Kind == ErrNestedStart
}

// FirstFatal returns the first fatal structural error in errs, or nil.
func FirstFatal(errs []error) error {
	for _, err := range errs {
		var structural *StructuralError
		if errors.As(err, &structural) && structural.Fatal() {
			return structural
		}
	}
	return nil
}
