package session

import "errors"

var (
	// ErrBlockNotFound is returned when a field edit names a block the
	// current document does not contain.
	ErrBlockNotFound = errors.New("session: block not found")
	// ErrReservedBlock is returned for direct edits of the SECTIONS block,
	// which is owned by the section list.
	ErrReservedBlock = errors.New("session: block is managed by the section list")
	// ErrSectionNotFound is returned when a section ID is unknown.
	ErrSectionNotFound = errors.New("session: section not found")
	// ErrDuplicateSection is returned when adding a section whose ID is
	// already in the list.
	ErrDuplicateSection = errors.New("session: duplicate section id")
	// ErrUnknownSectionType is returned when adding a section of a type no
	// builder renders.
	ErrUnknownSectionType = errors.New("session: unknown section type")
	// ErrUnknownBrand is returned when a brand preset is not in the store.
	ErrUnknownBrand = errors.New("session: unknown brand")
)
