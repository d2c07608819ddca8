package docx

import (
	"errors"
	"fmt"
)

var (
	// ErrAnchorNotFound is returned when no paragraph matches anchor text
	// (and style, if requested).
	ErrAnchorNotFound = errors.New("anchor not found")
	// ErrStyleNotFound is returned when template does not define named style.
	ErrStyleNotFound = errors.New("style not found")
	// ErrPositionOutOfRange is returned for positions outside of the paragraph
	// sequence.
	ErrPositionOutOfRange = errors.New("position out of range")
	// ErrNotParagraph is returned when paragraph operation is requested for
	// sequence element which is a table.
	ErrNotParagraph = errors.New("element is not a paragraph")
	// ErrInvalidPackage is returned when container lacks required parts.
	ErrInvalidPackage = errors.New("invalid docx package")
)

// AnchorError describes failed anchor lookup.
type AnchorError struct {
	Text  string
	Style string
}

func (e *AnchorError) Error() string {
	if e.Style == "" {
		return fmt.Sprintf("anchor %q not found", e.Text)
	}
	return fmt.Sprintf("anchor %q with style %q not found", e.Text, e.Style)
}

func (e *AnchorError) Unwrap() error {
	return ErrAnchorNotFound
}

func outOfRange(pos, length int) error {
	return fmt.Errorf("%w: %d not in [0, %d]", ErrPositionOutOfRange, pos, length)
}
