package paper

import "errors"

var (
	// ErrInvalidTable is returned when table has no rows or rows differ in
	// number of cells.
	ErrInvalidTable = errors.New("invalid table")
	// ErrInvalidHeadingLevel is returned for heading levels outside 1..4.
	ErrInvalidHeadingLevel = errors.New("invalid heading level")
	// ErrValueTooLong is returned when metadata value does not fit its blank.
	ErrValueTooLong = errors.New("value too long")
)
