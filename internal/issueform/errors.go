package issueform

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBlankLine is returned when content follows a heading directly.
	ErrMissingBlankLine = errors.New("heading must be followed by a blank line")
	// ErrNestedHeading is returned for a deeper heading inside a section.
	ErrNestedHeading = errors.New("nested heading inside section")
	// ErrDuplicateLabel is returned when a label appears more than once.
	ErrDuplicateLabel = errors.New("duplicate section label")
	// ErrEmptyLabel is returned for a section heading with no text.
	ErrEmptyLabel = errors.New("empty section label")
)

// ParseError locates a grammar failure in the submission text.
type ParseError struct {
	Line  int
	Label string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v (section %q)", e.Line, e.Err, e.Label)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
