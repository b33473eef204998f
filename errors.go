package routepattern

import (
	"errors"
	"fmt"
)

var InvalidURLError = errors.New("invalid URL")

// MalformedPlaceholderError reports a segment that uses braces without
// forming a valid "{name:type}" placeholder.
type MalformedPlaceholderError struct {
	// Segment is the offending segment text, without the surrounding separators.
	Segment string
	// Offset is the code point offset of the segment in the template.
	Offset int
	Reason string
}

func (e *MalformedPlaceholderError) Error() string {
	return fmt.Sprintf("malformed placeholder %q at offset %d: %s", e.Segment, e.Offset, e.Reason)
}

// UnknownConverterError reports a placeholder type that is not in the registry.
type UnknownConverterError struct {
	Name string
	// Offset is the code point offset of the placeholder in the template, or -1
	// when the error comes from a direct registry lookup.
	Offset int
}

func (e *UnknownConverterError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("unknown converter %q", e.Name)
	}

	return fmt.Sprintf("unknown converter %q at offset %d", e.Name, e.Offset)
}

// PathNotLastError reports a path-like placeholder followed by anything other
// than a single trailing separator.
type PathNotLastError struct {
	Name string
	// Index is the position of the placeholder among the template's placeholders.
	Index  int
	Offset int
}

func (e *PathNotLastError) Error() string {
	return fmt.Sprintf("path placeholder %q (#%d at offset %d) must be the last segment of the route", e.Name, e.Index, e.Offset)
}

// DuplicatePlaceholderNameError reports a placeholder name used twice in one template.
type DuplicatePlaceholderNameError struct {
	Name string
	// Offset points at the second occurrence.
	Offset int
}

func (e *DuplicatePlaceholderNameError) Error() string {
	return fmt.Sprintf("duplicate placeholder name %q at offset %d", e.Name, e.Offset)
}
