package routepattern

import (
	"regexp"
	"strings"
)

type segmentType uint8

const (
	// segmentFixedText represents text matched verbatim, separators included.
	segmentFixedText segmentType = iota
	// segmentPlaceholder represents a named, typed capture point.
	segmentPlaceholder
)

type segment struct {
	sType segmentType
	// value is the encoded text of a fixed text segment. It equals raw unless
	// literals are canonicalized.
	value string
	// raw is the fixed text as written in the template.
	raw       string
	name      string
	converter Converter
	offset    int
	// index is the position of a placeholder among the template's placeholders.
	index int
}

type segmentList []segment

// validate enforces that a path-like placeholder ends the route. Only a
// single trailing separator may follow it.
func (sl segmentList) validate() error {
	last := len(sl) - 1

	for i, s := range sl {
		if s.sType != segmentPlaceholder || !s.converter.PathLike {
			continue
		}

		if i == last || (i == last-1 && sl[last].raw == "/") {
			continue
		}

		return &PathNotLastError{Name: s.name, Index: s.index, Offset: s.offset}
	}

	return nil
}

// Param is a placeholder of a compiled route.
type Param struct {
	Name      string
	Converter string
}

func (sl segmentList) generateRegularExpressionAndParamList(options Options) (string, []Param) {
	var result strings.Builder
	paramList := make([]Param, 0, len(sl))

	if options.IgnoreCase {
		result.WriteString("(?i)")
	}

	result.WriteString(`\A(?:`)

	optionalSlash := options.TrailingSlash == TrailingSlashOptional && sl.hasTrimmableTrailingSlash()
	last := len(sl) - 1

	for i, s := range sl {
		if s.sType == segmentFixedText {
			value := s.value
			if optionalSlash && i == last {
				value = strings.TrimSuffix(value, "/")
			}

			result.WriteString(regexp.QuoteMeta(value))

			continue
		}

		paramList = append(paramList, Param{Name: s.name, Converter: s.converter.Name})

		result.WriteString("(?P<")
		result.WriteString(s.name)
		result.WriteByte('>')
		result.WriteString(s.converter.fragment(optionalSlash))
		result.WriteByte(')')
	}

	if optionalSlash {
		result.WriteString("/?")
	}

	result.WriteString(`)\z`)

	return result.String(), paramList
}

// hasTrimmableTrailingSlash reports whether the trailing separator policy
// applies at all. The root route "/" always keeps its slash.
func (sl segmentList) hasTrimmableTrailingSlash() bool {
	if len(sl) == 0 {
		return false
	}

	return len(sl) > 1 || sl[0].value != "/"
}
