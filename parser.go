package routepattern

import (
	"fmt"
	"strings"

	"github.com/dunglas/whatwg-url/url"
	"golang.org/x/exp/utf8string"
)

var urlParser = url.NewParser()

type encodingCallback func(string) (string, error)

func parseTemplate(input string, encodingCallback encodingCallback) (segmentList, error) {
	tl, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := templateParser{
		input:            utf8string.NewString(input),
		tokenList:        tl,
		encodingCallback: encodingCallback,
	}

	segmentStart := 0
	for i, t := range p.tokenList {
		if t.tType != tokenSeparator && t.tType != tokenEnd {
			continue
		}

		if err := p.addSegment(p.tokenList[segmentStart:i], t.index); err != nil {
			return nil, err
		}

		if t.tType == tokenSeparator {
			p.appendPendingFixedValue(t)
		}

		segmentStart = i + 1
	}

	if err := p.maybeAddSegmentFromPendingFixedValue(); err != nil {
		return nil, err
	}

	return p.segmentList, nil
}

type templateParser struct {
	input              *utf8string.String
	tokenList          []token
	encodingCallback   encodingCallback
	segmentList        segmentList
	pendingFixedValue  strings.Builder
	pendingFixedOffset int
	placeholders       int
}

// addSegment classifies the tokens found between two separators. end is the
// offset of the separator (or end of input) closing the segment.
func (p *templateParser) addSegment(tokens []token, end int) error {
	if len(tokens) == 0 {
		return nil
	}

	placeholder := -1
	for i, t := range tokens {
		if t.tType == tokenPlaceholder {
			placeholder = i
			break
		}
	}

	if placeholder < 0 {
		for _, t := range tokens {
			p.appendPendingFixedValue(t)
		}

		return nil
	}

	start := tokens[0].index
	if len(tokens) != 1 {
		return p.malformed(start, end, "a placeholder must fill its whole segment")
	}

	name, typeName, reason := splitPlaceholder(tokens[0].value)
	if reason != "" {
		return p.malformed(start, end, reason)
	}

	converter, err := LookupConverter(typeName)
	if err != nil {
		return &UnknownConverterError{Name: typeName, Offset: start}
	}

	if p.isDuplicateName(name) {
		return &DuplicatePlaceholderNameError{Name: name, Offset: start}
	}

	if err := p.maybeAddSegmentFromPendingFixedValue(); err != nil {
		return err
	}

	p.segmentList = append(p.segmentList, segment{
		sType:     segmentPlaceholder,
		name:      name,
		converter: converter,
		offset:    start,
		index:     p.placeholders,
	})
	p.placeholders++

	return nil
}

func (p *templateParser) appendPendingFixedValue(t token) {
	if p.pendingFixedValue.Len() == 0 {
		p.pendingFixedOffset = t.index
	}

	p.pendingFixedValue.WriteString(t.value)
}

func (p *templateParser) maybeAddSegmentFromPendingFixedValue() error {
	if p.pendingFixedValue.Len() == 0 {
		return nil
	}

	value := p.pendingFixedValue.String()
	p.pendingFixedValue.Reset()

	encodedValue, err := p.encodingCallback(value)
	if err != nil {
		return fmt.Errorf("literal %q at offset %d: %w", value, p.pendingFixedOffset, err)
	}

	p.segmentList = append(p.segmentList, segment{
		sType:  segmentFixedText,
		value:  encodedValue,
		raw:    value,
		offset: p.pendingFixedOffset,
	})

	return nil
}

func (p *templateParser) isDuplicateName(name string) bool {
	for _, s := range p.segmentList {
		if s.sType == segmentPlaceholder && s.name == name {
			return true
		}
	}

	return false
}

func (p *templateParser) malformed(start, end int, reason string) error {
	return &MalformedPlaceholderError{Segment: p.input.Slice(start, end), Offset: start, Reason: reason}
}

// splitPlaceholder splits a placeholder body into its name and type. A
// non-empty reason means the body is malformed.
func splitPlaceholder(body string) (name, typeName, reason string) {
	name, typeName, found := strings.Cut(body, ":")
	switch {
	case !found:
		return "", "", "missing ':' between name and type"
	case name == "":
		return "", "", "empty name"
	case typeName == "":
		return "", "", "empty type"
	case !isValidName(name):
		return "", "", fmt.Sprintf("invalid name %q", name)
	case !isValidName(typeName):
		return "", "", fmt.Sprintf("invalid type %q", typeName)
	}

	return name, typeName, ""
}

func verbatim(value string) (string, error) {
	return value, nil
}

// canonicalizePathname applies the WHATWG path percent-encoding to every
// separator-delimited piece of value. "." and ".." pieces are kept.
func canonicalizePathname(value string) (string, error) {
	pieces := strings.Split(value, "/")
	for i, piece := range pieces {
		if piece == "" {
			continue
		}

		encoded, err := canonicalizePathSegment(piece)
		if err != nil {
			return "", err
		}

		pieces[i] = encoded
	}

	return strings.Join(pieces, "/"), nil
}

// canonicalizePathSegment encodes a single segment. The "-" prefix keeps the
// parser from treating the segment as a dot segment.
func canonicalizePathSegment(value string) (string, error) {
	dummyURL := urlParser.NewUrl()
	u, err := urlParser.BasicParser("/-"+value, nil, dummyURL, url.StatePathStart)
	if err != nil {
		return "", err
	}

	return strings.TrimPrefix(u.Pathname(), "/-"), nil
}

// RequestPathname extracts the canonical pathname of the absolute URL rawURL,
// the form matched by ExecURL.
func RequestPathname(rawURL string) (string, error) {
	u, err := urlParser.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", InvalidURLError, rawURL, err)
	}

	return u.Pathname(), nil
}
