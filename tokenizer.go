package routepattern

import (
	"golang.org/x/exp/utf8string"
)

type tokenizer struct {
	input     *utf8string.String
	tokenList []token
	index     int
	nextIndex int
	codePoint rune
}

func tokenize(input string) ([]token, error) {
	t := tokenizer{
		input:     utf8string.NewString(input),
		tokenList: make([]token, 0, len(input)),
	}

	len := t.input.RuneCount()

	for t.index < len {
		t.seekAndGetNextCodePoint(t.index)

		switch t.codePoint {
		case '/':
			t.addTokenWithDefaultPositionAndLength(tokenSeparator)

		case '{':
			bodyPosition := t.nextIndex
			bodyStart := bodyPosition
			closed := false

			for bodyPosition < len {
				t.seekAndGetNextCodePoint(bodyPosition)
				if t.codePoint == '}' {
					closed = true
					break
				}
				if t.codePoint == '{' || t.codePoint == '/' {
					break
				}

				bodyPosition = t.nextIndex
			}

			if !closed {
				return nil, t.malformed(t.index, "unterminated placeholder")
			}

			t.addToken(tokenPlaceholder, bodyPosition+1, bodyStart, bodyPosition-bodyStart)

		case '}':
			return nil, t.malformed(t.index, "unbalanced closing brace")

		default:
			t.addTokenWithDefaultPositionAndLength(tokenChar)
		}
	}

	t.addTokenWithDefaultLength(tokenEnd, t.index, t.index)

	return t.tokenList, nil
}

func (t *tokenizer) getNextCodePoint() {
	t.codePoint = t.input.At(t.nextIndex)
	t.nextIndex++
}

func (t *tokenizer) seekAndGetNextCodePoint(index int) {
	t.nextIndex = index
	t.getNextCodePoint()
}

func (t *tokenizer) addToken(tType tokenType, nextPosition, valuePosition, valueLength int) {
	t.tokenList = append(t.tokenList, token{
		tType: tType,
		index: t.index,
		value: t.input.Slice(valuePosition, valuePosition+valueLength),
	})
	t.index = nextPosition
}

func (t *tokenizer) addTokenWithDefaultLength(tType tokenType, nextPosition, valuePosition int) {
	t.addToken(tType, nextPosition, valuePosition, nextPosition-valuePosition)
}

func (t *tokenizer) addTokenWithDefaultPositionAndLength(tType tokenType) {
	t.addTokenWithDefaultLength(tType, t.nextIndex, t.index)
}

// malformed builds an error for the segment enclosing the code point at index.
func (t *tokenizer) malformed(index int, reason string) error {
	segment, start := segmentAround(t.input, index)

	return &MalformedPlaceholderError{Segment: segment, Offset: start, Reason: reason}
}

// segmentAround returns the separator-delimited segment containing index and
// the offset of its first code point.
func segmentAround(input *utf8string.String, index int) (string, int) {
	start := index
	for start > 0 && input.At(start-1) != '/' {
		start--
	}

	end := index
	for end < input.RuneCount() && input.At(end) != '/' {
		end++
	}

	return input.Slice(start, end), start
}

func isValidNameCodePoint(codePoint rune, first bool) bool {
	switch {
	case codePoint == '_',
		codePoint >= 'a' && codePoint <= 'z',
		codePoint >= 'A' && codePoint <= 'Z':
		return true
	case codePoint >= '0' && codePoint <= '9':
		return !first
	default:
		return false
	}
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}

	for i, c := range name {
		if !isValidNameCodePoint(c, i == 0) {
			return false
		}
	}

	return true
}
