package routepattern

type token struct {
	tType tokenType
	index int
	value string
}

type tokenType uint8

const (
	// tokenSeparator represents a U+002F (/) code point.
	tokenSeparator tokenType = iota
	// tokenPlaceholder represents a string of the form "{<body>}". The value holds the body without the braces.
	tokenPlaceholder
	// tokenChar represents a code point without any special syntactical meaning.
	tokenChar
	// tokenEnd represents the end of the template string.
	tokenEnd
)
