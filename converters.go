package routepattern

import "golang.org/x/exp/slices"

// Converter describes which text a placeholder of a given type accepts.
type Converter struct {
	Name string
	// Pattern is an unanchored RE2 fragment without capturing groups.
	Pattern string
	// PathLike converters may match the path separator. Only "path" is.
	PathLike bool

	// lazyPattern is used instead of Pattern when the match must not swallow
	// an optional trailing separator.
	lazyPattern string
}

const hexDigit = "[0-9a-fA-F]"

var builtinConverters = []Converter{
	{Name: "alpha", Pattern: "[A-Za-z]+"},
	{Name: "alnum", Pattern: "[A-Za-z0-9]+"},
	{Name: "string", Pattern: "[^/]+"},
	{Name: "int", Pattern: "[0-9]+"},
	{Name: "path", Pattern: "(?s:.+)", PathLike: true, lazyPattern: "(?s:.+?)"},
	{
		Name:    "uuid",
		Pattern: hexDigit + "{8}-" + hexDigit + "{4}-" + hexDigit + "{4}-" + hexDigit + "{4}-" + hexDigit + "{12}",
	},
}

var converterIndex = func() map[string]int {
	m := make(map[string]int, len(builtinConverters))
	for i, c := range builtinConverters {
		m[c.Name] = i
	}

	return m
}()

// LookupConverter returns the built-in converter registered under name.
func LookupConverter(name string) (Converter, error) {
	i, ok := converterIndex[name]
	if !ok {
		return Converter{}, &UnknownConverterError{Name: name, Offset: -1}
	}

	return builtinConverters[i], nil
}

// Converters returns the built-in converters in declaration order.
func Converters() []Converter {
	return slices.Clone(builtinConverters)
}

func (c Converter) fragment(lazy bool) string {
	if lazy && c.lazyPattern != "" {
		return c.lazyPattern
	}

	return c.Pattern
}
