// Package routepattern compiles route templates such as
// "/users/{id:int}/files/{rest:path}/" into anchored regular expressions with
// one named capture group per placeholder.
//
// A placeholder has the form {name:type} and fills a whole "/"-delimited
// segment. The type is one of the built-in converters: alpha, alnum, string,
// int, uuid and path. Only path may match the separator, so a path
// placeholder must end the route. Names start with a letter or an underscore
// followed by letters, digits and underscores, so {_id:int} is accepted.
//
// Literal text is matched exactly as written unless
// Options.CanonicalizeLiterals is set.
//
// Compiled routes are immutable and safe for concurrent use.
package routepattern

import (
	"fmt"
	"regexp"

	"golang.org/x/exp/slices"
)

// Route is a compiled route template.
type Route struct {
	template   string
	pattern    string
	regexp     *regexp.Regexp
	params     []Param
	groupIndex []int
	options    Options
}

// Compile parses template with the default options.
func Compile(template string) (*Route, error) {
	return CompileWithOptions(template, Options{})
}

// MustCompile is like Compile but panics if the template is invalid.
func MustCompile(template string) *Route {
	r, err := Compile(template)
	if err != nil {
		panic(fmt.Sprintf("routepattern: Compile(%q): %v", template, err))
	}

	return r
}

// CompileWithOptions parses template, checks it and builds its matcher.
// Errors are one of *MalformedPlaceholderError, *UnknownConverterError,
// *PathNotLastError and *DuplicatePlaceholderNameError.
func CompileWithOptions(template string, options Options) (*Route, error) {
	encode := verbatim
	if options.CanonicalizeLiterals {
		encode = canonicalizePathname
	}

	sl, err := parseTemplate(template, encode)
	if err != nil {
		return nil, err
	}

	if err := sl.validate(); err != nil {
		return nil, err
	}

	pattern, params := sl.generateRegularExpressionAndParamList(options)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}

	groupIndex := make([]int, len(params))
	for i, p := range params {
		groupIndex[i] = re.SubexpIndex(p.Name)
	}

	return &Route{
		template:   template,
		pattern:    pattern,
		regexp:     re,
		params:     params,
		groupIndex: groupIndex,
		options:    options,
	}, nil
}

// Template returns the template the route was compiled from.
func (r *Route) Template() string {
	return r.template
}

// Pattern returns the regular expression source of the route.
func (r *Route) Pattern() string {
	return r.pattern
}

// Params returns the placeholders in the order they appear in the template.
func (r *Route) Params() []Param {
	return slices.Clone(r.params)
}

// Regexp returns the compiled matcher. It must not be modified.
func (r *Route) Regexp() *regexp.Regexp {
	return r.regexp
}

// Options returns the options the route was compiled with.
func (r *Route) Options() Options {
	return r.options
}

// String returns the template.
func (r *Route) String() string {
	return r.template
}

// Test reports whether path matches the whole route.
func (r *Route) Test(path string) bool {
	return r.regexp.MatchString(path)
}

// Exec matches path against the route and returns the captured values, or
// nil if path does not match.
func (r *Route) Exec(path string) *Result {
	m := r.regexp.FindStringSubmatch(path)
	if m == nil {
		return nil
	}

	result := &Result{
		Input:  path,
		Values: make([]Value, len(r.params)),
		Groups: make(map[string]string, len(r.params)),
	}

	for i, p := range r.params {
		raw := m[r.groupIndex[i]]
		result.Values[i] = Value{Param: p, Raw: raw}
		result.Groups[p.Name] = raw
	}

	return result
}

// TestURL reports whether the canonical pathname of the absolute URL rawURL
// matches the route.
func (r *Route) TestURL(rawURL string) (bool, error) {
	pathname, err := RequestPathname(rawURL)
	if err != nil {
		return false, err
	}

	return r.Test(pathname), nil
}

// ExecURL is like Exec but matches the canonical pathname of the absolute
// URL rawURL. An error is only returned when rawURL cannot be parsed.
func (r *Route) ExecURL(rawURL string) (*Result, error) {
	pathname, err := RequestPathname(rawURL)
	if err != nil {
		return nil, err
	}

	return r.Exec(pathname), nil
}
