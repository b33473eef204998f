package routepattern_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/ChillFish8/routepattern"
)

type Entry struct {
	Template        string        `json:"template"`
	Options         *EntryOptions `json:"options"`
	ExpectedPattern *string       `json:"expected_pattern"`
	ExpectedError   string        `json:"expected_error"`
	ExpectedParams  [][2]string   `json:"expected_params"`
	Matches         []EntryMatch  `json:"matches"`
}

type EntryOptions struct {
	IgnoreCase           bool                             `json:"ignore_case"`
	TrailingSlash        routepattern.TrailingSlashPolicy `json:"trailing_slash"`
	CanonicalizeLiterals bool                             `json:"canonicalize_literals"`
}

type EntryMatch struct {
	Input  string            `json:"input"`
	Groups map[string]string `json:"groups"`
}

func TestRoutePattern(t *testing.T) {
	content, err := os.ReadFile("testdata/routepatterntestdata.json")
	if err != nil {
		t.Fatal(err)
	}

	var data []Entry
	if err := json.Unmarshal(content, &data); err != nil {
		t.Fatal(err)
	}

	for i, entry := range data {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			var options routepattern.Options
			if entry.Options != nil {
				options.IgnoreCase = entry.Options.IgnoreCase
				options.TrailingSlash = entry.Options.TrailingSlash
				options.CanonicalizeLiterals = entry.Options.CanonicalizeLiterals
			}

			route, err := routepattern.CompileWithOptions(entry.Template, options)

			if entry.ExpectedError != "" {
				if got := errorKind(err); got != entry.ExpectedError {
					t.Logf("want %s for %q; got %v", entry.ExpectedError, entry.Template, err)
					t.FailNow()
				}

				return
			}

			if err != nil {
				t.Logf("unexpected error: %s (%#v)", err, entry)
				t.FailNow()
			}

			if entry.ExpectedPattern != nil && *entry.ExpectedPattern != route.Pattern() {
				t.Logf("pattern: want %q, got %q", *entry.ExpectedPattern, route.Pattern())
				t.FailNow()
			}

			if entry.ExpectedParams != nil {
				assertParams(t, entry.ExpectedParams, route.Params())
			}

			for _, m := range entry.Matches {
				result := route.Exec(m.Input)
				if route.Test(m.Input) != (result != nil) {
					t.Logf("Test and Exec disagree for %q", m.Input)
					t.FailNow()
				}

				if m.Groups == nil {
					if result != nil {
						t.Logf("%q must not match %q; got %#v", m.Input, route.Pattern(), result.Groups)
						t.Fail()
					}

					continue
				}

				if result == nil {
					t.Logf("%q must match %q", m.Input, route.Pattern())
					t.Fail()

					continue
				}

				if len(m.Groups) != len(result.Groups) || (len(m.Groups) > 0 && !reflect.DeepEqual(m.Groups, result.Groups)) {
					t.Logf("groups for %q: want %#v; got %#v", m.Input, m.Groups, result.Groups)
					t.Fail()
				}
			}
		})
	}
}

func errorKind(err error) string {
	var (
		malformed *routepattern.MalformedPlaceholderError
		unknown   *routepattern.UnknownConverterError
		pathLast  *routepattern.PathNotLastError
		duplicate *routepattern.DuplicatePlaceholderNameError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &malformed):
		return "MalformedPlaceholderError"
	case errors.As(err, &unknown):
		return "UnknownConverterError"
	case errors.As(err, &pathLast):
		return "PathNotLastError"
	case errors.As(err, &duplicate):
		return "DuplicatePlaceholderNameError"
	default:
		return fmt.Sprintf("%T", err)
	}
}

func assertParams(t *testing.T, expected [][2]string, params []routepattern.Param) {
	t.Helper()

	if len(expected) != len(params) {
		t.Fatalf("params: want %v; got %v", expected, params)
	}

	for i, p := range params {
		if p.Name != expected[i][0] || p.Converter != expected[i][1] {
			t.Fatalf("param #%d: want %v; got %+v", i, expected[i], p)
		}
	}
}

var goodValues = map[string]string{
	"alpha":  "foo",
	"alnum":  "f00",
	"string": "h3llo-w0rld",
	"int":    "13058",
	"path":   "world/hello.txt",
	"uuid":   "6a2f41a3-c54c-fce8-32d2-0324e1c32e22",
}

var badValues = map[string]string{
	"alpha":  "f0o",
	"alnum":  "f00-bbsf",
	"string": "h3l/lo-/w0rld",
	"int":    "13A58",
	"path":   "world/hello.txt",
	"uuid":   "6a2f41afa3-c54c-fsfce8-32d2-0324ea1c32e22",
}

func permutations(names []string) [][]string {
	if len(names) <= 1 {
		return [][]string{append([]string(nil), names...)}
	}

	var result [][]string
	for i := range names {
		rest := make([]string, 0, len(names)-1)
		rest = append(rest, names[:i]...)
		rest = append(rest, names[i+1:]...)

		for _, p := range permutations(rest) {
			result = append(result, append([]string{names[i]}, p...))
		}
	}

	return result
}

func TestConverterPermutations(t *testing.T) {
	var names []string
	for _, c := range routepattern.Converters() {
		names = append(names, c.Name)
	}

	const letters = "abcdef"
	compiled := 0

	for _, combo := range permutations(names) {
		var route, good, bad strings.Builder
		route.WriteString("/")
		good.WriteString("/")
		bad.WriteString("/")

		for i, name := range combo {
			fmt.Fprintf(&route, "abc/{%c:%s}/", letters[i], name)
			fmt.Fprintf(&good, "abc/%s/", goodValues[name])
			fmt.Fprintf(&bad, "abc/%s/", badValues[name])
		}

		r, err := routepattern.Compile(route.String())

		pathLast := combo[len(combo)-1] == "path"
		if !pathLast {
			var e *routepattern.PathNotLastError
			if !errors.As(err, &e) {
				t.Fatalf("%q: want PathNotLastError; got %v", route.String(), err)
			}
			if e.Name != string(letters[indexOf(combo, "path")]) {
				t.Fatalf("%q: error names %q", route.String(), e.Name)
			}

			continue
		}

		if err != nil {
			t.Fatalf("%q: unexpected error %v", route.String(), err)
		}
		compiled++

		result := r.Exec(good.String())
		if result == nil {
			t.Fatalf("%q (%s) must match %q", route.String(), r.Pattern(), good.String())
		}

		for i, v := range result.Values {
			if v.Param.Name != string(letters[i]) || v.Raw != goodValues[combo[i]] {
				t.Fatalf("%q: value #%d: got %+v", route.String(), i, v)
			}
		}

		if r.Test(bad.String()) {
			t.Fatalf("%q (%s) must not match %q", route.String(), r.Pattern(), bad.String())
		}
	}

	if compiled != 120 {
		t.Fatalf("want 120 compiled routes; got %d", compiled)
	}
}

func indexOf(s []string, v string) int {
	for i, e := range s {
		if e == v {
			return i
		}
	}

	return -1
}

func TestRoundTripEveryConverter(t *testing.T) {
	for _, c := range routepattern.Converters() {
		r := routepattern.MustCompile("/{x:" + c.Name + "}/")

		result := r.Exec("/" + goodValues[c.Name] + "/")
		if result == nil {
			t.Fatalf("%s: %q must match", c.Name, goodValues[c.Name])
		}
		if v, _ := result.Get("x"); v != goodValues[c.Name] {
			t.Fatalf("%s: want %q; got %q", c.Name, goodValues[c.Name], v)
		}

		if !c.PathLike && r.Test("/"+badValues[c.Name]+"/") {
			t.Fatalf("%s: %q must not match", c.Name, badValues[c.Name])
		}
	}
}

func TestMalformedPlaceholderError(t *testing.T) {
	tests := []struct {
		template string
		segment  string
		offset   int
	}{
		{"/users/{id}/", "{id}", 7},
		{"/ü/{id}/", "{id}", 3},
		{"/a/{id:int", "{id:int", 3},
		{"/a/b}/", "b}", 3},
		{"/a/x{id:int}/c/", "x{id:int}", 3},
	}

	for _, tc := range tests {
		_, err := routepattern.Compile(tc.template)

		var e *routepattern.MalformedPlaceholderError
		if !errors.As(err, &e) {
			t.Fatalf("%q: want MalformedPlaceholderError; got %v", tc.template, err)
		}
		if e.Segment != tc.segment || e.Offset != tc.offset {
			t.Fatalf("%q: want segment %q at %d; got %q at %d", tc.template, tc.segment, tc.offset, e.Segment, e.Offset)
		}
		if e.Reason == "" {
			t.Fatalf("%q: empty reason", tc.template)
		}
	}
}

func TestUnknownConverterError(t *testing.T) {
	_, err := routepattern.Compile("/a/{id:float}/")

	var e *routepattern.UnknownConverterError
	if !errors.As(err, &e) {
		t.Fatalf("want UnknownConverterError; got %v", err)
	}
	if e.Name != "float" || e.Offset != 3 {
		t.Fatalf("got %+v", e)
	}

	if _, err := routepattern.LookupConverter("float"); !errors.As(err, &e) || e.Offset != -1 {
		t.Fatalf("LookupConverter: got %v", err)
	}

	c, err := routepattern.LookupConverter("path")
	if err != nil || !c.PathLike {
		t.Fatalf("LookupConverter(path): got %+v, %v", c, err)
	}
}

func TestPathNotLastError(t *testing.T) {
	_, err := routepattern.Compile("/{a:int}/{rest:path}/meta/")

	var e *routepattern.PathNotLastError
	if !errors.As(err, &e) {
		t.Fatalf("want PathNotLastError; got %v", err)
	}
	if e.Name != "rest" || e.Index != 1 || e.Offset != 9 {
		t.Fatalf("got %+v", e)
	}

	if _, err := routepattern.Compile("/{a:int}/meta/{rest:path}/"); err != nil {
		t.Fatalf("moving path last must succeed; got %v", err)
	}
}

func TestDuplicatePlaceholderNameError(t *testing.T) {
	_, err := routepattern.Compile("/{id:int}/x/{id:alpha}/")

	var e *routepattern.DuplicatePlaceholderNameError
	if !errors.As(err, &e) {
		t.Fatalf("want DuplicatePlaceholderNameError; got %v", err)
	}
	if e.Name != "id" || e.Offset != 12 {
		t.Fatalf("got %+v", e)
	}
}

func TestParamsOrder(t *testing.T) {
	r := routepattern.MustCompile("/{z:int}/{a:alpha}/{m:uuid}/{b:path}")

	want := []routepattern.Param{
		{Name: "z", Converter: "int"},
		{Name: "a", Converter: "alpha"},
		{Name: "m", Converter: "uuid"},
		{Name: "b", Converter: "path"},
	}
	if !reflect.DeepEqual(want, r.Params()) {
		t.Fatalf("want %v; got %v", want, r.Params())
	}

	r.Params()[0].Name = "changed"
	if r.Params()[0].Name != "z" {
		t.Fatal("Params must return a copy")
	}
}

func TestVerbatimLiterals(t *testing.T) {
	tests := []struct {
		template string
		path     string
	}{
		{"/a/../{x:int}/", "/a/../1/"},
		{"/a/./{x:int}/", "/a/./1/"},
		{"/faq?/{x:int}/", "/faq?/1/"},
		{"/ä/{x:int}/", "/ä/1/"},
		{"/a b/{x:int}", "/a b/1"},
		{"/*.txt/{x:int}", "/*.txt/1"},
	}

	for _, tc := range tests {
		r := routepattern.MustCompile(tc.template)
		if !r.Test(tc.path) {
			t.Errorf("%q (%s) must match %q", tc.template, r.Pattern(), tc.path)
		}
	}

	if routepattern.MustCompile("/a/../{x:int}/").Test("/5/") {
		t.Error("dot segments must not be resolved")
	}
}

func TestCanonicalizeLiterals(t *testing.T) {
	options := routepattern.Options{CanonicalizeLiterals: true}

	tests := []struct {
		template string
		path     string
		match    bool
	}{
		{"/a b/{x:int}", "/a%20b/1", true},
		{"/a b/{x:int}", "/a b/1", false},
		{"/ä/{x:int}/", "/%C3%A4/1/", true},
		{"/faq?/{x:int}/", "/faq%3F/1/", true},
		{"/faq?/{x:int}/", "/faq?/1/", false},
		{"/a/../{x:int}/", "/a/../1/", true},
		{"/a/../{x:int}/", "/1/", false},
		{"/a/./{x:int}/", "/a/./1/", true},
		{"/a/./{x:int}/", "/a/1/", false},
		{"/v1.0/{x:int}", "/v1.0/1", true},
	}

	for _, tc := range tests {
		r, err := routepattern.CompileWithOptions(tc.template, options)
		if err != nil {
			t.Fatal(err)
		}

		if r.Test(tc.path) != tc.match {
			t.Errorf("%q (%s) against %q: want %v", tc.template, r.Pattern(), tc.path, tc.match)
		}
	}

	r, err := routepattern.CompileWithOptions("/ä/{x:int}/", options)
	if err != nil {
		t.Fatal(err)
	}

	result, err := r.ExecURL("https://example.com/ä/7/")
	if err != nil {
		t.Fatal(err)
	}
	if result == nil || result.Groups["x"] != "7" {
		t.Fatalf("got %#v", result)
	}
}

func TestRouteAccessors(t *testing.T) {
	options := routepattern.Options{IgnoreCase: true, TrailingSlash: routepattern.TrailingSlashOptional}

	r, err := routepattern.CompileWithOptions("/users/{id:int}/", options)
	if err != nil {
		t.Fatal(err)
	}

	if r.Options() != options {
		t.Fatalf("want %+v; got %+v", options, r.Options())
	}
	if r.Regexp().String() != r.Pattern() {
		t.Fatalf("Regexp %q and Pattern %q differ", r.Regexp(), r.Pattern())
	}
	if r.String() != "/users/{id:int}/" || r.Template() != r.String() {
		t.Fatalf("got %q", r.String())
	}
}

func TestExecURL(t *testing.T) {
	r := routepattern.MustCompile("/files/{rest:path}")

	result, err := r.ExecURL("https://example.com/files/a/b.txt?download=1#top")
	if err != nil {
		t.Fatal(err)
	}
	if result == nil || result.Groups["rest"] != "a/b.txt" {
		t.Fatalf("got %#v", result)
	}

	ok, err := r.TestURL("https://example.com/other/a")
	if err != nil || ok {
		t.Fatalf("got %v, %v", ok, err)
	}

	if _, err := r.ExecURL("not a url"); !errors.Is(err, routepattern.InvalidURLError) {
		t.Fatalf("want InvalidURLError; got %v", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile must panic on an invalid template")
		}
	}()

	routepattern.MustCompile("/{x:nope}/")
}

func TestTrailingSlashPolicyText(t *testing.T) {
	var p routepattern.TrailingSlashPolicy
	if err := p.UnmarshalText([]byte("optional")); err != nil || p != routepattern.TrailingSlashOptional {
		t.Fatalf("got %v, %v", p, err)
	}

	b, err := p.MarshalText()
	if err != nil || string(b) != "optional" {
		t.Fatalf("got %q, %v", b, err)
	}

	if err := p.UnmarshalText([]byte("sometimes")); !errors.Is(err, routepattern.InvalidTrailingSlashError) {
		t.Fatalf("want InvalidTrailingSlashError; got %v", err)
	}
}

func TestConcurrentExec(t *testing.T) {
	r := routepattern.MustCompile("/users/{id:int}/files/{rest:path}/")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				path := fmt.Sprintf("/users/%d/files/%d/x/", i, j)
				result := r.Exec(path)
				if result == nil || result.Groups["id"] != fmt.Sprint(i) || result.Groups["rest"] != fmt.Sprintf("%d/x", j) {
					t.Errorf("%q: got %#v", path, result)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
