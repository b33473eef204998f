// Package routeset registers compiled route templates and looks up the
// first route matching a request path.
//
// A Set is built once from a Config and never modified, so it can be shared
// between goroutines. Reloading routes means building a new Set.
package routeset

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ChillFish8/routepattern"
)

// Set is an ordered list of named, compiled routes.
type Set struct {
	routes  []namedRoute
	byName  map[string]int
	skipped []error
}

type namedRoute struct {
	name  string
	route *routepattern.Route
}

// Match is the outcome of a successful lookup.
type Match struct {
	Name   string
	Route  *routepattern.Route
	Result *routepattern.Result
}

// New compiles every route of cfg. Unless cfg.SkipInvalid is set, any
// invalid template makes New fail; the returned error joins one error per
// invalid route, each wrapping the compiler's typed error. If logger is nil,
// slog.Default() is used.
func New(cfg *Config, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Set{
		routes: make([]namedRoute, 0, len(cfg.Routes)),
		byName: make(map[string]int, len(cfg.Routes)),
	}

	var errs []error
	for _, rc := range cfg.Routes {
		route, err := routepattern.CompileWithOptions(rc.Template, rc.Options(cfg))
		if err != nil {
			err = fmt.Errorf("route %q: %w", rc.Name, err)

			if cfg.SkipInvalid {
				logger.Warn("skipping invalid route", "name", rc.Name, "template", rc.Template, "error", err)
				s.skipped = append(s.skipped, err)

				continue
			}

			errs = append(errs, err)

			continue
		}

		options := route.Options()
		logger.Debug("route compiled",
			"name", rc.Name,
			"template", rc.Template,
			"pattern", route.Pattern(),
			"ignore_case", options.IgnoreCase,
			"trailing_slash", options.TrailingSlash.String(),
			"canonicalize_literals", options.CanonicalizeLiterals,
		)

		s.byName[rc.Name] = len(s.routes)
		s.routes = append(s.routes, namedRoute{name: rc.Name, route: route})
	}

	if len(errs) > 0 {
		logger.Error("route registration failed", "invalid", len(errs), "total", len(cfg.Routes))

		return nil, errors.Join(errs...)
	}

	return s, nil
}

// Len returns the number of registered routes.
func (s *Set) Len() int {
	return len(s.routes)
}

// Names returns the route names in registration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.routes))
	for i, r := range s.routes {
		names[i] = r.name
	}

	return names
}

func (s *Set) Route(name string) (*routepattern.Route, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}

	return s.routes[i].route, true
}

// Skipped returns the errors of the routes dropped because of SkipInvalid.
func (s *Set) Skipped() []error {
	return append([]error(nil), s.skipped...)
}

// Match returns the first route, in registration order, matching path.
func (s *Set) Match(path string) (*Match, bool) {
	for _, r := range s.routes {
		if result := r.route.Exec(path); result != nil {
			return &Match{Name: r.name, Route: r.route, Result: result}, true
		}
	}

	return nil, false
}

// MatchURL is like Match for the canonical pathname of an absolute URL.
func (s *Set) MatchURL(rawURL string) (*Match, bool, error) {
	pathname, err := routepattern.RequestPathname(rawURL)
	if err != nil {
		return nil, false, err
	}

	m, ok := s.Match(pathname)

	return m, ok, nil
}
