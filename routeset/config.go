package routeset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ChillFish8/routepattern"
)

var (
	MissingTemplateError    = errors.New("missing template")
	DuplicateRouteNameError = errors.New("duplicate route name")
)

// Config is the content of a route file.
type Config struct {
	IgnoreCase    bool                             `yaml:"ignore_case"`
	TrailingSlash routepattern.TrailingSlashPolicy `yaml:"trailing_slash"`
	// CanonicalizeLiterals makes routes match the percent-encoded pathnames
	// returned by MatchURL.
	CanonicalizeLiterals bool `yaml:"canonicalize_literals"`
	// SkipInvalid logs and drops routes that fail to compile instead of
	// rejecting the whole file.
	SkipInvalid bool          `yaml:"skip_invalid"`
	Routes      []RouteConfig `yaml:"routes"`
}

type RouteConfig struct {
	// Name defaults to the template.
	Name     string `yaml:"name"`
	Template string `yaml:"template"`

	// Per-route overrides of the file-level options.
	IgnoreCase    *bool                             `yaml:"ignore_case"`
	TrailingSlash *routepattern.TrailingSlashPolicy `yaml:"trailing_slash"`
}

// Options resolves the compile options of rc against the file-level ones.
func (rc RouteConfig) Options(cfg *Config) routepattern.Options {
	options := routepattern.Options{
		IgnoreCase:           cfg.IgnoreCase,
		TrailingSlash:        cfg.TrailingSlash,
		CanonicalizeLiterals: cfg.CanonicalizeLiterals,
	}
	if rc.IgnoreCase != nil {
		options.IgnoreCase = *rc.IgnoreCase
	}
	if rc.TrailingSlash != nil {
		options.TrailingSlash = *rc.TrailingSlash
	}

	return options
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b)
}

// Parse decodes a route file. Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	for i := range cfg.Routes {
		cfg.Routes[i].Template = strings.TrimSpace(cfg.Routes[i].Template)
		if strings.TrimSpace(cfg.Routes[i].Name) == "" {
			cfg.Routes[i].Name = cfg.Routes[i].Template
		}
	}
}

func applyEnvOverrides(cfg *Config) error {
	cfg.SkipInvalid = envBool("ROUTEPATTERN_SKIP_INVALID", cfg.SkipInvalid)
	cfg.IgnoreCase = envBool("ROUTEPATTERN_IGNORE_CASE", cfg.IgnoreCase)
	cfg.CanonicalizeLiterals = envBool("ROUTEPATTERN_CANONICALIZE_LITERALS", cfg.CanonicalizeLiterals)
	if v := strings.TrimSpace(os.Getenv("ROUTEPATTERN_TRAILING_SLASH")); v != "" {
		if err := cfg.TrailingSlash.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("ROUTEPATTERN_TRAILING_SLASH: %w", err)
		}
	}

	return nil
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

// validate only checks the file structure. Templates are checked when the
// set is built.
func validate(cfg *Config) error {
	seen := make(map[string]int, len(cfg.Routes))
	for i, rc := range cfg.Routes {
		if rc.Template == "" {
			return fmt.Errorf("routes[%d]: %w", i, MissingTemplateError)
		}

		if j, ok := seen[rc.Name]; ok {
			return fmt.Errorf("routes[%d]: %w %q (first used by routes[%d])", i, DuplicateRouteNameError, rc.Name, j)
		}
		seen[rc.Name] = i
	}

	return nil
}
