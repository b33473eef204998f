package routepattern

import (
	"errors"
	"fmt"
)

var InvalidTrailingSlashError = errors.New("invalid trailing slash policy")

// Options controls how a template is turned into a regular expression.
// The zero value is case-sensitive, treats the trailing slash literally and
// matches literal text exactly as written.
type Options struct {
	IgnoreCase    bool
	TrailingSlash TrailingSlashPolicy
	// CanonicalizeLiterals percent-encodes literal text the way a URL parser
	// encodes a pathname, so the route matches the paths seen by ExecURL.
	// Dot segments are kept as written.
	CanonicalizeLiterals bool
}

// TrailingSlashPolicy decides what happens to the final "/" of a template.
type TrailingSlashPolicy uint8

const (
	// TrailingSlashStrict matches the trailing slash exactly as written: "/a/" does not match "/a".
	TrailingSlashStrict TrailingSlashPolicy = iota
	// TrailingSlashOptional accepts the path with or without a final slash.
	TrailingSlashOptional
)

func (p TrailingSlashPolicy) String() string {
	switch p {
	case TrailingSlashStrict:
		return "strict"
	case TrailingSlashOptional:
		return "optional"
	default:
		return fmt.Sprintf("TrailingSlashPolicy(%d)", uint8(p))
	}
}

func (p TrailingSlashPolicy) MarshalText() ([]byte, error) {
	if p > TrailingSlashOptional {
		return nil, fmt.Errorf("%w: %d", InvalidTrailingSlashError, uint8(p))
	}

	return []byte(p.String()), nil
}

func (p *TrailingSlashPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "strict":
		*p = TrailingSlashStrict
	case "optional":
		*p = TrailingSlashOptional
	default:
		return fmt.Errorf("%w: %q", InvalidTrailingSlashError, text)
	}

	return nil
}
