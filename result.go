package routepattern

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Result holds the values captured by a successful match.
type Result struct {
	Input string
	// Values are ordered like the route's Params.
	Values []Value
	Groups map[string]string
}

// Value is the raw text captured for one placeholder.
type Value struct {
	Param Param
	Raw   string
}

// Get returns the raw value captured for the placeholder name.
func (r *Result) Get(name string) (string, bool) {
	v, ok := r.Groups[name]

	return v, ok
}

// Decode converts the raw text to the placeholder's native type: uint64 for
// int, uuid.UUID for uuid and string for every other converter.
func (v Value) Decode() (any, error) {
	switch v.Param.Converter {
	case "int":
		n, err := strconv.ParseUint(v.Raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", v.Param.Name, err)
		}

		return n, nil

	case "uuid":
		id, err := uuid.Parse(v.Raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", v.Param.Name, err)
		}

		return id, nil

	default:
		return v.Raw, nil
	}
}

// Decode decodes every captured value, keyed by placeholder name.
func (r *Result) Decode() (map[string]any, error) {
	decoded := make(map[string]any, len(r.Values))
	for _, v := range r.Values {
		d, err := v.Decode()
		if err != nil {
			return nil, err
		}

		decoded[v.Param.Name] = d
	}

	return decoded, nil
}
