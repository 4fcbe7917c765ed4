package integration

import (
	"fmt"
	"sort"
)

// Config is the result of parsing one command invocation: an immutable
// mapping from option name to value. A Config is created fresh by a parse
// function, consumed exactly once by the matching run function, then
// discarded; it is never cached or shared across invocations.
type Config struct {
	fields map[string]any
}

// NewConfig creates a Config from the given fields. The map is copied so
// later caller mutation cannot leak into the invocation.
func NewConfig(fields map[string]any) *Config {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Config{fields: copied}
}

// Len returns the number of fields.
func (c *Config) Len() int {
	return len(c.fields)
}

// Has reports whether a field is present.
func (c *Config) Has(name string) bool {
	_, ok := c.fields[name]
	return ok
}

// Value returns a field's raw value.
func (c *Config) Value(name string) (any, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// Fields returns all field names, sorted.
func (c *Config) Fields() []string {
	names := make([]string, 0, len(c.fields))
	for k := range c.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Missing returns the subset of required names absent from the Config,
// in the order given.
func (c *Config) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !c.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// String extracts a string field.
func (c *Config) String(name string) (string, error) {
	v, ok := c.fields[name]
	if !ok {
		return "", fmt.Errorf("config field %q not set", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("config field %q is %T, want string", name, v)
	}
	return s, nil
}

// Bool extracts a boolean field.
func (c *Config) Bool(name string) (bool, error) {
	v, ok := c.fields[name]
	if !ok {
		return false, fmt.Errorf("config field %q not set", name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("config field %q is %T, want bool", name, v)
	}
	return b, nil
}

// Int extracts an integer field. JSON-decoded payloads carry numbers as
// float64, so integral floats are accepted as well.
func (c *Config) Int(name string) (int, error) {
	v, ok := c.fields[name]
	if !ok {
		return 0, fmt.Errorf("config field %q not set", name)
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("config field %q is not integral: %v", name, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("config field %q is %T, want integer", name, v)
	}
}

// Float extracts a floating-point field.
func (c *Config) Float(name string) (float64, error) {
	v, ok := c.fields[name]
	if !ok {
		return 0, fmt.Errorf("config field %q not set", name)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("config field %q is %T, want number", name, v)
	}
}

// Strings extracts a string-slice field, accepting both []string and
// []any holding strings.
func (c *Config) Strings(name string) ([]string, error) {
	v, ok := c.fields[name]
	if !ok {
		return nil, fmt.Errorf("config field %q not set", name)
	}

	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...), nil
	case []any:
		out := make([]string, 0, len(s))
		for i, elem := range s {
			str, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("config field %q element %d is %T, want string", name, i, elem)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("config field %q is %T, want string list", name, v)
	}
}

// Map returns a copy of the underlying fields, for handing a Config across
// a serialization boundary.
func (c *Config) Map() map[string]any {
	copied := make(map[string]any, len(c.fields))
	for k, v := range c.fields {
		copied[k] = v
	}
	return copied
}
