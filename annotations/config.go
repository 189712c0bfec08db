package annotations

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Config holds the static configuration parsed from a marker field's
// struct tag. Which keys are meaningful depends on the marker kind; keys
// that were absent from the tag are left at their zero value (pointer
// fields stay nil so absence is distinguishable from an explicit false
// or zero).
type Config struct {
	// Method names the exported method on the candidate that the marker
	// declares. Always required.
	Method string

	// Clients lists the target client identifiers the resulting
	// specification is routed to. Empty means every client.
	Clients []string

	Name        string
	Title       string
	Description string

	// URI is a concrete URI for resources, a URI template for resource
	// templates, and the template reference for resource completions.
	URI string

	// Ref is the completion reference kind, "prompt" or "resource".
	Ref string

	// Argument restricts a completion handler to a single argument name.
	Argument string

	MIMEType string

	// Audience and Priority populate resource annotations.
	Audience []string
	Priority *float64

	// Tool behavior hints.
	Destructive *bool
	Idempotent  *bool
	OpenWorld   *bool
	ReadOnly    *bool
}

// ParseTag reads a marker field's struct tag into a Config. It validates
// value syntax only (floats, bools, the ref kind); kind-specific
// requirements such as "resources need a uri" are enforced by the
// provider that owns the marker.
func ParseTag(tag reflect.StructTag) (Config, error) {
	cfg := Config{
		Method:      tag.Get("method"),
		Name:        tag.Get("name"),
		Title:       tag.Get("title"),
		Description: tag.Get("description"),
		URI:         tag.Get("uri"),
		Argument:    tag.Get("argument"),
		MIMEType:    tag.Get("mimeType"),
		Clients:     splitList(tag.Get("clients")),
		Audience:    splitList(tag.Get("audience")),
	}

	if cfg.Method == "" {
		return Config{}, fmt.Errorf("tag is missing the method key")
	}

	if ref, ok := tag.Lookup("ref"); ok {
		switch ref {
		case "prompt", "resource":
			cfg.Ref = ref
		default:
			return Config{}, fmt.Errorf("ref must be %q or %q, got %q", "prompt", "resource", ref)
		}
	}

	if raw, ok := tag.Lookup("priority"); ok {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("priority %q is not a number", raw)
		}
		cfg.Priority = &f
	}

	var err error
	if cfg.Destructive, err = boolKey(tag, "destructive"); err != nil {
		return Config{}, err
	}
	if cfg.Idempotent, err = boolKey(tag, "idempotent"); err != nil {
		return Config{}, err
	}
	if cfg.OpenWorld, err = boolKey(tag, "openWorld"); err != nil {
		return Config{}, err
	}
	if cfg.ReadOnly, err = boolKey(tag, "readOnly"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func boolKey(tag reflect.StructTag, key string) (*bool, error) {
	raw, ok := tag.Lookup(key)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %q is not a bool", key, raw)
	}
	return &b, nil
}

// splitList splits a comma-separated tag value, trimming whitespace and
// dropping empty entries. Returns nil for an empty value so callers can
// treat absence and emptiness alike.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
