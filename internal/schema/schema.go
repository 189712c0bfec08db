// Package schema derives JSON schemas from Go argument structs and
// decodes wire payloads into fresh values of those structs.
package schema

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
)

type cacheKey struct {
	typ             reflect.Type
	allowAdditional bool
}

// Reflected schemas are immutable once built; callers share the cached
// pointer and must not mutate it.
var schemaCache sync.Map // cacheKey -> *jsonschema.Schema

// ForType reflects the JSON schema for a struct type. Pointer types are
// dereferenced first. allowAdditional controls whether payloads may carry
// properties beyond the declared fields.
func ForType(t reflect.Type, allowAdditional bool) (*jsonschema.Schema, error) {
	t = deref(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct", t)
	}

	key := cacheKey{typ: t, allowAdditional: allowAdditional}
	if s, ok := schemaCache.Load(key); ok {
		return s.(*jsonschema.Schema), nil
	}

	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: allowAdditional,
	}
	s := r.Reflect(reflect.New(t).Interface())
	s.Version = ""

	actual, _ := schemaCache.LoadOrStore(key, s)
	return actual.(*jsonschema.Schema), nil
}

// Property describes one named property of a reflected object schema.
type Property struct {
	Name        string
	Description string
	Required    bool
}

// Properties lists a reflected object schema's properties in declaration
// order, with the required set resolved per property.
func Properties(s *jsonschema.Schema) []Property {
	if s == nil || s.Properties == nil {
		return nil
	}
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	var props []Property
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		p := Property{Name: pair.Key, Required: required[pair.Key]}
		if pair.Value != nil {
			p.Description = pair.Value.Description
		}
		props = append(props, p)
	}
	return props
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
