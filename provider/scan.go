package provider

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

// decl is one marker declaration resolved against its candidate: the
// parsed tag configuration plus the bound method value.
type decl struct {
	cfg   annotations.Config
	fn    reflect.Value
	owner reflect.Type
}

// scanMarkers collects the declarations of one marker kind across all
// candidates. Tag and method-resolution problems are configuration
// errors; signature checks happen later, per kind.
func scanMarkers(objects []any, marker reflect.Type) ([]decl, error) {
	var decls []decl
	for _, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("scan: %w", ErrNilCandidate)
		}
		rv := reflect.ValueOf(obj)
		st := rv.Type()
		if st.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, fmt.Errorf("scan %s: %w", st, ErrNilCandidate)
			}
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			return nil, fmt.Errorf("scan %s: %w", rv.Type(), ErrInvalidCandidate)
		}
		found, err := markersOf(st, marker)
		if err != nil {
			return nil, err
		}
		for _, cfg := range found {
			fn := rv.MethodByName(cfg.Method)
			if !fn.IsValid() {
				return nil, fmt.Errorf("scan %s: method %q: %w", rv.Type(), cfg.Method, ErrMissingMethod)
			}
			decls = append(decls, decl{cfg: cfg, fn: fn, owner: rv.Type()})
		}
	}
	return decls, nil
}

// markersOf walks a struct type, including embedded structs, for blank
// fields of the marker type and parses their tags.
func markersOf(st reflect.Type, marker reflect.Type) ([]annotations.Config, error) {
	var cfgs []annotations.Config
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Anonymous {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				nested, err := markersOf(et, marker)
				if err != nil {
					return nil, err
				}
				cfgs = append(cfgs, nested...)
			}
			continue
		}
		if f.Name != "_" || f.Type != marker {
			continue
		}
		cfg, err := annotations.ParseTag(f.Tag)
		if err != nil {
			return nil, fmt.Errorf("scan %s field %d: %w: %v", st, i, ErrBadTag, err)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// skip records a silently skipped method at debug level.
func skip(log *slog.Logger, kind string, d decl) {
	log.Debug("skipping method with unsupported signature",
		slog.String("kind", kind),
		slog.String("type", d.owner.String()),
		slog.String("method", d.cfg.Method),
	)
}

// defaultName derives a protocol name from a method name: the leading
// run of upper-case letters is lowered, so Add becomes add and URLFor
// becomes urlFor.
func defaultName(method string) string {
	if method == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(method)
	rest := method[size:]
	if next, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(next) {
		return string(unicode.ToLower(r)) + rest
	}
	// Consecutive capitals form an initialism; lower all but the last
	// before a following lower-case letter.
	var b strings.Builder
	runes := []rune(method)
	i := 0
	for i < len(runes) && unicode.IsUpper(runes[i]) {
		i++
	}
	if i < len(runes) {
		i--
	}
	for j := 0; j < i; j++ {
		b.WriteRune(unicode.ToLower(runes[j]))
	}
	b.WriteString(string(runes[i:]))
	return b.String()
}
