package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
	"github.com/spring-ai-community/mcp-annotations-go/internal/schema"
)

var (
	toolMarker   = reflect.TypeOf(annotations.Tool{})
	callToolReq  = reflect.TypeOf((*mcp.CallToolRequest)(nil))
	callToolRes  = reflect.TypeOf((*mcp.CallToolResult)(nil))
	emptyArgType = reflect.TypeOf(struct{}{})
)

// ToolProvider adapts methods marked with annotations.Tool into tool
// specifications.
//
// Accepted inputs, after an optional leading context.Context: none, a
// single argument struct (or pointer to one), or *mcp.CallToolRequest.
// Accepted outputs: nothing, error, a value, (value, error), (string,
// error), or (*mcp.CallToolResult, error).
//
// The argument struct's JSON schema becomes the tool input schema;
// arguments are decoded strictly, and a payload that does not fit yields
// an isError result rather than a protocol error. A struct output value
// is likewise reflected into the tool's output schema and returned as
// structured content alongside its JSON text rendering.
type ToolProvider struct {
	objects []any
	opts    options
}

// NewToolProvider returns a provider scanning the given candidate values.
func NewToolProvider(objects []any, opts ...Option) *ToolProvider {
	return &ToolProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *ToolProvider) Specs() ([]ToolSpec, error) {
	decls, err := scanMarkers(p.objects, toolMarker)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var specs []ToolSpec
	for _, d := range decls {
		spec, ok, err := p.adapt(d)
		if err != nil {
			return nil, err
		}
		if !ok {
			skip(p.opts.log, "tool", d)
			continue
		}
		if seen[spec.Tool.Name] {
			return nil, fmt.Errorf("tool %q: %w", spec.Tool.Name, ErrDuplicateName)
		}
		seen[spec.Tool.Name] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

func (p *ToolProvider) adapt(d decl) (ToolSpec, bool, error) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok {
		return ToolSpec{}, false, nil
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok {
		return ToolSpec{}, false, nil
	}

	argType := emptyArgType
	raw := false
	switch len(ins) {
	case 0:
	case 1:
		switch {
		case ins[0] == callToolReq:
			raw = true
		case derefKind(ins[0]) == reflect.Struct:
			argType = ins[0]
		default:
			return ToolSpec{}, false, nil
		}
	default:
		return ToolSpec{}, false, nil
	}

	if raw && out != callToolRes {
		return ToolSpec{}, false, nil
	}

	name := d.cfg.Name
	if name == "" {
		name = defaultName(d.cfg.Method)
	}

	inSchema, err := schema.ForType(argType, false)
	if err != nil {
		return ToolSpec{}, false, fmt.Errorf("tool %q: input schema: %w", name, err)
	}
	tool := &mcp.Tool{
		Name:        name,
		Title:       d.cfg.Title,
		Description: d.cfg.Description,
		InputSchema: inSchema,
		Annotations: toolAnnotations(d.cfg),
	}

	structured := out != nil && out != callToolRes && isStructuredKind(out)
	if structured && derefKind(out) == reflect.Struct {
		outSchema, err := schema.ForType(out, false)
		if err != nil {
			return ToolSpec{}, false, fmt.Errorf("tool %q: output schema: %w", name, err)
		}
		tool.OutputSchema = outSchema
	}

	var handler mcp.ToolHandler
	if raw {
		handler = func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			outs, err := call(ctx, d.fn, wantsCtx, []reflect.Value{reflect.ValueOf(req)})
			if err != nil {
				return nil, err
			}
			res, _ := outs[0].Interface().(*mcp.CallToolResult)
			return res, callErr(outs, hasErr)
		}
	} else {
		fn, takesArg := d.fn, len(ins) == 1
		handler = func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args []reflect.Value
			if takesArg {
				av, err := schema.DecodeStrict(req.Params.Arguments, argType)
				if err != nil {
					return errorResult("invalid arguments: " + err.Error()), nil
				}
				args = []reflect.Value{av}
			}
			outs, err := call(ctx, fn, wantsCtx, args)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			if err := callErr(outs, hasErr); err != nil {
				return errorResult(err.Error()), nil
			}
			if out == nil {
				return &mcp.CallToolResult{Content: []mcp.Content{}}, nil
			}
			return valueResult(outs[0].Interface(), structured)
		}
	}

	return ToolSpec{Clients: d.cfg.Clients, Tool: tool, Handler: handler}, true, nil
}

func toolAnnotations(cfg annotations.Config) *mcp.ToolAnnotations {
	if cfg.Destructive == nil && cfg.Idempotent == nil && cfg.OpenWorld == nil && cfg.ReadOnly == nil {
		return nil
	}
	a := &mcp.ToolAnnotations{
		DestructiveHint: cfg.Destructive,
		OpenWorldHint:   cfg.OpenWorld,
	}
	if cfg.Idempotent != nil {
		a.IdempotentHint = *cfg.Idempotent
	}
	if cfg.ReadOnly != nil {
		a.ReadOnlyHint = *cfg.ReadOnly
	}
	return a
}

// valueResult renders a method's value result: strings become plain text
// content, everything else is rendered as JSON, and object-shaped values
// are also carried as structured content.
func valueResult(v any, structured bool) (*mcp.CallToolResult, error) {
	if s, ok := v.(string); ok {
		return textResult(s), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult("unencodable result: " + err.Error()), nil
	}
	res := textResult(string(b))
	if structured {
		res.StructuredContent = v
	}
	return res, nil
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

func errorResult(msg string) *mcp.CallToolResult {
	res := textResult(msg)
	res.IsError = true
	return res
}

// isStructuredKind reports whether a result type is object-shaped on the
// wire and so belongs in structuredContent.
func isStructuredKind(t reflect.Type) bool {
	switch derefKind(t) {
	case reflect.Struct, reflect.Map:
		return true
	default:
		return false
	}
}

func derefKind(t reflect.Type) reflect.Kind {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind()
}
