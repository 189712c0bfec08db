package provider

import (
	"context"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
	"github.com/spring-ai-community/mcp-annotations-go/internal/schema"
)

var (
	promptMarker  = reflect.TypeOf(annotations.Prompt{})
	getPromptReq  = reflect.TypeOf((*mcp.GetPromptRequest)(nil))
	getPromptRes  = reflect.TypeOf((*mcp.GetPromptResult)(nil))
	promptMsgs    = reflect.TypeOf([]*mcp.PromptMessage(nil))
	stringMapType = reflect.TypeOf(map[string]string(nil))
	stringType    = reflect.TypeOf("")
)

// PromptProvider adapts methods marked with annotations.Prompt into
// prompt specifications.
//
// Accepted inputs, after an optional leading context.Context: none, the
// raw argument map, an argument struct (or pointer to one), or
// *mcp.GetPromptRequest. Accepted outputs: *mcp.GetPromptResult,
// []*mcp.PromptMessage, or string, each optionally paired with error. A
// bare string becomes a single user message.
//
// An argument struct declares the prompt's arguments: names come from
// json tags, descriptions from jsonschema tags, and fields without
// omitempty are required.
type PromptProvider struct {
	objects []any
	opts    options
}

// NewPromptProvider returns a provider scanning the given candidate
// values.
func NewPromptProvider(objects []any, opts ...Option) *PromptProvider {
	return &PromptProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *PromptProvider) Specs() ([]PromptSpec, error) {
	decls, err := scanMarkers(p.objects, promptMarker)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var specs []PromptSpec
	for _, d := range decls {
		spec, ok, err := p.adapt(d)
		if err != nil {
			return nil, err
		}
		if !ok {
			skip(p.opts.log, "prompt", d)
			continue
		}
		if seen[spec.Prompt.Name] {
			return nil, fmt.Errorf("prompt %q: %w", spec.Prompt.Name, ErrDuplicateName)
		}
		seen[spec.Prompt.Name] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

func (p *PromptProvider) adapt(d decl) (PromptSpec, bool, error) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok {
		return PromptSpec{}, false, nil
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out == nil {
		return PromptSpec{}, false, nil
	}
	switch out {
	case getPromptRes, promptMsgs, stringType:
	default:
		return PromptSpec{}, false, nil
	}

	const (
		inNone = iota
		inMap
		inTyped
		inRaw
	)
	mode := inNone
	var argType reflect.Type
	switch len(ins) {
	case 0:
	case 1:
		switch {
		case ins[0] == getPromptReq:
			mode = inRaw
		case ins[0] == stringMapType:
			mode = inMap
		case derefKind(ins[0]) == reflect.Struct:
			mode = inTyped
			argType = ins[0]
		default:
			return PromptSpec{}, false, nil
		}
	default:
		return PromptSpec{}, false, nil
	}

	name := d.cfg.Name
	if name == "" {
		name = defaultName(d.cfg.Method)
	}
	prompt := &mcp.Prompt{
		Name:        name,
		Title:       d.cfg.Title,
		Description: d.cfg.Description,
	}
	if mode == inTyped {
		s, err := schema.ForType(argType, false)
		if err != nil {
			return PromptSpec{}, false, fmt.Errorf("prompt %q: arguments: %w", name, err)
		}
		for _, prop := range schema.Properties(s) {
			prompt.Arguments = append(prompt.Arguments, &mcp.PromptArgument{
				Name:        prop.Name,
				Description: prop.Description,
				Required:    prop.Required,
			})
		}
	}

	description := d.cfg.Description
	fn := d.fn
	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var args []reflect.Value
		switch mode {
		case inMap:
			args = []reflect.Value{reflect.ValueOf(req.Params.Arguments)}
		case inTyped:
			av, err := schema.DecodeStringMap(req.Params.Arguments, argType)
			if err != nil {
				return nil, fmt.Errorf("prompt %q: invalid arguments: %w", name, err)
			}
			args = []reflect.Value{av}
		case inRaw:
			args = []reflect.Value{reflect.ValueOf(req)}
		}
		outs, err := call(ctx, fn, wantsCtx, args)
		if err != nil {
			return nil, err
		}
		if err := callErr(outs, hasErr); err != nil {
			return nil, err
		}
		switch out {
		case getPromptRes:
			res, _ := outs[0].Interface().(*mcp.GetPromptResult)
			return res, nil
		case promptMsgs:
			msgs, _ := outs[0].Interface().([]*mcp.PromptMessage)
			return &mcp.GetPromptResult{Description: description, Messages: msgs}, nil
		default:
			text, _ := outs[0].Interface().(string)
			return &mcp.GetPromptResult{
				Description: description,
				Messages: []*mcp.PromptMessage{{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				}},
			}, nil
		}
	}

	return PromptSpec{Clients: d.cfg.Clients, Prompt: prompt, Handler: handler}, true, nil
}
