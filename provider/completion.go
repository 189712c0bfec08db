package provider

import (
	"context"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	completeMarker  = reflect.TypeOf(annotations.Complete{})
	completeReq     = reflect.TypeOf((*mcp.CompleteRequest)(nil))
	completeRes     = reflect.TypeOf((*mcp.CompleteResult)(nil))
	completeArg     = reflect.TypeOf(mcp.CompleteParamsArgument{})
	stringSliceType = reflect.TypeOf([]string(nil))
)

// CompletionProvider adapts methods marked with annotations.Complete into
// completion specifications. The marker's ref tag picks the reference
// kind: ref="prompt" completes arguments of the named prompt, and
// ref="resource" completes variables of the uri template.
//
// Accepted inputs, after an optional leading context.Context: none, the
// argument value as a string, mcp.CompleteParamsArgument, or
// *mcp.CompleteRequest. Accepted outputs: *mcp.CompleteResult or
// []string, each optionally paired with error. A string slice is wrapped
// as a complete result with its total set and hasMore false.
type CompletionProvider struct {
	objects []any
	opts    options
}

// NewCompletionProvider returns a provider scanning the given candidate
// values.
func NewCompletionProvider(objects []any, opts ...Option) *CompletionProvider {
	return &CompletionProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *CompletionProvider) Specs() ([]CompletionSpec, error) {
	decls, err := scanMarkers(p.objects, completeMarker)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var specs []CompletionSpec
	for _, d := range decls {
		ref, err := completionRef(d)
		if err != nil {
			return nil, err
		}
		handler, ok := p.adapt(d)
		if !ok {
			skip(p.opts.log, "completion", d)
			continue
		}
		key := ref.Type + "\x00" + ref.Name + "\x00" + ref.URI + "\x00" + d.cfg.Argument
		if seen[key] {
			return nil, fmt.Errorf("completion for %s %s%s: %w", ref.Type, ref.Name, ref.URI, ErrDuplicateName)
		}
		seen[key] = true
		specs = append(specs, CompletionSpec{
			Clients:  d.cfg.Clients,
			Ref:      ref,
			Argument: d.cfg.Argument,
			Handler:  handler,
		})
	}
	return specs, nil
}

func completionRef(d decl) (*mcp.CompleteReference, error) {
	switch d.cfg.Ref {
	case "prompt":
		if d.cfg.Name == "" {
			return nil, fmt.Errorf("completion on %s method %q: %w: ref=prompt needs a name", d.owner, d.cfg.Method, ErrBadTag)
		}
		return &mcp.CompleteReference{Type: "ref/prompt", Name: d.cfg.Name}, nil
	case "resource":
		if d.cfg.URI == "" {
			return nil, fmt.Errorf("completion on %s method %q: %w: ref=resource needs a uri", d.owner, d.cfg.Method, ErrBadTag)
		}
		return &mcp.CompleteReference{Type: "ref/resource", URI: d.cfg.URI}, nil
	default:
		return nil, fmt.Errorf("completion on %s method %q: %w: missing ref", d.owner, d.cfg.Method, ErrBadTag)
	}
}

func (p *CompletionProvider) adapt(d decl) (CompletionHandler, bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok {
		return nil, false
	}
	switch out {
	case completeRes, stringSliceType:
	default:
		return nil, false
	}

	const (
		inNone = iota
		inValue
		inArgument
		inRaw
	)
	mode := inNone
	switch len(ins) {
	case 0:
	case 1:
		switch ins[0] {
		case stringType:
			mode = inValue
		case completeArg:
			mode = inArgument
		case completeReq:
			mode = inRaw
		default:
			return nil, false
		}
	default:
		return nil, false
	}

	fn := d.fn
	handler := func(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
		var args []reflect.Value
		switch mode {
		case inValue:
			args = []reflect.Value{reflect.ValueOf(req.Params.Argument.Value)}
		case inArgument:
			args = []reflect.Value{reflect.ValueOf(req.Params.Argument)}
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
		if out == completeRes {
			res, _ := outs[0].Interface().(*mcp.CompleteResult)
			return res, nil
		}
		values, _ := outs[0].Interface().([]string)
		total := len(values)
		return &mcp.CompleteResult{Completion: mcp.CompletionResultDetails{
			Values: values,
			Total:  total,
		}}, nil
	}
	return handler, true
}
