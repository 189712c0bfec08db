package provider

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	toolListChangedMarker     = reflect.TypeOf(annotations.ToolListChanged{})
	promptListChangedMarker   = reflect.TypeOf(annotations.PromptListChanged{})
	resourceListChangedMarker = reflect.TypeOf(annotations.ResourceListChanged{})
)

// The three list-changed providers adapt methods marked with
// annotations.ToolListChanged, annotations.PromptListChanged, and
// annotations.ResourceListChanged into consumer specifications for MCP
// clients. A consumer takes, after an optional leading context.Context,
// either nothing or the matching SDK notification request, and may return
// nothing or error. A returned error (or panic) is logged and otherwise
// dropped.

// ToolListChangedProvider scans for notifications/tools/list_changed
// consumers.
type ToolListChangedProvider struct {
	objects []any
	opts    options
}

// NewToolListChangedProvider returns a provider scanning the given
// candidate values.
func NewToolListChangedProvider(objects []any, opts ...Option) *ToolListChangedProvider {
	return &ToolListChangedProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *ToolListChangedProvider) Specs() ([]ToolListChangedSpec, error) {
	adapted, err := listChangedScan[*mcp.ToolListChangedRequest](p.objects, toolListChangedMarker, "tool list-changed", p.opts)
	if err != nil {
		return nil, err
	}
	var specs []ToolListChangedSpec
	for _, a := range adapted {
		specs = append(specs, ToolListChangedSpec{Clients: a.clients, Handler: a.handler})
	}
	return specs, nil
}

// PromptListChangedProvider scans for notifications/prompts/list_changed
// consumers.
type PromptListChangedProvider struct {
	objects []any
	opts    options
}

// NewPromptListChangedProvider returns a provider scanning the given
// candidate values.
func NewPromptListChangedProvider(objects []any, opts ...Option) *PromptListChangedProvider {
	return &PromptListChangedProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *PromptListChangedProvider) Specs() ([]PromptListChangedSpec, error) {
	adapted, err := listChangedScan[*mcp.PromptListChangedRequest](p.objects, promptListChangedMarker, "prompt list-changed", p.opts)
	if err != nil {
		return nil, err
	}
	var specs []PromptListChangedSpec
	for _, a := range adapted {
		specs = append(specs, PromptListChangedSpec{Clients: a.clients, Handler: a.handler})
	}
	return specs, nil
}

// ResourceListChangedProvider scans for
// notifications/resources/list_changed consumers.
type ResourceListChangedProvider struct {
	objects []any
	opts    options
}

// NewResourceListChangedProvider returns a provider scanning the given
// candidate values.
func NewResourceListChangedProvider(objects []any, opts ...Option) *ResourceListChangedProvider {
	return &ResourceListChangedProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *ResourceListChangedProvider) Specs() ([]ResourceListChangedSpec, error) {
	adapted, err := listChangedScan[*mcp.ResourceListChangedRequest](p.objects, resourceListChangedMarker, "resource list-changed", p.opts)
	if err != nil {
		return nil, err
	}
	var specs []ResourceListChangedSpec
	for _, a := range adapted {
		specs = append(specs, ResourceListChangedSpec{Clients: a.clients, Handler: a.handler})
	}
	return specs, nil
}

type adaptedConsumer[R any] struct {
	clients []string
	handler func(context.Context, R)
}

func listChangedScan[R any](objects []any, marker reflect.Type, kind string, o options) ([]adaptedConsumer[R], error) {
	decls, err := scanMarkers(objects, marker)
	if err != nil {
		return nil, err
	}
	reqType := reflect.TypeOf((*R)(nil)).Elem()
	var adapted []adaptedConsumer[R]
	for _, d := range decls {
		handler, ok := adaptListChanged[R](d, reqType, o.log)
		if !ok {
			skip(o.log, kind, d)
			continue
		}
		adapted = append(adapted, adaptedConsumer[R]{clients: d.cfg.Clients, handler: handler})
	}
	return adapted, nil
}

func adaptListChanged[R any](d decl, reqType reflect.Type, log *slog.Logger) (func(context.Context, R), bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out != nil {
		return nil, false
	}

	takesReq := false
	switch len(ins) {
	case 0:
	case 1:
		if ins[0] != reqType {
			return nil, false
		}
		takesReq = true
	default:
		return nil, false
	}

	fn := d.fn
	owner, method := d.owner.String(), d.cfg.Method
	handler := func(ctx context.Context, req R) {
		var args []reflect.Value
		if takesReq {
			args = []reflect.Value{reflect.ValueOf(req)}
		}
		outs, err := call(ctx, fn, wantsCtx, args)
		if err == nil {
			err = callErr(outs, hasErr)
		}
		if err != nil {
			log.Error("list-changed consumer failed",
				slog.String("type", owner),
				slog.String("method", method),
				slog.Any("error", err),
			)
		}
	}
	return handler, true
}
