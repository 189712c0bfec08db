package provider

import (
	"context"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	elicitationMarker = reflect.TypeOf(annotations.Elicitation{})
	elicitReq         = reflect.TypeOf((*mcp.ElicitRequest)(nil))
	elicitParams      = reflect.TypeOf((*mcp.ElicitParams)(nil))
	elicitRes         = reflect.TypeOf((*mcp.ElicitResult)(nil))
)

// ElicitationProvider adapts methods marked with annotations.Elicitation
// into elicitation specifications for MCP clients.
//
// Accepted inputs, after an optional leading context.Context:
// *mcp.ElicitRequest or *mcp.ElicitParams. The method must return
// *mcp.ElicitResult, optionally paired with error.
type ElicitationProvider struct {
	objects []any
	opts    options
}

// NewElicitationProvider returns a provider scanning the given candidate
// values.
func NewElicitationProvider(objects []any, opts ...Option) *ElicitationProvider {
	return &ElicitationProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *ElicitationProvider) Specs() ([]ElicitationSpec, error) {
	decls, err := scanMarkers(p.objects, elicitationMarker)
	if err != nil {
		return nil, err
	}
	var specs []ElicitationSpec
	for _, d := range decls {
		handler, ok := p.adapt(d)
		if !ok {
			skip(p.opts.log, "elicitation", d)
			continue
		}
		specs = append(specs, ElicitationSpec{Clients: d.cfg.Clients, Handler: handler})
	}
	return specs, nil
}

func (p *ElicitationProvider) adapt(d decl) (ElicitationHandler, bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok || len(ins) != 1 {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out != elicitRes {
		return nil, false
	}

	takesParams := false
	switch ins[0] {
	case elicitReq:
	case elicitParams:
		takesParams = true
	default:
		return nil, false
	}

	fn := d.fn
	handler := func(ctx context.Context, req *mcp.ElicitRequest) (*mcp.ElicitResult, error) {
		arg := reflect.ValueOf(req)
		if takesParams {
			arg = reflect.ValueOf(req.Params)
		}
		outs, err := call(ctx, fn, wantsCtx, []reflect.Value{arg})
		if err != nil {
			return nil, err
		}
		if err := callErr(outs, hasErr); err != nil {
			return nil, err
		}
		res, _ := outs[0].Interface().(*mcp.ElicitResult)
		if res == nil {
			return nil, fmt.Errorf("elicitation method %s.%s returned no result", d.owner, d.cfg.Method)
		}
		return res, nil
	}
	return handler, true
}
