package provider

import (
	"context"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	samplingMarker  = reflect.TypeOf(annotations.Sampling{})
	createMsgReq    = reflect.TypeOf((*mcp.CreateMessageRequest)(nil))
	createMsgParams = reflect.TypeOf((*mcp.CreateMessageParams)(nil))
	createMsgRes    = reflect.TypeOf((*mcp.CreateMessageResult)(nil))
)

// SamplingProvider adapts methods marked with annotations.Sampling into
// sampling specifications for MCP clients.
//
// Accepted inputs, after an optional leading context.Context:
// *mcp.CreateMessageRequest or *mcp.CreateMessageParams. The method must
// return *mcp.CreateMessageResult, optionally paired with error.
type SamplingProvider struct {
	objects []any
	opts    options
}

// NewSamplingProvider returns a provider scanning the given candidate
// values.
func NewSamplingProvider(objects []any, opts ...Option) *SamplingProvider {
	return &SamplingProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *SamplingProvider) Specs() ([]SamplingSpec, error) {
	decls, err := scanMarkers(p.objects, samplingMarker)
	if err != nil {
		return nil, err
	}
	var specs []SamplingSpec
	for _, d := range decls {
		handler, ok := p.adapt(d)
		if !ok {
			skip(p.opts.log, "sampling", d)
			continue
		}
		specs = append(specs, SamplingSpec{Clients: d.cfg.Clients, Handler: handler})
	}
	return specs, nil
}

func (p *SamplingProvider) adapt(d decl) (CreateMessageHandler, bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok || len(ins) != 1 {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out != createMsgRes {
		return nil, false
	}

	takesParams := false
	switch ins[0] {
	case createMsgReq:
	case createMsgParams:
		takesParams = true
	default:
		return nil, false
	}

	fn := d.fn
	handler := func(ctx context.Context, req *mcp.CreateMessageRequest) (*mcp.CreateMessageResult, error) {
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
		res, _ := outs[0].Interface().(*mcp.CreateMessageResult)
		if res == nil {
			return nil, fmt.Errorf("sampling method %s.%s returned no result", d.owner, d.cfg.Method)
		}
		return res, nil
	}
	return handler, true
}
