package provider

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	progressMarker = reflect.TypeOf(annotations.Progress{})
	progressReq    = reflect.TypeOf((*mcp.ProgressNotificationClientRequest)(nil))
	progressParams = reflect.TypeOf((*mcp.ProgressNotificationParams)(nil))
	float64Type    = reflect.TypeOf(float64(0))
)

// ProgressProvider adapts methods marked with annotations.Progress into
// progress-consumer specifications for MCP clients.
//
// Accepted inputs, after an optional leading context.Context:
// *mcp.ProgressNotificationClientRequest, *mcp.ProgressNotificationParams,
// or the unpacked triple (progress float64, total float64, message
// string). The method may return nothing or error. A returned error (or
// panic) is logged and otherwise dropped.
type ProgressProvider struct {
	objects []any
	opts    options
}

// NewProgressProvider returns a provider scanning the given candidate
// values.
func NewProgressProvider(objects []any, opts ...Option) *ProgressProvider {
	return &ProgressProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *ProgressProvider) Specs() ([]ProgressSpec, error) {
	decls, err := scanMarkers(p.objects, progressMarker)
	if err != nil {
		return nil, err
	}
	var specs []ProgressSpec
	for _, d := range decls {
		handler, ok := p.adapt(d)
		if !ok {
			skip(p.opts.log, "progress", d)
			continue
		}
		specs = append(specs, ProgressSpec{Clients: d.cfg.Clients, Handler: handler})
	}
	return specs, nil
}

func (p *ProgressProvider) adapt(d decl) (ProgressHandler, bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out != nil {
		return nil, false
	}

	const (
		inRequest = iota
		inParams
		inTriple
	)
	var mode int
	switch {
	case len(ins) == 1 && ins[0] == progressReq:
		mode = inRequest
	case len(ins) == 1 && ins[0] == progressParams:
		mode = inParams
	case len(ins) == 3 && ins[0] == float64Type && ins[1] == float64Type && ins[2] == stringType:
		mode = inTriple
	default:
		return nil, false
	}

	fn, log := d.fn, p.opts.log
	owner, method := d.owner.String(), d.cfg.Method
	handler := func(ctx context.Context, req *mcp.ProgressNotificationClientRequest) {
		var args []reflect.Value
		switch mode {
		case inRequest:
			args = []reflect.Value{reflect.ValueOf(req)}
		case inParams:
			args = []reflect.Value{reflect.ValueOf(req.Params)}
		case inTriple:
			args = []reflect.Value{
				reflect.ValueOf(req.Params.Progress),
				reflect.ValueOf(req.Params.Total),
				reflect.ValueOf(req.Params.Message),
			}
		}
		outs, err := call(ctx, fn, wantsCtx, args)
		if err == nil {
			err = callErr(outs, hasErr)
		}
		if err != nil {
			log.Error("progress consumer failed",
				slog.String("type", owner),
				slog.String("method", method),
				slog.Any("error", err),
			)
		}
	}
	return handler, true
}
