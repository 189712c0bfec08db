package provider

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	loggingMarker = reflect.TypeOf(annotations.Logging{})
	loggingReq    = reflect.TypeOf((*mcp.LoggingMessageRequest)(nil))
	loggingParams = reflect.TypeOf((*mcp.LoggingMessageParams)(nil))
)

// LoggingProvider adapts methods marked with annotations.Logging into
// logging-consumer specifications for MCP clients.
//
// Accepted inputs, after an optional leading context.Context:
// *mcp.LoggingMessageRequest or *mcp.LoggingMessageParams. The method may
// return nothing or error. Notifications carry no reply channel, so a
// returned error (or panic) is logged and otherwise dropped.
type LoggingProvider struct {
	objects []any
	opts    options
}

// NewLoggingProvider returns a provider scanning the given candidate
// values.
func NewLoggingProvider(objects []any, opts ...Option) *LoggingProvider {
	return &LoggingProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns one specification per method
// that matches an allowed shape.
func (p *LoggingProvider) Specs() ([]LoggingSpec, error) {
	decls, err := scanMarkers(p.objects, loggingMarker)
	if err != nil {
		return nil, err
	}
	var specs []LoggingSpec
	for _, d := range decls {
		handler, ok := p.adapt(d)
		if !ok {
			skip(p.opts.log, "logging", d)
			continue
		}
		specs = append(specs, LoggingSpec{Clients: d.cfg.Clients, Handler: handler})
	}
	return specs, nil
}

func (p *LoggingProvider) adapt(d decl) (LoggingHandler, bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok || len(ins) != 1 {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out != nil {
		return nil, false
	}

	takesParams := false
	switch ins[0] {
	case loggingReq:
	case loggingParams:
		takesParams = true
	default:
		return nil, false
	}

	fn, log := d.fn, p.opts.log
	owner, method := d.owner.String(), d.cfg.Method
	handler := func(ctx context.Context, req *mcp.LoggingMessageRequest) {
		arg := reflect.ValueOf(req)
		if takesParams {
			arg = reflect.ValueOf(req.Params)
		}
		outs, err := call(ctx, fn, wantsCtx, []reflect.Value{arg})
		if err == nil {
			err = callErr(outs, hasErr)
		}
		if err != nil {
			log.Error("logging consumer failed",
				slog.String("type", owner),
				slog.String("method", method),
				slog.Any("error", err),
			)
		}
	}
	return handler, true
}
