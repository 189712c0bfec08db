package bind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpannotations "github.com/spring-ai-community/mcp-annotations-go"
	"github.com/spring-ai-community/mcp-annotations-go/provider"
)

// ClientOptions returns client options populated from the registry's
// client-side specifications routed to clientID. base is copied when
// non-nil and its notification handlers keep running ahead of the
// scanned consumers.
//
// Sampling and elicitation occupy single slots on mcp.ClientOptions:
// more than one matching specification, or a specification next to a
// handler already present on base, is a configuration error.
func ClientOptions(reg *mcpannotations.Registry, clientID string, base *mcp.ClientOptions) (*mcp.ClientOptions, error) {
	return ClientOptionsWith(nil, reg, clientID, base)
}

// ClientOptionsWith is ClientOptions with a logger for dispatch
// diagnostics. A nil logger defaults to slog.Default().
func ClientOptionsWith(log *slog.Logger, reg *mcpannotations.Registry, clientID string, base *mcp.ClientOptions) (*mcp.ClientOptions, error) {
	scoped := reg.ForClient(clientID)
	opts := &mcp.ClientOptions{}
	if base != nil {
		*opts = *base
	}

	if specs := scoped.Samplings(); len(specs) > 0 {
		if len(specs) > 1 || opts.CreateMessageHandler != nil {
			return nil, fmt.Errorf("client %q sampling: %w", clientID, provider.ErrConflictingHandler)
		}
		h := specs[0].Handler
		opts.CreateMessageHandler = func(ctx context.Context, req *mcp.CreateMessageRequest) (*mcp.CreateMessageResult, error) {
			return h(ctx, req)
		}
	}

	if specs := scoped.Elicitations(); len(specs) > 0 {
		if len(specs) > 1 || opts.ElicitationHandler != nil {
			return nil, fmt.Errorf("client %q elicitation: %w", clientID, provider.ErrConflictingHandler)
		}
		h := specs[0].Handler
		opts.ElicitationHandler = func(ctx context.Context, req *mcp.ElicitRequest) (*mcp.ElicitResult, error) {
			return h(ctx, req)
		}
	}

	if specs := scoped.Loggings(); len(specs) > 0 {
		f := NewFanOut[*mcp.LoggingMessageRequest](log)
		if prev := opts.LoggingMessageHandler; prev != nil {
			f.Add(prev)
		}
		for _, s := range specs {
			f.Add(s.Handler)
		}
		opts.LoggingMessageHandler = f.Handler()
	}

	if specs := scoped.Progresses(); len(specs) > 0 {
		f := NewFanOut[*mcp.ProgressNotificationClientRequest](log)
		if prev := opts.ProgressNotificationHandler; prev != nil {
			f.Add(prev)
		}
		for _, s := range specs {
			f.Add(s.Handler)
		}
		opts.ProgressNotificationHandler = f.Handler()
	}

	if specs := scoped.ToolListChanged(); len(specs) > 0 {
		f := NewFanOut[*mcp.ToolListChangedRequest](log)
		if prev := opts.ToolListChangedHandler; prev != nil {
			f.Add(prev)
		}
		for _, s := range specs {
			f.Add(s.Handler)
		}
		opts.ToolListChangedHandler = f.Handler()
	}

	if specs := scoped.PromptListChanged(); len(specs) > 0 {
		f := NewFanOut[*mcp.PromptListChangedRequest](log)
		if prev := opts.PromptListChangedHandler; prev != nil {
			f.Add(prev)
		}
		for _, s := range specs {
			f.Add(s.Handler)
		}
		opts.PromptListChangedHandler = f.Handler()
	}

	if specs := scoped.ResourceListChanged(); len(specs) > 0 {
		f := NewFanOut[*mcp.ResourceListChangedRequest](log)
		if prev := opts.ResourceListChangedHandler; prev != nil {
			f.Add(prev)
		}
		for _, s := range specs {
			f.Add(s.Handler)
		}
		opts.ResourceListChangedHandler = f.Handler()
	}

	return opts, nil
}
