package provider

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Specification records pair a handler with its protocol descriptor and
// the client identifiers it is routed to. Records are built once per
// scan and treated as immutable afterwards.

// AppliesToClient reports whether a record's client list targets the
// given client identifier. An empty list targets every client.
func AppliesToClient(clients []string, clientID string) bool {
	if len(clients) == 0 {
		return true
	}
	for _, c := range clients {
		if c == clientID {
			return true
		}
	}
	return false
}

// ToolSpec binds a tool descriptor to its handler.
type ToolSpec struct {
	Clients []string
	Tool    *mcp.Tool
	Handler mcp.ToolHandler
}

// PromptSpec binds a prompt descriptor to its handler.
type PromptSpec struct {
	Clients []string
	Prompt  *mcp.Prompt
	Handler mcp.PromptHandler
}

// ResourceSpec binds a concrete-URI resource descriptor to its handler.
type ResourceSpec struct {
	Clients  []string
	Resource *mcp.Resource
	Handler  mcp.ResourceHandler
}

// ResourceTemplateSpec binds a URI-template resource descriptor to its
// handler.
type ResourceTemplateSpec struct {
	Clients  []string
	Template *mcp.ResourceTemplate
	Handler  mcp.ResourceHandler
}

// CompletionHandler answers one completion/complete request.
type CompletionHandler func(context.Context, *mcp.CompleteRequest) (*mcp.CompleteResult, error)

// CompletionSpec binds a completion reference to its handler. Argument
// restricts the handler to one argument name; empty matches every
// argument of the reference.
type CompletionSpec struct {
	Clients  []string
	Ref      *mcp.CompleteReference
	Argument string
	Handler  CompletionHandler
}

// CreateMessageHandler answers a sampling/createMessage request received
// by a client. Matches mcp.ClientOptions.CreateMessageHandler.
type CreateMessageHandler func(context.Context, *mcp.CreateMessageRequest) (*mcp.CreateMessageResult, error)

// SamplingSpec binds a client's sampling handler.
type SamplingSpec struct {
	Clients []string
	Handler CreateMessageHandler
}

// ElicitationHandler answers an elicitation/create request received by a
// client. Matches mcp.ClientOptions.ElicitationHandler.
type ElicitationHandler func(context.Context, *mcp.ElicitRequest) (*mcp.ElicitResult, error)

// ElicitationSpec binds a client's elicitation handler.
type ElicitationSpec struct {
	Clients []string
	Handler ElicitationHandler
}

// LoggingHandler consumes one notifications/message. Matches
// mcp.ClientOptions.LoggingMessageHandler.
type LoggingHandler func(context.Context, *mcp.LoggingMessageRequest)

// LoggingSpec binds a client's logging consumer.
type LoggingSpec struct {
	Clients []string
	Handler LoggingHandler
}

// ProgressHandler consumes one notifications/progress. Matches
// mcp.ClientOptions.ProgressNotificationHandler.
type ProgressHandler func(context.Context, *mcp.ProgressNotificationClientRequest)

// ProgressSpec binds a client's progress consumer.
type ProgressSpec struct {
	Clients []string
	Handler ProgressHandler
}

// ToolListChangedHandler consumes one notifications/tools/list_changed.
// Matches mcp.ClientOptions.ToolListChangedHandler.
type ToolListChangedHandler func(context.Context, *mcp.ToolListChangedRequest)

// ToolListChangedSpec binds a client's tool list-changed consumer.
type ToolListChangedSpec struct {
	Clients []string
	Handler ToolListChangedHandler
}

// PromptListChangedHandler consumes one
// notifications/prompts/list_changed. Matches
// mcp.ClientOptions.PromptListChangedHandler.
type PromptListChangedHandler func(context.Context, *mcp.PromptListChangedRequest)

// PromptListChangedSpec binds a client's prompt list-changed consumer.
type PromptListChangedSpec struct {
	Clients []string
	Handler PromptListChangedHandler
}

// ResourceListChangedHandler consumes one
// notifications/resources/list_changed. Matches
// mcp.ClientOptions.ResourceListChangedHandler.
type ResourceListChangedHandler func(context.Context, *mcp.ResourceListChangedRequest)

// ResourceListChangedSpec binds a client's resource list-changed
// consumer.
type ResourceListChangedSpec struct {
	Clients []string
	Handler ResourceListChangedHandler
}
