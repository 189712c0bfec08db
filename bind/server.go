package bind

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpannotations "github.com/spring-ai-community/mcp-annotations-go"
	"github.com/spring-ai-community/mcp-annotations-go/provider"
)

// Server registers the registry's tool, prompt, resource, and
// resource-template specifications on the server. Completions are wired
// at construction time instead; see ServerOptions.
func Server(srv *mcp.Server, reg *mcpannotations.Registry) {
	for _, s := range reg.Tools() {
		srv.AddTool(s.Tool, s.Handler)
	}
	for _, s := range reg.Prompts() {
		srv.AddPrompt(s.Prompt, s.Handler)
	}
	for _, s := range reg.Resources() {
		srv.AddResource(s.Resource, s.Handler)
	}
	for _, s := range reg.ResourceTemplates() {
		srv.AddResourceTemplate(s.Template, s.Handler)
	}
}

// ServerOptions returns server options with the registry's completion
// specifications installed as the completion handler. base is copied
// when non-nil; a completion handler already present on it becomes the
// fallback for requests no specification matches.
func ServerOptions(reg *mcpannotations.Registry, base *mcp.ServerOptions) *mcp.ServerOptions {
	opts := &mcp.ServerOptions{}
	if base != nil {
		*opts = *base
	}
	specs := reg.Completions()
	if len(specs) == 0 {
		return opts
	}
	fallback := opts.CompletionHandler
	opts.CompletionHandler = func(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
		for _, s := range specs {
			if completionMatches(s, req) {
				return s.Handler(ctx, req)
			}
		}
		if fallback != nil {
			return fallback(ctx, req)
		}
		return nil, fmt.Errorf("no completion handler for %s", completionRefString(req))
	}
	return opts
}

func completionMatches(s provider.CompletionSpec, req *mcp.CompleteRequest) bool {
	ref := req.Params.Ref
	if ref == nil || s.Ref == nil || ref.Type != s.Ref.Type {
		return false
	}
	switch ref.Type {
	case "ref/prompt":
		if ref.Name != s.Ref.Name {
			return false
		}
	case "ref/resource":
		if ref.URI != s.Ref.URI {
			return false
		}
	default:
		return false
	}
	return s.Argument == "" || s.Argument == req.Params.Argument.Name
}

func completionRefString(req *mcp.CompleteRequest) string {
	ref := req.Params.Ref
	if ref == nil {
		return "request without ref"
	}
	target := ref.Name
	if ref.Type == "ref/resource" {
		target = ref.URI
	}
	return fmt.Sprintf("%s %q argument %q", ref.Type, target, req.Params.Argument.Name)
}
