package mcpannotations

import (
	"github.com/spring-ai-community/mcp-annotations-go/provider"
)

// Registry holds the specifications produced by one scan, one slice per
// callback kind. A Registry is immutable after Scan; accessors return
// copies.
type Registry struct {
	tools             []provider.ToolSpec
	prompts           []provider.PromptSpec
	resources         []provider.ResourceSpec
	resourceTemplates []provider.ResourceTemplateSpec
	completions       []provider.CompletionSpec

	samplings           []provider.SamplingSpec
	elicitations        []provider.ElicitationSpec
	loggings            []provider.LoggingSpec
	progresses          []provider.ProgressSpec
	toolListChanged     []provider.ToolListChangedSpec
	promptListChanged   []provider.PromptListChangedSpec
	resourceListChanged []provider.ResourceListChangedSpec
}

// Scan runs every provider over the candidate values and collects the
// resulting specifications. Configuration problems (nil candidates, tags
// naming missing methods, malformed tags, duplicate names) abort the
// scan; methods whose signatures match no allowed shape are skipped
// silently.
func Scan(objects ...any) (*Registry, error) {
	return ScanWith(nil, objects...)
}

// ScanWith is Scan with provider options, e.g. provider.WithLogger.
func ScanWith(opts []provider.Option, objects ...any) (*Registry, error) {
	reg := &Registry{}
	var err error

	if reg.tools, err = provider.NewToolProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.prompts, err = provider.NewPromptProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.resources, reg.resourceTemplates, err = provider.NewResourceProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.completions, err = provider.NewCompletionProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.samplings, err = provider.NewSamplingProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.elicitations, err = provider.NewElicitationProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.loggings, err = provider.NewLoggingProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.progresses, err = provider.NewProgressProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.toolListChanged, err = provider.NewToolListChangedProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.promptListChanged, err = provider.NewPromptListChangedProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}
	if reg.resourceListChanged, err = provider.NewResourceListChangedProvider(objects, opts...).Specs(); err != nil {
		return nil, err
	}

	return reg, nil
}

// Tools returns the tool specifications.
func (r *Registry) Tools() []provider.ToolSpec {
	return append([]provider.ToolSpec(nil), r.tools...)
}

// Prompts returns the prompt specifications.
func (r *Registry) Prompts() []provider.PromptSpec {
	return append([]provider.PromptSpec(nil), r.prompts...)
}

// Resources returns the concrete-URI resource specifications.
func (r *Registry) Resources() []provider.ResourceSpec {
	return append([]provider.ResourceSpec(nil), r.resources...)
}

// ResourceTemplates returns the URI-template resource specifications.
func (r *Registry) ResourceTemplates() []provider.ResourceTemplateSpec {
	return append([]provider.ResourceTemplateSpec(nil), r.resourceTemplates...)
}

// Completions returns the completion specifications.
func (r *Registry) Completions() []provider.CompletionSpec {
	return append([]provider.CompletionSpec(nil), r.completions...)
}

// Samplings returns the sampling specifications.
func (r *Registry) Samplings() []provider.SamplingSpec {
	return append([]provider.SamplingSpec(nil), r.samplings...)
}

// Elicitations returns the elicitation specifications.
func (r *Registry) Elicitations() []provider.ElicitationSpec {
	return append([]provider.ElicitationSpec(nil), r.elicitations...)
}

// Loggings returns the logging-consumer specifications.
func (r *Registry) Loggings() []provider.LoggingSpec {
	return append([]provider.LoggingSpec(nil), r.loggings...)
}

// Progresses returns the progress-consumer specifications.
func (r *Registry) Progresses() []provider.ProgressSpec {
	return append([]provider.ProgressSpec(nil), r.progresses...)
}

// ToolListChanged returns the tool list-changed consumer specifications.
func (r *Registry) ToolListChanged() []provider.ToolListChangedSpec {
	return append([]provider.ToolListChangedSpec(nil), r.toolListChanged...)
}

// PromptListChanged returns the prompt list-changed consumer
// specifications.
func (r *Registry) PromptListChanged() []provider.PromptListChangedSpec {
	return append([]provider.PromptListChangedSpec(nil), r.promptListChanged...)
}

// ResourceListChanged returns the resource list-changed consumer
// specifications.
func (r *Registry) ResourceListChanged() []provider.ResourceListChangedSpec {
	return append([]provider.ResourceListChangedSpec(nil), r.resourceListChanged...)
}

// ForClient returns a Registry narrowed to the specifications routed to
// the given client identifier. Specifications with an empty client list
// apply to every client and survive any narrowing.
func (r *Registry) ForClient(clientID string) *Registry {
	out := &Registry{}
	for _, s := range r.tools {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.tools = append(out.tools, s)
		}
	}
	for _, s := range r.prompts {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.prompts = append(out.prompts, s)
		}
	}
	for _, s := range r.resources {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.resources = append(out.resources, s)
		}
	}
	for _, s := range r.resourceTemplates {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.resourceTemplates = append(out.resourceTemplates, s)
		}
	}
	for _, s := range r.completions {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.completions = append(out.completions, s)
		}
	}
	for _, s := range r.samplings {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.samplings = append(out.samplings, s)
		}
	}
	for _, s := range r.elicitations {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.elicitations = append(out.elicitations, s)
		}
	}
	for _, s := range r.loggings {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.loggings = append(out.loggings, s)
		}
	}
	for _, s := range r.progresses {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.progresses = append(out.progresses, s)
		}
	}
	for _, s := range r.toolListChanged {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.toolListChanged = append(out.toolListChanged, s)
		}
	}
	for _, s := range r.promptListChanged {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.promptListChanged = append(out.promptListChanged, s)
		}
	}
	for _, s := range r.resourceListChanged {
		if provider.AppliesToClient(s.Clients, clientID) {
			out.resourceListChanged = append(out.resourceListChanged, s)
		}
	}
	return out
}
