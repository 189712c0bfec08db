package annotations

// Tool marks a method that serves tools/call. Recognized tag keys:
// method (required), name, title, description, clients, and the tool
// behavior hints destructive, idempotent, openWorld, readOnly.
type Tool struct{}

// Prompt marks a method that serves prompts/get. Recognized tag keys:
// method (required), name, title, description, clients.
type Prompt struct{}

// Resource marks a method that serves resources/read for a concrete URI.
// Recognized tag keys: method (required), uri (required), name, title,
// description, mimeType, audience, priority, clients.
type Resource struct{}

// ResourceTemplate marks a method that serves resources/read for a
// RFC 6570 URI template. Same tag keys as Resource, with uri holding the
// template.
type ResourceTemplate struct{}

// Complete marks a method that serves completion/complete for a prompt
// argument or resource template variable. Recognized tag keys: method
// (required), ref (required, "prompt" or "resource"), name (prompt name
// when ref=prompt), uri (template URI when ref=resource), argument
// (restricts the handler to one argument name; empty matches all),
// clients.
type Complete struct{}

// Sampling marks a method that answers sampling/createMessage requests
// received by a client. Recognized tag keys: method (required), clients.
type Sampling struct{}

// Elicitation marks a method that answers elicitation/create requests
// received by a client. Recognized tag keys: method (required), clients.
type Elicitation struct{}

// Logging marks a method that consumes notifications/message on a
// client. Recognized tag keys: method (required), clients.
type Logging struct{}

// Progress marks a method that consumes notifications/progress on a
// client. Recognized tag keys: method (required), clients.
type Progress struct{}

// ToolListChanged marks a method that consumes
// notifications/tools/list_changed on a client. Recognized tag keys:
// method (required), clients.
type ToolListChanged struct{}

// PromptListChanged marks a method that consumes
// notifications/prompts/list_changed on a client. Recognized tag keys:
// method (required), clients.
type PromptListChanged struct{}

// ResourceListChanged marks a method that consumes
// notifications/resources/list_changed on a client. Recognized tag keys:
// method (required), clients.
type ResourceListChanged struct{}
