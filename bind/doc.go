// Package bind attaches scanned specifications to the MCP Go SDK.
//
// Server-side records register on an *mcp.Server (tools, prompts,
// resources, resource templates) or flow into its construction options
// (completions). Client-side records populate mcp.ClientOptions for one
// target client identifier; where the SDK holds a single handler slot,
// exactly one specification may claim it, and notification slots fan out
// to every matching consumer in registration order.
package bind
