// Package mcpannotations registers marker-declared methods on plain Go
// values as Model Context Protocol handlers.
//
// Candidates declare handlers with blank marker fields (package
// annotations); Scan runs every provider (package provider) over the
// candidates and collects the resulting specifications into a Registry.
// Package bind attaches a Registry to the official MCP SDK's server and
// client types.
//
//	reg, err := mcpannotations.Scan(&Calc{}, &Docs{})
//	if err != nil { ... }
//	srv := mcp.NewServer(impl, bind.ServerOptions(reg, nil))
//	bind.Server(srv, reg)
package mcpannotations
