// Package annotations defines the marker types used to declare MCP
// handler methods on plain Go values.
//
// Go has no method-level annotations, so declarations ride on blank
// struct fields: a candidate type carries one field per handler, typed
// with the marker for the callback kind and tagged with the static
// configuration the handler needs.
//
//	type Calc struct {
//		_ annotations.Tool `method:"Add" name:"add" description:"Adds two integers"`
//	}
//
//	func (Calc) Add(ctx context.Context, args AddArgs) (int, error) { ... }
//
// The providers in package provider scan candidate values for these
// fields, resolve the named method, and adapt it to the matching MCP SDK
// handler type. Marker types are empty and carry no runtime behavior of
// their own.
package annotations
