// Package provider turns marker-declared methods on plain Go values into
// MCP handler specifications.
//
// Each provider owns one callback kind. Given a collection of candidate
// values, a provider walks each candidate's struct fields for blank
// fields of its marker type (package annotations), resolves the tagged
// method, validates the method's signature against the kind's allowed
// shapes, and wraps it in a handler matching the MCP Go SDK. The result
// is a slice of specification records pairing the handler with its
// protocol descriptor and the client identifiers it is routed to.
//
// Methods whose signatures do not match any allowed shape are skipped
// silently (logged at debug level). Configuration mistakes are errors:
// nil or non-struct candidates, tags naming missing methods, malformed
// tag values, and duplicate protocol names all abort the scan.
package provider
