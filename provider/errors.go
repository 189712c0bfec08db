package provider

import "errors"

var (
	// ErrNilCandidate is returned when a candidate value (or the pointer
	// it hides behind) is nil.
	ErrNilCandidate = errors.New("nil candidate")

	// ErrInvalidCandidate is returned when a candidate is neither a
	// struct nor a pointer to one.
	ErrInvalidCandidate = errors.New("candidate is not a struct")

	// ErrMissingMethod is returned when a marker tag names a method the
	// candidate does not have.
	ErrMissingMethod = errors.New("declared method not found")

	// ErrBadTag is returned when a marker tag cannot be parsed or is
	// missing a key its kind requires.
	ErrBadTag = errors.New("malformed marker tag")

	// ErrDuplicateName is returned when two declarations in one scan
	// resolve to the same protocol name, URI, or completion reference.
	ErrDuplicateName = errors.New("duplicate declaration")

	// ErrConflictingHandler is returned when more than one handler claims
	// a slot that holds a single function, such as a client's sampling
	// handler.
	ErrConflictingHandler = errors.New("conflicting handlers")
)
