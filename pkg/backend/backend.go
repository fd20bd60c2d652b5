// Package backend defines the opaque text-understanding capability used
// by the extraction pipeline: text in, text out, fallible, rate-limited.
// Two flavors exist: a long-context backend speaking the marker protocol
// and a short-context backend speaking the single-line protocol.
package backend

import "context"

// Kind identifies a backend flavor.
type Kind string

// Backend kinds
const (
	// KindLongForm is the long-context, marker-protocol backend.
	KindLongForm Kind = "long-form"

	// KindShortForm is the short-context, line-protocol backend.
	KindShortForm Kind = "short-form"
)

// String returns the string representation of a backend kind.
func (k Kind) String() string {
	return string(k)
}

// Request carries one backend invocation.
type Request struct {
	// Instructions is the prompt contract sent to the backend.
	Instructions string

	// Document is the raw text the instructions operate on. May be
	// empty when the instructions already embed the document.
	Document string

	// MaxTokens caps the completion, when the backend supports it.
	// Zero means backend default.
	MaxTokens int
}

// Backend is an opaque external text-understanding capability. Failures
// carry an error classifiable as rate-limited, transient or fatal via
// pkg/errors.
type Backend interface {
	// Kind reports the backend flavor.
	Kind() Kind

	// Name identifies the backend for logging and error reporting.
	Name() string

	// Call invokes the backend and returns its raw text response with
	// surrounding whitespace trimmed.
	Call(ctx context.Context, req Request) (string, error)
}
