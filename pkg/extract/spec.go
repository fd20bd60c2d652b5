// Package extract turns raw judgment text plus a prompt contract into a
// structured, positionally-aligned answer/evidence result, with retry
// and token-budget handling. It owns the marker-protocol parsing and the
// padding/truncation law: every result carries exactly the expected
// number of fields.
package extract

import "github.com/caseatlas/caseatlas/pkg/backend"

// PromptSpec declares the contract a backend call must satisfy: which
// backend flavor answers, how many ordered fields the answer yields and
// whether the response carries the answer/evidence markers.
type PromptSpec struct {
	// Label names the spec for logging ("marriage", "contributions",
	// "short-form").
	Label string

	// Backend selects the backend flavor this spec runs against.
	Backend backend.Kind

	// ExpectedFields is the number of ordered answer fields a call must
	// yield. Results are padded up to this count; short-form results
	// are also truncated down to it.
	ExpectedFields int

	// Markers reports whether the response carries the two literal
	// markers separating the answer segment from the evidence segment.
	Markers bool

	// Instructions is the natural-language prompt contract. Content is
	// supplied by the caller; this package only relies on the structure
	// declared above. The "{content}" placeholder, when present, is
	// replaced with the composed document text.
	Instructions string
}

// ErrorState classifies a degraded extraction. The zero value means the
// extraction succeeded.
type ErrorState int

// Error states recorded on an ExtractionResult.
const (
	// StateOK means the backend answered and parsing succeeded.
	StateOK ErrorState = iota

	// StateBudgetExceeded means the prompt was too large; no call was made.
	StateBudgetExceeded

	// StateExhaustedRetries means every attempt failed.
	StateExhaustedRetries

	// StateFatal means the backend failed in a non-retryable way.
	StateFatal
)

// String returns a short name for the error state.
func (s ErrorState) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateBudgetExceeded:
		return "budget_exceeded"
	case StateExhaustedRetries:
		return "exhausted_retries"
	case StateFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Result is one structured extraction: ordered answer fields with
// best-effort positionally aligned evidence. Fields always has exactly
// the spec's expected length; Evidence may be shorter.
type Result struct {
	// SourceKey is the unique key of the extracted case.
	SourceKey string

	// Backend is the flavor that produced this result.
	Backend backend.Kind

	// Fields are the ordered answer values, padded/truncated per spec.
	Fields []string

	// Evidence lines are assumed (not verified) to correspond to fields
	// by position.
	Evidence []string

	// State classifies a degraded extraction; StateOK otherwise.
	State ErrorState
}

// Degraded reports whether the extraction fell back to sentinel values.
func (r Result) Degraded() bool {
	return r.State != StateOK
}
