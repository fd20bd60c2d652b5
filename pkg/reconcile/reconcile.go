// Package reconcile determines, field by field, whether two
// independently produced answer sets disagree in meaning. The semantic
// comparison itself is delegated to an opaque backend call; this package
// owns the fixed slot mapping, the response decoding and the fail-open
// fallback.
package reconcile

import (
	"context"
	"strings"

	"github.com/caseatlas/caseatlas/pkg/backend"
	"github.com/caseatlas/caseatlas/pkg/extract"
	"github.com/caseatlas/caseatlas/pkg/logging"
)

// ComparisonSlots is the size of the comparison subset. Both backends
// answer the same four facts, each in its own schema position.
const ComparisonSlots = 4

// LongFormFieldIndices maps comparison slots to the long-form backend's
// full answer-vector indices. A configuration constant, not derived at
// runtime.
var LongFormFieldIndices = [ComparisonSlots]int{5, 8, 9, 10}

// ShortFormFieldIndices maps comparison slots to the short-form
// backend's own four-field schema.
var ShortFormFieldIndices = [ComparisonSlots]int{0, 1, 2, 3}

// DefaultInstructions is the comparison contract sent alongside both
// value lists. Callers may override it; the response format contract
// (a literal boolean list) must be preserved.
const DefaultInstructions = `You are a meticulous paralegal tasked with comparing two lists of legal outputs: {listA} and {listB}.

For each pair of corresponding items:
- Return False if both items mean the same thing, even if phrased differently.
- Return True only if the meanings are actually different (e.g. different facts, numbers, or legal interpretations).

Treat the following as equivalent: 'NA', 'Undisclosed', '0', or elaborations that don't change meaning.

Output the result as a plain list of booleans, separated by commas and within square brackets, with no extra text or formatting.
For example: [False, False, True, False]
Do not include any explanation, markdown, code blocks, or commentary.
Just return the list, nothing else.`

// Comparison records one compared field pair.
type Comparison struct {
	// FieldIndex is the long-form answer-vector index this slot maps to.
	FieldIndex int

	// ValueA is the short-form backend's answer.
	ValueA string

	// ValueB is the long-form backend's answer.
	ValueB string

	// Differs is true when the two answers disagree in substance.
	Differs bool
}

// Verdict is the per-case reconciliation outcome.
type Verdict struct {
	SourceKey string
	Compared  []Comparison
}

// AnyDiffers reports whether at least one compared field disagrees.
func (v Verdict) AnyDiffers() bool {
	for _, c := range v.Compared {
		if c.Differs {
			return true
		}
	}
	return false
}

// Engine reconciles two comparable field subsets through a semantic
// comparison backend.
type Engine struct {
	backend      backend.Backend
	instructions string
	policy       extract.RetryPolicy
}

// NewEngine creates an engine over the given comparison backend. Empty
// instructions select the default contract.
func NewEngine(b backend.Backend, instructions string) *Engine {
	if instructions == "" {
		instructions = DefaultInstructions
	}
	return &Engine{
		backend:      b,
		instructions: instructions,
		policy:       extract.LongFormPolicy(),
	}
}

// WithPolicy overrides the retry policy for comparison calls.
func (e *Engine) WithPolicy(policy extract.RetryPolicy) *Engine {
	e.policy = policy
	return e
}

// Reconcile compares two equal-length ordered value lists and returns,
// per position, whether the values differ in substance. Any failure of
// the call or of decoding its response marks every position as
// differing so reconciliation failures are never hidden as agreement.
func (e *Engine) Reconcile(ctx context.Context, valuesA, valuesB []string) []bool {
	prompt := strings.ReplaceAll(e.instructions, "{listA}", formatList(valuesA))
	prompt = strings.ReplaceAll(prompt, "{listB}", formatList(valuesB))

	raw, err := e.policy.Do(ctx, func() (string, error) {
		return e.backend.Call(ctx, backend.Request{Instructions: prompt})
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Semantic comparison call failed, marking all fields as differing")
		return allDiffer(len(valuesA))
	}

	differs, err := ParseBoolList(raw, len(valuesA))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("response", raw).
			Msg("Comparison response did not decode, marking all fields as differing")
		return allDiffer(len(valuesA))
	}

	return differs
}

// SelectLongForm picks the long-form comparison subset out of the full
// answer vector, lowercased and trimmed for comparison. Missing
// positions read as "na".
func SelectLongForm(fields []string) []string {
	out := make([]string, 0, ComparisonSlots)
	for _, idx := range LongFormFieldIndices {
		if idx < len(fields) {
			out = append(out, strings.ToLower(strings.TrimSpace(fields[idx])))
			continue
		}
		out = append(out, "na")
	}
	return out
}

// BuildVerdict assembles the per-case verdict from both comparison
// subsets and the differs vector. Inputs shorter than the slot count
// read as "NA".
func BuildVerdict(sourceKey string, shortFields, longFields []string, differs []bool) Verdict {
	v := Verdict{SourceKey: sourceKey}
	for slot := 0; slot < ComparisonSlots; slot++ {
		c := Comparison{
			FieldIndex: LongFormFieldIndices[slot],
			ValueA:     valueAt(shortFields, ShortFormFieldIndices[slot]),
			ValueB:     valueAt(longFields, slot),
		}
		if slot < len(differs) {
			c.Differs = differs[slot]
		}
		v.Compared = append(v.Compared, c)
	}
	return v
}

func valueAt(values []string, idx int) string {
	if idx < len(values) {
		return values[idx]
	}
	return "NA"
}

// formatList renders a value list the way the comparison contract
// expects: ['a', 'b', 'c'].
func formatList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// allDiffer is the fail-open fallback vector.
func allDiffer(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
