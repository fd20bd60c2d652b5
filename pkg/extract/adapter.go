package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/caseatlas/caseatlas/pkg/backend"
	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/errors"
	"github.com/caseatlas/caseatlas/pkg/logging"
)

// contentPlaceholder marks where the composed document text slots into
// a prompt contract.
const contentPlaceholder = "{content}"

// Adapter runs prompt contracts against backends and produces
// schema-conformant extraction results. Per-case failures are absorbed
// into sentinel values; Extract never returns an error.
type Adapter struct {
	backends map[backend.Kind]backend.Backend
	policies map[backend.Kind]RetryPolicy
	guard    *BudgetGuard
}

// NewAdapter creates an adapter over the given backends with their
// retry policies and the shared budget guard.
func NewAdapter(backends []backend.Backend, guard *BudgetGuard) *Adapter {
	byKind := make(map[backend.Kind]backend.Backend, len(backends))
	for _, b := range backends {
		byKind[b.Kind()] = b
	}

	return &Adapter{
		backends: byKind,
		policies: map[backend.Kind]RetryPolicy{
			backend.KindLongForm:  LongFormPolicy(),
			backend.KindShortForm: ShortFormPolicy(),
		},
		guard: guard,
	}
}

// WithPolicy overrides the retry policy for one backend kind.
func (a *Adapter) WithPolicy(kind backend.Kind, policy RetryPolicy) *Adapter {
	a.policies[kind] = policy
	return a
}

// Extract runs one prompt contract against the case's judgment text.
// The result always carries exactly spec.ExpectedFields fields; degraded
// extractions are marked by the error state and sentinel values.
func (a *Adapter) Extract(ctx context.Context, doc cases.Case, spec PromptSpec) Result {
	log := logging.Ctx(ctx)

	b, found := a.backends[spec.Backend]
	if !found {
		log.Error().Str("backend", spec.Backend.String()).Str("case", doc.UniqueKey).
			Msg("No backend registered for prompt spec")
		return a.degraded(doc, spec, StateFatal)
	}

	req, err := a.composeRequest(doc, spec)
	if err != nil {
		log.Warn().Err(err).Str("case", doc.UniqueKey).Str("prompt", spec.Label).
			Msg("Prompt rejected by budget guard")
		return a.degraded(doc, spec, StateBudgetExceeded)
	}

	policy := a.policies[spec.Backend]
	raw, err := policy.Do(ctx, func() (string, error) {
		return b.Call(ctx, req)
	})
	if err != nil {
		state := StateFatal
		if errors.Is(err, errors.ErrExhaustedRetries) {
			state = StateExhaustedRetries
		}
		log.Error().Err(err).Str("case", doc.UniqueKey).Str("prompt", spec.Label).
			Str("state", state.String()).Msg("Extraction failed")
		return a.degraded(doc, spec, state)
	}

	return a.parse(doc, spec, raw)
}

// composeRequest builds the backend request and applies the budget
// guard to the full composed text.
func (a *Adapter) composeRequest(doc cases.Case, spec PromptSpec) (backend.Request, error) {
	document := fmt.Sprintf("Extract the required legal data from %s:\n\n%s", doc.Title, doc.Text)

	var req backend.Request
	if strings.Contains(spec.Instructions, contentPlaceholder) {
		req.Instructions = strings.ReplaceAll(spec.Instructions, contentPlaceholder, document)
	} else {
		req.Instructions = spec.Instructions
		req.Document = document
	}

	if a.guard != nil {
		maxTokens, err := a.guard.Check(req.Instructions + req.Document)
		if err != nil {
			return backend.Request{}, err
		}
		req.MaxTokens = maxTokens
	}

	return req, nil
}

// parse decodes the raw response per the spec's protocol and enforces
// the padding/truncation law.
func (a *Adapter) parse(doc cases.Case, spec PromptSpec, raw string) Result {
	result := Result{
		SourceKey: doc.UniqueKey,
		Backend:   spec.Backend,
	}

	if spec.Markers {
		result.Fields, result.Evidence = ParseMarkerResponse(raw, spec.ExpectedFields)
		return result
	}

	result.Fields = ParseLineResponse(raw, spec.ExpectedFields)
	return result
}

// degraded builds the sentinel-valued result for a failed extraction.
// Budget and retry failures fill every field with the Error sentinel so
// the archive row stays schema-conformant and visibly wrong.
func (a *Adapter) degraded(doc cases.Case, spec PromptSpec, state ErrorState) Result {
	return Result{
		SourceKey: doc.UniqueKey,
		Backend:   spec.Backend,
		Fields:    sentinelFields(constants.SentinelError, spec.ExpectedFields),
		State:     state,
	}
}
