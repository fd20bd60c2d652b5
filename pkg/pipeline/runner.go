// Package pipeline orchestrates a full run: extraction against both
// backends, reconciliation of the shared field subset and the archive
// merge. Cases are processed by a bounded worker pool; snapshot writes
// go through a single writer in input order.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/caseatlas/caseatlas/pkg/archive"
	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/extract"
	"github.com/caseatlas/caseatlas/pkg/logging"
	"github.com/caseatlas/caseatlas/pkg/reconcile"
)

// Runner wires the extraction adapter, reconciliation engine and
// archive merger into one pipeline.
type Runner struct {
	adapter   *extract.Adapter
	engine    *reconcile.Engine
	merger    *archive.Merger
	longSpecs []extract.PromptSpec
	shortSpec extract.PromptSpec
	workers   int
}

// NewRunner creates a runner with the default prompt contracts and
// worker count.
func NewRunner(adapter *extract.Adapter, engine *reconcile.Engine, merger *archive.Merger) *Runner {
	return &Runner{
		adapter:   adapter,
		engine:    engine,
		merger:    merger,
		longSpecs: DefaultLongFormSpecs(),
		shortSpec: DefaultShortFormSpec(),
		workers:   constants.DefaultWorkers,
	}
}

// WithSpecs overrides the prompt contracts.
func (r *Runner) WithSpecs(long []extract.PromptSpec, short extract.PromptSpec) *Runner {
	r.longSpecs = long
	r.shortSpec = short
	return r
}

// WithWorkers overrides the worker pool size.
func (r *Runner) WithWorkers(n int) *Runner {
	if n > 0 {
		r.workers = n
	}
	return r
}

// Run processes all extractable, not-yet-archived cases and returns
// the merged snapshot. Cases already present in the prior snapshot
// trigger no backend call. Per-case failures degrade to sentinel
// values; only snapshot persistence failures abort the run.
func (r *Runner) Run(ctx context.Context, docs []cases.Case, prior *archive.Snapshot) (*archive.Snapshot, error) {
	log := logging.Ctx(ctx)
	builder := r.merger.Begin(prior)

	var jobs []cases.Case
	for _, doc := range docs {
		if builder.Exists(doc.UniqueKey) {
			log.Info().Str("case", doc.UniqueKey).Msg("Case already archived, no extraction needed")
			continue
		}
		if !doc.Extractable() {
			log.Warn().Str("case", doc.UniqueKey).Msg("Case has no judgment text, skipping")
			continue
		}
		jobs = append(jobs, doc)
	}
	log.Info().Int("cases", len(jobs)).Int("workers", r.workers).Msg("Starting extraction run")

	// Workers hand completed cases to the writer through per-case
	// channels so records land in input order, not completion order.
	done := make([]chan archive.Entry, len(jobs))
	for i := range done {
		done[i] = make(chan archive.Entry, 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	go func() {
		for i, doc := range jobs {
			g.Go(func() error {
				done[i] <- r.processCase(gctx, doc)
				return nil
			})
		}
	}()

	for i := range jobs {
		var entry archive.Entry
		select {
		case entry = <-done[i]:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if _, err := builder.Add(ctx, entry); err != nil {
			return nil, err
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return builder.Finish(ctx)
}

// processCase runs both backends and the reconciliation for one case.
// It never fails; degraded extractions surface as sentinel values in
// the returned entry.
func (r *Runner) processCase(ctx context.Context, doc cases.Case) archive.Entry {
	var answers, evidence []string
	for _, spec := range r.longSpecs {
		result := r.adapter.Extract(ctx, doc, spec)
		answers = append(answers, result.Fields...)
		evidence = append(evidence, alignEvidence(result.Evidence, len(result.Fields))...)
	}

	short := r.adapter.Extract(ctx, doc, r.shortSpec)

	longSubset := reconcile.SelectLongForm(answers)
	differs := r.engine.Reconcile(ctx, short.Fields, longSubset)
	verdict := reconcile.BuildVerdict(doc.UniqueKey, short.Fields, longSubset, differs)

	return archive.Entry{
		Case:     doc,
		Answers:  answers,
		Evidence: evidence,
		Verdict:  verdict,
	}
}

// alignEvidence pads one contract's evidence to its field count so
// positional alignment survives concatenation across contracts.
func alignEvidence(evidence []string, fields int) []string {
	for len(evidence) < fields {
		evidence = append(evidence, constants.SentinelNA)
	}
	return evidence[:fields]
}
