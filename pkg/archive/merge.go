package archive

import (
	"context"

	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/logging"
	"github.com/caseatlas/caseatlas/pkg/reconcile"
)

// Checkpointer persists an in-progress snapshot. A checkpoint failure
// is terminal for the run; the previously persisted state stands.
type Checkpointer interface {
	Checkpoint(ctx context.Context, snapshot *Snapshot) error
}

// Entry is one fully processed case ready for merging: identity,
// combined answer fields, positionally aligned evidence and the
// reconciliation verdict.
type Entry struct {
	Case     cases.Case
	Answers  []string
	Evidence []string
	Verdict  reconcile.Verdict
}

// Merger folds processed cases into the previous snapshot. Records of
// the current run come first in input order; prior records follow
// unchanged.
type Merger struct {
	checkpointer Checkpointer
	interval     int
}

// NewMerger creates a merger. A nil checkpointer disables periodic
// persistence.
func NewMerger(checkpointer Checkpointer) *Merger {
	return &Merger{
		checkpointer: checkpointer,
		interval:     constants.CheckpointInterval,
	}
}

// Merge processes all entries against the prior snapshot in one call.
func (m *Merger) Merge(ctx context.Context, entries []Entry, prior *Snapshot) (*Snapshot, error) {
	builder := m.Begin(prior)
	for _, entry := range entries {
		if _, err := builder.Add(ctx, entry); err != nil {
			return nil, err
		}
	}
	return builder.Finish(ctx)
}

// Begin starts an incremental merge against the prior snapshot. The
// returned builder is not safe for concurrent use; feed it from a
// single writer.
func (m *Merger) Begin(prior *Snapshot) *Builder {
	existing := make(map[string]struct{})
	if prior != nil {
		existing = prior.Keys()
	}
	return &Builder{
		merger:   m,
		prior:    prior,
		existing: existing,
		snapshot: NewSnapshot(),
	}
}

// Builder accumulates new records one case at a time so progress can
// be persisted mid-run.
type Builder struct {
	merger   *Merger
	prior    *Snapshot
	existing map[string]struct{}
	snapshot *Snapshot
	added    int
}

// Snapshot exposes the in-progress snapshot, carried records not yet
// appended.
func (b *Builder) Snapshot() *Snapshot { return b.snapshot }

// Added reports how many new records the builder has emitted.
func (b *Builder) Added() int { return b.added }

// Exists reports whether a key is already archived. Callers use this
// to skip extraction entirely for known cases.
func (b *Builder) Exists(uniqueKey string) bool {
	_, found := b.existing[uniqueKey]
	return found
}

// Add folds one processed case into the snapshot. Cases whose key is
// already archived emit nothing and advance no counters; Add reports
// whether a record was emitted. Checkpoint failures abort the run.
func (b *Builder) Add(ctx context.Context, entry Entry) (bool, error) {
	if b.Exists(entry.Case.UniqueKey) {
		logging.Ctx(ctx).Debug().Str("case", entry.Case.UniqueKey).
			Msg("Case already archived, skipping")
		return false, nil
	}
	b.existing[entry.Case.UniqueKey] = struct{}{}

	record := NewRecord(entry.Case, entry.Answers)
	record.AttachLocators(entry.Case.URL, entry.Evidence)
	for slot, comparison := range entry.Verdict.Compared {
		if comparison.Differs {
			record.AttachMismatch(slot, comparison.ValueA, comparison.ValueB)
		}
	}

	b.snapshot.Records = append(b.snapshot.Records, record)
	b.added++

	if b.merger.checkpointer != nil && b.added%b.merger.interval == 0 {
		if err := b.merger.checkpointer.Checkpoint(ctx, b.snapshot); err != nil {
			return false, err
		}
		logging.Ctx(ctx).Info().Int("records", b.added).Msg("Progress checkpoint saved")
	}

	return true, nil
}

// Finish appends every prior record unchanged, resolves the column
// layout and persists the completed snapshot.
func (b *Builder) Finish(ctx context.Context) (*Snapshot, error) {
	if b.prior != nil {
		b.snapshot.Records = append(b.snapshot.Records, b.prior.Records...)
		if len(b.prior.ColumnWidths) > 0 {
			b.snapshot.ColumnWidths = b.prior.ColumnWidths
		}
	}

	if b.merger.checkpointer != nil {
		if err := b.merger.checkpointer.Checkpoint(ctx, b.snapshot); err != nil {
			return nil, err
		}
	}

	logging.Ctx(ctx).Info().Int("new", b.added).
		Int("total", len(b.snapshot.Records)).Msg("Archive merge complete")
	return b.snapshot, nil
}
