package archive

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/reconcile"
)

// countingCheckpointer records checkpoint calls for interval tests.
type countingCheckpointer struct {
	calls int
	fail  error
}

func (c *countingCheckpointer) Checkpoint(_ context.Context, _ *Snapshot) error {
	c.calls++
	return c.fail
}

func entryFor(n int) Entry {
	return Entry{
		Case: cases.Case{
			Title:        fmt.Sprintf("Case %d", n),
			UniqueKey:    fmt.Sprintf("Case %d SGHCF %d", n, n),
			Citation:     fmt.Sprintf("[2024] SGHCF %d", n),
			JudgmentDate: "2024-03-01",
			URL:          "https://example.org/judgment/" + fmt.Sprint(n),
		},
		Answers:  []string{"10 years", "9 years", "2", "$3000"},
		Evidence: []string{"married in 2005", "NA", "two children of the marriage"},
	}
}

func TestMergeOrdering(t *testing.T) {
	m := NewMerger(nil)

	prior, err := m.Merge(context.Background(), []Entry{entryFor(1), entryFor(2)}, nil)
	require.NoError(t, err)

	next, err := m.Merge(context.Background(), []Entry{entryFor(3), entryFor(4)}, prior)
	require.NoError(t, err)

	keys := make([]string, len(next.Records))
	for i, r := range next.Records {
		keys[i] = r.UniqueKey
	}
	// New records precede carried ones, both in original order.
	assert.Equal(t, []string{
		"Case 3 SGHCF 3", "Case 4 SGHCF 4",
		"Case 1 SGHCF 1", "Case 2 SGHCF 2",
	}, keys)
}

func TestMergeIdempotent(t *testing.T) {
	m := NewMerger(nil)
	entries := []Entry{entryFor(1), entryFor(2), entryFor(3)}

	first, err := m.Merge(context.Background(), entries, nil)
	require.NoError(t, err)

	second, err := m.Merge(context.Background(), entries, first)
	require.NoError(t, err)

	assert.Len(t, second.Records, 3)
	assert.Equal(t, first.Records, second.Records)
}

func TestBuilderSkipsExistingWithoutCounting(t *testing.T) {
	m := NewMerger(nil)

	prior, err := m.Merge(context.Background(), []Entry{entryFor(1)}, nil)
	require.NoError(t, err)

	builder := m.Begin(prior)
	assert.True(t, builder.Exists("Case 1 SGHCF 1"))

	emitted, err := builder.Add(context.Background(), entryFor(1))
	require.NoError(t, err)
	assert.False(t, emitted)
	assert.Zero(t, builder.Added())
}

func TestBuilderCheckpointInterval(t *testing.T) {
	cp := &countingCheckpointer{}
	m := NewMerger(cp)

	builder := m.Begin(nil)
	for i := 1; i <= 12; i++ {
		_, err := builder.Add(context.Background(), entryFor(i))
		require.NoError(t, err)
	}

	// Two interval checkpoints at records 5 and 10.
	assert.Equal(t, 2, cp.calls)

	_, err := builder.Finish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, cp.calls)
}

func TestBuilderCheckpointFailureAborts(t *testing.T) {
	cp := &countingCheckpointer{fail: assert.AnError}
	m := NewMerger(cp)

	builder := m.Begin(nil)
	var lastErr error
	for i := 1; i <= 5; i++ {
		_, lastErr = builder.Add(context.Background(), entryFor(i))
	}

	assert.ErrorIs(t, lastErr, assert.AnError)
}

func TestRecordShape(t *testing.T) {
	entry := entryFor(1)
	record := NewRecord(entry.Case, entry.Answers)

	require.Len(t, record.Values, 17)
	assert.Equal(t, "Case 1", record.Values[0])
	assert.Equal(t, "Case 1 SGHCF 1", record.Values[1])
	assert.Equal(t, "[2024] SGHCF 1", record.Values[2])
	assert.Equal(t, "2024-03-01", record.Values[3])
	assert.Equal(t, "10 years", record.Values[4])
	// Missing trailing answers read as NA.
	for i := 8; i < 17; i++ {
		assert.Equal(t, "NA", record.Values[i])
	}
}

func TestRecordLocators(t *testing.T) {
	entry := entryFor(1)
	record := NewRecord(entry.Case, entry.Answers)
	record.AttachLocators(entry.Case.URL, entry.Evidence)

	// Column 4 carries the first answer's evidence link.
	assert.Contains(t, record.Locators[4], "https://example.org/judgment/1#:~:text=")
	// Sentinel evidence attaches nothing.
	assert.NotContains(t, record.Locators, 5)
	assert.Contains(t, record.Locators, 6)
}

func TestRecordLocatorsWithoutURL(t *testing.T) {
	entry := entryFor(1)
	entry.Case.URL = ""
	record := NewRecord(entry.Case, entry.Answers)
	record.AttachLocators(entry.Case.URL, entry.Evidence)

	assert.Empty(t, record.Locators)
}

func TestRecordMismatchProvenance(t *testing.T) {
	record := NewRecord(entryFor(1).Case, nil)
	record.AttachMismatch(1, "45", "45%")

	// Slot 1 maps to archive column 13, stored 0-based.
	assert.Equal(t, "Mismatch:\nBackendA: 45\nBackendB: 45%", record.Notes[12])
	assert.True(t, record.Highlights[12])

	record.AttachMismatch(9, "a", "b")
	assert.Len(t, record.Notes, 1)
}

func TestMergeAttachesVerdict(t *testing.T) {
	m := NewMerger(nil)
	entry := entryFor(1)
	entry.Verdict = reconcile.Verdict{
		SourceKey: entry.Case.UniqueKey,
		Compared: []reconcile.Comparison{
			{FieldIndex: 5, ValueA: "dual", ValueB: "dual", Differs: false},
			{FieldIndex: 8, ValueA: "45", ValueB: "40%", Differs: true},
		},
	}

	snapshot, err := m.Merge(context.Background(), []Entry{entry}, nil)
	require.NoError(t, err)

	record := snapshot.Records[0]
	assert.NotContains(t, record.Notes, 9)
	assert.Equal(t, "Mismatch:\nBackendA: 45\nBackendB: 40%", record.Notes[12])
}
