package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseatlas/caseatlas/pkg/archive"
	"github.com/caseatlas/caseatlas/pkg/backend"
	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/extract"
	"github.com/caseatlas/caseatlas/pkg/reconcile"
)

// scriptedBackend answers every call with a fixed response and counts
// calls across workers.
type scriptedBackend struct {
	mu       sync.Mutex
	kind     backend.Kind
	response string
	calls    int
}

func (s *scriptedBackend) Kind() backend.Kind { return s.kind }
func (s *scriptedBackend) Name() string       { return "scripted/" + s.kind.String() }

func (s *scriptedBackend) Call(_ context.Context, _ backend.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.response, nil
}

func (s *scriptedBackend) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

const longFormResponse = "|||ANSWERS|||\n10 years\t9 years\t2\t$3000\t$4000\tDual\n|||EVIDENCE|||\n1. \"married in 2005\"\n"

func testDocs(n int) []cases.Case {
	docs := make([]cases.Case, n)
	for i := range docs {
		docs[i] = cases.Case{
			Title:        fmt.Sprintf("Case %d", i+1),
			UniqueKey:    fmt.Sprintf("Case %d SGHCF %d", i+1, i+1),
			Citation:     fmt.Sprintf("[2024] SGHCF %d", i+1),
			JudgmentDate: "2024-03-01",
			URL:          fmt.Sprintf("https://example.org/judgment/%d", i+1),
			Text:         "The parties were married in 2005.",
		}
	}
	return docs
}

func testRunner(long, short, comparer backend.Backend) *Runner {
	adapter := extract.NewAdapter([]backend.Backend{long, short}, nil)
	engine := reconcile.NewEngine(comparer, "")
	return NewRunner(adapter, engine, archive.NewMerger(nil)).WithWorkers(2)
}

func TestRunProducesOrderedRecords(t *testing.T) {
	long := &scriptedBackend{kind: backend.KindLongForm, response: longFormResponse}
	short := &scriptedBackend{kind: backend.KindShortForm, response: "Dual\t45\t55\tPlus 10"}
	comparer := &scriptedBackend{kind: backend.KindLongForm, response: "[False, False, False, False]"}

	runner := testRunner(long, short, comparer)
	snapshot, err := runner.Run(context.Background(), testDocs(5), nil)
	require.NoError(t, err)

	require.Len(t, snapshot.Records, 5)
	for i, record := range snapshot.Records {
		assert.Equal(t, fmt.Sprintf("Case %d SGHCF %d", i+1, i+1), record.UniqueKey)
		assert.Len(t, record.Values, 17)
	}
	// Two long-form contracts per case.
	assert.Equal(t, 10, long.callCount())
	assert.Equal(t, 5, short.callCount())
}

func TestRunSkipsArchivedCasesWithoutCalling(t *testing.T) {
	long := &scriptedBackend{kind: backend.KindLongForm, response: longFormResponse}
	short := &scriptedBackend{kind: backend.KindShortForm, response: "Dual\t45\t55\tPlus 10"}
	comparer := &scriptedBackend{kind: backend.KindLongForm, response: "[False, False, False, False]"}

	runner := testRunner(long, short, comparer)
	docs := testDocs(3)

	prior, err := runner.Run(context.Background(), docs, nil)
	require.NoError(t, err)
	callsAfterFirst := long.callCount()

	next, err := runner.Run(context.Background(), docs, prior)
	require.NoError(t, err)

	// Second run adds nothing and makes no backend calls.
	assert.Len(t, next.Records, 3)
	assert.Equal(t, callsAfterFirst, long.callCount())
	assert.Equal(t, 3, short.callCount())
}

func TestRunSkipsUnextractableCases(t *testing.T) {
	long := &scriptedBackend{kind: backend.KindLongForm, response: longFormResponse}
	short := &scriptedBackend{kind: backend.KindShortForm, response: "Dual\t45\t55\tPlus 10"}
	comparer := &scriptedBackend{kind: backend.KindLongForm, response: "[False, False, False, False]"}

	docs := testDocs(2)
	docs[1].Text = ""

	runner := testRunner(long, short, comparer)
	snapshot, err := runner.Run(context.Background(), docs, nil)
	require.NoError(t, err)

	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "Case 1 SGHCF 1", snapshot.Records[0].UniqueKey)
}

func TestRunMarksMismatches(t *testing.T) {
	long := &scriptedBackend{kind: backend.KindLongForm, response: longFormResponse}
	short := &scriptedBackend{kind: backend.KindShortForm, response: "Single\t40\t50\tMinus 5"}
	comparer := &scriptedBackend{kind: backend.KindLongForm, response: "[True, False, True, False]"}

	runner := testRunner(long, short, comparer)
	snapshot, err := runner.Run(context.Background(), testDocs(1), nil)
	require.NoError(t, err)

	record := snapshot.Records[0]
	// Slot 0 maps to archive column 10, slot 2 to column 14.
	assert.True(t, record.Highlights[9])
	assert.True(t, record.Highlights[13])
	assert.NotContains(t, record.Notes, 12)
	assert.Contains(t, record.Notes[9], "Mismatch:")
	assert.Contains(t, record.Notes[9], "BackendA: Single")
}

func TestRunConcatenatesLongFormAnswers(t *testing.T) {
	long := &scriptedBackend{kind: backend.KindLongForm, response: longFormResponse}
	short := &scriptedBackend{kind: backend.KindShortForm, response: "Dual\t45\t55\tPlus 10"}
	comparer := &scriptedBackend{kind: backend.KindLongForm, response: "[False, False, False, False]"}

	runner := testRunner(long, short, comparer)
	snapshot, err := runner.Run(context.Background(), testDocs(1), nil)
	require.NoError(t, err)

	values := snapshot.Records[0].Values
	// Both contracts return the same six fields here; the second
	// contract's answers land after the first, and the thirteenth
	// answer column pads to NA.
	assert.Equal(t, "10 years", values[4])
	assert.Equal(t, "10 years", values[10])
	assert.Equal(t, "NA", values[16])
}
