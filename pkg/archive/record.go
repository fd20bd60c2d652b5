package archive

import (
	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/normalize"
)

// Record is one archive row. Values always holds exactly the schema's
// column count; per-cell attachments are keyed by 0-based column index.
type Record struct {
	UniqueKey string

	// Values is the full ordered row, identity columns included.
	Values []string

	// Locators holds evidence hyperlinks per column.
	Locators map[int]string

	// Notes holds mismatch explanations per column.
	Notes map[int]string

	// Highlights flags columns whose values the backends disagreed on.
	Highlights map[int]bool
}

// NewRecord builds a schema-conformant row from a case's identity and
// its combined answer fields. Missing trailing answers are filled with
// the "NA" sentinel; excess answers are dropped.
func NewRecord(doc cases.Case, answers []string) Record {
	values := make([]string, 0, constants.SchemaColumns)
	values = append(values, doc.Title, doc.UniqueKey, doc.Citation, doc.JudgmentDate)

	for i := 0; i < constants.AnswerColumns; i++ {
		if i < len(answers) {
			values = append(values, answers[i])
			continue
		}
		values = append(values, constants.SentinelNA)
	}

	return Record{
		UniqueKey:  doc.UniqueKey,
		Values:     values,
		Locators:   make(map[int]string),
		Notes:      make(map[int]string),
		Highlights: make(map[int]bool),
	}
}

// AttachLocators adds evidence hyperlinks to the record's answer
// columns. Evidence is aligned to answers by position; sentinel
// evidence and records without a source URL attach nothing.
func (r Record) AttachLocators(url string, evidence []string) {
	if url == "" {
		return
	}
	for i := 0; i < constants.AnswerColumns && i < len(evidence); i++ {
		line := evidence[i]
		if line == "" || IsSentinelEvidence(line) {
			continue
		}
		r.Locators[constants.IdentityColumns+i] = normalize.Locator(url, line)
	}
}

// AttachMismatch records mismatch provenance on one comparison slot:
// a note naming both backends' values and a highlight flag. Slots
// outside the mismatch column map attach nothing.
func (r Record) AttachMismatch(slot int, valueA, valueB string) {
	column, mapped := MismatchColumns[slot]
	if !mapped {
		return
	}
	idx := column - 1
	r.Notes[idx] = "Mismatch:\nBackendA: " + valueA + "\nBackendB: " + valueB
	r.Highlights[idx] = true
}

// Identity returns the case identity embedded in the row, without
// judgment text. Such cases can be re-listed but not re-extracted.
func (r Record) Identity() cases.Case {
	c := cases.Case{UniqueKey: r.UniqueKey}
	if len(r.Values) >= constants.IdentityColumns {
		c.Title = r.Values[0]
		c.Citation = r.Values[2]
		c.JudgmentDate = r.Values[3]
	}
	return c
}
