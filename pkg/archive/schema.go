// Package archive builds and persists the cumulative case archive. A
// run merges freshly extracted cases with the previous snapshot: new
// records first in input order, then every prior record carried forward
// unchanged. Snapshots are date-named spreadsheet files; a superseded
// snapshot is never mutated.
package archive

import "github.com/caseatlas/caseatlas/pkg/constants"

// SchemaVersion identifies the archive column layout.
const SchemaVersion = 1

// SheetName is the single worksheet every snapshot file carries.
const SheetName = "Cases"

// Header is the fixed archive schema: four identity columns followed
// by thirteen answer columns. Column order is part of the file format.
var Header = [constants.SchemaColumns]string{
	"Case Name",
	"Unique Name",
	"Citation",
	"Date of Judgment",
	"Length of marriage till IJ (include separation period)",
	"Length of marriage (exclude separation period)",
	"Number of children",
	"Wife's income (monthly)",
	"Husband's income (monthly)",
	"Single or dual income marriage",
	"Direct Contribution (Wife)",
	"Indirect Contribution (Wife)",
	"Average Ratio (Wife)",
	"Final Ratio",
	"Adjustments",
	"Adjustment Reason",
	"Custody Type",
}

// MismatchColumns maps reconciliation comparison slots to the 1-based
// archive columns that receive mismatch provenance: average ratio,
// final ratio, adjustments and adjustment reason.
var MismatchColumns = map[int]int{
	0: 10,
	1: 13,
	2: 14,
	3: 15,
}

// HighlightColor fills cells whose values the two backends disagreed
// on.
const HighlightColor = "FFC7CE"

// Evidence values that never become locators.
var sentinelEvidence = map[string]struct{}{
	"NA":            {},
	"Undisclosed":   {},
	"Not Discussed": {},
}

// IsSentinelEvidence reports whether an evidence string carries no
// quotable passage.
func IsSentinelEvidence(evidence string) bool {
	_, found := sentinelEvidence[evidence]
	return found
}
