// Package export turns a finished archive snapshot into a cell grid a
// downstream publisher can replicate into a collaborative sheet. The
// publisher itself is an external collaborator behind an interface;
// this package only prepares what it needs per cell.
package export

import (
	"context"
	"strings"

	"github.com/caseatlas/caseatlas/pkg/archive"
	"github.com/caseatlas/caseatlas/pkg/constants"
)

// Cell is one publishable cell: value plus optional hyperlink,
// highlight color and note.
type Cell struct {
	Value     string
	Hyperlink string
	Note      string
	Highlight string
}

// Grid is the full publishable table, header row included.
type Grid struct {
	Rows         [][]Cell
	ColumnWidths []float64
}

// Publisher pushes a grid to an external sheet.
type Publisher interface {
	Publish(ctx context.Context, grid Grid) error
}

// FromSnapshot converts a snapshot into a grid. Row 0 is the schema
// header; each record becomes one row with its locator, note and
// highlight attached per cell.
func FromSnapshot(snapshot *archive.Snapshot) Grid {
	grid := Grid{
		Rows:         make([][]Cell, 0, len(snapshot.Records)+1),
		ColumnWidths: snapshot.ColumnWidths,
	}

	header := make([]Cell, constants.SchemaColumns)
	for i, name := range archive.Header {
		header[i] = Cell{Value: name}
	}
	grid.Rows = append(grid.Rows, header)

	for _, record := range snapshot.Records {
		row := make([]Cell, constants.SchemaColumns)
		for col := 0; col < constants.SchemaColumns; col++ {
			cell := Cell{}
			if col < len(record.Values) {
				cell.Value = record.Values[col]
			}
			cell.Hyperlink = record.Locators[col]
			cell.Note = record.Notes[col]
			if record.Highlights[col] {
				cell.Highlight = archive.HighlightColor
			}
			row[col] = cell
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// ShouldReplicateFill reports whether a fill color is worth pushing
// downstream. No fill, pure black and pure white read as unstyled
// defaults, not highlights.
func ShouldReplicateFill(color string) bool {
	c := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	switch c {
	case "", "000000", "FFFFFF":
		return false
	}
	return true
}
