package archive

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/xuri/excelize/v2"

	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/errors"
	"github.com/caseatlas/caseatlas/pkg/logging"
)

// Snapshot files are named by creation date, one per calendar day.
const snapshotDateLayout = "02_01_2006"

var snapshotFilePattern = regexp.MustCompile(`^\d{2}_\d{2}_\d{4}\.xlsx$`)

// commentAuthor signs mismatch notes in snapshot files.
const commentAuthor = "caseatlas"

// Store persists snapshots as spreadsheet files in a single archive
// directory.
type Store struct {
	dir string
}

// NewStore creates the archive directory if needed and returns a store
// over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create archive directory", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the archive directory.
func (s *Store) Dir() string { return s.dir }

// SnapshotPath returns the file path a snapshot created at t persists
// to.
func (s *Store) SnapshotPath(t utc.Time) string {
	return filepath.Join(s.dir, t.Format(snapshotDateLayout)+".xlsx")
}

// Latest returns the most recently modified snapshot file, or "" when
// none exists. The exclude path (the file the current run writes)
// never counts as prior state.
func (s *Store) Latest(exclude string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.WrapIO("list archive directory", s.dir, err)
	}

	excludeAbs, _ := filepath.Abs(exclude)

	type candidate struct {
		path  string
		mtime time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !snapshotFilePattern.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil && abs == excludeAbs {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{path: path, mtime: info.ModTime()})
	}

	if len(found) == 0 {
		return "", nil
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mtime.After(found[j].mtime) })
	return found[0].path, nil
}

// Checkpoint persists the snapshot to its date-named file, overwriting
// any earlier checkpoint of the same run.
func (s *Store) Checkpoint(_ context.Context, snapshot *Snapshot) error {
	return s.Save(snapshot, s.SnapshotPath(snapshot.CreatedAt))
}

// Save writes the snapshot to path: header row, one row per record,
// evidence hyperlinks, mismatch highlights and notes, column widths.
func (s *Store) Save(snapshot *Snapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.WrapIO("prepare snapshot sheet", path, err)
	}

	header := Header[:]
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.WrapIO("write snapshot header", path, err)
	}

	highlightStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1},
	})
	if err != nil {
		return errors.WrapIO("create highlight style", path, err)
	}
	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0563C1", Underline: "single"},
	})
	if err != nil {
		return errors.WrapIO("create hyperlink style", path, err)
	}

	for i, record := range snapshot.Records {
		row := i + 2
		anchor, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return errors.WrapIO("address snapshot row", path, err)
		}
		values := record.Values
		if err := f.SetSheetRow(SheetName, anchor, &values); err != nil {
			return errors.WrapIO("write snapshot row", path, err)
		}

		for col, locator := range record.Locators {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				continue
			}
			if err := f.SetCellHyperLink(SheetName, cell, locator, "External"); err != nil {
				logging.Warn().Err(err).Str("cell", cell).Msg("Evidence hyperlink not written")
				continue
			}
			_ = f.SetCellStyle(SheetName, cell, cell, linkStyle)
		}

		for col, highlighted := range record.Highlights {
			if !highlighted {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				continue
			}
			_ = f.SetCellStyle(SheetName, cell, cell, highlightStyle)
		}

		for col, note := range record.Notes {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				continue
			}
			comment := excelize.Comment{
				Cell:      cell,
				Author:    commentAuthor,
				Paragraph: []excelize.RichTextRun{{Text: note}},
			}
			if err := f.AddComment(SheetName, comment); err != nil {
				logging.Warn().Err(err).Str("cell", cell).Msg("Mismatch note not written")
			}
		}
	}

	for i, width := range snapshot.ColumnWidths {
		if width <= 0 || i >= constants.SchemaColumns {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(SheetName, name, name, width)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("save snapshot", path, err)
	}
	return nil
}

// Load reads a snapshot file back, reconstructing values, hyperlinks,
// notes, highlight flags and column widths so carried-forward records
// round-trip byte for byte.
func (s *Store) Load(path string) (*Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open snapshot", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapIO("read snapshot rows", path, err)
	}

	snapshot := &Snapshot{
		SchemaVersion: SchemaVersion,
		CreatedAt:     snapshotDate(path),
	}

	notes := make(map[string]string)
	if comments, err := f.GetComments(sheet); err == nil {
		for _, c := range comments {
			var text strings.Builder
			for _, run := range c.Paragraph {
				text.WriteString(run.Text)
			}
			if text.Len() == 0 {
				text.WriteString(c.Text)
			}
			notes[c.Cell] = text.String()
		}
	}

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		values := make([]string, constants.SchemaColumns)
		copy(values, rows[rowIdx])
		for i := range values {
			if i >= len(rows[rowIdx]) {
				values[i] = constants.SentinelNA
			}
		}

		record := Record{
			UniqueKey:  values[1],
			Values:     values,
			Locators:   make(map[int]string),
			Notes:      make(map[int]string),
			Highlights: make(map[int]bool),
		}

		row := rowIdx + 1
		for col := 0; col < constants.SchemaColumns; col++ {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				continue
			}
			if linked, target, err := f.GetCellHyperLink(sheet, cell); err == nil && linked {
				record.Locators[col] = target
			}
			if note, found := notes[cell]; found {
				record.Notes[col] = note
			}
			if s.cellHighlighted(f, sheet, cell) {
				record.Highlights[col] = true
			}
		}

		snapshot.Records = append(snapshot.Records, record)
	}

	widths := make([]float64, constants.SchemaColumns)
	any := false
	for i := 0; i < constants.SchemaColumns; i++ {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if w, err := f.GetColWidth(sheet, name); err == nil && w > 0 {
			widths[i] = w
			any = true
		}
	}
	if any {
		snapshot.ColumnWidths = widths
	}

	return snapshot, nil
}

// LoadCases reads the identity columns of a snapshot into cases. Such
// cases carry no judgment text; they can be listed but not
// re-extracted.
func (s *Store) LoadCases(path string) ([]cases.Case, error) {
	snapshot, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	out := make([]cases.Case, 0, len(snapshot.Records))
	for _, record := range snapshot.Records {
		out = append(out, record.Identity())
	}
	return out, nil
}

// cellHighlighted reports whether a cell carries a visible pattern
// fill. No fill, pure black and pure white all read as unhighlighted.
func (s *Store) cellHighlighted(f *excelize.File, sheet, cell string) bool {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.Fill.Type != "pattern" || style.Fill.Pattern == 0 || len(style.Fill.Color) == 0 {
		return false
	}
	color := strings.ToUpper(strings.TrimPrefix(style.Fill.Color[0], "#"))
	color = strings.TrimPrefix(color, "FF")
	return color != "" && color != "000000" && color != "FFFFFF"
}

// snapshotDate recovers the creation date from a date-named snapshot
// file, falling back to now for foreign names.
func snapshotDate(path string) utc.Time {
	base := filepath.Base(path)
	stamp := strings.TrimSuffix(base, filepath.Ext(base))
	if t, err := time.Parse(snapshotDateLayout, stamp); err == nil {
		return utc.Time{Time: t.UTC()}
	}
	return utc.Now()
}
