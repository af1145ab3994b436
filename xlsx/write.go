package xlsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/aerissecure/tablexlsx/grid"
)

// ErrNoSheets is returned when asked to write a workbook without grids.
var ErrNoSheets = errors.New("no sheets to write")

const maxSheetName = 31

// Writer renders grids into workbooks.
type Writer struct {
	log *zap.Logger
}

// NewWriter returns a writer logging to log, which may be nil.
func NewWriter(log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{log: log.Named("xlsx")}
}

// Workbook builds a workbook with one sheet per grid.
func (w *Writer) Workbook(grids ...*grid.Grid) (*spreadsheet.Workbook, error) {
	if len(grids) == 0 {
		return nil, ErrNoSheets
	}
	wb := spreadsheet.New()
	styles := newStyleCache(wb.StyleSheet)
	names := sheetNames(grids)
	for i, g := range grids {
		sheet := wb.AddSheet()
		sheet.SetName(names[i])
		w.fill(sheet, g, styles)
		w.log.Debug("Sheet written",
			zap.String("name", names[i]),
			zap.Int("rows", g.Rows()),
			zap.Int("cols", g.Cols()),
			zap.Int("merges", len(g.Merges)))
	}
	if err := wb.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	return wb, nil
}

func (w *Writer) fill(sheet spreadsheet.Sheet, g *grid.Grid, styles *styleCache) {
	for c := range g.Cols() {
		units, ok := g.ColWidths[c]
		if !ok {
			continue
		}
		col := sheet.Column(uint32(c + 1)).X()
		col.WidthAttr = unioffice.Float64(units)
		col.CustomWidthAttr = unioffice.Bool(true)
	}

	slots := g.Positions()
	next := 0
	for r := range g.Rows() {
		row := sheet.Row(uint32(r + 1))
		if h, ok := g.RowHeights[r]; ok {
			row.X().HtAttr = unioffice.Float64(h)
			row.X().CustomHeightAttr = unioffice.Bool(true)
		}
		// positions are sorted by row then column
		for ; next < len(slots) && slots[next].Row == r; next++ {
			p := slots[next]
			slot, _ := g.At(p)
			cell := row.Cell(reference.IndexToColumn(uint32(p.Col)))
			if slot.Value != "" {
				cell.SetString(slot.Value)
			}
			cell.SetStyle(styles.style(slot.Format))
		}
	}

	for _, m := range g.Merges {
		sheet.AddMergedCells(CellRef(m.StartRow, m.StartCol), CellRef(m.EndRow, m.EndCol))
	}
}

// Write encodes grids as an XLSX workbook to out.
func (w *Writer) Write(out io.Writer, grids ...*grid.Grid) error {
	wb, err := w.Workbook(grids...)
	if err != nil {
		return err
	}
	if err := wb.Save(out); err != nil {
		return fmt.Errorf("unable to save workbook: %w", err)
	}
	return nil
}

// WriteFile writes grids as an XLSX workbook to path.
func (w *Writer) WriteFile(path string, grids ...*grid.Grid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close output file: %w", cerr))
		}
	}()
	return w.Write(f, grids...)
}

// sheetNames returns a valid, unique sheet name for every grid.
func sheetNames(grids []*grid.Grid) []string {
	names := make([]string, len(grids))
	seen := make(map[string]bool, len(grids))
	for i, g := range grids {
		base := cleanSheetName(g.Name)
		if base == "" {
			base = "Sheet" + strconv.Itoa(i+1)
		}
		name := base
		for n := 2; seen[strings.ToLower(name)]; n++ {
			suffix := " (" + strconv.Itoa(n) + ")"
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func cleanSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	return strings.Trim(truncate(name, maxSheetName), "'")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
