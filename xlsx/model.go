package xlsx

import (
	"fmt"
	"strconv"

	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/tablexlsx/grid"
)

// Intermediate representation of a workbook, shared by the HTML preview and
// the read-back inspector.

// BorderLine is one border edge, Style uses the spreadsheet names
// (thin, medium, thick, dashed, dotted, double).
type BorderLine struct {
	Style string
	Color string // "RRGGBB"
}

func (b BorderLine) String() string {
	if b.Style == "" {
		return "none"
	}
	return b.Style + " #" + b.Color
}

// CellStyle captures the cell formatting this converter produces.
type CellStyle struct {
	FontFamily      string  // e.g. "Calibri"
	FontSizePt      float64 // size in points
	FontColor       string  // "RRGGBB"
	Bold            bool
	Italic          bool
	Underline       bool
	BackgroundColor string // "RRGGBB"
	BorderTop       BorderLine
	BorderRight     BorderLine
	BorderBottom    BorderLine
	BorderLeft      BorderLine
	HorizontalAlign string // general|left|center|right|justify
	VerticalAlign   string // top|middle|bottom
	WrapText        bool
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %g, FontColor: %s, Bold: %t, Italic: %t, Underline: %t, BackgroundColor: %s, Border: %s/%s/%s/%s, HorizontalAlign: %s, VerticalAlign: %s, WrapText: %t",
		s.FontFamily, s.FontSizePt, s.FontColor, s.Bold, s.Italic, s.Underline, s.BackgroundColor,
		s.BorderTop, s.BorderRight, s.BorderBottom, s.BorderLeft, s.HorizontalAlign, s.VerticalAlign, s.WrapText)
}

// RenderCell is a single cell, or the master of a merged region.
type RenderCell struct {
	Ref     string // e.g. "A1"
	Value   string
	ColSpan int // 1 if not merged
	RowSpan int // 1 if not merged
	Style   CellStyle
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %q, ColSpan: %d, RowSpan: %d, Style: %s", c.Ref, c.Value, c.ColSpan, c.RowSpan, c.Style)
}

// RenderRow represents one row of a sheet.
type RenderRow struct {
	HeightPt     float64 // 0 when the row keeps the default height
	CustomHeight bool
	Cells        []*RenderCell // len == column count; nil for blank or covered cells
}

func (r RenderRow) String() string {
	return fmt.Sprintf("HeightPt: %g, CustomHeight: %t, Cells: %d", r.HeightPt, r.CustomHeight, len(r.Cells))
}

// RenderSheet is the intermediate representation of a worksheet.
type RenderSheet struct {
	Name      string
	ColWidths []float64 // column width units, len == column count
	Rows      []RenderRow
	Merges    []string // "A1:B2"
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, ColWidths: %v, Rows: %d, Merges: %v", s.Name, s.ColWidths, len(s.Rows), s.Merges)
}

// Cell returns the cell at the zero based row and column, or nil.
func (s RenderSheet) Cell(row, col int) *RenderCell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row].Cells) {
		return nil
	}
	return s.Rows[row].Cells[col]
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}

// CellRef formats a zero based position as an A1 reference.
func CellRef(row, col int) string {
	return reference.IndexToColumn(uint32(col)) + strconv.Itoa(row+1)
}

// Model projects grids onto the intermediate representation without going
// through a workbook.
func Model(grids ...*grid.Grid) WorkbookModel {
	var m WorkbookModel
	names := sheetNames(grids)
	for i, g := range grids {
		m.Sheets = append(m.Sheets, sheetModel(g, names[i]))
	}
	return m
}

func sheetModel(g *grid.Grid, name string) RenderSheet {
	rs := RenderSheet{
		Name:      name,
		ColWidths: make([]float64, g.Cols()),
		Rows:      make([]RenderRow, g.Rows()),
	}
	for c := range rs.ColWidths {
		w, ok := g.ColWidths[c]
		if !ok {
			w = grid.DefaultColumnWidth
		}
		rs.ColWidths[c] = w
	}
	for r := range rs.Rows {
		rs.Rows[r].Cells = make([]*RenderCell, g.Cols())
		if h, ok := g.RowHeights[r]; ok {
			rs.Rows[r].HeightPt = h
			rs.Rows[r].CustomHeight = true
		}
	}

	for _, m := range g.Merges {
		rs.Merges = append(rs.Merges, CellRef(m.StartRow, m.StartCol)+":"+CellRef(m.EndRow, m.EndCol))
	}

	for _, p := range g.Positions() {
		if g.Master(p) != p {
			continue
		}
		slot, _ := g.At(p)
		rc := &RenderCell{
			Ref:     CellRef(p.Row, p.Col),
			Value:   slot.Value,
			ColSpan: 1,
			RowSpan: 1,
			Style:   styleOf(slot.Format),
		}
		if m, ok := g.MergeAt(p); ok {
			rc.ColSpan, rc.RowSpan = m.Cols(), m.Rows()
			// the outer edges of a merge live on its edge slots
			rc.Style.BorderRight = borderLine(edge(g, grid.Pos{Row: p.Row, Col: m.EndCol}).Right)
			rc.Style.BorderBottom = borderLine(edge(g, grid.Pos{Row: m.EndRow, Col: p.Col}).Bottom)
		}
		rs.Rows[p.Row].Cells[p.Col] = rc
	}
	return rs
}

func edge(g *grid.Grid, p grid.Pos) grid.Borders {
	if s, ok := g.At(p); ok {
		return s.Format.Border
	}
	return grid.Borders{}
}

func styleOf(f grid.Format) CellStyle {
	return CellStyle{
		FontFamily:      f.FontName,
		FontSizePt:      f.FontSize,
		FontColor:       normalizeColor(f.TextColor),
		Bold:            f.Bold,
		Italic:          f.Italic,
		Underline:       f.Underline,
		BackgroundColor: normalizeColor(f.FillColor),
		BorderTop:       borderLine(f.Border.Top),
		BorderRight:     borderLine(f.Border.Right),
		BorderBottom:    borderLine(f.Border.Bottom),
		BorderLeft:      borderLine(f.Border.Left),
		HorizontalAlign: f.Horizontal,
		VerticalAlign:   verticalName(f.Vertical),
		WrapText:        f.Wrap,
	}
}

func borderLine(s grid.Side) BorderLine {
	if !s.Visible() {
		return BorderLine{}
	}
	return BorderLine{Style: s.Style.String(), Color: normalizeColor(s.Color)}
}

// verticalName maps spreadsheet vertical alignment onto the CSS vocabulary.
func verticalName(v string) string {
	switch v {
	case grid.AlignTop:
		return "top"
	case grid.AlignCenter:
		return "middle"
	case "":
		return ""
	}
	return "bottom"
}
