// Package grid projects a parsed table onto a spreadsheet grid: it places
// cells and merges, sizes columns and rows and translates the cascaded CSS of
// every cell into spreadsheet formatting.
package grid

import (
	"fmt"
	"slices"

	"github.com/aerissecure/tablexlsx/css"
)

// Pos addresses a slot, zero based.
type Pos struct {
	Row, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Merge is an inclusive rectangle of slots shown as one cell.
type Merge struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Contains reports whether p lies inside m.
func (m Merge) Contains(p Pos) bool {
	return p.Row >= m.StartRow && p.Row <= m.EndRow && p.Col >= m.StartCol && p.Col <= m.EndCol
}

// Master is the top-left slot of the merge.
func (m Merge) Master() Pos {
	return Pos{Row: m.StartRow, Col: m.StartCol}
}

// Rows is the number of rows the merge spans.
func (m Merge) Rows() int {
	return m.EndRow - m.StartRow + 1
}

// Cols is the number of columns the merge spans.
func (m Merge) Cols() int {
	return m.EndCol - m.StartCol + 1
}

// Side is one border edge. The zero value draws nothing.
type Side struct {
	Style css.LineStyle
	Color string // ARGB
}

// Visible reports whether the side draws a line.
func (s Side) Visible() bool {
	return s.Style != css.LineNone
}

// Borders are the four edges of a slot.
type Borders struct {
	Top, Right, Bottom, Left Side
}

// Horizontal alignment values.
const (
	AlignGeneral = "general"
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Vertical alignment values.
const (
	AlignTop    = "top"
	AlignBottom = "bottom"
)

// Format is the spreadsheet formatting of a slot. It is comparable so that
// writers can share styles between equal formats.
type Format struct {
	FontName   string
	FontSize   float64
	Bold       bool
	Italic     bool
	Underline  bool
	TextColor  string // ARGB, empty when unset
	FillColor  string // ARGB, empty when unset
	Border     Borders
	Horizontal string
	Vertical   string
	Wrap       bool
}

// Slot is one addressable cell of the grid.
type Slot struct {
	Value  string
	Format Format
	// Origin is set for slots that received a table cell. Slots absorbed by a
	// merge only carry border edges.
	Origin bool
}

// Grid is the spreadsheet projection of one table.
type Grid struct {
	Name       string
	ColWidths  map[int]float64 // spreadsheet width units
	RowHeights map[int]float64 // points
	Merges     []Merge

	slots map[Pos]*Slot
	rows  int
	cols  int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{
		ColWidths:  make(map[int]float64),
		RowHeights: make(map[int]float64),
		slots:      make(map[Pos]*Slot),
	}
}

// Slot returns the slot at p, creating it when needed and growing the grid
// extent.
func (g *Grid) Slot(p Pos) *Slot {
	if s, ok := g.slots[p]; ok {
		return s
	}
	s := &Slot{}
	g.slots[p] = s
	g.grow(p.Row+1, p.Col+1)
	return s
}

// At returns the slot at p if it exists.
func (g *Grid) At(p Pos) (*Slot, bool) {
	s, ok := g.slots[p]
	return s, ok
}

// Rows is the number of rows in use.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols is the number of columns in use.
func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) grow(rows, cols int) {
	g.rows = max(g.rows, rows)
	g.cols = max(g.cols, cols)
}

// AddMerge registers a merge region. Single slot regions are ignored.
func (g *Grid) AddMerge(m Merge) {
	if m.Rows() <= 1 && m.Cols() <= 1 {
		return
	}
	g.Merges = append(g.Merges, m)
	g.grow(m.EndRow+1, m.EndCol+1)
}

// MergeAt returns the first merge containing p.
func (g *Grid) MergeAt(p Pos) (Merge, bool) {
	for _, m := range g.Merges {
		if m.Contains(p) {
			return m, true
		}
	}
	return Merge{}, false
}

// Master returns the slot writes to p must go to: the master of the merge
// containing p, or p itself.
func (g *Grid) Master(p Pos) Pos {
	if m, ok := g.MergeAt(p); ok {
		return m.Master()
	}
	return p
}

// SetColWidth sets a column width in spreadsheet units.
func (g *Grid) SetColWidth(col int, units float64) {
	g.ColWidths[col] = units
	g.grow(0, col+1)
}

// SetRowHeight sets a row height in points.
func (g *Grid) SetRowHeight(row int, points float64) {
	g.RowHeights[row] = points
	g.grow(row+1, 0)
}

// Positions returns the positions of all slots in row major order.
func (g *Grid) Positions() []Pos {
	out := make([]Pos, 0, len(g.slots))
	for p := range g.slots {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Pos) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}
