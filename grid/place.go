package grid

import (
	"errors"
	"fmt"

	"github.com/aerissecure/tablexlsx/css"
	"github.com/aerissecure/tablexlsx/table"
)

// ErrMalformedDocument is returned for documents whose shape does not allow
// establishing rows and columns.
var ErrMalformedDocument = errors.New("malformed table document")

// Placement is a table cell with its position on the grid.
type Placement struct {
	Pos          Pos
	ColSpan      int // effective span after clipping
	RowSpan      int
	Section      table.SectionKind
	SectionStyle css.Inline
	Row          *table.Row
	Cell         *table.Cell
}

// Merge returns the merge region of the placement and whether it spans more
// than one slot.
func (p Placement) Merge() (Merge, bool) {
	m := Merge{
		StartRow: p.Pos.Row,
		StartCol: p.Pos.Col,
		EndRow:   p.Pos.Row + p.RowSpan - 1,
		EndCol:   p.Pos.Col + p.ColSpan - 1,
	}
	return m, p.ColSpan > 1 || p.RowSpan > 1
}

// Plan is the result of placing every cell of a document.
type Plan struct {
	Cells  []Placement
	Merges []Merge
	// Rows holds the source row of every grid row.
	Rows []*table.Row
	Cols int
}

// RowCount is the number of grid rows.
func (p *Plan) RowCount() int {
	return len(p.Rows)
}

// Place walks the sections in head, body, foot order and assigns grid
// positions. Columns still covered by a rowspan from an earlier row are
// skipped. Rowspans are clipped to the end of their section and colspans to
// the first covered column, so merges never overlap.
func Place(doc *table.TableDocument) (*Plan, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	plan := &Plan{}
	row := 0
	for _, kind := range table.SectionOrder {
		sec := doc.Section(kind)
		if sec == nil {
			continue
		}
		covered := make(map[Pos]bool)
		for ri := range sec.Rows {
			r := &sec.Rows[ri]
			plan.Rows = append(plan.Rows, r)

			col := 0
			for ci := range r.Cells {
				c := &r.Cells[ci]
				for covered[Pos{row, col}] {
					delete(covered, Pos{row, col})
					col++
				}

				colSpan := 1
				for colSpan < c.ColSpan && !covered[Pos{row, col + colSpan}] {
					colSpan++
				}
				rowSpan := min(c.RowSpan, len(sec.Rows)-ri)

				pl := Placement{
					Pos:          Pos{Row: row, Col: col},
					ColSpan:      colSpan,
					RowSpan:      rowSpan,
					Section:      kind,
					SectionStyle: sec.Style,
					Row:          r,
					Cell:         c,
				}
				if m, ok := pl.Merge(); ok {
					plan.Merges = append(plan.Merges, m)
					for dr := 1; dr < rowSpan; dr++ {
						for dc := range colSpan {
							covered[Pos{row + dr, col + dc}] = true
						}
					}
				}
				plan.Cells = append(plan.Cells, pl)

				col += colSpan
				plan.Cols = max(plan.Cols, col)
			}
			row++
		}
	}
	return plan, nil
}

func validate(doc *table.TableDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: no document", ErrMalformedDocument)
	}
	if doc.Sections == nil {
		return fmt.Errorf("%w: no sections", ErrMalformedDocument)
	}
	for kind, sec := range doc.Sections {
		if !kind.Valid() {
			return fmt.Errorf("%w: unknown section %s", ErrMalformedDocument, kind)
		}
		if sec == nil {
			continue
		}
		for ri, r := range sec.Rows {
			for ci, c := range r.Cells {
				if c.ColSpan < 1 || c.RowSpan < 1 {
					return fmt.Errorf("%w: %s row %d cell %d has span %dx%d",
						ErrMalformedDocument, kind, ri, ci, c.ColSpan, c.RowSpan)
				}
			}
		}
	}
	return nil
}
