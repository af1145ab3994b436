package table

import (
	"fmt"

	"github.com/aerissecure/tablexlsx/css"
)

// SectionKind identifies a row group of a table.
type SectionKind int

const (
	Head SectionKind = iota
	Body
	Foot
)

// SectionOrder is the order sections are laid out in, whatever their order in
// the source.
var SectionOrder = []SectionKind{Head, Body, Foot}

func (k SectionKind) String() string {
	switch k {
	case Head:
		return "thead"
	case Body:
		return "tbody"
	case Foot:
		return "tfoot"
	}
	return fmt.Sprintf("section(%d)", int(k))
}

// Valid reports whether k is one of the three known sections.
func (k SectionKind) Valid() bool {
	return k == Head || k == Body || k == Foot
}

// TableDocument is the parsed form of one HTML table.
type TableDocument struct {
	Class    string
	Style    css.Inline
	Colgroup []ColumnSpec
	Sections map[SectionKind]*Section
}

// ColumnSpec is one <col> of the table's colgroup.
type ColumnSpec struct {
	Style css.Inline
}

// Section is a thead, tbody or tfoot. Several tbody elements share one Section.
type Section struct {
	Style css.Inline
	Rows  []Row
}

// Row is a single <tr>.
type Row struct {
	Style css.Inline
	Cells []Cell
}

// Cell is a <td> or <th>.
type Cell struct {
	Header  bool
	Style   css.Inline
	Text    string
	ColSpan int
	RowSpan int
}

// NewTableDocument returns an empty document with all sections allocated.
func NewTableDocument() *TableDocument {
	return &TableDocument{
		Sections: map[SectionKind]*Section{
			Head: {},
			Body: {},
			Foot: {},
		},
	}
}

// Section returns the section of the given kind, or nil.
func (d *TableDocument) Section(kind SectionKind) *Section {
	if d == nil || d.Sections == nil {
		return nil
	}
	return d.Sections[kind]
}

// RowCount returns the number of rows in all sections.
func (d *TableDocument) RowCount() int {
	n := 0
	for _, kind := range SectionOrder {
		if s := d.Section(kind); s != nil {
			n += len(s.Rows)
		}
	}
	return n
}

// Empty reports whether the document has no rows.
func (d *TableDocument) Empty() bool {
	return d.RowCount() == 0
}
