package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"github.com/aerissecure/tablexlsx/css"
)

const (
	// limits used by browsers
	maxColSpan = 1000
	maxRowSpan = 65534
)

// Option configures parsing.
type Option func(*parser)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(p *parser) {
		if log != nil {
			p.log = log
		}
	}
}

type cellBuilder struct {
	header  bool
	orphan  bool // opened outside of any row
	style   css.Inline
	colSpan int
	rowSpan int
	text    textBuffer
}

type parser struct {
	log   *zap.Logger
	class string

	docs []*TableDocument

	// state of the table being collected, doc is nil while outside of a
	// matching table
	doc        *TableDocument
	depth      int
	section    SectionKind
	inSection  bool
	inColgroup bool
	row        *Row
	cell       *cellBuilder
}

// Parse builds the document of the first table whose class attribute equals
// class. An empty class matches any table. When nothing matches an empty
// document is returned.
func Parse(events []Event, class string, opts ...Option) *TableDocument {
	docs := ParseAll(events, class, opts...)
	if len(docs) == 0 {
		return NewTableDocument()
	}
	return docs[0]
}

// ParseAll builds documents for every matching table in source order.
func ParseAll(events []Event, class string, opts ...Option) []*TableDocument {
	p := &parser{log: zap.NewNop(), class: class}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Named("table")

	for _, ev := range events {
		switch ev.Kind {
		case StartTag:
			p.start(ev)
		case EndTag:
			p.end(ev)
		case Text:
			if p.doc != nil && p.cell != nil {
				p.cell.text.write(ev.Text)
			}
		}
	}
	if p.doc != nil {
		p.log.Debug("Table not closed at end of input")
		p.closeTable()
	}
	p.log.Debug("Parsed tables", zap.Int("count", len(p.docs)), zap.String("class", class))
	return p.docs
}

// ParseHTML tokenizes r and parses the first matching table.
func ParseHTML(r io.Reader, class string, opts ...Option) (*TableDocument, error) {
	events, err := TokenizeDocument(r, "")
	if err != nil {
		return nil, err
	}
	return Parse(events, class, opts...), nil
}

// ParseAllHTML tokenizes r and parses every matching table.
func ParseAllHTML(r io.Reader, class string, opts ...Option) ([]*TableDocument, error) {
	events, err := TokenizeDocument(r, "")
	if err != nil {
		return nil, err
	}
	return ParseAll(events, class, opts...), nil
}

func (p *parser) start(ev Event) {
	tag := ev.tag()

	if tag == atom.Table {
		if p.doc != nil {
			p.depth++
			p.separate()
			return
		}
		class, _ := ev.Attr("class")
		if p.class != "" && class != p.class {
			return
		}
		p.openTable(ev, class)
		return
	}
	if p.doc == nil {
		return
	}
	if p.depth > 1 {
		// content of nested tables is flattened into the enclosing cell
		p.separate()
		return
	}

	switch tag {
	case atom.Colgroup:
		p.inColgroup = true
	case atom.Col:
		if !p.inColgroup {
			return
		}
		n := 1
		if v, ok := ev.Attr("span"); ok {
			n = parseSpan(v, maxColSpan)
		}
		for range n {
			p.doc.Colgroup = append(p.doc.Colgroup, ColumnSpec{Style: styleAttr(ev)})
		}
	case atom.Thead, atom.Tbody, atom.Tfoot:
		p.finishCell()
		p.flushRow()
		p.section, p.inSection = sectionOf(tag), true
		if style := styleAttr(ev); style.Present() {
			p.doc.Sections[p.section].Style = style
		}
	case atom.Tr:
		p.finishCell()
		p.flushRow()
		p.row = &Row{Style: styleAttr(ev)}
	case atom.Td, atom.Th:
		p.finishCell()
		p.cell = &cellBuilder{
			header:  tag == atom.Th,
			orphan:  p.row == nil,
			style:   styleAttr(ev),
			colSpan: spanAttr(ev, "colspan", maxColSpan),
			rowSpan: spanAttr(ev, "rowspan", maxRowSpan),
		}
	case atom.Br, atom.P, atom.Div, atom.Span, atom.Li:
		p.separate()
	}
}

func (p *parser) end(ev Event) {
	if p.doc == nil {
		return
	}
	tag := ev.tag()

	if p.depth > 1 {
		if tag == atom.Table {
			p.depth--
		}
		p.separate()
		return
	}

	switch tag {
	case atom.Table:
		p.closeTable()
	case atom.Colgroup:
		p.inColgroup = false
	case atom.Thead, atom.Tbody, atom.Tfoot:
		p.finishCell()
		p.flushRow()
		p.inSection = false
	case atom.Tr:
		p.finishCell()
		p.flushRow()
	case atom.Td, atom.Th:
		p.finishCell()
	case atom.Br, atom.P, atom.Div, atom.Span, atom.Li:
		p.separate()
	}
}

func (p *parser) openTable(ev Event, class string) {
	doc := NewTableDocument()
	doc.Class = class
	doc.Style = styleAttr(ev)
	if b, ok := ev.Attr("border"); ok && strings.TrimSpace(b) == "1" {
		// legacy presentational attribute
		doc.Style = doc.Style.Append("border: 1px solid black")
	}
	p.doc = doc
	p.depth = 1
	p.inSection = false
	p.inColgroup = false
	p.row = nil
	p.cell = nil
}

func (p *parser) closeTable() {
	p.finishCell()
	p.flushRow()
	p.docs = append(p.docs, p.doc)
	p.log.Debug("Collected table",
		zap.String("class", p.doc.Class),
		zap.Int("rows", p.doc.RowCount()),
		zap.Int("columns", len(p.doc.Colgroup)))
	p.doc = nil
	p.depth = 0
}

func (p *parser) separate() {
	if p.cell != nil {
		p.cell.text.space()
	}
}

func (p *parser) finishCell() {
	cb := p.cell
	if cb == nil {
		return
	}
	p.cell = nil
	if cb.orphan || p.row == nil {
		p.log.Debug("Dropping cell outside of a row", zap.String("text", cb.text.String()))
		return
	}
	style := cb.style
	if cb.header && !style.Declarations().Has("font-weight") {
		style = style.Append("font-weight: bold")
	}
	p.row.Cells = append(p.row.Cells, Cell{
		Header:  cb.header,
		Style:   style,
		Text:    cb.text.String(),
		ColSpan: cb.colSpan,
		RowSpan: cb.rowSpan,
	})
}

// flushRow files the open row into its section, tbody when no section is
// open.
func (p *parser) flushRow() {
	if p.row == nil {
		return
	}
	kind := Body
	if p.inSection {
		kind = p.section
	}
	s := p.doc.Sections[kind]
	s.Rows = append(s.Rows, *p.row)
	p.row = nil
}

func sectionOf(tag atom.Atom) SectionKind {
	switch tag {
	case atom.Thead:
		return Head
	case atom.Tfoot:
		return Foot
	}
	return Body
}

func styleAttr(ev Event) css.Inline {
	if v, ok := ev.Attr("style"); ok {
		return css.Some(v)
	}
	return css.None
}

func spanAttr(ev Event, key string, limit int) int {
	v, ok := ev.Attr(key)
	if !ok {
		return 1
	}
	return parseSpan(v, limit)
}

func parseSpan(v string, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, limit)
}

// String renders a short description used in logs and test failures.
func (c Cell) String() string {
	return fmt.Sprintf("%q colspan=%d rowspan=%d style=%q", c.Text, c.ColSpan, c.RowSpan, c.Style.String())
}
