package grid

import (
	"strings"

	"github.com/aerissecure/tablexlsx/css"
	"github.com/aerissecure/tablexlsx/table"
)

const white = "FFFFFFFF"

// Translator turns resolved CSS into slot formatting.
type Translator struct {
	Names      css.NameResolver
	Colgroup   []table.ColumnSpec
	Horizontal string // used when text-align is absent
	Vertical   string // used when vertical-align is absent
}

// Apply overlays style on the slot at p. Writes to a merged region go to its
// master slot; borders are drawn on the outer edge of the region only.
func (t *Translator) Apply(g *Grid, p Pos, style css.Style) {
	master := g.Master(p)
	f := &g.Slot(master).Format

	t.alignment(f, style)
	t.font(f, style)
	t.background(f, style, master.Col)
	t.borders(g, master, style)
}

func (t *Translator) alignment(f *Format, s css.Style) {
	f.Horizontal = horizontal(s.Value(css.TextAlign), t.Horizontal)
	f.Vertical = vertical(s.Value(css.VerticalAlign), t.Vertical)
	f.Wrap = true
}

func horizontal(v, def string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left", "start":
		return AlignLeft
	case "right", "end":
		return AlignRight
	case "center":
		return AlignCenter
	case "justify":
		return AlignJustify
	}
	if def == "" {
		return AlignCenter
	}
	return def
}

func vertical(v, def string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "top", "text-top":
		return AlignTop
	case "middle", "center":
		return AlignCenter
	case "bottom", "text-bottom":
		return AlignBottom
	}
	if def == "" {
		return AlignCenter
	}
	return def
}

// font only touches attributes the style declares.
func (t *Translator) font(f *Format, s css.Style) {
	// any declared weight or style turns the attribute on
	if v, ok := s.Get(css.FontWeight); ok && v != "" {
		f.Bold = true
	}
	if v, ok := s.Get(css.FontStyle); ok && v != "" {
		f.Italic = true
	}
	if v, ok := s.Get(css.TextDecoration); ok && v != "" {
		f.Underline = strings.Contains(strings.ToLower(v), "underline")
	}
	if v, ok := s.Get(css.Color); ok {
		if hex, res := css.ParseColor(v, t.Names); res == css.ColorOK {
			f.TextColor = css.ARGB(hex)
		}
	}
}

// background uses the cell's background-color, falling back to the colgroup
// column the cell starts in.
func (t *Translator) background(f *Format, s css.Style, col int) {
	if v, ok := s.Get(css.BackgroundColor); ok {
		switch hex, res := css.ParseColor(v, t.Names); res {
		case css.ColorOK:
			f.FillColor = css.ARGB(hex)
		case css.ColorUnknownName:
			f.FillColor = white
		}
		return
	}
	if col < 0 || col >= len(t.Colgroup) {
		return
	}
	v, ok := t.Colgroup[col].Style.Declarations().Get("background-color")
	if !ok {
		return
	}
	if hex, res := css.ParseColor(v, t.Names); res == css.ColorOK {
		f.FillColor = css.ARGB(hex)
	}
}

func (t *Translator) borders(g *Grid, master Pos, s css.Style) {
	bs := css.ResolveBorders(s, t.Names)
	top, right, bottom, left := side(bs.Top), side(bs.Right), side(bs.Bottom), side(bs.Left)

	m, ok := g.MergeAt(master)
	if !ok {
		g.Slot(master).Format.Border = Borders{Top: top, Right: right, Bottom: bottom, Left: left}
		return
	}
	for r := m.StartRow; r <= m.EndRow; r++ {
		for c := m.StartCol; c <= m.EndCol; c++ {
			var b Borders
			if r == m.StartRow {
				b.Top = top
			}
			if r == m.EndRow {
				b.Bottom = bottom
			}
			if c == m.StartCol {
				b.Left = left
			}
			if c == m.EndCol {
				b.Right = right
			}
			g.Slot(Pos{Row: r, Col: c}).Format.Border = b
		}
	}
}

func side(b *css.BorderSide) Side {
	if b == nil || !b.Visible() {
		return Side{}
	}
	return Side{Style: b.Style, Color: css.ARGB(b.Color)}
}
