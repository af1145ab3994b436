package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerissecure/tablexlsx/css"
	"github.com/aerissecure/tablexlsx/table"
)

func style(decl string) css.Style {
	return css.Fold(css.Some(decl))
}

func TestApplyAlignment(t *testing.T) {
	tr := &Translator{}
	g := New()

	tr.Apply(g, Pos{0, 0}, style(""))
	f := g.Slot(Pos{0, 0}).Format
	assert.Equal(t, AlignCenter, f.Horizontal)
	assert.Equal(t, AlignCenter, f.Vertical)
	assert.True(t, f.Wrap)

	tr.Apply(g, Pos{0, 1}, style("text-align: right; vertical-align: middle"))
	f = g.Slot(Pos{0, 1}).Format
	assert.Equal(t, AlignRight, f.Horizontal)
	assert.Equal(t, AlignCenter, f.Vertical)

	tr.Apply(g, Pos{0, 2}, style("text-align: left; vertical-align: top"))
	f = g.Slot(Pos{0, 2}).Format
	assert.Equal(t, AlignLeft, f.Horizontal)
	assert.Equal(t, AlignTop, f.Vertical)

	tr = &Translator{Horizontal: AlignGeneral, Vertical: AlignBottom}
	tr.Apply(g, Pos{0, 3}, style("text-align: sideways"))
	f = g.Slot(Pos{0, 3}).Format
	assert.Equal(t, AlignGeneral, f.Horizontal)
	assert.Equal(t, AlignBottom, f.Vertical)
}

func TestApplyFontOverlay(t *testing.T) {
	tr := &Translator{}
	g := New()
	p := Pos{0, 0}
	g.Slot(p).Format = Format{FontName: "Arial", FontSize: 9, Italic: true, TextColor: "FF00FF00"}

	tr.Apply(g, p, style("font-weight: bold; text-decoration: underline overline"))
	f := g.Slot(p).Format
	assert.True(t, f.Bold)
	assert.True(t, f.Italic, "undeclared attributes are kept")
	assert.True(t, f.Underline)
	assert.Equal(t, "FF00FF00", f.TextColor)
	assert.Equal(t, "Arial", f.FontName)
	assert.Equal(t, 9.0, f.FontSize)

	tr.Apply(g, p, style("text-decoration: none; color: #f00"))
	f = g.Slot(p).Format
	assert.True(t, f.Bold)
	assert.False(t, f.Underline)
	assert.Equal(t, "FFFF0000", f.TextColor)

	tr.Apply(g, p, style("font-weight: 700; color: nosuchcolor"))
	f = g.Slot(p).Format
	assert.True(t, f.Bold)
	assert.Equal(t, "FFFF0000", f.TextColor, "unresolvable text color leaves color unset")
}

func TestApplyAnyFontValueSetsAttribute(t *testing.T) {
	tests := []struct {
		decl         string
		bold, italic bool
	}{
		{"font-weight: bold", true, false},
		{"font-weight: normal", true, false},
		{"font-weight: 300", true, false},
		{"font-style: italic", false, true},
		{"font-style: normal", false, true},
		{"font-weight: normal; font-style: normal", true, true},
		{"color: red", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			g := New()
			(&Translator{}).Apply(g, Pos{0, 0}, style(tt.decl))
			f := g.Slot(Pos{0, 0}).Format
			assert.Equal(t, tt.bold, f.Bold)
			assert.Equal(t, tt.italic, f.Italic)
		})
	}
}

func TestApplyBackground(t *testing.T) {
	tr := &Translator{Colgroup: []table.ColumnSpec{
		{Style: css.Some("background-color: yellow")},
		{Style: css.Some("background-color: bogus")},
	}}
	g := New()

	tr.Apply(g, Pos{0, 0}, style("background-color: #abc"))
	assert.Equal(t, "FFAABBCC", g.Slot(Pos{0, 0}).Format.FillColor)

	tr.Apply(g, Pos{1, 0}, style("background-color: notacolor"))
	assert.Equal(t, "FFFFFFFF", g.Slot(Pos{1, 0}).Format.FillColor)

	tr.Apply(g, Pos{2, 0}, style("background-color: #12345"))
	assert.Empty(t, g.Slot(Pos{2, 0}).Format.FillColor)

	tr.Apply(g, Pos{3, 0}, style(""))
	assert.Equal(t, "FFFFFF00", g.Slot(Pos{3, 0}).Format.FillColor, "colgroup fallback")

	tr.Apply(g, Pos{3, 1}, style(""))
	assert.Empty(t, g.Slot(Pos{3, 1}).Format.FillColor)

	tr.Apply(g, Pos{3, 2}, style(""))
	assert.Empty(t, g.Slot(Pos{3, 2}).Format.FillColor)
}

func TestApplyBordersSingleCell(t *testing.T) {
	tr := &Translator{}
	g := New()
	tr.Apply(g, Pos{0, 0}, style("border: 1px solid red; border-left: 4px dashed #00f"))
	b := g.Slot(Pos{0, 0}).Format.Border
	assert.Equal(t, Side{Style: css.LineThin, Color: "FFFF0000"}, b.Top)
	assert.Equal(t, Side{Style: css.LineThin, Color: "FFFF0000"}, b.Right)
	assert.Equal(t, Side{Style: css.LineThin, Color: "FFFF0000"}, b.Bottom)
	assert.Equal(t, Side{Style: css.LineDashed, Color: "FF0000FF"}, b.Left)
}

func TestApplyBordersMergeOuterEdgeOnly(t *testing.T) {
	tr := &Translator{}
	g := New()
	g.AddMerge(Merge{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1})
	tr.Apply(g, Pos{0, 0}, style("border: 2px solid #000000"))

	medium := Side{Style: css.LineMedium, Color: "FF000000"}
	none := Side{}
	assert.Equal(t, Borders{Top: medium, Left: medium, Right: none, Bottom: none}, g.Slot(Pos{0, 0}).Format.Border)
	assert.Equal(t, Borders{Top: medium, Right: medium, Left: none, Bottom: none}, g.Slot(Pos{0, 1}).Format.Border)
	assert.Equal(t, Borders{Bottom: medium, Left: medium, Top: none, Right: none}, g.Slot(Pos{1, 0}).Format.Border)
	assert.Equal(t, Borders{Bottom: medium, Right: medium, Top: none, Left: none}, g.Slot(Pos{1, 1}).Format.Border)
}

func TestApplyRedirectsToMaster(t *testing.T) {
	tr := &Translator{}
	g := New()
	g.AddMerge(Merge{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2})
	tr.Apply(g, Pos{0, 2}, style("font-weight: bold; background-color: red"))

	master := g.Slot(Pos{0, 0}).Format
	assert.True(t, master.Bold)
	assert.Equal(t, "FFFF0000", master.FillColor)
	assert.False(t, g.Slot(Pos{0, 2}).Format.Bold)
	assert.Empty(t, g.Slot(Pos{0, 2}).Format.FillColor)
}
