package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aerissecure/tablexlsx/css"
)

func parseString(t *testing.T, src, class string) *TableDocument {
	t.Helper()
	doc, err := ParseHTML(strings.NewReader(src), class, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return doc
}

func TestParseSections(t *testing.T) {
	doc := parseString(t, `<table style="width:200px">
<thead style="color: red"><tr><th style="color:#ff0000">A</th><th>B</th></tr></thead>
<tbody><tr style="font-style: italic"><td colspan="2">C</td></tr></tbody>
<tfoot><tr><td>F1</td><td>F2</td></tr></tfoot>
</table>`, "")

	assert.Equal(t, css.Some("width:200px"), doc.Style)

	head := doc.Section(Head)
	require.Len(t, head.Rows, 1)
	assert.Equal(t, css.Some("color: red"), head.Style)
	cells := head.Rows[0].Cells
	require.Len(t, cells, 2)
	assert.Equal(t, "A", cells[0].Text)
	assert.True(t, cells[0].Header)
	assert.Equal(t, "color:#ff0000; font-weight: bold", cells[0].Style.String())
	assert.Equal(t, "font-weight: bold", cells[1].Style.String())

	body := doc.Section(Body)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, css.Some("font-style: italic"), body.Rows[0].Style)
	require.Len(t, body.Rows[0].Cells, 1)
	assert.Equal(t, Cell{Style: css.None, Text: "C", ColSpan: 2, RowSpan: 1}, body.Rows[0].Cells[0])

	foot := doc.Section(Foot)
	require.Len(t, foot.Rows, 1)
	assert.Len(t, foot.Rows[0].Cells, 2)
	assert.Equal(t, 3, doc.RowCount())
}

func TestParseHeaderKeepsOwnWeight(t *testing.T) {
	doc := parseString(t, `<table><tr><th style="font-weight: normal">A</th></tr></table>`, "")
	c := doc.Section(Body).Rows[0].Cells[0]
	assert.Equal(t, "font-weight: normal", c.Style.String())
}

func TestParseRowsWithoutSectionGoToBody(t *testing.T) {
	doc := parseString(t, `<table><tr><td>1</td></tr><thead><tr><td>h</td></tr></thead><tr><td>2</td></tr></table>`, "")
	require.Len(t, doc.Section(Body).Rows, 2)
	assert.Equal(t, "1", doc.Section(Body).Rows[0].Cells[0].Text)
	assert.Equal(t, "2", doc.Section(Body).Rows[1].Cells[0].Text)
	require.Len(t, doc.Section(Head).Rows, 1)
}

func TestParseTargetClass(t *testing.T) {
	src := `<table class="nav"><tr><td>skip</td></tr></table>
<table class="data" style="color: blue"><tr><td>keep</td></tr></table>`
	doc := parseString(t, src, "data")
	assert.Equal(t, "data", doc.Class)
	require.Len(t, doc.Section(Body).Rows, 1)
	assert.Equal(t, "keep", doc.Section(Body).Rows[0].Cells[0].Text)

	doc = parseString(t, src, "")
	assert.Equal(t, "skip", doc.Section(Body).Rows[0].Cells[0].Text)

	doc = parseString(t, src, "missing")
	assert.True(t, doc.Empty())
}

func TestParseAllTables(t *testing.T) {
	events, err := Tokenize(strings.NewReader(`<table><tr><td>a</td></tr></table><p>x</p><table><tr><td>b</td></tr></table>`))
	require.NoError(t, err)
	docs := ParseAll(events, "")
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Section(Body).Rows[0].Cells[0].Text)
	assert.Equal(t, "b", docs[1].Section(Body).Rows[0].Cells[0].Text)
}

func TestParseBorderAttribute(t *testing.T) {
	doc := parseString(t, `<table border="1"><tr><td>a</td></tr></table>`, "")
	assert.Equal(t, "border: 1px solid black", doc.Style.String())

	doc = parseString(t, `<table border="1" style="color: red"><tr><td>a</td></tr></table>`, "")
	assert.Equal(t, "color: red; border: 1px solid black", doc.Style.String())

	doc = parseString(t, `<table border="0"><tr><td>a</td></tr></table>`, "")
	assert.False(t, doc.Style.Present())
}

func TestParseColgroup(t *testing.T) {
	doc := parseString(t, `<table><colgroup><col style="background-color: yellow"><col><col span="2" style="width: 20px"></colgroup>
<col style="ignored"><tr><td>a</td></tr></table>`, "")
	require.Len(t, doc.Colgroup, 4)
	assert.Equal(t, css.Some("background-color: yellow"), doc.Colgroup[0].Style)
	assert.Equal(t, css.None, doc.Colgroup[1].Style)
	assert.Equal(t, css.Some("width: 20px"), doc.Colgroup[2].Style)
	assert.Equal(t, css.Some("width: 20px"), doc.Colgroup[3].Style)
}

func TestParseCellText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"collapse", "<td>  a \n\t b  </td>", "a b"},
		{"br", "<td>line1<br>line2</td>", "line1 line2"},
		{"self closing br", "<td>line1<br/>line2</td>", "line1 line2"},
		{"paragraphs", "<td><p>one</p><p>two</p></td>", "one two"},
		{"leading block", "<td><div>x</div></td>", "x"},
		{"no double spaces", "<td>a <span> b </span> c</td>", "a b c"},
		{"inline flattened", "<td><b>bold</b>text</td>", "boldtext"},
		{"list", "<td><ul><li>1</li><li>2</li></ul></td>", "1 2"},
		{"entities", "<td>a &amp; b&nbsp;</td>", "a & b"},
		{"empty", "<td></td>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseString(t, "<table><tr>"+tt.html+"</tr></table>", "")
			require.Len(t, doc.Section(Body).Rows, 1)
			require.Len(t, doc.Section(Body).Rows[0].Cells, 1)
			assert.Equal(t, tt.want, doc.Section(Body).Rows[0].Cells[0].Text)
		})
	}
}

func TestParseSpans(t *testing.T) {
	doc := parseString(t, `<table><tr><td colspan="x" rowspan="0">a</td><td colspan=" 3 " rowspan="2">b</td><td colspan="-2">c</td></tr></table>`, "")
	cells := doc.Section(Body).Rows[0].Cells
	require.Len(t, cells, 3)
	assert.Equal(t, 1, cells[0].ColSpan)
	assert.Equal(t, 1, cells[0].RowSpan)
	assert.Equal(t, 3, cells[1].ColSpan)
	assert.Equal(t, 2, cells[1].RowSpan)
	assert.Equal(t, 1, cells[2].ColSpan)
}

func TestParseMalformed(t *testing.T) {
	// cell outside of a row, unclosed cells and rows, stray end tags
	doc := parseString(t, `<table><td>orphan</td></tr><tr><td>a<td>b<tr><td>c</table>`, "")
	rows := doc.Section(Body).Rows
	require.Len(t, rows, 2)
	require.Len(t, rows[0].Cells, 2)
	assert.Equal(t, "a", rows[0].Cells[0].Text)
	assert.Equal(t, "b", rows[0].Cells[1].Text)
	require.Len(t, rows[1].Cells, 1)
	assert.Equal(t, "c", rows[1].Cells[0].Text)
}

func TestParseUnclosedTable(t *testing.T) {
	doc := parseString(t, `<table><tr><td>a</td>`, "")
	require.Len(t, doc.Section(Body).Rows, 1)
}

func TestParseNestedTableFlattened(t *testing.T) {
	doc := parseString(t, `<table class="outer"><tr><td>x<table><tr><td>in1</td><td>in2</td></tr></table>y</td><td>z</td></tr></table>`, "outer")
	rows := doc.Section(Body).Rows
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Cells, 2)
	assert.Equal(t, "x in1 in2 y", rows[0].Cells[0].Text)
	assert.Equal(t, "z", rows[0].Cells[1].Text)
}

func TestParseEvents(t *testing.T) {
	events := []Event{
		Start("table", "class", "t"),
		Start("tr"),
		Start("th"), Data("Head"), End("th"),
		Start("TD", "Style", "color: red"), Data(" v "), End("td"),
		End("tr"),
		End("table"),
	}
	doc := Parse(events, "t")
	cells := doc.Section(Body).Rows[0].Cells
	require.Len(t, cells, 2)
	assert.Equal(t, "Head", cells[0].Text)
	assert.Equal(t, "v", cells[1].Text)
	assert.Equal(t, css.Some("color: red"), cells[1].Style)
}

func TestTokenize(t *testing.T) {
	events, err := Tokenize(strings.NewReader(`<!DOCTYPE html><!-- c --><TABLE Class="x"><col/>t</TABLE>`))
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, StartTag, events[0].Kind)
	assert.Equal(t, "table", events[0].Name)
	assert.Equal(t, map[string]string{"class": "x"}, events[0].Attrs)
	assert.Equal(t, Start("col").Name, events[1].Name)
	assert.Equal(t, EndTag, events[2].Kind)
	assert.Equal(t, Data("t"), Event{Kind: events[3].Kind, Text: events[3].Text})
	assert.Equal(t, EndTag, events[4].Kind)
}

func TestTokenizeDocumentCharset(t *testing.T) {
	// windows-1251 encoded "Привет"
	src := "<meta charset=\"windows-1251\"><table><tr><td>\xcf\xf0\xe8\xe2\xe5\xf2</td></tr></table>"
	events, err := TokenizeDocument(strings.NewReader(src), "")
	require.NoError(t, err)
	doc := Parse(events, "")
	assert.Equal(t, "Привет", doc.Section(Body).Rows[0].Cells[0].Text)
}

func TestTokenizeDocumentUTF8AfterLongASCIIHead(t *testing.T) {
	src := "<html><head><!--" + strings.Repeat("x", 1100) + "--></head><body>" +
		"<table><tr><td>Привет, синус</td></tr></table></body></html>"

	doc, err := ParseHTML(strings.NewReader(src), "")
	require.NoError(t, err)
	assert.Equal(t, "Привет, синус", doc.Section(Body).Rows[0].Cells[0].Text)
}

func TestTokenizeDocumentContentTypeWins(t *testing.T) {
	// "é" as a single latin-1 byte is not valid UTF-8
	src := "<table><tr><td>caf\xe9</td></tr></table>"
	events, err := TokenizeDocument(strings.NewReader(src), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", Parse(events, "").Section(Body).Rows[0].Cells[0].Text)

	// a declared charset is used even when the bytes are valid UTF-8
	events, err = TokenizeDocument(strings.NewReader("<table><tr><td>\xc3\xa9</td></tr></table>"), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "Ã©", Parse(events, "").Section(Body).Rows[0].Cells[0].Text)
}
