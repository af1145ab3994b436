package grid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/tablexlsx/table"
)

func parseDoc(t *testing.T, src string) *table.TableDocument {
	t.Helper()
	doc, err := table.ParseHTML(strings.NewReader(src), "")
	require.NoError(t, err)
	return doc
}

func positions(plan *Plan) map[string]Pos {
	out := make(map[string]Pos, len(plan.Cells))
	for _, pl := range plan.Cells {
		out[pl.Cell.Text] = pl.Pos
	}
	return out
}

func TestPlaceRowspanOccupancy(t *testing.T) {
	doc := parseDoc(t, `<table>
<tr><td rowspan="2">a</td><td>b</td><td rowspan="3">c</td></tr>
<tr><td>d</td></tr>
<tr><td>e</td><td>f</td></tr>
</table>`)
	plan, err := Place(doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]Pos{
		"a": {0, 0}, "b": {0, 1}, "c": {0, 2},
		"d": {1, 1},
		"e": {2, 0}, "f": {2, 1},
	}, positions(plan))
	assert.Equal(t, []Merge{
		{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0},
		{StartRow: 0, StartCol: 2, EndRow: 2, EndCol: 2},
	}, plan.Merges)
	assert.Equal(t, 3, plan.Cols)
	assert.Equal(t, 3, plan.RowCount())
}

func TestPlaceSkipsCoveredColumnsMidRow(t *testing.T) {
	doc := parseDoc(t, `<table>
<tr><td>a</td><td rowspan="2">b</td><td>c</td></tr>
<tr><td>d</td><td>e</td></tr>
</table>`)
	plan, err := Place(doc)
	require.NoError(t, err)
	assert.Equal(t, Pos{1, 0}, positions(plan)["d"])
	assert.Equal(t, Pos{1, 2}, positions(plan)["e"])
}

func TestPlaceColspanRowspanBlock(t *testing.T) {
	doc := parseDoc(t, `<table>
<tr><td colspan="2" rowspan="2">x</td><td>y</td></tr>
<tr><td>z</td></tr>
</table>`)
	plan, err := Place(doc)
	require.NoError(t, err)
	require.Len(t, plan.Merges, 1)
	m := plan.Merges[0]
	assert.Equal(t, Merge{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1}, m)
	for _, p := range []Pos{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		assert.True(t, m.Contains(p), p.String())
	}
	assert.Equal(t, Pos{1, 2}, positions(plan)["z"])
}

func TestPlaceSectionOrderAndClipping(t *testing.T) {
	doc := parseDoc(t, `<table>
<tfoot><tr><td>foot</td></tr></tfoot>
<tbody><tr><td rowspan="5">body</td></tr></tbody>
<thead><tr><td>head</td></tr></thead>
</table>`)
	plan, err := Place(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]Pos{"head": {0, 0}, "body": {1, 0}, "foot": {2, 0}}, positions(plan))
	// rowspan cannot leave its section
	assert.Empty(t, plan.Merges)
}

func TestPlaceClipsOverlappingColspan(t *testing.T) {
	doc := parseDoc(t, `<table>
<tr><td>a</td><td rowspan="2">b</td></tr>
<tr><td colspan="3">c</td></tr>
</table>`)
	plan, err := Place(doc)
	require.NoError(t, err)
	c := plan.Cells[2]
	assert.Equal(t, "c", c.Cell.Text)
	assert.Equal(t, Pos{1, 0}, c.Pos)
	assert.Equal(t, 1, c.ColSpan)
}

func TestPlaceMalformed(t *testing.T) {
	_, err := Place(nil)
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	_, err = Place(&table.TableDocument{})
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	doc := table.NewTableDocument()
	doc.Sections[table.SectionKind(7)] = &table.Section{}
	_, err = Place(doc)
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	doc = table.NewTableDocument()
	doc.Sections[table.Body].Rows = []table.Row{{Cells: []table.Cell{{Text: "x", ColSpan: 0, RowSpan: 1}}}}
	_, err = Place(doc)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
}

func TestPlaceEmptyDocument(t *testing.T) {
	plan, err := Place(table.NewTableDocument())
	require.NoError(t, err)
	assert.Zero(t, plan.Cols)
	assert.Zero(t, plan.RowCount())
}
