package grid

import (
	"github.com/aerissecure/tablexlsx/css"
	"github.com/aerissecure/tablexlsx/table"
)

const (
	// DefaultColumnWidth is the spreadsheet default width in units.
	DefaultColumnWidth = 8.43

	autoWidthCharFactor = 0.6
	autoWidthScale      = 1.5
	autoWidthMinLength  = 2
)

// PixelsToUnits converts a pixel width to spreadsheet column units.
func PixelsToUnits(px float64) float64 {
	return (px - 5) / 7
}

// UnitsToPixels converts spreadsheet column units to pixels.
func UnitsToPixels(units float64) float64 {
	return units*7 + 5
}

// ColumnWidths resolves the pixel width of every column of plan. For each
// column the first applicable rule wins: a px width on a cell, a percentage
// of a px table width on a cell, a width on the colgroup column, an even
// share of what is left of the table width, and finally an estimate from the
// longest text in the column. Cell widths are divided evenly across their
// colspan; the first cell defining a column wins.
func ColumnWidths(doc *table.TableDocument, plan *Plan, fontSize float64) map[int]float64 {
	widths := make(map[int]float64, plan.Cols)
	tableDecls := doc.Style.Declarations()
	tableWidth, haveTableWidth := 0.0, false
	if v, ok := tableDecls.Get("width"); ok {
		tableWidth, haveTableWidth = css.Pixels(v)
	}

	assign := func(pl Placement, px float64) {
		per := px / float64(pl.ColSpan)
		for dc := range pl.ColSpan {
			if _, ok := widths[pl.Pos.Col+dc]; !ok {
				widths[pl.Pos.Col+dc] = per
			}
		}
	}

	for _, pl := range plan.Cells {
		if v, ok := pl.Cell.Style.Declarations().Get("width"); ok {
			if px, ok := css.Pixels(v); ok {
				assign(pl, px)
			}
		}
	}
	if haveTableWidth {
		for _, pl := range plan.Cells {
			if v, ok := pl.Cell.Style.Declarations().Get("width"); ok {
				if f, ok := css.Percent(v); ok {
					assign(pl, tableWidth*f)
				}
			}
		}
	}

	for col := 0; col < plan.Cols && col < len(doc.Colgroup); col++ {
		if _, ok := widths[col]; ok {
			continue
		}
		v, ok := doc.Colgroup[col].Style.Declarations().Get("width")
		if !ok {
			continue
		}
		if px, ok := css.Pixels(v); ok {
			widths[col] = px
		} else if f, ok := css.Percent(v); ok && haveTableWidth {
			widths[col] = tableWidth * f
		}
	}

	var unknown []int
	for col := range plan.Cols {
		if _, ok := widths[col]; !ok {
			unknown = append(unknown, col)
		}
	}
	if len(unknown) == 0 {
		return widths
	}

	if haveTableWidth {
		known := 0.0
		for _, w := range widths {
			known += w
		}
		share := max(tableWidth-known, 0) / float64(len(unknown))
		for _, col := range unknown {
			widths[col] = share
		}
		return widths
	}

	longest := longestText(plan)
	for _, col := range unknown {
		widths[col] = AutoWidth(longest[col], fontSize)
	}
	return widths
}

// AutoWidth estimates the pixel width needed for length characters.
func AutoWidth(length int, fontSize float64) float64 {
	if length == 0 {
		length = autoWidthMinLength
	}
	return float64(length) * autoWidthCharFactor * fontSize * autoWidthScale
}

// longestText returns, per column, the widest text measured in display
// columns. Spanning cells contribute an even share to each column.
func longestText(plan *Plan) map[int]int {
	longest := make(map[int]int)
	for _, pl := range plan.Cells {
		n := TextWidth(pl.Cell.Text)
		if pl.ColSpan > 1 {
			n = (n + pl.ColSpan - 1) / pl.ColSpan
		}
		for dc := range pl.ColSpan {
			longest[pl.Pos.Col+dc] = max(longest[pl.Pos.Col+dc], n)
		}
	}
	return longest
}
