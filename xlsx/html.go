package xlsx

import (
	"cmp"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aerissecure/tablexlsx/grid"
)

// RenderHTML converts the IR into an HTML preview. Equal cell styles share a
// CSS class; font family and size used by most cells move to the td rule.
func RenderHTML(m WorkbookModel) string {
	var b strings.Builder
	_ = WriteHTML(&b, m)
	return b.String()
}

// WriteHTML writes the HTML preview of m to w.
func WriteHTML(w io.Writer, m WorkbookModel) error {
	var builder strings.Builder

	fontFamilyCount := make(map[string]int)
	fontSizeCount := make(map[float64]int)
	styleMap := make(map[CellStyle]string)
	var styleList []CellStyle
	styledCells := 0

	for _, sheet := range m.Sheets {
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				if cell == nil {
					continue
				}
				styledCells++
				st := cell.Style
				if st.FontFamily != "" {
					fontFamilyCount[st.FontFamily]++
				}
				if st.FontSizePt > 0 {
					fontSizeCount[st.FontSizePt]++
				}
				if _, ok := styleMap[st]; !ok {
					styleMap[st] = fmt.Sprintf("cellstyle%d", len(styleList)+1)
					styleList = append(styleList, st)
				}
			}
		}
	}

	defaultFontFamily, ffCount := mostCommon(fontFamilyCount)
	if ffCount <= styledCells/2 {
		defaultFontFamily = ""
	}
	defaultFontSize, fsCount := mostCommon(fontSizeCount)
	if fsCount <= styledCells/2 {
		defaultFontSize = 0
	}

	builder.WriteString("<style>\n")
	builder.WriteString(".table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }\n")
	builder.WriteString(".table td { padding: 2px 4px;")
	if defaultFontFamily != "" {
		fmt.Fprintf(&builder, " font-family:'%s';", cssString(defaultFontFamily))
	}
	if defaultFontSize > 0 {
		fmt.Fprintf(&builder, " font-size:%.1fpt;", defaultFontSize)
	}
	builder.WriteString(" }\n")
	builder.WriteString(".sheet { margin-bottom: 2em; }\n")
	for _, st := range styleList {
		if css := styleToCSS(st, defaultFontFamily, defaultFontSize); css != "" {
			fmt.Fprintf(&builder, ".%s { %s }\n", styleMap[st], css)
		}
	}
	builder.WriteString("</style>\n")

	for _, sheet := range m.Sheets {
		renderSheet(&builder, sheet, styleMap)
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

func renderSheet(b *strings.Builder, sheet RenderSheet, styleMap map[CellStyle]string) {
	totalPx := 0.0
	for _, w := range sheet.ColWidths {
		totalPx += grid.UnitsToPixels(w)
	}
	fmt.Fprintf(b, "<div class=\"sheet\" data-name=\"%s\">\n", html.EscapeString(sheet.Name))
	fmt.Fprintf(b, "<table class=\"table\" style=\"width:%.0fpx;\">\n", totalPx)
	b.WriteString("  <colgroup>\n")
	for _, w := range sheet.ColWidths {
		fmt.Fprintf(b, "    <col style=\"width:%.0fpx;\">\n", grid.UnitsToPixels(w))
	}
	b.WriteString("  </colgroup>\n")

	covered := make(map[[2]int]bool)
	for r, row := range sheet.Rows {
		for c, cell := range row.Cells {
			if cell == nil || (cell.RowSpan <= 1 && cell.ColSpan <= 1) {
				continue
			}
			for dr := range cell.RowSpan {
				for dc := range cell.ColSpan {
					if dr != 0 || dc != 0 {
						covered[[2]int{r + dr, c + dc}] = true
					}
				}
			}
		}
	}

	for r, row := range sheet.Rows {
		if row.CustomHeight {
			fmt.Fprintf(b, "  <tr style=\"height:%.2fpt;\">\n", row.HeightPt)
		} else {
			b.WriteString("  <tr>\n")
		}
		for c, cell := range row.Cells {
			if covered[[2]int{r, c}] {
				continue
			}
			if cell == nil {
				b.WriteString("    <td></td>\n")
				continue
			}
			spanAttr := ""
			if cell.ColSpan > 1 {
				spanAttr += fmt.Sprintf(" colspan=\"%d\"", cell.ColSpan)
			}
			if cell.RowSpan > 1 {
				spanAttr += fmt.Sprintf(" rowspan=\"%d\"", cell.RowSpan)
			}
			escaped := strings.ReplaceAll(html.EscapeString(cell.Value), "\n", "<br>")
			fmt.Fprintf(b, "    <td data-cell=\"%s\"%s class=\"%s\">%s</td>\n", cell.Ref, spanAttr, styleMap[cell.Style], escaped)
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n</div>\n")
}

// styleToCSS returns the CSS for s, leaving out the font family and size
// already set on every cell.
func styleToCSS(s CellStyle, defFontFamily string, defFontSize float64) string {
	var b strings.Builder
	if s.FontFamily != "" && s.FontFamily != defFontFamily {
		fmt.Fprintf(&b, "font-family:'%s';", cssString(s.FontFamily))
	}
	if s.FontSizePt > 0 && s.FontSizePt != defFontSize {
		fmt.Fprintf(&b, "font-size:%.1fpt;", s.FontSizePt)
	}
	if s.FontColor != "" {
		fmt.Fprintf(&b, "color:#%s;", s.FontColor)
	}
	if s.Bold {
		b.WriteString("font-weight:bold;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	if s.Underline {
		b.WriteString("text-decoration:underline;")
	}
	if s.BackgroundColor != "" {
		fmt.Fprintf(&b, "background-color:#%s;", s.BackgroundColor)
	}
	borderCSS(&b, "top", s.BorderTop)
	borderCSS(&b, "right", s.BorderRight)
	borderCSS(&b, "bottom", s.BorderBottom)
	borderCSS(&b, "left", s.BorderLeft)
	switch s.HorizontalAlign {
	case "center", "centerContinuous", "distributed":
		b.WriteString("text-align:center;")
	case "right":
		b.WriteString("text-align:right;")
	case "justify":
		b.WriteString("text-align:justify;")
	case "left":
		b.WriteString("text-align:left;")
	}
	if s.VerticalAlign != "" {
		fmt.Fprintf(&b, "vertical-align:%s;", s.VerticalAlign)
	}
	if s.WrapText {
		b.WriteString("white-space:normal;")
	} else {
		b.WriteString("white-space:nowrap;overflow:hidden;")
	}
	return b.String()
}

func borderCSS(b *strings.Builder, side string, l BorderLine) {
	if l.Style == "" {
		return
	}
	width, style := "1px", "solid"
	switch l.Style {
	case "medium":
		width = "2px"
	case "thick":
		width = "3px"
	case "dashed", "dotted":
		style = l.Style
	case "double":
		width, style = "3px", "double"
	}
	clr := l.Color
	if clr == "" {
		clr = "000000"
	}
	fmt.Fprintf(b, "border-%s:%s %s #%s;", side, width, style, clr)
}

func cssString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "<", "").Replace(s)
}

// mostCommon returns the value with the highest count. Ties go to the
// smaller key so the output is stable.
func mostCommon[K cmp.Ordered](counts map[K]int) (K, int) {
	var best K
	n := 0
	for k, v := range counts {
		if v > n || (v == n && k < best) {
			best, n = k, v
		}
	}
	return best, n
}
