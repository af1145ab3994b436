package xlsx

import (
	"fmt"
	"io"
	"os"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/tablexlsx/grid"
)

// Inspect reads an XLSX from r/size and returns the intermediate representation.
func Inspect(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, fmt.Errorf("unable to read workbook: %w", err)
	}

	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		model.Sheets = append(model.Sheets, inspectSheet(wb, sheet))
	}
	return model, nil
}

// InspectFile reads the workbook at path.
func InspectFile(path string) (WorkbookModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return WorkbookModel{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return WorkbookModel{}, err
	}
	return Inspect(f, info.Size())
}

func inspectSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet) RenderSheet {
	rows := sheet.Rows()

	maxCols, maxRow := 0, 0
	for _, row := range rows {
		maxRow = max(maxRow, int(row.RowNumber()))
		for _, cell := range row.Cells() {
			if col, err := cell.Column(); err == nil {
				maxCols = max(maxCols, int(reference.ColumnToIndex(col))+1)
			}
		}
	}

	mergeMaster := make(map[[2]int]struct{ rowSpan, colSpan int })
	skipCells := make(map[[2]int]bool)
	var merges []string
	if sheet.X().MergeCells != nil {
		for _, mc := range sheet.X().MergeCells.MergeCell {
			from, to, err := reference.ParseRangeReference(mc.RefAttr)
			if err != nil {
				continue
			}
			merges = append(merges, mc.RefAttr)
			fromRow, fromCol := int(from.RowIdx-1), int(from.ColumnIdx)
			toRow, toCol := int(to.RowIdx-1), int(to.ColumnIdx)
			mergeMaster[[2]int{fromRow, fromCol}] = struct{ rowSpan, colSpan int }{toRow - fromRow + 1, toCol - fromCol + 1}
			maxCols = max(maxCols, toCol+1)
			maxRow = max(maxRow, toRow+1)

			for r := fromRow; r <= toRow; r++ {
				for c := fromCol; c <= toCol; c++ {
					if r == fromRow && c == fromCol {
						continue
					}
					skipCells[[2]int{r, c}] = true
				}
			}
		}
	}

	rs := RenderSheet{
		Name:      sheet.Name(),
		ColWidths: make([]float64, maxCols),
		Rows:      make([]RenderRow, maxRow),
		Merges:    merges,
	}
	for c := range maxCols {
		rs.ColWidths[c] = columnWidth(sheet, c)
	}
	for i := range rs.Rows {
		rs.Rows[i].Cells = make([]*RenderCell, maxCols)
	}

	for _, row := range rows {
		rowIdx := int(row.RowNumber()) - 1
		rr := &rs.Rows[rowIdx]
		if row.X().CustomHeightAttr != nil && *row.X().CustomHeightAttr && row.X().HtAttr != nil {
			rr.HeightPt = *row.X().HtAttr
			rr.CustomHeight = true
		}

		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			if skipCells[[2]int{rowIdx, colIdx}] {
				continue
			}
			rc := &RenderCell{
				Ref:     CellRef(rowIdx, colIdx),
				Value:   cell.GetString(),
				ColSpan: 1,
				RowSpan: 1,
			}
			if cell.X().SAttr != nil {
				rc.Style = inspectStyle(wb, *cell.X().SAttr)
			}
			if info, ok := mergeMaster[[2]int{rowIdx, colIdx}]; ok {
				rc.RowSpan = info.rowSpan
				rc.ColSpan = info.colSpan
				rc.Style.BorderRight = edgeBorder(wb, sheet, rowIdx, colIdx+info.colSpan-1).BorderRight
				rc.Style.BorderBottom = edgeBorder(wb, sheet, rowIdx+info.rowSpan-1, colIdx).BorderBottom
			}
			rr.Cells[colIdx] = rc
		}
	}
	return rs
}

// columnWidth returns the width of the zero based column in width units.
func columnWidth(sheet spreadsheet.Sheet, c int) float64 {
	for _, cols := range sheet.X().Cols {
		for _, col := range cols.Col {
			if uint32(c+1) < col.MinAttr || uint32(c+1) > col.MaxAttr {
				continue
			}
			if col.CustomWidthAttr != nil && *col.CustomWidthAttr && col.WidthAttr != nil {
				return *col.WidthAttr
			}
		}
	}
	return grid.DefaultColumnWidth
}

// edgeBorder reads the style of a cell covered by a merge, which carries the
// merge's outer border edges.
func edgeBorder(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet, row, col int) CellStyle {
	for _, r := range sheet.Rows() {
		if int(r.RowNumber()) != row+1 {
			continue
		}
		for _, cell := range r.Cells() {
			name, err := cell.Column()
			if err != nil || int(reference.ColumnToIndex(name)) != col {
				continue
			}
			if cell.X().SAttr != nil {
				return inspectStyle(wb, *cell.X().SAttr)
			}
		}
	}
	return CellStyle{}
}

func inspectStyle(wb *spreadsheet.Workbook, styleID uint32) CellStyle {
	var st CellStyle
	ss := wb.StyleSheet

	if font := FontProps(ss, styleID); font != nil {
		if len(font.Name) > 0 {
			st.FontFamily = font.Name[0].ValAttr
		}
		if len(font.Sz) > 0 {
			st.FontSizePt = font.Sz[0].ValAttr
		}
		if len(font.Color) > 0 {
			st.FontColor = resolveColor(wb, font.Color[0])
		}
		st.Bold = boolProperty(font.B)
		st.Italic = boolProperty(font.I)
		st.Underline = len(font.U) > 0 && font.U[0].ValAttr != sml.ST_UnderlineValuesNone
	}

	if fill := FillProps(ss, styleID); fill != nil && fill.PatternFill != nil &&
		fill.PatternFill.PatternTypeAttr == sml.ST_PatternTypeSolid {
		st.BackgroundColor = resolveColor(wb, fill.PatternFill.FgColor)
	}

	if border := BorderProps(ss, styleID); border != nil {
		st.BorderTop = inspectBorder(wb, border.Top)
		st.BorderRight = inspectBorder(wb, border.Right)
		st.BorderBottom = inspectBorder(wb, border.Bottom)
		st.BorderLeft = inspectBorder(wb, border.Left)
	}

	if x := xf(ss, styleID); x != nil && x.Alignment != nil {
		st.HorizontalAlign = x.Alignment.HorizontalAttr.String()
		switch x.Alignment.VerticalAttr {
		case sml.ST_VerticalAlignmentTop:
			st.VerticalAlign = "top"
		case sml.ST_VerticalAlignmentCenter:
			st.VerticalAlign = "middle"
		default:
			st.VerticalAlign = "bottom"
		}
		if x.Alignment.WrapTextAttr != nil {
			st.WrapText = *x.Alignment.WrapTextAttr
		}
	}
	return st
}

func inspectBorder(wb *spreadsheet.Workbook, pr *sml.CT_BorderPr) BorderLine {
	if pr == nil || pr.StyleAttr == sml.ST_BorderStyleUnset || pr.StyleAttr == sml.ST_BorderStyleNone {
		return BorderLine{}
	}
	return BorderLine{Style: pr.StyleAttr.String(), Color: resolveColor(wb, pr.Color)}
}

// boolProperty reads an optional boolean element, present without a value
// means true.
func boolProperty(p []*sml.CT_BooleanProperty) bool {
	if len(p) == 0 {
		return false
	}
	return p[0].ValAttr == nil || *p[0].ValAttr
}
