// Package xlsx writes grids as spreadsheet workbooks, reads workbooks back
// into an intermediate model and renders that model as an HTML preview.
package xlsx

import (
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/tablexlsx/css"
	"github.com/aerissecure/tablexlsx/grid"
)

// xf returns the cell format record for a style ID.
func xf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	if ss.X().CellXfs == nil || int(styleID) >= len(ss.X().CellXfs.Xf) {
		return nil
	}
	return ss.X().CellXfs.Xf[styleID]
}

// FontProps returns the font record referenced by a style ID.
func FontProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Font {
	x := xf(ss, styleID)
	if x == nil || x.FontIdAttr == nil || ss.X().Fonts == nil {
		return nil
	}
	idx := int(*x.FontIdAttr)
	if idx >= len(ss.X().Fonts.Font) {
		return nil
	}
	return ss.X().Fonts.Font[idx]
}

// FillProps returns the fill record referenced by a style ID.
func FillProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Fill {
	x := xf(ss, styleID)
	if x == nil || x.FillIdAttr == nil || ss.X().Fills == nil {
		return nil
	}
	idx := int(*x.FillIdAttr)
	if idx >= len(ss.X().Fills.Fill) {
		return nil
	}
	return ss.X().Fills.Fill[idx]
}

// BorderProps returns the border record referenced by a style ID.
func BorderProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Border {
	x := xf(ss, styleID)
	if x == nil || x.BorderIdAttr == nil || ss.X().Borders == nil {
		return nil
	}
	idx := int(*x.BorderIdAttr)
	if idx >= len(ss.X().Borders.Border) {
		return nil
	}
	return ss.X().Borders.Border[idx]
}

// ThemeColorToRGB resolves a theme color index (0-based) to an RGB hex string (e.g., "FFFFFF").
// Tint is ignored.
func ThemeColorToRGB(wb *spreadsheet.Workbook, themeIdx int) (string, bool) {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil || themes[0].ThemeElements.ClrScheme == nil {
		return "", false
	}
	scheme := themes[0].ThemeElements.ClrScheme

	var clr *dml.CT_Color
	switch themeIdx {
	case 0:
		clr = scheme.Dk1
	case 1:
		clr = scheme.Lt1
	case 2:
		clr = scheme.Dk2
	case 3:
		clr = scheme.Lt2
	case 4:
		clr = scheme.Accent1
	case 5:
		clr = scheme.Accent2
	case 6:
		clr = scheme.Accent3
	case 7:
		clr = scheme.Accent4
	case 8:
		clr = scheme.Accent5
	case 9:
		clr = scheme.Accent6
	case 10:
		clr = scheme.Hlink
	case 11:
		clr = scheme.FolHlink
	default:
		return "", false
	}
	if clr == nil {
		return "", false
	}
	if clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "" {
		return clr.SrgbClr.ValAttr, true
	} else if clr.SysClr != nil && clr.SysClr.LastClrAttr != nil {
		return *clr.SysClr.LastClrAttr, true
	}
	return "", false
}

// resolveColor reads an explicit or theme color as "RRGGBB".
func resolveColor(wb *spreadsheet.Workbook, c *sml.CT_Color) string {
	if c == nil {
		return ""
	}
	if c.RgbAttr != nil && *c.RgbAttr != "" {
		return normalizeColor(*c.RgbAttr)
	}
	if c.ThemeAttr != nil {
		if hex, ok := ThemeColorToRGB(wb, int(*c.ThemeAttr)); ok {
			return normalizeColor(hex)
		}
	}
	return ""
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
// Other lengths are returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.ToUpper(strings.TrimPrefix(hex, "#"))
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}

// argbColor converts "AARRGGBB" or "RRGGBB" to a unioffice color.
func argbColor(hex string) (color.Color, bool) {
	hex = normalizeColor(hex)
	if len(hex) != 6 {
		return color.Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Color{}, false
	}
	return color.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

// styleCache shares one cell style between all slots with an equal format.
type styleCache struct {
	ss     spreadsheet.StyleSheet
	styles map[grid.Format]spreadsheet.CellStyle
}

func newStyleCache(ss spreadsheet.StyleSheet) *styleCache {
	return &styleCache{ss: ss, styles: make(map[grid.Format]spreadsheet.CellStyle)}
}

func (c *styleCache) style(f grid.Format) spreadsheet.CellStyle {
	if cs, ok := c.styles[f]; ok {
		return cs
	}
	cs := c.ss.AddCellStyle()

	cs.SetHorizontalAlignment(horizontalAlignment(f.Horizontal))
	cs.SetVerticalAlignment(verticalAlignment(f.Vertical))
	cs.SetWrapped(f.Wrap)

	if f.FontName != "" || f.FontSize > 0 || f.Bold || f.Italic || f.Underline || f.TextColor != "" {
		font := c.ss.AddFont()
		if f.FontName != "" {
			font.SetName(f.FontName)
		}
		if f.FontSize > 0 {
			font.SetSize(f.FontSize)
		}
		if f.Bold {
			font.SetBold(true)
		}
		if f.Italic {
			font.SetItalic(true)
		}
		if f.Underline {
			font.X().U = []*sml.CT_UnderlineProperty{{ValAttr: sml.ST_UnderlineValuesSingle}}
		}
		if clr, ok := argbColor(f.TextColor); ok {
			font.SetColor(clr)
		}
		cs.SetFont(font)
	}

	if clr, ok := argbColor(f.FillColor); ok {
		fill := c.ss.Fills().AddFill()
		pf := fill.SetPatternFill()
		pf.SetPattern(sml.ST_PatternTypeSolid)
		pf.SetFgColor(clr)
		cs.SetFill(fill)
	}

	if f.Border != (grid.Borders{}) {
		b := c.ss.AddBorder()
		if st, clr, ok := borderSide(f.Border.Top); ok {
			b.SetTop(st, clr)
		}
		if st, clr, ok := borderSide(f.Border.Right); ok {
			b.SetRight(st, clr)
		}
		if st, clr, ok := borderSide(f.Border.Bottom); ok {
			b.SetBottom(st, clr)
		}
		if st, clr, ok := borderSide(f.Border.Left); ok {
			b.SetLeft(st, clr)
		}
		cs.SetBorder(b)
	}

	c.styles[f] = cs
	return cs
}

func borderSide(s grid.Side) (sml.ST_BorderStyle, color.Color, bool) {
	if !s.Visible() {
		return sml.ST_BorderStyleNone, color.Color{}, false
	}
	clr, ok := argbColor(s.Color)
	if !ok {
		clr = color.Black
	}
	return borderStyle(s.Style), clr, true
}

func borderStyle(l css.LineStyle) sml.ST_BorderStyle {
	switch l {
	case css.LineThin:
		return sml.ST_BorderStyleThin
	case css.LineMedium:
		return sml.ST_BorderStyleMedium
	case css.LineThick:
		return sml.ST_BorderStyleThick
	case css.LineDashed:
		return sml.ST_BorderStyleDashed
	case css.LineDotted:
		return sml.ST_BorderStyleDotted
	case css.LineDouble:
		return sml.ST_BorderStyleDouble
	}
	return sml.ST_BorderStyleNone
}

func horizontalAlignment(v string) sml.ST_HorizontalAlignment {
	switch v {
	case grid.AlignLeft:
		return sml.ST_HorizontalAlignmentLeft
	case grid.AlignCenter:
		return sml.ST_HorizontalAlignmentCenter
	case grid.AlignRight:
		return sml.ST_HorizontalAlignmentRight
	case grid.AlignJustify:
		return sml.ST_HorizontalAlignmentJustify
	}
	return sml.ST_HorizontalAlignmentGeneral
}

func verticalAlignment(v string) sml.ST_VerticalAlignment {
	switch v {
	case grid.AlignTop:
		return sml.ST_VerticalAlignmentTop
	case grid.AlignCenter:
		return sml.ST_VerticalAlignmentCenter
	}
	return sml.ST_VerticalAlignmentBottom
}
