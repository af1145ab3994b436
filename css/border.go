package css

import (
	"strconv"
	"strings"
)

// LineStyle is a spreadsheet border line pattern.
type LineStyle int

const (
	LineNone LineStyle = iota
	LineThin
	LineMedium
	LineThick
	LineDashed
	LineDotted
	LineDouble
)

var lineStyleNames = [...]string{
	LineNone:   "none",
	LineThin:   "thin",
	LineMedium: "medium",
	LineThick:  "thick",
	LineDashed: "dashed",
	LineDotted: "dotted",
	LineDouble: "double",
}

func (l LineStyle) String() string {
	if l < 0 || int(l) >= len(lineStyleNames) {
		return "none"
	}
	return lineStyleNames[l]
}

// BorderSide is a parsed border shorthand.
type BorderSide struct {
	Style LineStyle
	Width int
	Color string // six hex digits
}

// Visible reports whether the side draws a line.
func (b BorderSide) Visible() bool {
	return b.Style != LineNone
}

// ParseBorder interprets a border shorthand. Components may appear in any
// order: a px width, a line style keyword and a color. Width defaults to 1,
// style to thin and color to black; "none" and "hidden" give an invisible
// side.
func ParseBorder(value string, names NameResolver) BorderSide {
	side := BorderSide{Style: LineThin, Width: 1, Color: "000000"}
	hidden := false

	for _, part := range Components(value) {
		lower := strings.ToLower(part)
		switch {
		case strings.HasSuffix(lower, "px"):
			w, err := strconv.Atoi(strings.TrimSuffix(lower, "px"))
			if err != nil {
				w = 1
			}
			side.Width = w
		case lower == "none" || lower == "hidden":
			hidden = true
		case lower == "solid":
			side.Style = LineThin
		case lower == "dashed":
			side.Style = LineDashed
		case lower == "dotted":
			side.Style = LineDotted
		case lower == "double":
			side.Style = LineDouble
		case lower == "groove", lower == "ridge", lower == "inset", lower == "outset":
			side.Style = LineThin
		default:
			hex, res := ParseColor(lower, names)
			if res != ColorOK {
				hex = "000000"
			}
			side.Color = hex
		}
	}

	if hidden {
		return BorderSide{Style: LineNone, Width: 0, Color: side.Color}
	}
	// solid lines get their weight from the width once all parts are known
	if side.Style == LineThin {
		side.Style = weightForWidth(side.Width)
	}
	return side
}

func weightForWidth(px int) LineStyle {
	switch {
	case px <= 1:
		return LineThin
	case px <= 3:
		return LineMedium
	default:
		return LineThick
	}
}

// Borders holds the effective shorthand for each side.
type Borders struct {
	Top, Right, Bottom, Left *BorderSide
}

// ResolveBorders parses the border declarations of a resolved style. The
// generic border seeds all four sides, per-side declarations override only
// their own side. Sides without any declaration are nil.
func ResolveBorders(s Style, names NameResolver) Borders {
	parse := func(p Property) *BorderSide {
		v, ok := s.Get(p)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b := ParseBorder(v, names)
		return &b
	}
	b := Borders{
		Top:    parse(BorderTop),
		Right:  parse(BorderRight),
		Bottom: parse(BorderBottom),
		Left:   parse(BorderLeft),
	}
	if all := parse(Border); all != nil {
		for _, side := range []**BorderSide{&b.Top, &b.Right, &b.Bottom, &b.Left} {
			if *side == nil {
				c := *all
				*side = &c
			}
		}
	}
	return b
}
