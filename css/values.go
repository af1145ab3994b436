package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Components splits a property value into its whitespace separated component
// values. Function tokens are kept together with their arguments, so
// "1px solid rgb(0, 0, 0)" yields three components.
func Components(value string) []string {
	lexer := css.NewLexer(parse.NewInputString(value))

	var (
		parts []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			flush()
			return parts
		case css.WhitespaceToken:
			if depth > 0 {
				cur.WriteByte(' ')
				continue
			}
			flush()
			continue
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		case css.CommentToken:
			continue
		}
		cur.Write(data)
	}
}

// Length is a numeric CSS value with its unit. Unit is lower-cased and is "%"
// for percentages and empty for bare numbers.
type Length struct {
	Value float64
	Unit  string
}

// ParseLength parses a single dimension, percentage or number.
func ParseLength(value string) (Length, bool) {
	lexer := css.NewLexer(parse.NewInputString(strings.TrimSpace(value)))

	var (
		l     Length
		found bool
	)
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return l, found
		case css.WhitespaceToken:
			continue
		case css.DimensionToken, css.PercentageToken, css.NumberToken:
			if found {
				return Length{}, false
			}
			num, unit := splitDimension(string(data))
			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return Length{}, false
			}
			l, found = Length{Value: f, Unit: strings.ToLower(unit)}, true
		default:
			return Length{}, false
		}
	}
}

// Pixels returns the value of a px length.
func Pixels(value string) (float64, bool) {
	l, ok := ParseLength(value)
	if !ok || l.Unit != "px" {
		return 0, false
	}
	return l.Value, true
}

// Percent returns the value of a percentage as a fraction of one.
func Percent(value string) (float64, bool) {
	l, ok := ParseLength(value)
	if !ok || l.Unit != "%" {
		return 0, false
	}
	return l.Value / 100, true
}

// FontSizePoints interprets a font-size declaration: pt and bare numbers are
// points, px are converted at 96dpi.
func FontSizePoints(value string) (float64, bool) {
	l, ok := ParseLength(value)
	if !ok || l.Value <= 0 {
		return 0, false
	}
	switch l.Unit {
	case "pt", "":
		return l.Value, true
	case "px":
		return l.Value * 0.75, true
	}
	return 0, false
}

// HeightPoints interprets a height declaration in points.
func HeightPoints(value string) (float64, bool) {
	l, ok := ParseLength(value)
	if !ok || l.Value <= 0 {
		return 0, false
	}
	switch l.Unit {
	case "pt":
		return l.Value, true
	case "px":
		return l.Value * 0.75, true
	}
	return 0, false
}

func splitDimension(s string) (string, string) {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			end = i + 1
			continue
		}
		// exponent, as in 1e3px
		if (r == 'e' || r == 'E') && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			end = i + 1
			continue
		}
		break
	}
	return s[:end], s[end:]
}
