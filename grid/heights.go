package grid

import (
	"strings"

	"golang.org/x/text/width"
)

// charWidthFactor approximates the average glyph width as a fraction of the
// font size.
const charWidthFactor = 0.6

// TextWidth measures s in display columns: East Asian wide and fullwidth
// runes count twice.
func TextWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// LineCount estimates how many lines text wraps into when packed word by word
// into lines of widthPx pixels.
func LineCount(text string, widthPx, fontSize float64) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 1
	}
	perLine := max(1, int(widthPx/(fontSize*charWidthFactor)))

	lines, used := 1, 0
	for _, w := range words {
		n := TextWidth(w)
		switch {
		case used == 0 && n <= perLine:
			used = n
		case used > 0 && used+1+n <= perLine:
			used += 1 + n
		default:
			if used > 0 {
				lines++
			}
			// words longer than a line are broken across lines
			lines += (n - 1) / perLine
			used = n % perLine
			if used == 0 {
				used = perLine
			}
		}
	}
	return lines
}

// RequiredHeight is the row height in points needed for lines of text.
func RequiredHeight(fontSize float64, lines int) float64 {
	return 2 * fontSize * float64(lines)
}

// heightClaims collects per row height requirements.
type heightClaims map[int][]float64

func (h heightClaims) claim(row, span int, height float64) {
	per := height / float64(span)
	for r := row; r < row+span; r++ {
		h[r] = append(h[r], per)
	}
}

// apply sets every claimed row to the smallest claim unless the row is
// already at least that high.
func (h heightClaims) apply(g *Grid) {
	for row, claims := range h {
		if len(claims) == 0 {
			continue
		}
		need := claims[0]
		for _, c := range claims[1:] {
			need = min(need, c)
		}
		if cur, ok := g.RowHeights[row]; !ok || cur < need {
			g.SetRowHeight(row, need)
		}
	}
}
