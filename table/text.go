package table

import (
	"strings"
	"unicode"
)

// textBuffer accumulates cell text with whitespace collapsed to single spaces
// and no leading space.
type textBuffer struct {
	b strings.Builder
}

func (t *textBuffer) write(s string) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			t.space()
			continue
		}
		t.b.WriteRune(r)
	}
}

// space inserts a separator unless the buffer is empty or already ends with
// one.
func (t *textBuffer) space() {
	if t.b.Len() == 0 || strings.HasSuffix(t.b.String(), " ") {
		return
	}
	t.b.WriteByte(' ')
}

func (t *textBuffer) String() string {
	return strings.TrimSpace(t.b.String())
}
