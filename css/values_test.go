package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponents(t *testing.T) {
	assert.Equal(t, []string{"1px", "solid", "#f00"}, Components("1px solid #f00"))
	assert.Equal(t, []string{"red", "2px", "dashed"}, Components("  red   2px\tdashed "))
	assert.Equal(t, []string{"1px", "rgb(0, 0, 0)"}, Components("1px rgb(0, 0, 0)"))
	assert.Empty(t, Components(""))
}

func TestParseLength(t *testing.T) {
	l, ok := ParseLength("120px")
	assert.True(t, ok)
	assert.Equal(t, Length{Value: 120, Unit: "px"}, l)

	l, ok = ParseLength(" 33.5% ")
	assert.True(t, ok)
	assert.Equal(t, Length{Value: 33.5, Unit: "%"}, l)

	l, ok = ParseLength("12")
	assert.True(t, ok)
	assert.Equal(t, Length{Value: 12}, l)

	_, ok = ParseLength("auto")
	assert.False(t, ok)
	_, ok = ParseLength("10px 20px")
	assert.False(t, ok)
	_, ok = ParseLength("")
	assert.False(t, ok)
}

func TestPixelsAndPercent(t *testing.T) {
	px, ok := Pixels("100px")
	assert.True(t, ok)
	assert.Equal(t, 100.0, px)

	_, ok = Pixels("50%")
	assert.False(t, ok)

	f, ok := Percent("50%")
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	pt, ok := FontSizePoints("16px")
	assert.True(t, ok)
	assert.Equal(t, 12.0, pt)

	pt, ok = FontSizePoints("14pt")
	assert.True(t, ok)
	assert.Equal(t, 14.0, pt)

	_, ok = FontSizePoints("large")
	assert.False(t, ok)

	h, ok := HeightPoints("40px")
	assert.True(t, ok)
	assert.Equal(t, 30.0, h)
}
