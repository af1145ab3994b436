package css

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned by name resolvers for names they do not know.
var ErrUnknownColor = errors.New("unknown color name")

// NameResolver maps a CSS color name to six hex digits (no '#').
type NameResolver func(name string) (string, error)

// ColorNames resolves the CSS named colors.
func ColorNames(name string) (string, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B), nil
}

// ExpandHex expands three digit shorthand by doubling every digit. Any other
// input is returned unchanged.
func ExpandHex(hex string) string {
	if len(hex) != 3 {
		return hex
	}
	var b strings.Builder
	b.Grow(6)
	for i := range 3 {
		b.WriteByte(hex[i])
		b.WriteByte(hex[i])
	}
	return b.String()
}

// IsHex6 reports whether s is exactly six hex digits.
func IsHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// ColorResult tells how a color value was interpreted.
type ColorResult int

const (
	// ColorOK means the value produced a valid color.
	ColorOK ColorResult = iota
	// ColorUnknownName means the value was a name the resolver did not know.
	ColorUnknownName
	// ColorInvalid means the value did not produce six hex digits.
	ColorInvalid
)

// ParseColor interprets a '#' prefixed hex color or a color name and returns
// six upper-case hex digits.
func ParseColor(value string, names NameResolver) (string, ColorResult) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", ColorInvalid
	}
	var hex string
	if h, ok := strings.CutPrefix(value, "#"); ok {
		hex = h
	} else {
		if names == nil {
			names = ColorNames
		}
		h, err := names(value)
		if err != nil {
			return "", ColorUnknownName
		}
		hex = strings.TrimPrefix(strings.ToLower(h), "#")
	}
	hex = ExpandHex(hex)
	if !IsHex6(hex) {
		return "", ColorInvalid
	}
	return strings.ToUpper(hex), ColorOK
}

// ARGB converts six hex digits to the fully opaque eight digit form used by
// spreadsheets.
func ARGB(hex6 string) string {
	return "FF" + strings.ToUpper(hex6)
}
