// Package css implements the small slice of CSS the converter honours: inline
// declaration blocks, the table/section/row/cell cascade and the value grammar
// for colors, lengths and border shorthands.
package css

import "strings"

// Property is one of the style properties that survive the cascade. Anything
// else found in a style attribute is ignored.
type Property int

const (
	FontWeight Property = iota
	FontStyle
	TextDecoration
	Color
	BackgroundColor
	TextAlign
	VerticalAlign
	Border
	BorderTop
	BorderRight
	BorderBottom
	BorderLeft

	propertyCount
)

var propertyNames = [propertyCount]string{
	FontWeight:      "font-weight",
	FontStyle:       "font-style",
	TextDecoration:  "text-decoration",
	Color:           "color",
	BackgroundColor: "background-color",
	TextAlign:       "text-align",
	VerticalAlign:   "vertical-align",
	Border:          "border",
	BorderTop:       "border-top",
	BorderRight:     "border-right",
	BorderBottom:    "border-bottom",
	BorderLeft:      "border-left",
}

var propertyByName = func() map[string]Property {
	m := make(map[string]Property, propertyCount)
	for p, name := range propertyNames {
		m[name] = Property(p)
	}
	return m
}()

// LookupProperty maps a property name to its Property. Names are matched
// case-insensitively.
func LookupProperty(name string) (Property, bool) {
	p, ok := propertyByName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Properties returns all known properties in declaration order.
func Properties() []Property {
	all := make([]Property, propertyCount)
	for i := range all {
		all[i] = Property(i)
	}
	return all
}

func (p Property) String() string {
	if p < 0 || p >= propertyCount {
		return "unknown"
	}
	return propertyNames[p]
}
