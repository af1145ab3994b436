package css

import "strings"

// Declaration is a single "name: value" pair from an inline style.
type Declaration struct {
	Name  string // lower-cased
	Value string
}

// Declarations keeps declarations in source order. Later duplicates win on
// lookup.
type Declarations []Declaration

// ParseDeclarations splits an inline style into declarations. Segments are
// separated by semicolons; segments without a colon or without a name are
// skipped.
func ParseDeclarations(s string) Declarations {
	var decls Declarations
	for part := range strings.SplitSeq(s, ";") {
		name, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		decls = append(decls, Declaration{Name: name, Value: strings.TrimSpace(value)})
	}
	return decls
}

// Get returns the value of the last declaration with the given name.
func (d Declarations) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Name == name {
			return d[i].Value, true
		}
	}
	return "", false
}

// Has reports whether a declaration with the given name is present.
func (d Declarations) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Inline is an optional inline declaration block, typically the content of a
// style attribute. The zero value is None.
type Inline struct {
	text    string
	present bool
}

// None is the absent declaration block.
var None Inline

// Some wraps a present declaration block. An empty string is still present.
func Some(text string) Inline {
	return Inline{text: text, present: true}
}

// Get returns the raw text and whether the block is present.
func (i Inline) Get() (string, bool) {
	return i.text, i.present
}

// Present reports whether the block exists.
func (i Inline) Present() bool {
	return i.present
}

// String returns the raw text, empty when absent.
func (i Inline) String() string {
	return i.text
}

// Declarations parses the block. Absent blocks have no declarations.
func (i Inline) Declarations() Declarations {
	if !i.present {
		return nil
	}
	return ParseDeclarations(i.text)
}

// Append adds a declaration to the end of the block, turning None into Some.
func (i Inline) Append(decl string) Inline {
	text := strings.TrimSpace(i.text)
	switch {
	case text == "":
		text = decl
	case strings.HasSuffix(text, ";"):
		text += " " + decl
	default:
		text += "; " + decl
	}
	return Some(text)
}
