package css

// Style is the effective set of allow-listed declarations for one cell.
type Style struct {
	values [propertyCount]string
	set    [propertyCount]bool
}

// Get returns the value of p and whether any source declared it.
func (s Style) Get(p Property) (string, bool) {
	if p < 0 || p >= propertyCount {
		return "", false
	}
	return s.values[p], s.set[p]
}

// Value returns the value of p or an empty string.
func (s Style) Value(p Property) string {
	v, _ := s.Get(p)
	return v
}

// Has reports whether p was declared.
func (s Style) Has(p Property) bool {
	_, ok := s.Get(p)
	return ok
}

// Set stores value for p.
func (s *Style) Set(p Property, value string) {
	if p < 0 || p >= propertyCount {
		return
	}
	s.values[p] = value
	s.set[p] = true
}

// Len returns the number of declared properties.
func (s Style) Len() int {
	n := 0
	for _, ok := range s.set {
		if ok {
			n++
		}
	}
	return n
}

// Map returns declared properties keyed by name.
func (s Style) Map() map[string]string {
	m := make(map[string]string, s.Len())
	for p, ok := range s.set {
		if ok {
			m[Property(p).String()] = s.values[p]
		}
	}
	return m
}

// Fold merges declaration blocks in increasing order of precedence. Each
// block overrides earlier ones key by key; declarations outside the allow
// list are dropped.
func Fold(sources ...Inline) Style {
	var s Style
	for _, src := range sources {
		for _, d := range src.Declarations() {
			if p, ok := LookupProperty(d.Name); ok {
				s.Set(p, d.Value)
			}
		}
	}
	return s
}

// Resolve cascades table < section < row < cell.
func Resolve(table, section, row, cell Inline) Style {
	return Fold(table, section, row, cell)
}
