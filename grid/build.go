package grid

import (
	"go.uber.org/zap"

	"github.com/aerissecure/tablexlsx/css"
	"github.com/aerissecure/tablexlsx/table"
)

// Options control grid construction.
type Options struct {
	Name       string
	FontName   string
	FontSize   float64 // points, overridden by a table font-size
	Horizontal string  // default horizontal alignment
	Vertical   string  // default vertical alignment
	// FixedRowHeights keeps only explicit row heights and skips estimating
	// heights from wrapped text.
	FixedRowHeights bool
	Names           css.NameResolver
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		FontName:   "Calibri",
		FontSize:   11,
		Horizontal: AlignCenter,
		Vertical:   AlignCenter,
		Names:      css.ColorNames,
	}
}

// Builder turns table documents into grids. A Builder holds no per-document
// state and may be reused.
type Builder struct {
	log  *zap.Logger
	opts Options
}

// NewBuilder creates a builder. Zero option fields fall back to defaults.
func NewBuilder(log *zap.Logger, opts Options) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.FontName == "" {
		opts.FontName = def.FontName
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Horizontal == "" {
		opts.Horizontal = def.Horizontal
	}
	if opts.Vertical == "" {
		opts.Vertical = def.Vertical
	}
	if opts.Names == nil {
		opts.Names = def.Names
	}
	return &Builder{log: log.Named("grid"), opts: opts}
}

// Build places, styles and sizes every cell of doc on a new grid.
func (b *Builder) Build(doc *table.TableDocument) (*Grid, error) {
	plan, err := Place(doc)
	if err != nil {
		return nil, err
	}

	g := New()
	g.Name = b.opts.Name
	g.grow(plan.RowCount(), plan.Cols)

	fontSize := b.opts.FontSize
	if v, ok := doc.Style.Declarations().Get("font-size"); ok {
		if pt, ok := css.FontSizePoints(v); ok {
			fontSize = pt
		}
	}

	for col, px := range ColumnWidths(doc, plan, fontSize) {
		if units := PixelsToUnits(px); units > 0 {
			g.SetColWidth(col, units)
		}
	}
	for row, r := range plan.Rows {
		if v, ok := r.Style.Declarations().Get("height"); ok {
			if pt, ok := css.HeightPoints(v); ok {
				g.SetRowHeight(row, pt)
			}
		}
	}
	for _, m := range plan.Merges {
		g.AddMerge(m)
	}

	tr := &Translator{
		Names:      b.opts.Names,
		Colgroup:   doc.Colgroup,
		Horizontal: b.opts.Horizontal,
		Vertical:   b.opts.Vertical,
	}
	for _, pl := range plan.Cells {
		style := css.Resolve(doc.Style, pl.SectionStyle, pl.Row.Style, pl.Cell.Style)
		if pl.Section == table.Head && !style.Has(css.FontWeight) {
			style.Set(css.FontWeight, "bold")
		}

		master := g.Master(pl.Pos)
		slot := g.Slot(master)
		if master != pl.Pos {
			b.log.Debug("Cell lands inside a merge, keeping master text",
				zap.Stringer("pos", pl.Pos), zap.Stringer("master", master), zap.String("text", pl.Cell.Text))
		} else {
			slot.Value = pl.Cell.Text
			slot.Origin = true
			slot.Format.FontName = b.opts.FontName
			slot.Format.FontSize = fontSize
		}
		tr.Apply(g, pl.Pos, style)
	}

	if !b.opts.FixedRowHeights {
		b.estimateHeights(g, plan)
	}

	b.log.Debug("Built grid",
		zap.Int("rows", g.Rows()),
		zap.Int("cols", g.Cols()),
		zap.Int("merges", len(g.Merges)))
	return g, nil
}

func (b *Builder) estimateHeights(g *Grid, plan *Plan) {
	claims := make(heightClaims)
	for _, pl := range plan.Cells {
		if g.Master(pl.Pos) != pl.Pos {
			continue
		}
		slot, ok := g.At(pl.Pos)
		if !ok || !slot.Format.Wrap || slot.Value == "" {
			continue
		}
		widthPx := 0.0
		for dc := range pl.ColSpan {
			units, ok := g.ColWidths[pl.Pos.Col+dc]
			if !ok {
				units = DefaultColumnWidth
			}
			widthPx += UnitsToPixels(units)
		}
		size := slot.Format.FontSize
		if size <= 0 {
			size = b.opts.FontSize
		}
		lines := LineCount(slot.Value, widthPx, size)
		claims.claim(pl.Pos.Row, pl.RowSpan, RequiredHeight(size, lines))
	}
	claims.apply(g)
}
