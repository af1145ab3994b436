// Package tablexlsx converts styled HTML tables into XLSX workbooks.
//
// The conversion runs in three stages: package table parses HTML into table
// documents, package grid places cells, resolves their CSS and sizes rows and
// columns, and package xlsx writes the resulting grids as worksheets.
package tablexlsx

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/aerissecure/tablexlsx/config"
	"github.com/aerissecure/tablexlsx/grid"
	"github.com/aerissecure/tablexlsx/table"
	"github.com/aerissecure/tablexlsx/xlsx"
)

// Options select the tables to convert and control their layout.
type Options struct {
	// TableClass selects tables by their class attribute, empty matches any.
	TableClass string
	// AllTables converts every matching table into its own sheet instead of
	// only the first one.
	AllTables bool
	// SheetName names the sheets, repeated names get a numeric suffix.
	SheetName string
	Grid      grid.Options
}

// DefaultOptions converts the first table with default layout.
func DefaultOptions() Options {
	return Options{Grid: grid.DefaultOptions()}
}

// OptionsFromConfig maps the conversion section of the configuration.
func OptionsFromConfig(c config.ConversionConfig) Options {
	opts := DefaultOptions()
	opts.TableClass = c.TableClass
	opts.AllTables = c.AllTables
	opts.SheetName = c.SheetName
	opts.Grid.FontName = c.FontName
	opts.Grid.FontSize = c.FontSize
	opts.Grid.Horizontal = c.HorizontalAlign
	opts.Grid.Vertical = c.VerticalAlign
	opts.Grid.FixedRowHeights = !c.AutoRowHeight
	return opts
}

// Converter runs the conversion pipeline. It keeps no state between calls
// and may be used concurrently.
type Converter struct {
	log     *zap.Logger
	opts    Options
	builder *grid.Builder
	writer  *xlsx.Writer
}

// New creates a converter logging to log, which may be nil.
func New(log *zap.Logger, opts Options) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		log:     log,
		opts:    opts,
		builder: grid.NewBuilder(log, opts.Grid),
		writer:  xlsx.NewWriter(log),
	}
}

// Grids parses the HTML in r and lays out the selected tables. contentType
// may carry a charset, otherwise the encoding is sniffed from the content.
// When no table matches a single empty grid is returned.
func (c *Converter) Grids(ctx context.Context, r io.Reader, contentType string) ([]*grid.Grid, error) {
	events, err := table.TokenizeDocument(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to read html: %w", err)
	}

	docs := table.ParseAll(events, c.opts.TableClass, table.WithLogger(c.log))
	if len(docs) == 0 {
		c.log.Warn("No matching table found", zap.String("class", c.opts.TableClass))
		docs = []*table.TableDocument{table.NewTableDocument()}
	} else {
		if !c.opts.AllTables {
			docs = docs[:1]
		}
		for i, doc := range docs {
			if doc.Empty() {
				c.log.Warn("Matching table has no rows", zap.String("class", c.opts.TableClass), zap.Int("table", i+1))
			}
		}
	}

	grids := make([]*grid.Grid, 0, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := c.builder.Build(doc)
		if err != nil {
			return nil, fmt.Errorf("unable to lay out table %d: %w", i+1, err)
		}
		g.Name = c.opts.SheetName
		grids = append(grids, g)
	}
	c.log.Debug("Tables laid out", zap.Int("count", len(grids)))
	return grids, nil
}

// Convert reads HTML from r and writes the XLSX workbook to w.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) error {
	grids, err := c.Grids(ctx, r, "")
	if err != nil {
		return err
	}
	return c.writer.Write(w, grids...)
}

// ConvertFile converts the HTML file src into the workbook dst.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) error {
	grids, err := c.gridsFromFile(ctx, src)
	if err != nil {
		return err
	}
	if err := c.writer.WriteFile(dst, grids...); err != nil {
		return err
	}
	c.log.Info("Workbook written", zap.String("source", src), zap.String("destination", dst), zap.Int("sheets", len(grids)))
	return nil
}

// Preview renders the tables of r as they will appear in the workbook.
func (c *Converter) Preview(ctx context.Context, r io.Reader, w io.Writer) error {
	grids, err := c.Grids(ctx, r, "")
	if err != nil {
		return err
	}
	return xlsx.WriteHTML(w, xlsx.Model(grids...))
}

// PreviewFile renders the tables of the HTML file src into the file dst.
func (c *Converter) PreviewFile(ctx context.Context, src, dst string) (err error) {
	grids, err := c.gridsFromFile(ctx, src)
	if err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create preview file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close preview file: %w", cerr))
		}
	}()
	return xlsx.WriteHTML(f, xlsx.Model(grids...))
}

func (c *Converter) gridsFromFile(ctx context.Context, src string) ([]*grid.Grid, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("unable to open source: %w", err)
	}
	defer f.Close()
	return c.Grids(ctx, f, "")
}
