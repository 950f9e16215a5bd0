package template

import (
	"context"
	"fmt"

	"github.com/orayew2002/acta-excel/sheet"
	"golang.org/x/sync/errgroup"
)

// BuildFunc lays out one sheet.
type BuildFunc func(ctx context.Context, s *sheet.Sheet) error

// Registry holds the sheets of a document in output order.
type Registry struct {
	builders []entry
}

type entry struct {
	name  string
	build BuildFunc
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register appends a sheet. Names are made workbook-safe by the xlsx sink.
func (r *Registry) Register(name string, build BuildFunc) {
	r.builders = append(r.builders, entry{name: name, build: build})
}

// Names returns the sheet names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.builders))
	for i, e := range r.builders {
		out[i] = e.name
	}
	return out
}

// Len returns the number of registered sheets.
func (r *Registry) Len() int {
	return len(r.builders)
}

// BuildAll runs every builder on its own sheet, at most workers at a time,
// and returns the sheets in registration order. The first error cancels the
// remaining builders.
func (r *Registry) BuildAll(ctx context.Context, workers int) ([]*sheet.Sheet, error) {
	sheets := make([]*sheet.Sheet, len(r.builders))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, e := range r.builders {
		g.Go(func() error {
			s := sheet.New(e.name)
			if err := e.build(ctx, s); err != nil {
				return fmt.Errorf("sheet %q: %w", e.name, err)
			}
			sheets[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}
