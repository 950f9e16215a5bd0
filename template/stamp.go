package template

import (
	"context"
	"fmt"
	"sort"

	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/excel"
	"github.com/orayew2002/acta-excel/picture"
	"github.com/orayew2002/acta-excel/sheet"
	"github.com/rs/zerolog"
)

// Stamper writes instances of a block template into a sheet.
type Stamper struct {
	Template BlockTemplate
	LogoPath string

	logger zerolog.Logger
}

// NewStamper validates t and returns a Stamper for it.
func NewStamper(t BlockTemplate, logoPath string, logger zerolog.Logger) (*Stamper, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("block template: %w", err)
	}
	return &Stamper{Template: t, LogoPath: logoPath, logger: logger}, nil
}

// Prepare sets the sheet-wide column widths of the template.
func (st *Stamper) Prepare(s *sheet.Sheet) {
	for col, w := range st.Template.ColumnWidths {
		s.SetColWidth(col, w)
	}
}

// StampAll lays out as many instances as items need, one after another, and
// returns the number of instances written.
func (st *Stamper) StampAll(ctx context.Context, s *sheet.Sheet, data map[string]string, title string, items []domain.PhotoItem) (int, error) {
	st.Prepare(s)
	instances := Plan(st.Template, items)
	for _, in := range instances {
		if err := st.Stamp(ctx, s, in.RowOffset, data, title, in.Photos); err != nil {
			return in.Index, err
		}
	}
	st.logger.Debug().
		Str("sheet", s.Name).
		Int("photos", len(items)).
		Int("instances", len(instances)).
		Msg("blocks stamped")
	return len(instances), nil
}

// Stamp writes one instance of the template rowOffset rows below its base
// position. Layout failures are logged and skipped; only cancellation of ctx
// is returned.
func (st *Stamper) Stamp(ctx context.Context, s *sheet.Sheet, rowOffset int, data map[string]string, title string, photos []domain.PhotoItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stamp %s at row %d: %w", s.Name, rowOffset+1, err)
	}
	t := st.Template
	log := st.logger.With().Str("sheet", s.Name).Int("offset", rowOffset).Logger()

	for _, row := range sortedRows(t.RowHeights) {
		s.SetRowHeight(row+rowOffset, t.RowHeights[row])
	}

	if ref, ok := st.shift(log, t.LogoCell, rowOffset); ok {
		picture.Insert(s, st.LogoPath, ref, t.LogoWidth, t.LogoHeight, true, log)
	}

	st.write(log, s, t.TitleCell, rowOffset, sheet.Style{
		Value:     title,
		Font:      ptr(t.TitleFont),
		Alignment: ptr(t.TitleAlignment),
	})

	for _, ref := range sortedKeys(t.FixedTexts) {
		ft := t.FixedTexts[ref]
		st.write(log, s, ref, rowOffset, label(ft.Text, ft.Font, ft.Alignment))
	}

	for _, key := range sortedKeys(t.DataFields) {
		v, ok := data[key]
		if !ok {
			continue
		}
		st.write(log, s, t.DataFields[key], rowOffset, sheet.Style{
			Value:     v,
			Font:      ptr(t.DataFont),
			Alignment: ptr(t.DataAlignment),
		})
	}

	for _, ref := range t.Merges {
		st.merge(log, s, ref, rowOffset)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("stamp %s at row %d: %w", s.Name, rowOffset+1, err)
	}
	st.stampPhotos(log, s, rowOffset, photos)

	for _, ref := range t.Borders.Framed {
		st.outline(log, s, ref, rowOffset, thinSide)
	}
	for _, ref := range t.Borders.Underlined {
		st.edge(log, s, ref, rowOffset, sheet.EdgeBottom, thinSide)
	}
	for _, ref := range t.Borders.Dotted {
		st.edge(log, s, ref, rowOffset, sheet.EdgeBottom, dottedSide)
	}
	for _, ref := range t.Borders.Boxes {
		st.outline(log, s, ref, rowOffset, thinSide)
	}

	st.outline(log, s, t.Frame, rowOffset, t.FrameSide)

	// Trailer rows win over the generic pass of the next instance, which
	// starts on the last of them.
	for _, row := range t.TrailerRows {
		s.OverrideRowHeight(row+rowOffset, t.TrailerHeight)
	}
	return nil
}

// ---------- Photo grid ----------

func (st *Stamper) stampPhotos(log zerolog.Logger, s *sheet.Sheet, rowOffset int, photos []domain.PhotoItem) {
	p := st.Template.Photos

	for b := range p.Blocks {
		top := rowOffset + p.StartRow + b*p.Stride
		frameEnd := top + p.FrameRows - 1
		for r := top; r <= frameEnd; r++ {
			s.SetRowHeight(r, p.FrameHeight)
			st.gutter(log, s, r)
		}
		for _, c := range p.Columns {
			st.outline(log, s, span(c, top, frameEnd), 0, thinSide)
		}

		commentTop := frameEnd + 1
		commentEnd := commentTop + p.CommentRows - 1
		for r := commentTop; r <= commentEnd; r++ {
			s.SetRowHeight(r, p.CommentHeight)
			st.gutter(log, s, r)
		}
		for _, c := range p.Columns {
			rng := span(c, commentTop, commentEnd)
			st.merge(log, s, rng, 0)
			st.outline(log, s, rng, 0, thinSide)
		}

		for r := commentEnd + 1; r <= commentEnd+p.SpacerRows; r++ {
			s.RaiseRowHeight(r, p.SpacerHeight)
		}
	}

	slots := p.Slots()
	if len(photos) > len(slots) {
		log.Warn().Int("photos", len(photos)).Int("slots", len(slots)).Msg("more photos than slots, extra photos dropped")
		photos = photos[:len(slots)]
	}
	for i, item := range photos {
		sl := slots[i]
		top := rowOffset + p.StartRow + sl.SubOffset
		picture.Insert(s, item.ImagePath, fmt.Sprintf("%s%d", sl.Column, top), p.ImageWidth, p.ImageHeight, false, log)

		caption := sheet.Style{
			Font:      ptr(st.Template.CommentFont),
			Alignment: ptr(st.Template.CommentAlignment),
		}
		if item.Caption != "" {
			caption.Value = item.Caption
		}
		st.write(log, s, fmt.Sprintf("%s%d", sl.Column, top+p.FrameRows), 0, caption)
	}
}

func (st *Stamper) gutter(log zerolog.Logger, s *sheet.Sheet, row int) {
	p := st.Template.Photos
	if p.GutterStart == "" {
		return
	}
	st.merge(log, s, fmt.Sprintf("%s%d:%s%d", p.GutterStart, row, p.GutterEnd, row), 0)
}

func span(c ColumnSpan, top, bottom int) string {
	return fmt.Sprintf("%s%d:%s%d", c.Start, top, c.End, bottom)
}

// ---------- Primitives ----------

func (st *Stamper) shift(log zerolog.Logger, ref string, rowOffset int) (string, bool) {
	out, err := excel.Offset(ref, rowOffset, 0)
	if err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("reference skipped")
		return "", false
	}
	return out, true
}

func (st *Stamper) write(log zerolog.Logger, s *sheet.Sheet, ref string, rowOffset int, style sheet.Style) {
	at, ok := st.shift(log, ref, rowOffset)
	if !ok {
		return
	}
	if err := s.ApplyStyle(at, style); err != nil {
		log.Error().Err(err).Str("ref", at).Msg("cell not written")
	}
}

func (st *Stamper) merge(log zerolog.Logger, s *sheet.Sheet, ref string, rowOffset int) {
	at, ok := st.shift(log, ref, rowOffset)
	if !ok {
		return
	}
	if err := s.MergeCells(at); err != nil {
		log.Warn().Err(err).Str("range", at).Msg("merge skipped")
	}
}

func (st *Stamper) outline(log zerolog.Logger, s *sheet.Sheet, ref string, rowOffset int, side sheet.Side) {
	at, ok := st.shift(log, ref, rowOffset)
	if !ok {
		return
	}
	if err := s.DrawOuterBorder(at, side); err != nil {
		log.Error().Err(err).Str("range", at).Msg("border skipped")
	}
}

func (st *Stamper) edge(log zerolog.Logger, s *sheet.Sheet, ref string, rowOffset int, e sheet.Edge, side sheet.Side) {
	at, ok := st.shift(log, ref, rowOffset)
	if !ok {
		return
	}
	if err := s.DrawEdge(at, e, side); err != nil {
		log.Error().Err(err).Str("range", at).Msg("border skipped")
	}
}

func sortedRows(m map[int]float64) []int {
	out := make([]int, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
