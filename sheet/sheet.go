// Package sheet is the in-memory worksheet model the layout engine writes into.
//
// All operations are positional and order dependent, so a Sheet must only be
// mutated by one goroutine. Distinct Sheets share no state and may be built
// concurrently before they are handed to the xlsx sink.
package sheet

import (
	"errors"
	"fmt"
	"sort"

	"github.com/orayew2002/acta-excel/excel"
	"github.com/rs/zerolog/log"
)

// ErrMergeOverlap is returned when a merge intersects an existing merge.
var ErrMergeOverlap = errors.New("merge overlaps an existing merged range")

// Edge names one side of a cell border.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
)

type pos struct{ row, col int }

// Image is a picture already resized to its final pixel size.
type Image struct {
	Anchor    excel.CellRef
	Width     int
	Height    int
	Extension string // ".png" or ".jpg"
	Data      []byte
}

// Sheet holds cells, merges, dimensions and pictures of one worksheet.
type Sheet struct {
	Name          string
	ShowGridLines bool

	cells      map[pos]*Cell
	merges     []excel.RangeRef
	rowHeights map[int]float64
	overridden map[int]bool
	colWidths  map[int]float64
	images     []Image
}

// New creates an empty sheet. Grid lines are hidden, as on the printed forms.
func New(name string) *Sheet {
	return &Sheet{
		Name:       name,
		cells:      make(map[pos]*Cell),
		rowHeights: make(map[int]float64),
		overridden: make(map[int]bool),
		colWidths:  make(map[int]float64),
	}
}

// At returns the cell at the 1-based coordinates, or nil if it was never written.
func (s *Sheet) At(row, col int) *Cell {
	return s.cells[pos{row, col}]
}

// Get returns the cell for an A1 reference, or nil.
func (s *Sheet) Get(ref string) *Cell {
	c, err := excel.ParseCell(ref)
	if err != nil {
		return nil
	}
	return s.At(c.Row, c.ColumnNumber())
}

func (s *Sheet) cell(row, col int) *Cell {
	p := pos{row, col}
	c, ok := s.cells[p]
	if !ok {
		c = &Cell{}
		s.cells[p] = c
	}
	return c
}

// Apply sets the attributes present in st on the cell; absent attributes stay as they are.
func (s *Sheet) Apply(c excel.CellRef, st Style) {
	s.cell(c.Row, c.ColumnNumber()).apply(st)
}

// ApplyStyle is Apply for an A1 reference.
func (s *Sheet) ApplyStyle(ref string, st Style) error {
	c, err := excel.ParseCell(ref)
	if err != nil {
		return fmt.Errorf("apply style: %w", err)
	}
	s.Apply(c, st)
	return nil
}

// SetBorder replaces the whole border of one cell.
func (s *Sheet) SetBorder(ref string, b Border) error {
	c, err := excel.ParseCell(ref)
	if err != nil {
		return fmt.Errorf("set border: %w", err)
	}
	s.cell(c.Row, c.ColumnNumber()).Border = cloneBorder(b)
	return nil
}

// SetSide replaces one side of a cell's border, keeping the other three.
func (s *Sheet) SetSide(ref string, e Edge, sd Side) error {
	c, err := excel.ParseCell(ref)
	if err != nil {
		return fmt.Errorf("set side: %w", err)
	}
	cl := s.cell(c.Row, c.ColumnNumber())
	*cl.edge(e) = cloneSide(&sd)
	return nil
}

func (c *Cell) edge(e Edge) **Side {
	switch e {
	case EdgeTop:
		return &c.Border.Top
	case EdgeLeft:
		return &c.Border.Left
	case EdgeBottom:
		return &c.Border.Bottom
	default:
		return &c.Border.Right
	}
}

// DrawOuterBorder merges sd into the perimeter sides of every edge cell of ref.
// Interior cells and the non-perimeter sides of edge cells are left untouched.
// The requested style always wins over what was there; callers order their
// calls from least to most specific.
func (s *Sheet) DrawOuterBorder(ref string, sd Side) error {
	r, err := excel.ParseRange(ref)
	if err != nil {
		return fmt.Errorf("outer border: %w", err)
	}
	s.OuterBorder(r, sd)
	return nil
}

// OuterBorder is DrawOuterBorder for a parsed range.
func (s *Sheet) OuterBorder(r excel.RangeRef, sd Side) {
	if sd.IsZero() {
		log.Warn().Str("range", r.String()).Msg("outer border requested without a side style")
		return
	}
	warnInverted(r, "outer border")

	r1, c1, r2, c2 := r.Bounds()
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			if row != r1 && row != r2 && col != c1 && col != c2 {
				continue
			}
			cl := s.cell(row, col)
			if row == r1 {
				mergeEdge(cl.edge(EdgeTop), sd)
			}
			if row == r2 {
				mergeEdge(cl.edge(EdgeBottom), sd)
			}
			if col == c1 {
				mergeEdge(cl.edge(EdgeLeft), sd)
			}
			if col == c2 {
				mergeEdge(cl.edge(EdgeRight), sd)
			}
		}
	}
}

// DrawEdge merges sd into side e of the cells lying on that edge of ref,
// such as the bottom of every cell in the last row.
func (s *Sheet) DrawEdge(ref string, e Edge, sd Side) error {
	r, err := excel.ParseRange(ref)
	if err != nil {
		return fmt.Errorf("draw edge: %w", err)
	}
	if sd.IsZero() {
		return nil
	}
	r1, c1, r2, c2 := r.Bounds()
	switch e {
	case EdgeTop:
		r2 = r1
	case EdgeBottom:
		r1 = r2
	case EdgeLeft:
		c2 = c1
	case EdgeRight:
		c1 = c2
	}
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			mergeEdge(s.cell(row, col).edge(e), sd)
		}
	}
	return nil
}

func mergeEdge(dst **Side, sd Side) {
	var cur Side
	if *dst != nil {
		cur = **dst
	}
	merged := cur.merge(sd)
	if merged.IsZero() {
		*dst = nil
		return
	}
	*dst = &merged
}

// FillBorder overwrites the complete border of every cell inside ref, interior included.
func (s *Sheet) FillBorder(ref string, b Border) error {
	r, err := excel.ParseRange(ref)
	if err != nil {
		return fmt.Errorf("fill border: %w", err)
	}
	if b.IsZero() {
		log.Warn().Str("range", ref).Msg("fill border requested without any side")
		return nil
	}
	warnInverted(r, "fill border")

	r1, c1, r2, c2 := r.Bounds()
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			s.cell(row, col).Border = cloneBorder(b)
		}
	}
	return nil
}

// MergeCells records a merged range. Single cells are ignored.
// A range intersecting an existing merge fails with ErrMergeOverlap.
func (s *Sheet) MergeCells(ref string) error {
	r, err := excel.ParseRange(ref)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if r.IsSingle() {
		return nil
	}
	warnInverted(r, "merge")
	for _, m := range s.merges {
		if m.Overlaps(r) {
			return fmt.Errorf("merge %s with %s: %w", r, m, ErrMergeOverlap)
		}
	}
	s.merges = append(s.merges, r)
	return nil
}

// Merges returns the merged ranges in insertion order.
func (s *Sheet) Merges() []excel.RangeRef {
	return append([]excel.RangeRef(nil), s.merges...)
}

// SetRowHeight is the generic row-height pass: it skips rows that already
// carry a deliberate override and reports whether the height was applied.
func (s *Sheet) SetRowHeight(row int, height float64) bool {
	if s.overridden[row] {
		return false
	}
	s.rowHeights[row] = height
	return true
}

// OverrideRowHeight sets a height that later generic passes must not replace.
func (s *Sheet) OverrideRowHeight(row int, height float64) {
	s.rowHeights[row] = height
	s.overridden[row] = true
}

// RaiseRowHeight sets height only when the row is unset or lower.
func (s *Sheet) RaiseRowHeight(row int, height float64) {
	if cur, ok := s.rowHeights[row]; ok && cur >= height {
		return
	}
	s.SetRowHeight(row, height)
}

// RowHeight returns the height of row, if any was set.
func (s *Sheet) RowHeight(row int) (float64, bool) {
	h, ok := s.rowHeights[row]
	return h, ok
}

// Overridden reports whether row carries a deliberate height override.
func (s *Sheet) Overridden(row int) bool {
	return s.overridden[row]
}

// RowHeights returns a copy of every set row height.
func (s *Sheet) RowHeights() map[int]float64 {
	out := make(map[int]float64, len(s.rowHeights))
	for k, v := range s.rowHeights {
		out[k] = v
	}
	return out
}

// SetColWidth sets the width of a column in character units.
func (s *Sheet) SetColWidth(col string, width float64) {
	s.colWidths[excel.ColumnNumber(col)] = width
}

// ColWidths returns column widths keyed by 1-based column number.
func (s *Sheet) ColWidths() map[int]float64 {
	out := make(map[int]float64, len(s.colWidths))
	for k, v := range s.colWidths {
		out[k] = v
	}
	return out
}

// AddImage records a picture anchored at img.Anchor.
func (s *Sheet) AddImage(img Image) {
	s.images = append(s.images, img)
}

// Images returns the pictures in insertion order.
func (s *Sheet) Images() []Image {
	return append([]Image(nil), s.images...)
}

// Entry is a cell together with its coordinates.
type Entry struct {
	Ref  excel.CellRef
	Cell *Cell
}

// Cells returns every written cell ordered by row, then column.
func (s *Sheet) Cells() []Entry {
	out := make([]Entry, 0, len(s.cells))
	for p, c := range s.cells {
		out = append(out, Entry{Ref: excel.Cell(p.col, p.row), Cell: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ref.Row != out[j].Ref.Row {
			return out[i].Ref.Row < out[j].Ref.Row
		}
		return out[i].Ref.ColumnNumber() < out[j].Ref.ColumnNumber()
	})
	return out
}

// MaxRow returns the highest row touched by a cell, height or merge.
func (s *Sheet) MaxRow() int {
	last := 0
	for p := range s.cells {
		last = max(last, p.row)
	}
	for r := range s.rowHeights {
		last = max(last, r)
	}
	for _, m := range s.merges {
		_, _, r2, _ := m.Bounds()
		last = max(last, r2)
	}
	return last
}

func warnInverted(r excel.RangeRef, op string) {
	if r.Inverted() {
		log.Warn().Str("range", r.String()).Str("op", op).Msg("inverted range, using normalised bounds")
	}
}
