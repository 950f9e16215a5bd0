package template

import (
	"errors"
	"fmt"

	"github.com/orayew2002/acta-excel/excel"
	"github.com/orayew2002/acta-excel/sheet"
)

// FixedText is a constant label printed at the same place in every block.
type FixedText struct {
	Text      string
	Font      sheet.Font
	Alignment *sheet.Alignment
}

// ColumnSpan is one horizontal lane of the photo grid.
type ColumnSpan struct {
	Start string
	End   string
}

// PhotoLayout describes the photo section of a block: Blocks sub-blocks of
// FrameRows picture rows, CommentRows caption rows and SpacerRows, each
// sub-block repeated every Stride rows, with one slot per column span.
type PhotoLayout struct {
	StartRow      int
	Stride        int
	Blocks        int
	FrameRows     int
	CommentRows   int
	SpacerRows    int
	FrameHeight   float64
	CommentHeight float64
	SpacerHeight  float64

	// Gutter columns are merged row by row next to the frames.
	GutterStart string
	GutterEnd   string

	Columns     []ColumnSpan
	ImageWidth  int
	ImageHeight int
}

// Slots lists the photo slots in fill order: left to right within a
// sub-block, sub-blocks top to bottom.
func (p PhotoLayout) Slots() []Slot {
	out := make([]Slot, 0, p.Blocks*len(p.Columns))
	for b := range p.Blocks {
		for _, c := range p.Columns {
			out = append(out, Slot{Column: c.Start, EndColumn: c.End, SubOffset: b * p.Stride})
		}
	}
	return out
}

// BorderRules are the border passes applied after the photo grid.
type BorderRules struct {
	// Framed ranges get a thin outer border; used for data field boxes.
	Framed []string
	// Underlined ranges get a thin bottom edge; signature lines.
	Underlined []string
	// Dotted ranges get a dotted bottom edge; observation lines.
	Dotted []string
	// Boxes get a thin outer border drawn last, over the dotted lines.
	Boxes []string
}

// BlockTemplate is the immutable description of one repeatable block.
// Every reference is expressed for the first instance; instance i is stamped
// i*Height rows further down.
type BlockTemplate struct {
	Height int

	ColumnWidths map[string]float64
	RowHeights   map[int]float64

	LogoCell   string
	LogoWidth  int
	LogoHeight int

	TitleCell      string
	TitleFont      sheet.Font
	TitleAlignment sheet.Alignment

	FixedTexts map[string]FixedText
	Merges     []string

	DataFields    map[string]string
	DataFont      sheet.Font
	DataAlignment sheet.Alignment

	Photos           PhotoLayout
	CommentFont      sheet.Font
	CommentAlignment sheet.Alignment

	Borders BorderRules

	// Frame is the range receiving the thick outer border.
	Frame     string
	FrameSide sheet.Side

	TrailerRows   []int
	TrailerHeight float64
}

// Validate parses every reference of t once, so that a malformed template is
// reported before anything is stamped.
func (t BlockTemplate) Validate() error {
	var errs []error
	check := func(what, ref string) {
		if _, err := excel.ParseRange(ref); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}

	if t.Height < 1 {
		errs = append(errs, fmt.Errorf("block height %d", t.Height))
	}
	check("logo", t.LogoCell)
	check("title", t.TitleCell)
	check("frame", t.Frame)
	for ref := range t.FixedTexts {
		check("fixed text", ref)
	}
	for _, ref := range t.Merges {
		check("merge", ref)
	}
	for key, ref := range t.DataFields {
		check("data field "+key, ref)
	}
	for _, group := range [][]string{t.Borders.Framed, t.Borders.Underlined, t.Borders.Dotted, t.Borders.Boxes} {
		for _, ref := range group {
			check("border", ref)
		}
	}
	for _, c := range t.Photos.Columns {
		check("photo column", c.Start+"1:"+c.End+"1")
	}
	if t.Photos.GutterStart != "" {
		check("photo gutter", t.Photos.GutterStart+"1:"+t.Photos.GutterEnd+"1")
	}
	for col := range t.ColumnWidths {
		check("column width", col+"1")
	}
	if len(t.Photos.Slots()) == 0 {
		errs = append(errs, errors.New("photo layout has no slots"))
	}
	return errors.Join(errs...)
}
