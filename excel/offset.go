package excel

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Offset shifts a cell or range reference by rowDelta rows and colDelta columns.
//
//	Offset("B5", 3, 1)    → "C8"
//	Offset("B5:D7", 2, 0) → "B7:D9"
//
// A coordinate that would fall below 1 is clamped to 1 and a warning is logged.
// The clamped result is a floor, not a meaningful position.
func Offset(ref string, rowDelta, colDelta int) (string, error) {
	r, err := ParseRange(ref)
	if err != nil {
		return "", err
	}

	shifted, clamped := r.Offset(rowDelta, colDelta)
	if clamped {
		log.Warn().
			Str("ref", ref).
			Int("row_delta", rowDelta).
			Int("col_delta", colDelta).
			Str("result", shifted.String()).
			Msg("offset produced coordinates below 1, clamped")
	}

	if strings.Contains(ref, ":") {
		return shifted.Start.String() + ":" + shifted.End.String(), nil
	}
	return shifted.Start.String(), nil
}

// Offset shifts the cell, reporting whether either coordinate was clamped to 1.
func (c CellRef) Offset(rowDelta, colDelta int) (CellRef, bool) {
	row := c.Row + rowDelta
	col := c.ColumnNumber() + colDelta
	clamped := false
	if row < 1 {
		row, clamped = 1, true
	}
	if col < 1 {
		col, clamped = 1, true
	}
	return Cell(col, row), clamped
}

// Offset shifts both ends independently.
func (r RangeRef) Offset(rowDelta, colDelta int) (RangeRef, bool) {
	start, c1 := r.Start.Offset(rowDelta, colDelta)
	end, c2 := r.End.Offset(rowDelta, colDelta)
	return RangeRef{Start: start, End: end}, c1 || c2
}

// Down is Offset with rows only, for layout code that has already validated its refs.
func (r RangeRef) Down(rows int) RangeRef {
	out, _ := r.Offset(rows, 0)
	return out
}

// Down shifts the cell by rows.
func (c CellRef) Down(rows int) CellRef {
	out, _ := c.Offset(rows, 0)
	return out
}
