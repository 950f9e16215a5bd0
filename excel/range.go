package excel

import "strings"

// RangeRef is a rectangular span of cells. A single cell has Start == End.
// Ranges are taken literally; Inverted reports when Start lies after End.
type RangeRef struct {
	Start CellRef
	End   CellRef
}

// Single returns a range covering exactly one cell.
func Single(c CellRef) RangeRef {
	return RangeRef{Start: c, End: c}
}

// ParseRange parses "A1:B5" or "A1".
func ParseRange(ref string) (RangeRef, error) {
	parts := strings.Split(ref, ":")
	switch len(parts) {
	case 1:
		c, err := ParseCell(parts[0])
		if err != nil {
			return RangeRef{}, err
		}
		return Single(c), nil
	case 2:
		start, err := ParseCell(parts[0])
		if err != nil {
			return RangeRef{}, err
		}
		end, err := ParseCell(parts[1])
		if err != nil {
			return RangeRef{}, err
		}
		return RangeRef{Start: start, End: end}, nil
	default:
		return RangeRef{}, &InvalidReferenceError{Ref: ref, Reason: "more than one ':'"}
	}
}

// MustRange is ParseRange for compile-time layout constants; it panics on bad input.
func MustRange(ref string) RangeRef {
	r, err := ParseRange(ref)
	if err != nil {
		panic(err)
	}
	return r
}

// IsSingle reports whether the range covers one cell.
func (r RangeRef) IsSingle() bool {
	return r.Start == r.End
}

// Inverted reports whether the end lies above or left of the start.
func (r RangeRef) Inverted() bool {
	return r.Start.Row > r.End.Row || r.Start.ColumnNumber() > r.End.ColumnNumber()
}

// Bounds returns 1-based inclusive row and column bounds, normalised so that
// iteration works on inverted ranges too.
func (r RangeRef) Bounds() (row1, col1, row2, col2 int) {
	row1, row2 = r.Start.Row, r.End.Row
	col1, col2 = r.Start.ColumnNumber(), r.End.ColumnNumber()
	if row1 > row2 {
		row1, row2 = row2, row1
	}
	if col1 > col2 {
		col1, col2 = col2, col1
	}
	return row1, col1, row2, col2
}

// Contains reports whether the 1-based (row, col) lies inside the range.
func (r RangeRef) Contains(row, col int) bool {
	r1, c1, r2, c2 := r.Bounds()
	return row >= r1 && row <= r2 && col >= c1 && col <= c2
}

// Overlaps reports whether two ranges share at least one cell.
func (r RangeRef) Overlaps(o RangeRef) bool {
	r1, c1, r2, c2 := r.Bounds()
	o1, d1, o2, d2 := o.Bounds()
	return r1 <= o2 && o1 <= r2 && c1 <= d2 && d1 <= c2
}

// String renders "A1" for single cells and "A1:B5" otherwise.
func (r RangeRef) String() string {
	if r.IsSingle() {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}
