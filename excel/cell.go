package excel

import (
	"regexp"
	"strconv"
	"strings"
)

var cellPat = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// CellRef is a parsed cell reference such as "AA10".
type CellRef struct {
	Column string
	Row    int
}

// Cell builds a CellRef from a 1-based column number and row.
func Cell(col, row int) CellRef {
	return CellRef{Column: ColumnLetters(col), Row: row}
}

// ColumnNumber returns the 1-based column number (A=1, Z=26, AA=27).
func (c CellRef) ColumnNumber() int {
	return ColumnNumber(c.Column)
}

// String renders the reference back to A1 notation.
func (c CellRef) String() string {
	return c.Column + strconv.Itoa(c.Row)
}

// ColumnNumber converts column letters to a 1-based column number.
// Letters are case-insensitive; any non-letter input yields a meaningless result,
// so callers validate through ParseCell first.
func ColumnNumber(letters string) int {
	n := 0
	for _, r := range strings.ToUpper(letters) {
		n = n*26 + int(r-'A'+1)
	}
	return n
}

// ColumnLetters converts a 1-based column number to letters (1→A, 26→Z, 27→AA).
// There is no representation of 0; n < 1 returns "".
func ColumnLetters(n int) string {
	var buf []byte
	for n > 0 {
		rem := (n - 1) % 26
		buf = append(buf, byte('A'+rem))
		n = (n - 1) / 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ParseCell parses a single reference such as "D10".
func ParseCell(ref string) (CellRef, error) {
	m := cellPat.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(ref)))
	if m == nil {
		return CellRef{}, &InvalidReferenceError{Ref: ref, Reason: "expected column letters followed by a row number"}
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return CellRef{}, &InvalidReferenceError{Ref: ref, Reason: "row must be a positive number"}
	}
	return CellRef{Column: m[1], Row: row}, nil
}
