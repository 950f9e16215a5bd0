package template

import "github.com/orayew2002/acta-excel/sheet"

const black = "000000"

// Border sides shared by every printed form.
var (
	thinSide   = sheet.Side{Style: sheet.LineThin, Color: black}
	mediumSide = sheet.Side{Style: sheet.LineMedium, Color: black}
	thickSide  = sheet.Side{Style: sheet.LineThick, Color: black}
	dottedSide = sheet.Side{Style: sheet.LineDotted, Color: black}
)

// Fonts.
var (
	fontLabel     = sheet.Font{Name: "Arial", Size: 10, Bold: true}
	fontData      = sheet.Font{Name: "Arial", Size: 11}
	fontComment   = sheet.Font{Name: "Arial", Size: 11}
	fontTitle16   = sheet.Font{Name: "Arial", Size: 16, Bold: true}
	fontTitle18   = sheet.Font{Name: "Arial", Size: 18, Bold: true}
	fontFootnote  = sheet.Font{Name: "Arial", Size: 10}
	fontVersion   = sheet.Font{Name: "Arial", Size: 8}
	fontSection   = sheet.Font{Name: "Arial", Size: 11, Bold: true}
	fontChecklist = sheet.Font{Name: "Arial", Size: 10}
)

// Alignments.
var (
	centerWrap   = sheet.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	centerNoWrap = sheet.Alignment{Horizontal: "center", Vertical: "center"}
	rightNoWrap  = sheet.Alignment{Horizontal: "right", Vertical: "center"}
)

var yellowFill = sheet.Fill{Pattern: "solid", Color: "FFFF00"}

// pixelsPerChar converts the pixel column widths of the paper forms to
// character units.
const pixelsPerChar = 7.0

func widthsFromPixels(px map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(px))
	for col, w := range px {
		out[col] = w / pixelsPerChar
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

// label returns a style writing text with font f and optional alignment a.
func label(text string, f sheet.Font, a *sheet.Alignment) sheet.Style {
	st := sheet.Style{Value: text, Font: ptr(f)}
	if a != nil {
		st.Alignment = ptr(*a)
	}
	return st
}
