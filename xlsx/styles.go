package xlsx

import (
	"fmt"
	"strings"

	"github.com/orayew2002/acta-excel/sheet"
	"github.com/xuri/excelize/v2"
)

// StyleManager caches Excel styles so each distinct cell format is created
// only once per file.
type StyleManager struct {
	file  *excelize.File
	cache map[string]int
}

// NewStyleManager creates a style manager bound to the given file.
func NewStyleManager(f *excelize.File) *StyleManager {
	return &StyleManager{file: f, cache: make(map[string]int)}
}

// Len returns the number of distinct styles created so far.
func (sm *StyleManager) Len() int {
	return len(sm.cache)
}

// For returns the style ID of the cell's format. Cells without any format
// get 0, the workbook default.
func (sm *StyleManager) For(c *sheet.Cell) (int, error) {
	key := styleKey(c)
	if key == "" {
		return 0, nil
	}
	return sm.getOrCreate(key, convert(c))
}

func (sm *StyleManager) getOrCreate(key string, style *excelize.Style) (int, error) {
	if id, ok := sm.cache[key]; ok {
		return id, nil
	}

	id, err := sm.file.NewStyle(style)
	if err != nil {
		return 0, err
	}

	sm.cache[key] = id
	return id, nil
}

// styleKey fingerprints every formatting attribute of c; the value is not part of it.
func styleKey(c *sheet.Cell) string {
	var b strings.Builder
	if c.Font != nil {
		fmt.Fprintf(&b, "f%+v;", *c.Font)
	}
	if c.Alignment != nil {
		fmt.Fprintf(&b, "a%+v;", *c.Alignment)
	}
	for i, s := range []*sheet.Side{c.Border.Top, c.Border.Left, c.Border.Bottom, c.Border.Right} {
		if s != nil {
			fmt.Fprintf(&b, "b%d%+v;", i, *s)
		}
	}
	if c.Fill != nil {
		fmt.Fprintf(&b, "p%+v;", *c.Fill)
	}
	if c.NumFmt != "" {
		fmt.Fprintf(&b, "n%s;", c.NumFmt)
	}
	return b.String()
}

// ---------- Conversion ----------

// lineStyles maps border line names to excelize border style indexes.
var lineStyles = map[string]int{
	sheet.LineThin:   1,
	sheet.LineMedium: 2,
	sheet.LineDashed: 3,
	sheet.LineDotted: 4,
	sheet.LineThick:  5,
	sheet.LineDouble: 6,
	sheet.LineHair:   7,
}

func convert(c *sheet.Cell) *excelize.Style {
	st := &excelize.Style{}
	if f := c.Font; f != nil {
		st.Font = &excelize.Font{
			Family: f.Name,
			Size:   f.Size,
			Bold:   f.Bold,
			Italic: f.Italic,
			Color:  f.Color,
		}
	}
	if a := c.Alignment; a != nil {
		st.Alignment = &excelize.Alignment{
			Horizontal: a.Horizontal,
			Vertical:   a.Vertical,
			WrapText:   a.WrapText,
		}
	}
	for _, e := range []struct {
		typ  string
		side *sheet.Side
	}{
		{"left", c.Border.Left},
		{"right", c.Border.Right},
		{"top", c.Border.Top},
		{"bottom", c.Border.Bottom},
	} {
		if e.side == nil {
			continue
		}
		color := e.side.Color
		if color == "" {
			color = "000000"
		}
		st.Border = append(st.Border, excelize.Border{Type: e.typ, Color: color, Style: lineStyles[e.side.Style]})
	}
	if f := c.Fill; f != nil {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{f.Color}}
	}
	if c.NumFmt != "" {
		numFmt := c.NumFmt
		st.CustomNumFmt = &numFmt
	}
	return st
}
