package sheet

// Border line styles understood by the xlsx sink.
const (
	LineThin   = "thin"
	LineMedium = "medium"
	LineThick  = "thick"
	LineDotted = "dotted"
	LineDashed = "dashed"
	LineDouble = "double"
	LineHair   = "hair"
)

// Font describes a cell font. Zero fields mean "not specified".
type Font struct {
	Name   string
	Size   float64
	Bold   bool
	Italic bool
	Color  string
}

// Alignment describes horizontal/vertical placement of the cell text.
type Alignment struct {
	Horizontal string // left, center, right
	Vertical   string // top, center, bottom
	WrapText   bool
}

// Side is one edge of a cell border.
type Side struct {
	Style string
	Color string
}

// IsZero reports whether the side carries no information.
func (s Side) IsZero() bool {
	return s.Style == "" && s.Color == ""
}

// merge returns s overlaid with the non-empty fields of o.
func (s Side) merge(o Side) Side {
	if o.Style != "" {
		s.Style = o.Style
	}
	if o.Color != "" {
		s.Color = o.Color
	}
	return s
}

// Border holds the four independently settable sides of a cell.
type Border struct {
	Top    *Side
	Left   *Side
	Bottom *Side
	Right  *Side
}

// IsZero reports whether no side is set.
func (b Border) IsZero() bool {
	return b.Top == nil && b.Left == nil && b.Bottom == nil && b.Right == nil
}

// AllSides returns a border with s on every side.
func AllSides(s Side) Border {
	return Border{Top: side(s), Left: side(s), Bottom: side(s), Right: side(s)}
}

// BottomOnly returns a border with only the bottom side set.
func BottomOnly(s Side) Border {
	return Border{Bottom: side(s)}
}

func side(s Side) *Side {
	return &s
}

// Fill is a solid pattern fill.
type Fill struct {
	Pattern string // "solid"
	Color   string // RRGGBB
}

// Style is a partial cell update: nil / zero fields are left untouched.
type Style struct {
	Value     any
	Font      *Font
	Alignment *Alignment
	Border    *Border
	Fill      *Fill
	NumFmt    string
}

// Cell is the stored state of one cell.
type Cell struct {
	Value     any
	Font      *Font
	Alignment *Alignment
	Border    Border
	Fill      *Fill
	NumFmt    string
}

// apply merges st into c with partial-update semantics.
func (c *Cell) apply(st Style) {
	if st.Value != nil {
		c.Value = st.Value
	}
	if st.Font != nil {
		f := *st.Font
		c.Font = &f
	}
	if st.Alignment != nil {
		a := *st.Alignment
		c.Alignment = &a
	}
	if st.Border != nil {
		c.Border = cloneBorder(*st.Border)
	}
	if st.Fill != nil {
		f := *st.Fill
		c.Fill = &f
	}
	if st.NumFmt != "" {
		c.NumFmt = st.NumFmt
	}
}

func cloneBorder(b Border) Border {
	return Border{
		Top:    cloneSide(b.Top),
		Left:   cloneSide(b.Left),
		Bottom: cloneSide(b.Bottom),
		Right:  cloneSide(b.Right),
	}
}

// cloneSide copies s, dropping sides that carry nothing.
func cloneSide(s *Side) *Side {
	if s == nil || s.IsZero() {
		return nil
	}
	return side(*s)
}
