package sheet

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var thin = Side{Style: LineThin, Color: "000000"}

func TestDrawOuterBorderPerimeterOnly(t *testing.T) {
	s := New("t")
	if err := s.DrawOuterBorder("B2:D4", thin); err != nil {
		t.Fatal(err)
	}

	for row := 2; row <= 4; row++ {
		for col := 2; col <= 4; col++ {
			c := s.At(row, col)
			if row == 3 && col == 3 {
				if c != nil {
					t.Fatalf("interior C3 was touched: %+v", c.Border)
				}
				continue
			}
			if c == nil {
				t.Fatalf("perimeter cell (%d,%d) missing", row, col)
			}
			b := c.Border
			if (b.Top != nil) != (row == 2) {
				t.Errorf("(%d,%d) top = %v", row, col, b.Top)
			}
			if (b.Bottom != nil) != (row == 4) {
				t.Errorf("(%d,%d) bottom = %v", row, col, b.Bottom)
			}
			if (b.Left != nil) != (col == 2) {
				t.Errorf("(%d,%d) left = %v", row, col, b.Left)
			}
			if (b.Right != nil) != (col == 4) {
				t.Errorf("(%d,%d) right = %v", row, col, b.Right)
			}
		}
	}
}

func TestDrawOuterBorderPreservesOtherSides(t *testing.T) {
	s := New("t")
	dotted := Side{Style: LineDotted, Color: "000000"}
	if err := s.SetBorder("D105", BottomOnly(dotted)); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawOuterBorder("D105:P107", thin); err != nil {
		t.Fatal(err)
	}

	got := s.Get("D105").Border
	want := Border{Top: &thin, Left: &thin, Bottom: &dotted}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("D105 border (-want +got):\n%s", d)
	}
}

func TestDrawOuterBorderTakesRequestedStyle(t *testing.T) {
	s := New("t")
	thick := Side{Style: LineThick}
	if err := s.DrawOuterBorder("B5:AG110", thick); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawOuterBorder("B5:C6", Side{Style: LineThin}); err != nil {
		t.Fatal(err)
	}
	if got := s.Get("B5").Border.Top.Style; got != LineThin {
		t.Errorf("B5 top = %q, want explicit thin", got)
	}
}

func TestMergeSideKeepsColor(t *testing.T) {
	s := New("t")
	if err := s.SetBorder("A1", Border{Top: &Side{Style: LineThin, Color: "FF0000"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawOuterBorder("A1", Side{Style: LineThick}); err != nil {
		t.Fatal(err)
	}
	top := s.Get("A1").Border.Top
	if top.Style != LineThick || top.Color != "FF0000" {
		t.Errorf("top = %+v", top)
	}
}

func TestFillBorderCoversInterior(t *testing.T) {
	s := New("t")
	all := AllSides(thin)
	if err := s.FillBorder("B20:D22", all); err != nil {
		t.Fatal(err)
	}
	for _, ref := range []string{"B20", "C21", "D22"} {
		if d := cmp.Diff(all, s.Get(ref).Border); d != "" {
			t.Errorf("%s (-want +got):\n%s", ref, d)
		}
	}
	// stored borders must not alias the argument
	all.Top.Style = LineThick
	if s.Get("C21").Border.Top.Style != LineThin {
		t.Error("FillBorder stored an aliased side")
	}
}

func TestApplyStylePartial(t *testing.T) {
	s := New("t")
	font := Font{Name: "Arial", Size: 10, Bold: true}
	if err := s.ApplyStyle("D10", Style{Value: "Contratista", Font: &font}); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyStyle("D10", Style{Alignment: &Alignment{Horizontal: "right"}}); err != nil {
		t.Fatal(err)
	}
	c := s.Get("D10")
	if c.Value != "Contratista" || c.Font == nil || !c.Font.Bold || c.Alignment.Horizontal != "right" {
		t.Errorf("partial update lost attributes: %+v", c)
	}
	if err := s.ApplyStyle("10D", Style{}); err == nil {
		t.Error("expected invalid reference error")
	}
}

func TestMergeCellsOverlap(t *testing.T) {
	s := New("t")
	if err := s.MergeCells("B6:AG6"); err != nil {
		t.Fatal(err)
	}
	if err := s.MergeCells("E6:F7"); !errors.Is(err, ErrMergeOverlap) {
		t.Errorf("overlap error = %v", err)
	}
	if err := s.MergeCells("C6"); err != nil {
		t.Errorf("single cell merge should be ignored: %v", err)
	}
	if got := len(s.Merges()); got != 1 {
		t.Errorf("merges = %d, want 1", got)
	}
}

func TestRowHeightOverride(t *testing.T) {
	s := New("t")
	s.OverrideRowHeight(114, 28)
	if s.SetRowHeight(114, 13) {
		t.Error("generic pass replaced an override")
	}
	if h, _ := s.RowHeight(114); h != 28 {
		t.Errorf("row 114 = %v", h)
	}
	s.SetRowHeight(30, 12.75)
	s.RaiseRowHeight(30, 10)
	s.RaiseRowHeight(31, 16.75)
	if h, _ := s.RowHeight(30); h != 12.75 {
		t.Errorf("row 30 = %v", h)
	}
	if h, _ := s.RowHeight(31); h != 16.75 {
		t.Errorf("row 31 = %v", h)
	}
	if s.MaxRow() != 114 {
		t.Errorf("MaxRow = %d", s.MaxRow())
	}
}

func TestDrawEdgeBottomRow(t *testing.T) {
	s := New("t")
	if err := s.DrawEdge("H99:J100", EdgeBottom, thin); err != nil {
		t.Fatal(err)
	}
	for _, ref := range []string{"H100", "I100", "J100"} {
		c := s.Get(ref)
		if c == nil || c.Border.Bottom == nil || *c.Border.Bottom != thin {
			t.Errorf("%s bottom not drawn", ref)
		}
		if c != nil && (c.Border.Top != nil || c.Border.Left != nil || c.Border.Right != nil) {
			t.Errorf("%s other sides touched: %+v", ref, c.Border)
		}
	}
	if s.Get("H99") != nil {
		t.Error("row above the edge was touched")
	}
	if err := s.DrawEdge("H", EdgeBottom, thin); err == nil {
		t.Error("bad reference accepted")
	}
}
