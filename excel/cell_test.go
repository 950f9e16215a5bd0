package excel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestColumnRoundTrip(t *testing.T) {
	for n := 1; n <= 18278; n++ {
		if got := ColumnNumber(ColumnLetters(n)); got != n {
			t.Fatalf("ColumnNumber(ColumnLetters(%d)) = %d", n, got)
		}
	}
}

func TestColumnLetters(t *testing.T) {
	for n, want := range map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA", 18278: "ZZZ"} {
		if got := ColumnLetters(n); got != want {
			t.Errorf("ColumnLetters(%d) = %q, want %q", n, got, want)
		}
	}
	if got := ColumnLetters(0); got != "" {
		t.Errorf("ColumnLetters(0) = %q, want empty", got)
	}
}

func TestParseCell(t *testing.T) {
	c, err := ParseCell("AA10")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(CellRef{Column: "AA", Row: 10}, c); d != "" {
		t.Error(d)
	}
	if c.ColumnNumber() != 27 {
		t.Errorf("ColumnNumber = %d, want 27", c.ColumnNumber())
	}

	lower, err := ParseCell("d99")
	if err != nil || lower.String() != "D99" {
		t.Errorf("ParseCell(d99) = %v, %v", lower, err)
	}

	for _, bad := range []string{"", "10", "A", "A0", "1A", "A1B", "A-1", "A1:B2"} {
		if _, err := ParseCell(bad); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ParseCell(%q) error = %v, want ErrInvalidReference", bad, err)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("B2:D4")
	if err != nil {
		t.Fatal(err)
	}
	want := RangeRef{Start: CellRef{"B", 2}, End: CellRef{"D", 4}}
	if d := cmp.Diff(want, r); d != "" {
		t.Error(d)
	}

	single, err := ParseRange("C6")
	if err != nil {
		t.Fatal(err)
	}
	if !single.IsSingle() || single.String() != "C6" {
		t.Errorf("ParseRange(C6) = %v", single)
	}

	if _, err := ParseRange("A1:B2:C3"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("double colon error = %v", err)
	}
	if _, err := ParseRange("A1:"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("dangling colon error = %v", err)
	}
}

func TestRangeGeometry(t *testing.T) {
	inv := MustRange("D4:B2")
	if !inv.Inverted() {
		t.Error("D4:B2 should be inverted")
	}
	r1, c1, r2, c2 := inv.Bounds()
	if r1 != 2 || c1 != 2 || r2 != 4 || c2 != 4 {
		t.Errorf("Bounds = %d,%d,%d,%d", r1, c1, r2, c2)
	}
	if !MustRange("B2:D4").Overlaps(MustRange("D4:F6")) {
		t.Error("ranges sharing D4 should overlap")
	}
	if MustRange("B2:D4").Overlaps(MustRange("E2:F4")) {
		t.Error("adjacent ranges must not overlap")
	}
}

func TestOffset(t *testing.T) {
	for _, tc := range []struct {
		ref        string
		rows, cols int
		want       string
	}{
		{"B5", 3, 1, "C8"},
		{"B5:D7", 2, 0, "B7:D9"},
		{"Z1", 0, 1, "AA1"},
		{"D21", 113, 0, "D134"},
		{"A1:A1", 1, 0, "A2:A2"},
	} {
		got, err := Offset(tc.ref, tc.rows, tc.cols)
		if err != nil {
			t.Fatalf("Offset(%q): %v", tc.ref, err)
		}
		if got != tc.want {
			t.Errorf("Offset(%q, %d, %d) = %q, want %q", tc.ref, tc.rows, tc.cols, got, tc.want)
		}
	}
}

func TestOffsetClamps(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	got, err := Offset("A1", -5, 0)
	if err != nil {
		t.Fatalf("Offset must not fail on clamping: %v", err)
	}
	if got != "A1" {
		t.Errorf("Offset(A1, -5, 0) = %q, want A1", got)
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warning, log = %q", buf.String())
	}

	got, err = Offset("B3:C4", 0, -3)
	if err != nil || got != "A3:A4" {
		t.Errorf("Offset(B3:C4, 0, -3) = %q, %v", got, err)
	}
}

func TestOffsetInvalid(t *testing.T) {
	if _, err := Offset("5B", 1, 0); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Offset(5B) error = %v", err)
	}
}
