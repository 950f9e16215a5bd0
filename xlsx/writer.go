// Package xlsx renders sheet models into an .xlsx workbook.
package xlsx

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/excel"
	"github.com/orayew2002/acta-excel/sheet"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned when a workbook would have no sheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// Writer renders sheets with excelize.
type Writer struct {
	logger zerolog.Logger
}

// NewWriter creates a Writer logging to logger.
func NewWriter(logger zerolog.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteFile renders sheets and atomically replaces path with the result.
func (w *Writer) WriteFile(path string, sheets []*sheet.Sheet) error {
	f, err := w.Build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()

	fh, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Cleanup()

	if _, err := f.WriteTo(fh); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fh.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	w.logger.Info().Str("path", path).Int("sheets", len(sheets)).Msg("workbook written")
	return nil
}

// Bytes renders sheets and returns the workbook as bytes.
func (w *Writer) Bytes(sheets []*sheet.Sheet) ([]byte, error) {
	f, err := w.Build(sheets)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// Build renders sheets into a new workbook, in order. The caller closes it.
func (w *Writer) Build(sheets []*sheet.Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	sm := NewStyleManager(f)
	seen := make(map[string]bool, len(sheets))

	for i, s := range sheets {
		name := uniqueName(SheetName(s.Name), seen)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				f.Close()
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}

		if err := w.render(f, sm, name, s); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	w.logger.Debug().Int("sheets", len(sheets)).Int("styles", sm.Len()).Msg("workbook built")
	return f, nil
}

func (w *Writer) render(f *excelize.File, sm *StyleManager, name string, s *sheet.Sheet) error {
	show := s.ShowGridLines
	if err := f.SetSheetView(name, 0, &excelize.ViewOptions{ShowGridLines: &show}); err != nil {
		return fmt.Errorf("sheet view: %w", err)
	}

	for col, width := range s.ColWidths() {
		letters := excel.ColumnLetters(col)
		if err := f.SetColWidth(name, letters, letters, width); err != nil {
			return fmt.Errorf("column %s width: %w", letters, err)
		}
	}

	for row, h := range s.RowHeights() {
		if err := f.SetRowHeight(name, row, h); err != nil {
			return fmt.Errorf("row %d height: %w", row, err)
		}
	}

	for _, e := range s.Cells() {
		ref := e.Ref.String()
		if e.Cell.Value != nil {
			if err := f.SetCellValue(name, ref, e.Cell.Value); err != nil {
				return fmt.Errorf("cell %s: %w", ref, err)
			}
		}
		id, err := sm.For(e.Cell)
		if err != nil {
			return fmt.Errorf("cell %s style: %w", ref, err)
		}
		if id == 0 {
			continue
		}
		if err := f.SetCellStyle(name, ref, ref, id); err != nil {
			return fmt.Errorf("cell %s style: %w", ref, err)
		}
	}

	for _, m := range s.Merges() {
		if err := f.MergeCell(name, m.Start.String(), m.End.String()); err != nil {
			w.logger.Warn().Err(err).Str("sheet", name).Str("range", m.String()).Msg("merge skipped")
		}
	}

	for _, img := range s.Images() {
		pic := &excelize.Picture{
			Extension: img.Extension,
			File:      img.Data,
			Format: &excelize.GraphicOptions{
				Positioning: "oneCell",
				ScaleX:      1,
				ScaleY:      1,
			},
		}
		if err := f.AddPictureFromBytes(name, img.Anchor.String(), pic); err != nil {
			w.logger.Error().Err(err).Str("sheet", name).Str("anchor", img.Anchor.String()).Msg("picture skipped")
		}
	}
	return nil
}

// ---------- Names ----------

// MaxSheetName is the longest sheet name Excel accepts.
const MaxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// SheetName makes name acceptable as an Excel sheet name.
func SheetName(name string) string {
	name = strings.Trim(sheetNameReplacer.Replace(name), "'")
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > MaxSheetName {
		name = string(r[:MaxSheetName])
	}
	return name
}

func uniqueName(name string, seen map[string]bool) string {
	out := name
	for i := 2; seen[strings.ToLower(out)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(name)
		out = string(r[:min(len(r), MaxSheetName-len(suffix))]) + suffix
	}
	seen[strings.ToLower(out)] = true
	return out
}

var unsafeChars = regexp.MustCompile(`(?i)[^a-z0-9_.-]+`)

// Sanitize replaces every run of characters outside [A-Za-z0-9_.-] with "_".
func Sanitize(name string) string {
	if name == "" {
		return "default_filename"
	}
	return unsafeChars.ReplaceAllString(name, "_")
}

// FileName names the output workbook: after the project code when there is
// one, otherwise after the project folder.
func FileName(code, projectDir string) string {
	if code != "" && code != domain.NoProjectCode {
		return Sanitize(code) + "-ACTA DE CONFORMIDAD.xlsx"
	}
	return Sanitize(filepath.Base(filepath.Clean(projectDir))) + "_Consolidado_Actas.xlsx"
}
