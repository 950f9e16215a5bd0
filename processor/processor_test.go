package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/orayew2002/acta-excel/assets"
	"github.com/orayew2002/acta-excel/corrector"
	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/template"
	"github.com/orayew2002/acta-excel/xlsx"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type upperCorrector struct{}

func (upperCorrector) Correct(_ context.Context, batch corrector.Batch) corrector.Batch {
	out := make(corrector.Batch, len(batch))
	for svc, captions := range batch {
		out[svc] = make(map[string]string, len(captions))
		for id, c := range captions {
			out[svc][id] = strings.ToUpper(c)
		}
	}
	return out
}

type stuckCorrector struct{}

func (stuckCorrector) Correct(ctx context.Context, batch corrector.Batch) corrector.Batch {
	<-ctx.Done()
	return batch
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	req := domain.FakeRequest(dir, []int{8, 0, 3})
	if err := assets.SeedPlaceholders(req); err != nil {
		t.Fatal(err)
	}

	p := New(Config{Workers: 2}, upperCorrector{}, zerolog.Nop())
	res, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	wantPath := filepath.Join(dir, xlsx.FileName(req.ProjectCode(), dir))
	if res.FilePath != wantPath {
		t.Errorf("path = %s, want %s", res.FilePath, wantPath)
	}

	wantSheets := []string{template.SummarySheetName}
	wantInstances := map[string]int{}
	for _, c := range domain.Categories {
		wantSheets = append(wantSheets, c.Name)
		wantInstances[c.Name] = 1
	}
	wantSheets = append(wantSheets, template.MeasurementsSheetName)
	wantInstances[domain.Categories[0].Name] = 2
	if d := cmp.Diff(wantSheets, res.Sheets); d != "" {
		t.Errorf("sheets (-want +got):\n%s", d)
	}
	if d := cmp.Diff(wantInstances, res.Instances); d != "" {
		t.Errorf("instances (-want +got):\n%s", d)
	}

	f, err := excelize.OpenFile(res.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if d := cmp.Diff(wantSheets, f.GetSheetList()); d != "" {
		t.Errorf("workbook sheets (-want +got):\n%s", d)
	}

	nodes := domain.Categories[0]
	title, _ := f.GetCellValue(nodes.Name, "B6")
	if title != nodes.Title {
		t.Errorf("title = %q", title)
	}
	caption, _ := f.GetCellValue(nodes.Name, "D43")
	if want := strings.ToUpper(req.Services[0].Photos[0].Comment); caption != want {
		t.Errorf("caption = %q, want %q", caption, want)
	}
	second, _ := f.GetCellValue(nodes.Name, "B119")
	if second != nodes.Title {
		t.Errorf("second block title = %q", second)
	}
	for _, cell := range []string{"D21", "S21", "D134", "S134"} {
		pics, err := f.GetPictures(nodes.Name, cell)
		if err != nil || len(pics) != 1 {
			t.Errorf("%s: %d pictures, err %v", cell, len(pics), err)
		}
	}
	if pics, _ := f.GetPictures(nodes.Name, "D160"); len(pics) != 0 {
		t.Errorf("unexpected picture in empty slot")
	}

	empty := domain.Categories[1].Name
	if v, _ := f.GetCellValue(empty, "B6"); v != domain.Categories[1].Title {
		t.Errorf("empty category title = %q", v)
	}
	contractor, _ := f.GetCellValue(empty, "E10")
	if contractor != req.ProjectDetails["Contratista"] {
		t.Errorf("contractor = %q", contractor)
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	p := New(Config{}, nil, zerolog.Nop())

	_, err := p.Generate(context.Background(), domain.Request{})
	if KindOf(err) != KindInvalidInput || !errors.Is(err, domain.ErrMissingURI) {
		t.Errorf("empty uri: %v", err)
	}

	_, err = p.Generate(context.Background(), domain.Request{URI: filepath.Join(t.TempDir(), "missing")})
	if KindOf(err) != KindNotFound {
		t.Errorf("missing folder: %v", err)
	}
}

func TestGenerateTimeoutWritesNothing(t *testing.T) {
	dir := t.TempDir()
	req := domain.FakeRequest(dir, []int{2})

	p := New(Config{Timeout: 50 * time.Millisecond}, stuckCorrector{}, zerolog.Nop())
	_, err := p.Generate(context.Background(), req)
	if KindOf(err) != KindTimeout {
		t.Fatalf("err = %v, want timeout", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("files written: %v", files)
	}
}

func TestGenerateWithoutCode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Obra Norte")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	req := domain.Request{
		URI:            dir,
		ProjectDetails: map[string]any{"code": domain.NoProjectCode},
	}

	res, err := New(Config{}, nil, zerolog.Nop()).Generate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if base := filepath.Base(res.FilePath); base != "Obra_Norte_Consolidado_Actas.xlsx" {
		t.Errorf("file = %s", base)
	}
}
