package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/orayew2002/acta-excel/domain"
	"github.com/orayew2002/acta-excel/processor"
	"github.com/rs/zerolog"
)

type generatorFunc func(ctx context.Context, req domain.Request) (processor.Result, error)

func (f generatorFunc) Generate(ctx context.Context, req domain.Request) (processor.Result, error) {
	return f(ctx, req)
}

func post(t *testing.T, h http.Handler, body string) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, GeneratePath, strings.NewReader(body)))

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	return rec.Code, resp
}

func TestGenerateSuccess(t *testing.T) {
	var got domain.Request
	h := NewHandler(generatorFunc(func(_ context.Context, req domain.Request) (processor.Result, error) {
		got = req
		return processor.Result{FilePath: filepath.Join(req.URI, "x.xlsx")}, nil
	}), zerolog.Nop())

	body := `{"uri": "/data/p1", "projectDetails": {"Nodo": "N-7", "code": 42},
		"services": [{"name": "Empalmes", "photos": [{"fileName": "a", "comment": "ok"}],
		"folders": [{"name": "F1", "photos": [{"fileName": "b", "comment": "c"}]}]}]}`
	code, resp := post(t, h, body)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if d := cmp.Diff(Response{Status: "success", FilePath: "/data/p1/x.xlsx"}, resp); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	want := domain.Request{
		URI:            "/data/p1",
		ProjectDetails: map[string]any{"Nodo": "N-7", "code": float64(42)},
		Services: []domain.Service{{
			Name:    "Empalmes",
			Photos:  []domain.Photo{{FileName: "a", Comment: "ok"}},
			Folders: []domain.Folder{{Name: "F1", Photos: []domain.Photo{{FileName: "b", Comment: "c"}}}},
		}},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("request (-want +got):\n%s", d)
	}
}

func TestGenerateStatusMapping(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{&processor.Error{Kind: processor.KindInvalidInput, Err: domain.ErrMissingURI}, http.StatusBadRequest},
		{&processor.Error{Kind: processor.KindNotFound, Err: errors.New("no such folder")}, http.StatusNotFound},
		{&processor.Error{Kind: processor.KindTimeout, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{&processor.Error{Kind: processor.KindGeneration, Err: errors.New("disk full")}, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", errors.New("plain")), http.StatusInternalServerError},
	} {
		h := NewHandler(generatorFunc(func(context.Context, domain.Request) (processor.Result, error) {
			return processor.Result{}, tc.err
		}), zerolog.Nop())

		code, resp := post(t, h, `{"uri": "/x"}`)
		if code != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, code, tc.want)
		}
		if resp.Status != "error" || resp.Message == "" {
			t.Errorf("%v: reply = %+v", tc.err, resp)
		}
	}
}

func TestGenerateInvalidBody(t *testing.T) {
	called := false
	h := NewHandler(generatorFunc(func(context.Context, domain.Request) (processor.Result, error) {
		called = true
		return processor.Result{}, nil
	}), zerolog.Nop())

	for _, body := range []string{"", "{", `{"uri": 3}`, `{"services": {}}`} {
		code, resp := post(t, h, body)
		if code != http.StatusBadRequest || resp.Status != "error" {
			t.Errorf("%q: status %d reply %+v", body, code, resp)
		}
	}
	if called {
		t.Error("generator called for invalid body")
	}
}

func TestRoutes(t *testing.T) {
	h := NewHandler(generatorFunc(func(context.Context, domain.Request) (processor.Result, error) {
		return processor.Result{}, nil
	}), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, GeneratePath, nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET generate = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health = %d", rec.Code)
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	p := processor.New(processor.Config{}, nil, zerolog.Nop())
	srv := httptest.NewServer(NewHandler(p, zerolog.Nop()))
	defer srv.Close()

	req := domain.FakeRequest(dir, nil)
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	httpResp, err := http.Post(srv.URL+GeneratePath, "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatal(err)
	}
	defer httpResp.Body.Close()

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if httpResp.StatusCode != http.StatusOK || resp.Status != "success" {
		t.Fatalf("status %d reply %+v", httpResp.StatusCode, resp)
	}
	if filepath.Dir(resp.FilePath) != dir {
		t.Errorf("file %s not in %s", resp.FilePath, dir)
	}
}
