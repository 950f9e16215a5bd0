package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type mapResolver map[string]string

func (m mapResolver) Resolve(service, folder, file string) (string, bool) {
	p, ok := m[service+"|"+PhotoID(folder, file)]
	return p, ok
}

func TestValidate(t *testing.T) {
	if err := (Request{}).Validate(); !errors.Is(err, ErrMissingURI) {
		t.Errorf("empty request: %v", err)
	}
	if err := (Request{URI: "/p", Services: []Service{{}}}).Validate(); err == nil {
		t.Error("nameless service accepted")
	}
	if err := (Request{URI: "/p"}).Validate(); err != nil {
		t.Error(err)
	}
}

func TestFieldsAndCode(t *testing.T) {
	r := Request{ProjectDetails: map[string]any{"Nodo": 12.0, "Distrito": "Lima", "empty": nil, "code": NoProjectCode}}
	if v, ok := r.Field("Nodo"); !ok || v != "12" {
		t.Errorf("Nodo = %q, %v", v, ok)
	}
	if _, ok := r.Field("empty"); ok {
		t.Error("nil field reported present")
	}
	if r.ProjectCode() != "" {
		t.Error("placeholder code must read as empty")
	}
	if d := cmp.Diff(map[string]string{"Nodo": "12", "Distrito": "Lima", "code": NoProjectCode}, r.Fields()); d != "" {
		t.Error(d)
	}
}

func TestCommentBatch(t *testing.T) {
	r := Request{Services: []Service{{
		Name:    "Empalmes",
		Photos:  []Photo{{FileName: "a", Comment: "root"}},
		Folders: []Folder{{Name: "F1", Photos: []Photo{{FileName: "b", Comment: "nested"}}}},
	}, {Name: "Reservas Aereas"}}}

	want := map[string]map[string]string{
		"Empalmes":        {"a": "root", "F1/b": "nested"},
		"Reservas Aereas": {},
	}
	if d := cmp.Diff(want, r.CommentBatch()); d != "" {
		t.Error(d)
	}
}

func TestFlattenOrderAndCaptions(t *testing.T) {
	s := Service{
		Name:    "Empalmes",
		Photos:  []Photo{{FileName: "a", Comment: "uno"}, {FileName: "missing", Comment: "x"}},
		Folders: []Folder{{Name: "F1", Photos: []Photo{{FileName: "b", Comment: "dos"}}}},
	}
	res := mapResolver{"Empalmes|a": "/p/Empalmes/a.jpg", "Empalmes|F1/b": "/p/Empalmes/F1/b.png"}

	got := Flatten(s, map[string]string{"F1/b": "DOS"}, res, zerolog.Nop())
	want := []PhotoItem{
		{ImagePath: "/p/Empalmes/a.jpg", Caption: "uno"},
		{ImagePath: "/p/Empalmes/F1/b.png", Caption: "F1 - DOS"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestFakeRequest(t *testing.T) {
	r := FakeRequest("/tmp/p", []int{8, 0})
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(r.Services) != 2 || r.Services[0].Name != Categories[0].Name {
		t.Fatalf("services = %+v", r.Services)
	}
	total := len(r.Services[0].Photos)
	for _, f := range r.Services[0].Folders {
		total += len(f.Photos)
	}
	if total != 8 {
		t.Errorf("photos = %d, want 8", total)
	}
	if r.ProjectCode() == "" {
		t.Error("fake project has no code")
	}
}
