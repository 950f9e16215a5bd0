package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orayew2002/acta-excel/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveExtensionOrder(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Empalmes", "a.png"))
	touch(t, filepath.Join(root, "Empalmes", "a.jpeg"))
	touch(t, filepath.Join(root, "Empalmes", "F1", "b.bmp"))

	r := NewResolver(root)
	for _, tc := range []struct {
		folder, file, want string
		ok                 bool
	}{
		{"", "a", filepath.Join(root, "Empalmes", "a.jpeg"), true},
		{"F1", "b", filepath.Join(root, "Empalmes", "F1", "b.bmp"), true},
		{"", "a.png", filepath.Join(root, "Empalmes", "a.png"), true},
		{"", "zzz", "", false},
		{"", "", "", false},
	} {
		got, ok := r.Resolve("Empalmes", tc.folder, tc.file)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Resolve(%q, %q) = %q, %v; want %q, %v", tc.folder, tc.file, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "S", "a.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewResolver(root).Resolve("S", "", "a"); ok {
		t.Error("directory resolved as image")
	}
}

func TestSeedPlaceholders(t *testing.T) {
	req := domain.FakeRequest(t.TempDir(), []int{4})
	if err := SeedPlaceholders(req); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(req.URI)
	s := req.Services[0]
	for _, p := range s.Photos {
		if _, ok := r.Resolve(s.Name, "", p.FileName); !ok {
			t.Errorf("%s not seeded", p.FileName)
		}
	}
	for _, f := range s.Folders {
		for _, p := range f.Photos {
			if _, ok := r.Resolve(s.Name, f.Name, p.FileName); !ok {
				t.Errorf("%s/%s not seeded", f.Name, p.FileName)
			}
		}
	}
}
