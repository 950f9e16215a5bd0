// Package assets locates photo files inside a project directory.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/orayew2002/acta-excel/domain"
)

// DefaultExtensions is the lookup order for photo files; the first match wins.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

// Resolver maps service/folder/file identifiers to files under Root.
type Resolver struct {
	Root       string
	Extensions []string
}

// NewResolver creates a Resolver for root using DefaultExtensions.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root, Extensions: DefaultExtensions}
}

var _ domain.ImageResolver = (*Resolver)(nil)

// Resolve returns the first existing file <root>/<service>[/<folder>]/<file><ext>.
// A file identifier that already carries one of the extensions is tried as is first.
func (r *Resolver) Resolve(service, folder, file string) (string, bool) {
	if file == "" {
		return "", false
	}
	base := r.Path(service, folder, file)

	exts := r.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	lower := strings.ToLower(filepath.Ext(file))
	for _, ext := range exts {
		if lower == ext && isFile(base) {
			return base, true
		}
	}
	for _, ext := range exts {
		if p := base + ext; isFile(p) {
			return p, true
		}
	}
	return "", false
}

// Path joins the identifier without any extension.
func (r *Resolver) Path(service, folder, file string) string {
	if folder == "" {
		return filepath.Join(r.Root, service, file)
	}
	return filepath.Join(r.Root, service, folder, file)
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// SeedPlaceholders writes a small jpeg for every photo of req that does not
// resolve yet, so demo and test requests produce a fully populated document.
func SeedPlaceholders(req domain.Request) error {
	r := NewResolver(req.URI)
	img := image.NewRGBA(image.Rect(0, 0, 160, 120))
	for y := range 120 {
		for x := range 160 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	write := func(service, folder, file string) error {
		if _, ok := r.Resolve(service, folder, file); ok {
			return nil
		}
		p := r.Path(service, folder, file) + ".jpg"
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		fh, err := os.Create(p)
		if err != nil {
			return err
		}
		if err := jpeg.Encode(fh, img, nil); err != nil {
			fh.Close()
			return fmt.Errorf("encode %s: %w", p, err)
		}
		return fh.Close()
	}

	for _, s := range req.Services {
		for _, p := range s.Photos {
			if err := write(s.Name, "", p.FileName); err != nil {
				return err
			}
		}
		for _, f := range s.Folders {
			for _, p := range f.Photos {
				if err := write(s.Name, f.Name, p.FileName); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
