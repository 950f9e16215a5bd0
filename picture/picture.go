// Package picture resizes rasters for fixed boxes on a sheet and anchors them to cells.
package picture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/orayew2002/acta-excel/excel"
	"github.com/orayew2002/acta-excel/sheet"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// CMToPixels converts centimetres to pixels at 96 DPI.
func CMToPixels(cm float64) int {
	return int(math.Round(cm * 96 / 2.54))
}

// Fit scales src into a w×h box.
//
// With preserveAspect the source is contain-fitted: it is scaled uniformly so that
// it fits the box without cropping, so the result is at most w×h and touches the
// box on at least one side. Without it the result is exactly w×h, distorted if needed.
func Fit(src image.Image, w, h int, preserveAspect bool) image.Image {
	w, h = max(1, w), max(1, h)
	dw, dh := w, h
	if preserveAspect {
		dw, dh = ContainSize(src.Bounds().Dx(), src.Bounds().Dy(), w, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// ContainSize returns the largest size with the source aspect ratio fitting in boxW×boxH.
func ContainSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return max(1, boxW), max(1, boxH)
	}
	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	return min(max(1, w), boxW), min(max(1, h), boxH)
}

// Anchor returns the zero-indexed pixel-grid origin (column, row) of a 1-indexed cell.
func Anchor(c excel.CellRef) (col, row int) {
	return c.ColumnNumber() - 1, c.Row - 1
}

// Load decodes a jpeg, png, gif or bmp file and reports its format name.
func Load(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// Encode writes img as jpeg when the source was jpeg and as png otherwise,
// returning the bytes and the file extension to register them under.
func Encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), ".jpg", nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), ".png", nil
}

// Prepare loads, fits and re-encodes the file at path for a w×h box.
func Prepare(path string, w, h int, preserveAspect bool) (sheet.Image, error) {
	src, format, err := Load(path)
	if err != nil {
		return sheet.Image{}, err
	}
	fitted := Fit(src, w, h, preserveAspect)
	data, ext, err := Encode(fitted, format)
	if err != nil {
		return sheet.Image{}, err
	}
	b := fitted.Bounds()
	return sheet.Image{Width: b.Dx(), Height: b.Dy(), Extension: ext, Data: data}, nil
}

// Insert places the fitted image at the top-left of anchor. Any failure is
// logged and leaves the slot empty; it reports whether a picture was added.
func Insert(s *sheet.Sheet, path, anchor string, w, h int, preserveAspect bool, logger zerolog.Logger) bool {
	cell, err := excel.ParseCell(anchor)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("image anchor")
		return false
	}
	if path == "" {
		logger.Warn().Str("anchor", anchor).Msg("no image path, slot left empty")
		return false
	}

	img, err := Prepare(path, w, h, preserveAspect)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Str("anchor", anchor).Msg("image not inserted")
		return false
	}
	img.Anchor = cell
	s.AddImage(img)

	col, row := Anchor(cell)
	logger.Debug().
		Str("path", path).
		Int("col", col).
		Int("row", row).
		Int("width", img.Width).
		Int("height", img.Height).
		Bool("preserve_aspect", preserveAspect).
		Msg("image inserted")
	return true
}
