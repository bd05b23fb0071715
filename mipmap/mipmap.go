// Package mipmap generates mip chains on the CPU.
//
// Only 8-bit formats with one or four components are handled. Each level
// is filtered from the level above it with golang.org/x/image/draw.
package mipmap

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
)

// Generator builds mip chains with a fixed interpolator.
type Generator struct {
	scaler draw.Interpolator
}

// New returns a Generator using interp, or draw.BiLinear when interp is nil.
func New(interp draw.Interpolator) *Generator {
	if interp == nil {
		interp = draw.BiLinear
	}
	return &Generator{scaler: interp}
}

var defaultGenerator = New(nil)

// Generate calls Generate on a bilinear Generator.
func Generate(f format.Format, width, height uint32, level0 []byte, levels uint32) ([][]byte, error) {
	return defaultGenerator.Generate(f, width, height, level0, levels)
}

// Supports reports whether f can be filtered by this package.
func Supports(f format.Format) bool {
	_, ok := channels(f)
	return ok
}

func channels(f format.Format) (int, bool) {
	switch f {
	case format.R8UNorm:
		return 1, true
	case format.RGBA8UNorm, format.RGBA8UNormSRGB, format.BGRA8UNorm, format.BGRA8UNormSRGB:
		return 4, true
	default:
		return 0, false
	}
}

// Generate returns mip levels 1 through levels-1 of a tightly packed 2D
// image. level0 holds width*height texels in format f. The result has
// levels-1 entries; levels of 0 or 1 yield nil.
func (g *Generator) Generate(f format.Format, width, height uint32, level0 []byte, levels uint32) ([][]byte, error) {
	n, ok := channels(f)
	if !ok {
		return nil, fmt.Errorf("%w: cannot generate mips for %v", rhi.ErrUnsupportedFormat, f)
	}
	if want := int(width) * int(height) * n; len(level0) < want {
		return nil, fmt.Errorf("%w: level 0 has %d bytes, want %d", rhi.ErrInvalidArgument, len(level0), want)
	}
	if levels <= 1 {
		return nil, nil
	}

	src := wrap(n, level0, int(width), int(height))
	out := make([][]byte, 0, levels-1)
	w, h := int(width), int(height)
	for range levels - 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		dst := newImage(n, w, h)
		g.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		out = append(out, pixels(dst))
		src = dst
	}
	rhi.Logger().Debug("mipmap: generated chain",
		"format", f, "width", width, "height", height, "levels", levels)
	return out, nil
}

func wrap(n int, pix []byte, w, h int) draw.Image {
	r := image.Rect(0, 0, w, h)
	if n == 1 {
		return &image.Gray{Pix: pix[:w*h], Stride: w, Rect: r}
	}
	return &image.NRGBA{Pix: pix[:w*h*4], Stride: w * 4, Rect: r}
}

func newImage(n, w, h int) draw.Image {
	r := image.Rect(0, 0, w, h)
	if n == 1 {
		return image.NewGray(r)
	}
	return image.NewNRGBA(r)
}

func pixels(img draw.Image) []byte {
	switch m := img.(type) {
	case *image.Gray:
		return m.Pix
	case *image.NRGBA:
		return m.Pix
	}
	return nil
}
