// Package surface adapts decoded images to the pixelmap.Surface interface.
package surface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/younwookim/pixelhit/internal/domain/pixelmap"
)

// Image is a pixelmap.Surface backed by an image.Image.
// Coordinates are relative to the image bounds origin.
type Image struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImage wraps img. Nil and zero-sized images are rejected.
func NewImage(img image.Image) (*Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", pixelmap.ErrInvalidSurface)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty bounds %v", pixelmap.ErrInvalidSurface, b)
	}
	return &Image{img: img, bounds: b}, nil
}

// Size implements pixelmap.Surface
func (s *Image) Size() (int, int) {
	return s.bounds.Dx(), s.bounds.Dy()
}

// Opaque implements pixelmap.Surface. Only the region's top-left pixel is read.
func (s *Image) Opaque(x, y, _, _ int) bool {
	p := image.Pt(s.bounds.Min.X+x, s.bounds.Min.Y+y)
	if !p.In(s.bounds) {
		return false
	}
	return alphaAt(s.img, p) != 0
}

// Source returns the wrapped image
func (s *Image) Source() image.Image {
	return s.img
}

func alphaAt(img image.Image, p image.Point) uint32 {
	switch m := img.(type) {
	case *image.NRGBA:
		return uint32(m.Pix[m.PixOffset(p.X, p.Y)+3])
	case *image.RGBA:
		return uint32(m.Pix[m.PixOffset(p.X, p.Y)+3])
	case *image.Alpha:
		return uint32(m.Pix[m.PixOffset(p.X, p.Y)])
	}
	_, _, _, a := img.At(p.X, p.Y).RGBA()
	return a
}

// Mask draws an image from ASCII rows. '.' and ' ' are transparent, any
// other rune is painted with c. Short rows are padded with transparency.
func Mask(rows []string, c color.Color) (*image.NRGBA, error) {
	w := 0
	for _, row := range rows {
		w = max(w, len([]rune(row)))
	}
	if w == 0 {
		return nil, fmt.Errorf("mask: %w", ErrEmptyData)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, len(rows)))
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == '.' || r == ' ' {
				continue
			}
			img.Set(x, y, c)
		}
	}
	return img, nil
}

// FromMask is Mask followed by NewImage
func FromMask(rows []string, c color.Color) (*Image, error) {
	img, err := Mask(rows, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pixelmap.ErrInvalidSurface, err)
	}
	return NewImage(img)
}
