package surface

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/younwookim/pixelhit/internal/domain/pixelmap"
)

// ErrEmptyData is returned when there is nothing to decode.
var ErrEmptyData = errors.New("surface: empty data")

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image into a surface.
// Decode failures wrap pixelmap.ErrInvalidSurface.
func Decode(r io.Reader) (*Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: decode: %w", pixelmap.ErrInvalidSurface, err)
	}
	s, err := NewImage(img)
	if err != nil {
		return nil, "", err
	}
	return s, format, nil
}

// DecodeBytes decodes an in-memory image
func DecodeBytes(data []byte) (*Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: %w", pixelmap.ErrInvalidSurface, ErrEmptyData)
	}
	return Decode(bytes.NewReader(data))
}

// Load decodes the image file at path
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("surface: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadFS decodes the image file name from fsys
func LoadFS(fsys fs.FS, name string) (*Image, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("surface: read %s: %w", name, err)
	}

	s, _, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
