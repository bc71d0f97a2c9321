// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Color is an RGBA color with each channel in the [0, 1] range.
type Color [4]float32

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// Opaque reports whether the alpha channel is fully opaque.
func (c Color) Opaque() bool {
	return c[3] >= 1
}

// Vec4 returns the color as an mgl32.Vec4.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4(c)
}

// ImageSource describes an image to decode, either from memory or from a file on disk.
type ImageSource struct {
	// Path is the image file path, used when Data is empty.
	Path string

	// Data holds encoded image bytes. Takes priority over Path.
	Data []byte

	// Width is the image width in pixels (populated after Decode).
	Width int

	// Height is the image height in pixels (populated after Decode).
	Height int
}

// Decode decodes the image to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG, JPEG, BMP and WebP.
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - int: image width in pixels
//   - int: image height in pixels
//   - error: error if opening or decoding fails
func (s *ImageSource) Decode() ([]byte, int, int, error) {
	if s == nil {
		return nil, 0, 0, fmt.Errorf("image source is nil")
	}

	var img image.Image
	var err error

	if len(s.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(s.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	} else if s.Path != "" {
		file, fileErr := os.Open(s.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open image file %s: %w", s.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode image file %s: %w", s.Path, err)
		}
	} else {
		return nil, 0, 0, fmt.Errorf("image source has neither data nor path")
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	s.Width = bounds.Dx()
	s.Height = bounds.Dy()

	return rgba.Pix, s.Width, s.Height, nil
}
