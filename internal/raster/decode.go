// Package raster decodes 2D image files into raw pixel buffers for
// conversion to voxel layers.
package raster

import (
	"fmt"
	"image"
	"os"

	// Registered decoders. The bmp and tiff formats come from
	// golang.org/x/image; png, jpeg and gif are stdlib.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Decode reads the image at path and returns its pixels as a row-major
// RGBA buffer (4 bytes per pixel), plus width, height and bytes per
// pixel.
func Decode(path string) (pix []byte, w, h, bpp int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := src.Bounds()
	w, h = b.Dx(), b.Dy()
	pix = make([]byte, w*h*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, a := src.At(x, y).RGBA()
			pix[i+0] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(bb >> 8)
			pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return pix, w, h, 4, nil
}
