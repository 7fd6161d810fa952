package doc

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/voxedit/pkg/math"
)

// DecodeFunc decodes the image at path into raw pixels: a row-major
// buffer of bpp bytes per pixel, plus width, height and bpp.
type DecodeFunc func(path string) (pix []byte, w, h, bpp int, err error)

// RasterToMesh converts the layer's embedded raster image into a mesh of
// one voxel depth: each pixel is projected through the layer's transform
// into a voxel position. Alpha defaults to opaque when the source has no
// alpha channel. On success the raster reference is discarded, turning
// the layer into a normal voxel layer.
//
// Decode failure leaves the layer untouched. The caller is responsible
// for committing history before invoking this: the conversion is
// destructive and cannot be re-derived.
func (img *Image) RasterToMesh(l *Layer, decode DecodeFunc) error {
	if l.Image == nil {
		return fmt.Errorf("layer %q has no raster image", l.Name)
	}
	pix, w, h, bpp, err := decode(l.Image.Path)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", l.Image.Path, err)
	}
	if bpp < 1 || bpp > 4 || len(pix) < w*h*bpp {
		return fmt.Errorf("decoding %s: bad pixel buffer (%dx%d, %d bpp, %d bytes)",
			l.Image.Path, w, h, bpp, len(pix))
	}

	acc := l.Mesh.Access()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := math.Vec3{
				X: float32(x)/float32(w) - 0.5,
				Y: 0.5 - float32(y)/float32(h),
				Z: 0,
			}
			v := l.Mat.TransformVec3(p)
			pos := [3]int{
				int(math32.Round(v.X)),
				int(math32.Round(v.Y)),
				int(math32.Round(v.Z)),
			}
			c := [4]uint8{0, 0, 0, 255}
			copy(c[:], pix[(y*w+x)*bpp:(y*w+x+1)*bpp])
			acc.Set(pos, c)
		}
	}
	l.Image = nil
	return nil
}
