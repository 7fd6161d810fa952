// Package doc implements the mutable document model of the voxel editor:
// an Image made of layers, cameras and materials, with snapshot-based
// undo/redo history and lazy re-derivation of clone and shape layers.
package doc

import (
	"github.com/Faultbox/voxedit/internal/voxel"
	"github.com/Faultbox/voxedit/pkg/math"
)

// RasterRef points at an external 2D image a layer was created from.
// The layer keeps the reference until it is converted to voxels.
type RasterRef struct {
	Path string
}

// Layer is one named voxel content unit within an Image.
//
// A layer's mesh content can be driven three ways, at most one at a time:
// by another layer (BaseID != 0, a clone), by a procedural shape
// (Shape != nil), or by an embedded raster image (Image != nil). A layer
// with none of these is freely user-editable.
type Layer struct {
	ID      int // unique within the owning Image, 0 = unassigned
	Name    string
	Visible bool

	Mesh *voxel.Mesh
	Mat  math.Mat4

	// MaterialID is a weak reference into the owning Image's material
	// collection, 0 = none.
	MaterialID int

	// BaseID is the id of the layer this one is cloned from, 0 = not a
	// clone. BaseMeshKey is the last-seen content key of the base mesh.
	BaseID      int
	BaseMeshKey uint32

	// Shape drives procedural content. ShapeKey is the last-seen key
	// over transform, shape and color.
	Shape    *voxel.Shape
	Color    [4]uint8
	ShapeKey uint32

	Image *RasterRef
}

// NewLayer returns an empty, visible layer with an identity transform.
func NewLayer(name string) *Layer {
	return &Layer{
		Name:    name,
		Visible: true,
		Mesh:    voxel.New(),
		Mat:     math.Identity(),
	}
}

// Copy returns a deep copy of the layer with an independent mesh. Weak
// references (MaterialID, BaseID) are copied as-is; they stay valid
// within the same Image and the caller repairs them otherwise.
func (l *Layer) Copy() *Layer {
	c := *l
	c.Mesh = l.Mesh.Copy()
	if l.Shape != nil {
		s := *l.Shape
		c.Shape = &s
	}
	if l.Image != nil {
		img := *l.Image
		c.Image = &img
	}
	return &c
}

// CanEdit reports whether raw voxel edits are allowed: the layer content
// must not be derived from a base, a shape or a raster image.
func (l *Layer) CanEdit() bool {
	return l.BaseID == 0 && l.Shape == nil && l.Image == nil
}

// Key returns the layer's change key.
func (l *Layer) Key() uint32 {
	h := keyHash{}
	h.addUint32(l.Mesh.Key())
	h.addString(l.Name)
	h.addBool(l.Visible)
	h.addFloats(l.Mat[:]...)
	h.addInt(l.MaterialID)
	h.addInt(l.BaseID)
	if l.Shape != nil {
		h.addInt(int(*l.Shape))
		h.addBytes(l.Color[:])
	}
	if l.Image != nil {
		h.addString(l.Image.Path)
	}
	return h.sum
}

// shapeKey keys the inputs of procedural shape rendering: transform,
// shape descriptor and color.
func (l *Layer) shapeKey() uint32 {
	h := keyHash{}
	h.addFloats(l.Mat[:]...)
	h.addInt(int(*l.Shape))
	h.addBytes(l.Color[:])
	return h.sum
}
