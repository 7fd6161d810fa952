package voxel

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/voxedit/pkg/math"
)

// Mode is a voxel blend mode.
type Mode uint8

const (
	// ModeOver alpha-blends the source over the destination.
	ModeOver Mode = iota + 1
	// ModeSub subtracts source alpha from the destination, deleting
	// voxels that reach zero.
	ModeSub
	// ModeReplace overwrites the destination voxel.
	ModeReplace
	// ModePaint recolors existing voxels without changing alpha.
	ModePaint
)

// Shape is a procedural shape descriptor, defined on the unit cube
// [-1,1]^3 and positioned by a layer or painter transform.
type Shape uint8

const (
	ShapeSphere Shape = iota + 1
	ShapeCube
	ShapeCylinder
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeCube:
		return "cube"
	case ShapeCylinder:
		return "cylinder"
	}
	return "unknown"
}

// dist returns the signed distance from p to the unit shape surface.
// Negative or zero means inside.
func (s Shape) dist(p math.Vec3) float32 {
	switch s {
	case ShapeSphere:
		return p.Length() - 1
	case ShapeCube:
		a := p.Abs()
		return math32.Max(a.X, math32.Max(a.Y, a.Z)) - 1
	case ShapeCylinder:
		r := math32.Sqrt(p.X*p.X+p.Y*p.Y) - 1
		return math32.Max(r, math32.Abs(p.Z)-1)
	}
	panic("voxel: unknown shape")
}

// Painter describes one paint operation: a shape, a blend mode, a color
// and an optional clip region. The null box means no clipping.
type Painter struct {
	Shape Shape
	Mode  Mode
	Color [4]uint8
	Box   math.Box
}

// Apply renders the painter's shape, positioned by mat (mapping the unit
// cube onto world space), into the mesh.
func (m *Mesh) Apply(p Painter, mat math.Mat4) {
	bounds := shapeBounds(mat)
	if !p.Box.IsNull() {
		bounds.Min = bounds.Min.Max(p.Box.Min)
		bounds.Max = bounds.Max.Min(p.Box.Max)
		if bounds.Min.X > bounds.Max.X || bounds.Min.Y > bounds.Max.Y || bounds.Min.Z > bounds.Max.Z {
			return
		}
	}

	inv := mat.Inverse()
	min, max := bounds.VoxelRange()
	for z := min[2]; z <= max[2]; z++ {
		for y := min[1]; y <= max[1]; y++ {
			for x := min[0]; x <= max[0]; x++ {
				local := inv.TransformVec3(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
				if p.Shape.dist(local) > 0 {
					continue
				}
				m.blendAt([3]int{x, y, z}, p.Color, p.Mode)
			}
		}
	}
	m.keyValid = false
}

// shapeBounds returns the world-space box enclosing the unit cube
// transformed by mat.
func shapeBounds(mat math.Mat4) math.Box {
	var b math.Box
	first := true
	for i := 0; i < 8; i++ {
		corner := math.Vec3{
			X: float32(i&1)*2 - 1,
			Y: float32(i>>1&1)*2 - 1,
			Z: float32(i>>2&1)*2 - 1,
		}
		v := mat.TransformVec3(corner)
		if first {
			b = math.Box{Min: v, Max: v}
			first = false
			continue
		}
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}
