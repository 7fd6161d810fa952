package math

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding volume.
// The zero value is the null box (no volume, no position).
type Box struct {
	Min, Max Vec3
}

// NewBox returns a box spanning min to max.
func NewBox(min, max Vec3) Box {
	return Box{Min: min.Min(max), Max: min.Max(max)}
}

// BoxFromExtent returns a box centered at center with the given half-extents.
func BoxFromExtent(center Vec3, hx, hy, hz float32) Box {
	e := Vec3{hx, hy, hz}
	return Box{Min: center.Sub(e), Max: center.Add(e)}
}

// IsNull reports whether the box is the null box.
func (b Box) IsNull() bool {
	return b == Box{}
}

// Center returns the center point of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the half-extents of the box.
func (b Box) Extent() Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Contains reports whether the point is inside the box (inclusive).
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Union returns the smallest box containing both boxes.
// A null box is the identity element.
func (b Box) Union(other Box) Box {
	if b.IsNull() {
		return other
	}
	if other.IsNull() {
		return b
	}
	return Box{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Mat returns the transform mapping the unit cube [-1,1]^3 onto the box.
func (b Box) Mat() Mat4 {
	c := b.Center()
	e := b.Extent()
	return Translate(c.X, c.Y, c.Z).Mul(Scale(e.X, e.Y, e.Z))
}

// VoxelRange returns the inclusive integer coordinate range covered by the
// box, suitable for iterating voxel positions.
func (b Box) VoxelRange() (min, max [3]int) {
	min = [3]int{
		int(math32.Floor(b.Min.X)),
		int(math32.Floor(b.Min.Y)),
		int(math32.Floor(b.Min.Z)),
	}
	max = [3]int{
		int(math32.Ceil(b.Max.X)),
		int(math32.Ceil(b.Max.Y)),
		int(math32.Ceil(b.Max.Z)),
	}
	return min, max
}
