package doc

import "github.com/Faultbox/voxedit/pkg/math"

// Camera is a named viewpoint on the image. Cameras have no id; they
// are addressed by reference and named uniquely among siblings.
type Camera struct {
	Name  string
	Dist  float32
	Rot   math.Mat4
	Ortho bool
	Fov   float32
}

// NewCamera returns a camera with default parameters.
func NewCamera(name string) *Camera {
	return &Camera{
		Name: name,
		Dist: 128,
		Rot:  math.Identity(),
		Fov:  20,
	}
}

// Copy returns an independent copy of the camera.
func (c *Camera) Copy() *Camera {
	cp := *c
	return &cp
}

// Key returns the camera's change key.
func (c *Camera) Key() uint32 {
	h := keyHash{}
	h.addString(c.Name)
	h.addFloat(c.Dist)
	h.addFloats(c.Rot[:]...)
	h.addBool(c.Ortho)
	h.addFloat(c.Fov)
	return h.sum
}
