// Package voxel provides sparse voxel mesh storage and shape painting.
// A mesh maps integer grid positions to RGBA colors; a voxel with zero
// alpha does not exist.
package voxel

import (
	"encoding/binary"
	"hash/crc32"
	"sort"

	"github.com/Faultbox/voxedit/pkg/math"
)

// Mesh is a sparse voxel volume. The zero value is not usable; use New.
type Mesh struct {
	voxels map[[3]int][4]uint8

	// Cached content key, recomputed lazily after mutations.
	key      uint32
	keyValid bool
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{voxels: make(map[[3]int][4]uint8)}
}

// Copy returns an independent deep copy of the mesh.
func (m *Mesh) Copy() *Mesh {
	c := &Mesh{
		voxels:   make(map[[3]int][4]uint8, len(m.voxels)),
		key:      m.key,
		keyValid: m.keyValid,
	}
	for p, v := range m.voxels {
		c.voxels[p] = v
	}
	return c
}

// SetFrom replaces the mesh content with a copy of other's content.
func (m *Mesh) SetFrom(other *Mesh) {
	m.voxels = make(map[[3]int][4]uint8, len(other.voxels))
	for p, v := range other.voxels {
		m.voxels[p] = v
	}
	m.key = other.key
	m.keyValid = other.keyValid
}

// Clear removes all voxels.
func (m *Mesh) Clear() {
	m.voxels = make(map[[3]int][4]uint8)
	m.keyValid = false
}

// IsEmpty reports whether the mesh has no voxels.
func (m *Mesh) IsEmpty() bool {
	return len(m.voxels) == 0
}

// Count returns the number of voxels.
func (m *Mesh) Count() int {
	return len(m.voxels)
}

// At returns the color at pos and whether a voxel exists there.
func (m *Mesh) At(pos [3]int) ([4]uint8, bool) {
	v, ok := m.voxels[pos]
	return v, ok
}

// SetAt writes a voxel at pos. A zero-alpha color removes the voxel.
func (m *Mesh) SetAt(pos [3]int, c [4]uint8) {
	if c[3] == 0 {
		delete(m.voxels, pos)
	} else {
		m.voxels[pos] = c
	}
	m.keyValid = false
}

// Accessor performs repeated positional writes against one mesh.
type Accessor struct {
	m *Mesh
}

// Access returns a write accessor for batched voxel writes.
func (m *Mesh) Access() *Accessor {
	return &Accessor{m: m}
}

// Set writes a voxel at pos. A zero-alpha color removes the voxel.
// Every write invalidates the cached key: the key may be recomputed
// while the accessor is live, and a later write must not leave it
// stale.
func (a *Accessor) Set(pos [3]int, c [4]uint8) {
	if c[3] == 0 {
		delete(a.m.voxels, pos)
	} else {
		a.m.voxels[pos] = c
	}
	a.m.keyValid = false
}

// Bounds returns the axis-aligned box enclosing all voxels, or the null
// box for an empty mesh.
func (m *Mesh) Bounds() math.Box {
	if len(m.voxels) == 0 {
		return math.Box{}
	}
	first := true
	var b math.Box
	for p := range m.voxels {
		v := math.Vec3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])}
		if first {
			b = math.NewBox(v, v.Add(math.Vec3{X: 1, Y: 1, Z: 1}))
			first = false
			continue
		}
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v.Add(math.Vec3{X: 1, Y: 1, Z: 1}))
	}
	return b
}

// Transform remaps every voxel through the given matrix, rounding to the
// nearest grid position. Later writes win when two voxels collapse onto
// the same position.
func (m *Mesh) Transform(mat math.Mat4) {
	out := make(map[[3]int][4]uint8, len(m.voxels))
	for p, c := range m.voxels {
		v := mat.TransformVec3(math.Vec3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])})
		out[[3]int{roundf(v.X), roundf(v.Y), roundf(v.Z)}] = c
	}
	m.voxels = out
	m.keyValid = false
}

// Merge folds other's voxels into m with the given blend mode.
func (m *Mesh) Merge(other *Mesh, mode Mode) {
	for p, c := range other.voxels {
		m.blendAt(p, c, mode)
	}
	m.keyValid = false
}

// Key returns a checksum that changes whenever the mesh content changes.
// Identical content always yields the identical key.
func (m *Mesh) Key() uint32 {
	if m.keyValid {
		return m.key
	}
	positions := make([][3]int, 0, len(m.voxels))
	for p := range m.voxels {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})

	var buf [16]byte
	key := uint32(0)
	for _, p := range positions {
		c := m.voxels[p]
		binary.LittleEndian.PutUint32(buf[0:], uint32(int32(p[0])))
		binary.LittleEndian.PutUint32(buf[4:], uint32(int32(p[1])))
		binary.LittleEndian.PutUint32(buf[8:], uint32(int32(p[2])))
		copy(buf[12:], c[:])
		key = crc32.Update(key, crc32.IEEETable, buf[:])
	}
	m.key = key
	m.keyValid = true
	return key
}

func (m *Mesh) blendAt(pos [3]int, c [4]uint8, mode Mode) {
	switch mode {
	case ModeReplace:
		m.voxels[pos] = c
	case ModeOver:
		dst, ok := m.voxels[pos]
		if !ok {
			m.voxels[pos] = c
			return
		}
		sa := uint32(c[3])
		da := uint32(dst[3])
		oa := sa + da*(255-sa)/255
		if oa == 0 {
			delete(m.voxels, pos)
			return
		}
		var out [4]uint8
		for i := 0; i < 3; i++ {
			out[i] = uint8((uint32(c[i])*sa + uint32(dst[i])*da*(255-sa)/255) / oa)
		}
		out[3] = uint8(oa)
		m.voxels[pos] = out
	case ModeSub:
		dst, ok := m.voxels[pos]
		if !ok {
			return
		}
		sa := uint32(c[3])
		da := uint32(dst[3])
		if sa >= da {
			delete(m.voxels, pos)
			return
		}
		dst[3] = uint8(da - sa)
		m.voxels[pos] = dst
	case ModePaint:
		dst, ok := m.voxels[pos]
		if !ok {
			return
		}
		dst[0], dst[1], dst[2] = c[0], c[1], c[2]
		m.voxels[pos] = dst
	default:
		panic("voxel: unknown blend mode")
	}
}

func roundf(f float32) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
