package doc

import (
	"go.uber.org/zap"

	"github.com/Faultbox/voxedit/internal/logger"
	"github.com/Faultbox/voxedit/internal/voxel"
	"github.com/Faultbox/voxedit/pkg/math"
)

// Image is the full editable document: ordered layer, camera and material
// collections with one active element each, plus document-level
// properties. The file path is deliberately not part of an Image; it is
// owned by the editing session.
type Image struct {
	Layers    []*Layer
	Cameras   []*Camera
	Materials []*Material

	ActiveLayer    *Layer
	ActiveCamera   *Camera
	ActiveMaterial *Material // may be nil

	Box          math.Box
	ExportWidth  int
	ExportHeight int

	// SavedKey is the change key recorded at the last save, used for
	// dirty detection.
	SavedKey uint32
}

// New returns an image seeded with one default material, camera and
// layer, all active. The fresh image counts as saved.
func New() *Image {
	img := &Image{
		Box:          math.NewBox(math.Vec3{X: -16, Y: -16, Z: 0}, math.Vec3{X: 16, Y: 16, Z: 32}),
		ExportWidth:  1024,
		ExportHeight: 1024,
	}
	img.AddMaterial(nil)
	img.AddCamera(nil)
	img.AddLayer(nil)
	img.SavedKey = img.Key()
	return img
}

// Layer returns the layer with the given id, or nil if id is 0 or no
// such layer exists.
func (img *Image) Layer(id int) *Layer {
	if id == 0 {
		return nil
	}
	for _, l := range img.Layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Material returns the material with the given id, or nil if id is 0 or
// no such material exists.
func (img *Image) Material(id int) *Material {
	if id == 0 {
		return nil
	}
	for _, m := range img.Materials {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (img *Image) newLayerID() int {
	return nextID(func(id int) bool {
		for _, l := range img.Layers {
			if l.ID == id {
				return true
			}
		}
		return false
	})
}

func (img *Image) newMaterialID() int {
	return nextID(func(id int) bool {
		for _, m := range img.Materials {
			if m.ID == id {
				return true
			}
		}
		return false
	})
}

func (img *Image) layerNameExists(name string) bool {
	for _, l := range img.Layers {
		if nameEqual(l.Name, name) {
			return true
		}
	}
	return false
}

func (img *Image) cameraNameExists(name string) bool {
	for _, c := range img.Cameras {
		if nameEqual(c.Name, name) {
			return true
		}
	}
	return false
}

func (img *Image) materialNameExists(name string) bool {
	for _, m := range img.Materials {
		if nameEqual(m.Name, name) {
			return true
		}
	}
	return false
}

func (img *Image) layerIndex(l *Layer) int {
	for i, o := range img.Layers {
		if o == l {
			return i
		}
	}
	return -1
}

func (img *Image) cameraIndex(c *Camera) int {
	for i, o := range img.Cameras {
		if o == c {
			return i
		}
	}
	return -1
}

// AddLayer appends the layer to the image and makes it active. A nil
// layer means create a fresh one with a unique name. A supplied layer
// must not already belong to a collection.
func (img *Image) AddLayer(l *Layer) *Layer {
	if l == nil {
		l = NewLayer(uniqueName("Layer", img.layerNameExists))
	} else if l.ID != 0 || img.layerIndex(l) >= 0 {
		panic("doc: layer already belongs to a collection")
	}
	l.Visible = true
	l.ID = img.newLayerID()
	if img.ActiveMaterial != nil {
		l.MaterialID = img.ActiveMaterial.ID
	}
	img.Layers = append(img.Layers, l)
	img.ActiveLayer = l
	return l
}

// AddShapeLayer appends a new procedural layer rendered from the given
// shape and color. It is positioned at the selection volume when one is
// set, otherwise centered in the image box at a default extent.
func (img *Image) AddShapeLayer(shape voxel.Shape, color [4]uint8, selection math.Box) *Layer {
	l := NewLayer("shape")
	l.Shape = &shape
	l.Color = color
	if !selection.IsNull() {
		l.Mat = selection.Mat()
	} else {
		c := img.Box.Center()
		l.Mat = math.Translate(c.X, c.Y, c.Z).Mul(math.Scale(4, 4, 4))
	}
	l.ID = img.newLayerID()
	img.Layers = append(img.Layers, l)
	img.ActiveLayer = l
	return l
}

// DeleteLayer removes the layer. Layers cloned from it become
// independent (their BaseID is cleared). If the collection becomes
// empty a fresh default layer is created; if the active layer was
// deleted the last layer becomes active.
func (img *Image) DeleteLayer(l *Layer) {
	i := img.layerIndex(l)
	if i < 0 {
		panic("doc: layer does not belong to this image")
	}
	img.Layers = append(img.Layers[:i], img.Layers[i+1:]...)
	if l == img.ActiveLayer {
		img.ActiveLayer = nil
	}

	// Unclone all layers cloned from this one.
	for _, other := range img.Layers {
		if other.BaseID == l.ID {
			other.BaseID = 0
		}
	}

	if len(img.Layers) == 0 {
		fresh := NewLayer("unnamed")
		fresh.ID = img.newLayerID()
		img.Layers = append(img.Layers, fresh)
	}
	if img.ActiveLayer == nil {
		img.ActiveLayer = img.Layers[len(img.Layers)-1]
	}
}

// MoveLayer moves the layer one step in the list, d = +1 toward the
// head, d = -1 toward the tail. Moving past a boundary is a no-op.
func (img *Image) MoveLayer(l *Layer, d int) {
	if d != -1 && d != 1 {
		panic("doc: move direction must be +1 or -1")
	}
	i := img.layerIndex(l)
	if i < 0 {
		panic("doc: layer does not belong to this image")
	}
	j := i - d
	if j < 0 || j >= len(img.Layers) {
		logger.Debug("layer already at list boundary", zap.String("layer", l.Name))
		return
	}
	img.Layers[i], img.Layers[j] = img.Layers[j], img.Layers[i]
}

// DuplicateLayer appends an independent deep copy of the layer and makes
// it active.
func (img *Image) DuplicateLayer(other *Layer) *Layer {
	l := other.Copy()
	l.Visible = true
	l.ID = img.newLayerID()
	img.Layers = append(img.Layers, l)
	img.ActiveLayer = l
	return l
}

// CloneLayer appends a new layer that tracks other's mesh content. The
// clone starts empty; the next Update pass populates its mesh from the
// base through the clone's own transform.
func (img *Image) CloneLayer(other *Layer) *Layer {
	l := NewLayer(other.Name + " clone")
	l.Visible = other.Visible
	l.MaterialID = other.MaterialID
	l.BaseID = other.ID
	l.BaseMeshKey = 0
	l.ID = img.newLayerID()
	img.Layers = append(img.Layers, l)
	img.ActiveLayer = l
	return l
}

// UncloneLayer freezes the layer's current mesh content as independent,
// clearing its base link and shape descriptor.
func (img *Image) UncloneLayer(l *Layer) {
	l.BaseID = 0
	l.Shape = nil
}

// SelectParentLayer makes the layer's clone base the active layer, if
// the base resolves.
func (img *Image) SelectParentLayer(l *Layer) {
	base := img.Layer(l.BaseID)
	if base == nil {
		logger.Debug("layer has no parent to select", zap.String("layer", l.Name))
		return
	}
	img.ActiveLayer = base
}

// MergeVisibleLayers folds all visible layers' meshes into one, in list
// order with over blending. Visible layers are uncloned first so the
// merge operates on concrete voxel content; merged-away layers are
// discarded and the surviving layer becomes active.
func (img *Image) MergeVisibleLayers() {
	var last *Layer
	for _, l := range append([]*Layer(nil), img.Layers...) {
		if !l.Visible {
			continue
		}
		img.UncloneLayer(l)
		if last != nil {
			l.Mesh.Merge(last.Mesh, voxel.ModeOver)
			i := img.layerIndex(last)
			img.Layers = append(img.Layers[:i], img.Layers[i+1:]...)
		}
		last = l
	}
	if last != nil {
		img.ActiveLayer = last
	}
}

// ClearLayer erases the layer's voxel content inside the given volume,
// or all of it when the box is null.
func (img *Image) ClearLayer(l *Layer, box math.Box) {
	if box.IsNull() {
		l.Mesh.Clear()
		return
	}
	p := voxel.Painter{
		Shape: voxel.ShapeCube,
		Mode:  voxel.ModeSub,
		Color: [4]uint8{255, 255, 255, 255},
	}
	l.Mesh.Apply(p, box.Mat())
}

// AddCamera appends the camera and makes it active. A nil camera means
// create a fresh one with a unique name.
func (img *Image) AddCamera(c *Camera) *Camera {
	if c == nil {
		c = NewCamera(uniqueName("Camera", img.cameraNameExists))
	} else if img.cameraIndex(c) >= 0 {
		panic("doc: camera already belongs to a collection")
	}
	img.Cameras = append(img.Cameras, c)
	img.ActiveCamera = c
	return c
}

// DeleteCamera removes the camera. If the active camera was deleted the
// collection's new head becomes active, or nil when it is empty.
func (img *Image) DeleteCamera(c *Camera) {
	i := img.cameraIndex(c)
	if i < 0 {
		panic("doc: camera does not belong to this image")
	}
	img.Cameras = append(img.Cameras[:i], img.Cameras[i+1:]...)
	if c == img.ActiveCamera {
		if len(img.Cameras) > 0 {
			img.ActiveCamera = img.Cameras[0]
		} else {
			img.ActiveCamera = nil
		}
	}
}

// MoveCamera moves the camera one step in the list, d = +1 toward the
// head, d = -1 toward the tail. Moving past a boundary is a no-op.
func (img *Image) MoveCamera(c *Camera, d int) {
	if d != -1 && d != 1 {
		panic("doc: move direction must be +1 or -1")
	}
	i := img.cameraIndex(c)
	if i < 0 {
		panic("doc: camera does not belong to this image")
	}
	j := i - d
	if j < 0 || j >= len(img.Cameras) {
		logger.Debug("camera already at list boundary", zap.String("camera", c.Name))
		return
	}
	img.Cameras[i], img.Cameras[j] = img.Cameras[j], img.Cameras[i]
}

// AddMaterial appends the material and makes it active. A nil material
// means create a fresh one with a unique name. A supplied material must
// not already belong to a collection.
func (img *Image) AddMaterial(m *Material) *Material {
	if m == nil {
		m = NewMaterial(uniqueName("Material", img.materialNameExists))
	} else if m.ID != 0 {
		panic("doc: material already belongs to a collection")
	}
	m.ID = img.newMaterialID()
	img.Materials = append(img.Materials, m)
	img.ActiveMaterial = m
	return m
}

// DeleteMaterial removes the material and clears the reference on every
// layer that pointed to it. The active material becomes nil.
func (img *Image) DeleteMaterial(m *Material) {
	for i, o := range img.Materials {
		if o == m {
			img.Materials = append(img.Materials[:i], img.Materials[i+1:]...)
			if m == img.ActiveMaterial {
				img.ActiveMaterial = nil
			}
			for _, l := range img.Layers {
				if l.MaterialID == m.ID {
					l.MaterialID = 0
				}
			}
			return
		}
	}
	panic("doc: material does not belong to this image")
}

// Key returns a change key folding every layer, camera and material key
// in list order. It changes whenever any entity content changes.
func (img *Image) Key() uint32 {
	h := keyHash{}
	for _, l := range img.Layers {
		h.addUint32(l.Key())
	}
	for _, c := range img.Cameras {
		h.addUint32(c.Key())
	}
	for _, m := range img.Materials {
		h.addUint32(m.Key())
	}
	return h.sum
}

// Dirty reports whether the image changed since the last save.
func (img *Image) Dirty() bool {
	return img.Key() != img.SavedKey
}

// MarkSaved records the current change key as the saved state.
func (img *Image) MarkSaved() {
	img.SavedKey = img.Key()
}

// Snap returns a deep, reference-consistent copy of the image suitable
// for the history: entities are copied, active pointers re-pointed to
// the copies. Weak references are ids and stay valid across the copy.
func (img *Image) Snap() *Image {
	s := &Image{
		Box:          img.Box,
		ExportWidth:  img.ExportWidth,
		ExportHeight: img.ExportHeight,
		SavedKey:     img.SavedKey,
	}
	for _, l := range img.Layers {
		c := l.Copy()
		s.Layers = append(s.Layers, c)
		if l == img.ActiveLayer {
			s.ActiveLayer = c
		}
	}
	for _, cam := range img.Cameras {
		c := cam.Copy()
		s.Cameras = append(s.Cameras, c)
		if cam == img.ActiveCamera {
			s.ActiveCamera = c
		}
	}
	for _, m := range img.Materials {
		c := m.Copy()
		s.Materials = append(s.Materials, c)
		if m == img.ActiveMaterial {
			s.ActiveMaterial = c
		}
	}
	return s
}
