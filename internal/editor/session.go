// Package editor holds the editing session: the active document, its
// undo history, and the named action registry the UI dispatches
// through. The session is the single owner of cross-document state such
// as the file path, the paint color and the selection volume; the
// document core below it never reads ambient state.
package editor

import (
	"go.uber.org/zap"

	"github.com/Faultbox/voxedit/internal/config"
	"github.com/Faultbox/voxedit/internal/doc"
	"github.com/Faultbox/voxedit/internal/logger"
	"github.com/Faultbox/voxedit/internal/raster"
	"github.com/Faultbox/voxedit/internal/voxel"
	"github.com/Faultbox/voxedit/pkg/math"
)

// Session is one editing session over one document lineage.
type Session struct {
	Image   *doc.Image
	History *doc.History

	// Path is the document's file path, "" when never saved. It is
	// owned here: snapshots in the history never carry a path.
	Path string

	// Color is the current paint color, used to seed shape layers.
	Color [4]uint8

	// Selection is the current selection volume, null when none.
	Selection math.Box

	// Decode converts an image file into raw pixels. Overridable for
	// tests; defaults to the raster package.
	Decode doc.DecodeFunc

	cfg     *config.Config
	actions map[string]Action
}

// NewSession returns a session with a fresh document configured from cfg.
func NewSession(cfg *config.Config) *Session {
	img := doc.New()
	img.Box = math.NewBox(
		math.Vec3{X: cfg.Scene.BoxMin[0], Y: cfg.Scene.BoxMin[1], Z: cfg.Scene.BoxMin[2]},
		math.Vec3{X: cfg.Scene.BoxMax[0], Y: cfg.Scene.BoxMax[1], Z: cfg.Scene.BoxMax[2]},
	)
	img.ExportWidth = cfg.Scene.ExportWidth
	img.ExportHeight = cfg.Scene.ExportHeight

	s := &Session{
		Image:   img,
		History: doc.NewHistory(img),
		Color:   cfg.Paint.Color,
		Decode:  raster.Decode,
		cfg:     cfg,
		actions: make(map[string]Action),
	}
	s.registerActions()
	return s
}

// image resolves the "nil means the session's document" convention.
func (s *Session) image(img *doc.Image) *doc.Image {
	if img != nil {
		return img
	}
	return s.Image
}

// layer resolves the "nil means the active layer" convention.
func (s *Session) layer(img *doc.Image, l *doc.Layer) *doc.Layer {
	if l != nil {
		return l
	}
	return img.ActiveLayer
}

func (s *Session) camera(img *doc.Image, c *doc.Camera) *doc.Camera {
	if c != nil {
		return c
	}
	return img.ActiveCamera
}

func (s *Session) material(img *doc.Image, m *doc.Material) *doc.Material {
	if m != nil {
		return m
	}
	return img.ActiveMaterial
}

// AddLayer adds a layer (nil means create one) to img or the session
// document.
func (s *Session) AddLayer(img *doc.Image, l *doc.Layer) *doc.Layer {
	return s.image(img).AddLayer(l)
}

// AddShapeLayer adds a procedural sphere layer seeded with the session
// paint color, positioned at the selection when one is set.
func (s *Session) AddShapeLayer(img *doc.Image) *doc.Layer {
	return s.image(img).AddShapeLayer(voxel.ShapeSphere, s.Color, s.Selection)
}

// DeleteLayer deletes the given (or active) layer.
func (s *Session) DeleteLayer(img *doc.Image, l *doc.Layer) {
	img = s.image(img)
	img.DeleteLayer(s.layer(img, l))
}

// MoveLayer moves the given (or active) layer one step.
func (s *Session) MoveLayer(img *doc.Image, l *doc.Layer, d int) {
	img = s.image(img)
	img.MoveLayer(s.layer(img, l), d)
}

// DuplicateLayer duplicates the given (or active) layer.
func (s *Session) DuplicateLayer(img *doc.Image, l *doc.Layer) *doc.Layer {
	img = s.image(img)
	return img.DuplicateLayer(s.layer(img, l))
}

// CloneLayer clones the given (or active) layer.
func (s *Session) CloneLayer(img *doc.Image, l *doc.Layer) *doc.Layer {
	img = s.image(img)
	return img.CloneLayer(s.layer(img, l))
}

// UncloneLayer freezes the given (or active) layer.
func (s *Session) UncloneLayer(img *doc.Image, l *doc.Layer) {
	img = s.image(img)
	img.UncloneLayer(s.layer(img, l))
}

// SelectParentLayer activates the base of the given (or active) layer.
func (s *Session) SelectParentLayer(img *doc.Image, l *doc.Layer) {
	img = s.image(img)
	img.SelectParentLayer(s.layer(img, l))
}

// MergeVisibleLayers merges all visible layers of the document.
func (s *Session) MergeVisibleLayers(img *doc.Image) {
	s.image(img).MergeVisibleLayers()
}

// ClearLayer erases the given (or active) layer within box, or fully
// when box is null.
func (s *Session) ClearLayer(img *doc.Image, l *doc.Layer, box math.Box) {
	img = s.image(img)
	img.ClearLayer(s.layer(img, l), box)
}

// AddCamera adds a camera (nil means create one).
func (s *Session) AddCamera(img *doc.Image, c *doc.Camera) *doc.Camera {
	return s.image(img).AddCamera(c)
}

// DeleteCamera deletes the given (or active) camera. Deleting with no
// cameras left is a no-op.
func (s *Session) DeleteCamera(img *doc.Image, c *doc.Camera) {
	img = s.image(img)
	c = s.camera(img, c)
	if c == nil {
		logger.Debug("no camera to delete")
		return
	}
	img.DeleteCamera(c)
}

// MoveCamera moves the given (or active) camera one step. No cameras is
// a no-op.
func (s *Session) MoveCamera(img *doc.Image, c *doc.Camera, d int) {
	img = s.image(img)
	c = s.camera(img, c)
	if c == nil {
		logger.Debug("no camera to move")
		return
	}
	img.MoveCamera(c, d)
}

// AddMaterial adds a material (nil means create one).
func (s *Session) AddMaterial(img *doc.Image, m *doc.Material) *doc.Material {
	return s.image(img).AddMaterial(m)
}

// DeleteMaterial deletes the given (or active) material. No active
// material is a no-op.
func (s *Session) DeleteMaterial(img *doc.Image, m *doc.Material) {
	img = s.image(img)
	m = s.material(img, m)
	if m == nil {
		logger.Debug("no material to delete")
		return
	}
	img.DeleteMaterial(m)
}

// ConvertRasterLayer converts the given (or active) layer's embedded
// raster image into voxels. The conversion is destructive, so a history
// commit happens before any mutation; the committed snapshot stays
// valid even if the decode fails.
func (s *Session) ConvertRasterLayer(img *doc.Image, l *doc.Layer) error {
	img = s.image(img)
	l = s.layer(img, l)
	s.History.Push()
	return img.RasterToMesh(l, s.Decode)
}

// Undo steps the document back one history entry.
func (s *Session) Undo() bool {
	return s.History.Undo()
}

// Redo steps the document forward one history entry.
func (s *Session) Redo() bool {
	return s.History.Redo()
}

// Commit pushes a history snapshot of the current document state and
// trims the history to the configured cap.
func (s *Session) Commit() {
	s.History.Push()
	s.History.Trim(s.cfg.History.MaxEntries)
}

// MarkSaved records the document as saved under the given path.
func (s *Session) MarkSaved(path string) {
	s.Path = path
	s.Image.MarkSaved()
	logger.Info("document saved", zap.String("path", path))
}
