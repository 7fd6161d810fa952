package doc

import "github.com/Faultbox/voxedit/internal/voxel"

// Update re-derives the cached mesh of every clone and shape layer whose
// inputs changed since the last pass. It is idempotent and cheap when
// nothing changed, so it is safe to call before every render and before
// every snapshot.
//
// A clone layer whose base no longer resolves keeps its last mesh.
func (img *Image) Update() {
	for _, l := range img.Layers {
		if base := img.Layer(l.BaseID); base != nil {
			if k := base.Mesh.Key(); k != l.BaseMeshKey {
				l.Mesh.SetFrom(base.Mesh)
				l.Mesh.Transform(l.Mat)
				l.BaseMeshKey = k
			}
		}
		if l.Shape != nil {
			if k := l.shapeKey(); k != l.ShapeKey {
				l.Mesh.Clear()
				l.Mesh.Apply(voxel.Painter{
					Shape: *l.Shape,
					Mode:  voxel.ModeOver,
					Color: l.Color,
					Box:   img.Box,
				}, l.Mat)
				l.ShapeKey = k
			}
		}
	}
}
