package doc

import (
	"testing"

	"github.com/Faultbox/voxedit/internal/voxel"
	"github.com/Faultbox/voxedit/pkg/math"
)

func TestNewImageDefaults(t *testing.T) {
	img := New()

	if len(img.Layers) != 1 || len(img.Cameras) != 1 || len(img.Materials) != 1 {
		t.Fatalf("expected 1 layer/camera/material, got %d/%d/%d",
			len(img.Layers), len(img.Cameras), len(img.Materials))
	}
	if img.Layers[0].Name != "Layer" {
		t.Errorf("layer name: got %q, want %q", img.Layers[0].Name, "Layer")
	}
	if img.Cameras[0].Name != "Camera" {
		t.Errorf("camera name: got %q, want %q", img.Cameras[0].Name, "Camera")
	}
	if img.Materials[0].Name != "Material" {
		t.Errorf("material name: got %q, want %q", img.Materials[0].Name, "Material")
	}
	if img.ActiveLayer != img.Layers[0] || img.ActiveCamera != img.Cameras[0] || img.ActiveMaterial != img.Materials[0] {
		t.Error("seeded entities should all be active")
	}
	if img.Layers[0].MaterialID != img.Materials[0].ID {
		t.Error("default layer should reference the default material")
	}
	if img.Dirty() {
		t.Error("fresh image should not be dirty")
	}
	if img.ExportWidth != 1024 || img.ExportHeight != 1024 {
		t.Errorf("export size: got %dx%d", img.ExportWidth, img.ExportHeight)
	}
}

func TestKeyChangesOnMutation(t *testing.T) {
	img := New()
	k0 := img.Key()

	// Read-only operations do not change the key.
	img.Layer(img.ActiveLayer.ID)
	img.Dirty()
	if img.Key() != k0 {
		t.Fatal("read-only operations must not change the scene key")
	}

	img.ActiveLayer.Mesh.SetAt([3]int{0, 0, 0}, [4]uint8{255, 0, 0, 255})
	k1 := img.Key()
	if k1 == k0 {
		t.Error("voxel edit should change the scene key")
	}
	if !img.Dirty() {
		t.Error("image should be dirty after an edit")
	}

	img.MarkSaved()
	if img.Dirty() {
		t.Error("image should be clean after MarkSaved")
	}

	img.AddCamera(nil)
	if img.Key() == k1 {
		t.Error("adding a camera should change the scene key")
	}
}

func TestAddLayerUniqueNames(t *testing.T) {
	img := New()
	l2 := img.AddLayer(nil)
	l3 := img.AddLayer(nil)

	if l2.Name == "Layer" || l3.Name == "Layer" || l2.Name == l3.Name {
		t.Errorf("new layers need unique names, got %q and %q", l2.Name, l3.Name)
	}
	if img.ActiveLayer != l3 {
		t.Error("last added layer should be active")
	}
	if l2.ID == l3.ID || l2.ID == img.Layers[0].ID {
		t.Error("layer ids must be unique")
	}
}

func TestAddLayerReparentPanics(t *testing.T) {
	img := New()
	l := img.AddLayer(nil)

	defer func() {
		if recover() == nil {
			t.Error("adding an owned layer again should panic")
		}
	}()
	img.AddLayer(l)
}

func TestDeleteLayerFallback(t *testing.T) {
	img := New()
	first := img.Layers[0]

	img.DeleteLayer(first)
	if len(img.Layers) != 1 {
		t.Fatalf("deleting the only layer should leave one fresh layer, got %d", len(img.Layers))
	}
	if img.Layers[0] == first {
		t.Error("the fresh layer should be a new object")
	}
	if img.ActiveLayer != img.Layers[0] {
		t.Error("fresh layer should be active")
	}
}

func TestDeleteLayerUnclonesDependents(t *testing.T) {
	img := New()
	base := img.ActiveLayer
	c1 := img.CloneLayer(base)
	c2 := img.CloneLayer(base)

	img.DeleteLayer(base)

	if c1.BaseID != 0 || c2.BaseID != 0 {
		t.Error("deleting a layer must clear BaseID on its clones")
	}
	for _, l := range img.Layers {
		if l.BaseID == base.ID {
			t.Error("no layer may keep a base reference to a deleted layer")
		}
	}
}

func TestDeleteMaterialClearsReferences(t *testing.T) {
	img := New()
	mat := img.ActiveMaterial
	l := img.AddLayer(nil)
	if l.MaterialID != mat.ID {
		t.Fatal("new layer should reference the active material")
	}

	img.DeleteMaterial(mat)

	if img.ActiveMaterial != nil {
		t.Error("active material should be nil after deletion")
	}
	for _, l := range img.Layers {
		if l.MaterialID == mat.ID {
			t.Error("no layer may reference a deleted material")
		}
	}
}

func TestDeleteCameraFallback(t *testing.T) {
	img := New()
	first := img.ActiveCamera
	second := img.AddCamera(nil)

	img.DeleteCamera(second)
	if img.ActiveCamera != first {
		t.Error("deleting the active camera should fall back to the head")
	}

	img.DeleteCamera(first)
	if img.ActiveCamera != nil || len(img.Cameras) != 0 {
		t.Error("deleting the last camera should leave none active")
	}
}

func TestMoveLayerBoundaries(t *testing.T) {
	img := New()
	a := img.Layers[0]
	b := img.AddLayer(nil)

	// Head cannot move further toward the head.
	img.MoveLayer(a, +1)
	if img.Layers[0] != a {
		t.Error("moving the head element up should be a no-op")
	}

	img.MoveLayer(b, +1)
	if img.Layers[0] != b || img.Layers[1] != a {
		t.Error("move up should swap with the previous element")
	}

	img.MoveLayer(b, -1)
	if img.Layers[0] != a || img.Layers[1] != b {
		t.Error("move down should swap with the next element")
	}

	img.MoveLayer(b, -1)
	if img.Layers[1] != b {
		t.Error("moving the tail element down should be a no-op")
	}
}

func TestDuplicateLayerIndependent(t *testing.T) {
	img := New()
	src := img.ActiveLayer
	src.Mesh.SetAt([3]int{1, 1, 1}, [4]uint8{7, 7, 7, 255})

	dup := img.DuplicateLayer(src)

	if dup == src || dup.ID == src.ID {
		t.Fatal("duplicate must be a new layer with a new id")
	}
	if dup.Mesh.Key() != src.Mesh.Key() {
		t.Error("duplicate mesh should start identical")
	}
	dup.Mesh.SetAt([3]int{2, 2, 2}, [4]uint8{1, 1, 1, 255})
	if src.Mesh.Count() != 1 {
		t.Error("duplicate mesh must be independent storage")
	}
	if img.ActiveLayer != dup {
		t.Error("duplicate should become active")
	}
}

func TestCanEdit(t *testing.T) {
	img := New()
	l := img.ActiveLayer
	if !l.CanEdit() {
		t.Error("plain layer should be editable")
	}

	clone := img.CloneLayer(l)
	if clone.CanEdit() {
		t.Error("clone layer should not be editable")
	}
	img.UncloneLayer(clone)
	if !clone.CanEdit() {
		t.Error("unclone should make the layer editable")
	}

	shape := img.AddShapeLayer(voxel.ShapeSphere, [4]uint8{255, 0, 0, 255}, math.Box{})
	if shape.CanEdit() {
		t.Error("shape layer should not be editable")
	}

	l.Image = &RasterRef{Path: "x.png"}
	if l.CanEdit() {
		t.Error("raster-backed layer should not be editable")
	}
}

func TestMergeVisibleLayers(t *testing.T) {
	img := New()
	bottom := img.ActiveLayer
	bottom.Mesh.SetAt([3]int{0, 0, 0}, [4]uint8{10, 0, 0, 255})

	hidden := img.AddLayer(nil)
	hidden.Visible = false
	hidden.Mesh.SetAt([3]int{9, 9, 9}, [4]uint8{0, 0, 10, 255})

	top := img.AddLayer(nil)
	top.Mesh.SetAt([3]int{1, 0, 0}, [4]uint8{0, 10, 0, 255})

	img.MergeVisibleLayers()

	if len(img.Layers) != 2 {
		t.Fatalf("expected merged + hidden layer, got %d layers", len(img.Layers))
	}
	if img.ActiveLayer != top {
		t.Error("surviving merged layer should be active")
	}
	if _, ok := top.Mesh.At([3]int{0, 0, 0}); !ok {
		t.Error("merged mesh should contain the bottom layer's voxel")
	}
	if _, ok := top.Mesh.At([3]int{1, 0, 0}); !ok {
		t.Error("merged mesh should keep its own voxel")
	}
	if hidden.Mesh.Count() != 1 {
		t.Error("hidden layer must not participate in the merge")
	}
}

func TestMergeVisibleUnclonesFirst(t *testing.T) {
	img := New()
	base := img.ActiveLayer
	base.Mesh.SetAt([3]int{0, 0, 0}, [4]uint8{5, 5, 5, 255})
	clone := img.CloneLayer(base)
	img.Update()

	img.MergeVisibleLayers()

	if clone.BaseID != 0 {
		t.Error("merge must unclone survivors")
	}
	if len(img.Layers) != 1 {
		t.Fatalf("expected a single merged layer, got %d", len(img.Layers))
	}
}

func TestClearLayer(t *testing.T) {
	img := New()
	l := img.ActiveLayer
	l.Mesh.SetAt([3]int{0, 0, 0}, [4]uint8{1, 1, 1, 255})
	l.Mesh.SetAt([3]int{10, 10, 10}, [4]uint8{2, 2, 2, 255})

	// Clear only within a volume.
	img.ClearLayer(l, math.BoxFromExtent(math.Vec3{}, 2, 2, 2))
	if _, ok := l.Mesh.At([3]int{0, 0, 0}); ok {
		t.Error("voxel inside the clear volume should be erased")
	}
	if _, ok := l.Mesh.At([3]int{10, 10, 10}); !ok {
		t.Error("voxel outside the clear volume should survive")
	}

	// Null box clears everything.
	img.ClearLayer(l, math.Box{})
	if !l.Mesh.IsEmpty() {
		t.Error("null box should clear the whole mesh")
	}
}

func TestSelectParentLayer(t *testing.T) {
	img := New()
	base := img.ActiveLayer
	clone := img.CloneLayer(base)

	img.SelectParentLayer(clone)
	if img.ActiveLayer != base {
		t.Error("selecting the parent should activate the base layer")
	}

	// A layer without a base leaves the active layer unchanged.
	img.ActiveLayer = clone
	img.UncloneLayer(clone)
	img.SelectParentLayer(clone)
	if img.ActiveLayer != clone {
		t.Error("selecting the parent of a non-clone should be a no-op")
	}
}

func TestSnapPreservesActivesAndRepairsNothing(t *testing.T) {
	img := New()
	img.AddLayer(nil)
	img.ActiveLayer.Mesh.SetAt([3]int{3, 3, 3}, [4]uint8{1, 2, 3, 255})

	snap := img.Snap()

	if snap.Key() != img.Key() {
		t.Error("snapshot must have identical content")
	}
	if snap.ActiveLayer == img.ActiveLayer {
		t.Error("snapshot active layer must be the copied object")
	}
	if snap.ActiveLayer.ID != img.ActiveLayer.ID {
		t.Error("snapshot active layer should correspond to the source's")
	}
	if snap.ActiveMaterial == img.ActiveMaterial {
		t.Error("snapshot active material must be the copied object")
	}
	// Weak references are ids, valid within the copy as-is.
	if snap.Material(snap.ActiveLayer.MaterialID) == nil {
		t.Error("snapshot layer's material reference should resolve inside the snapshot")
	}

	img.ActiveLayer.Mesh.SetAt([3]int{4, 4, 4}, [4]uint8{9, 9, 9, 255})
	if snap.Key() == img.Key() {
		t.Error("mutating the live image must not affect the snapshot")
	}
}
