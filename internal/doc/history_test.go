package doc

import "testing"

func TestUndoRedoRoundTrip(t *testing.T) {
	img := New()
	h := NewHistory(img)

	h.Push()
	img.ActiveLayer.Mesh.SetAt([3]int{0, 0, 0}, [4]uint8{255, 0, 0, 255})
	after := img.Key()

	if !h.Undo() {
		t.Fatal("undo should succeed after a push")
	}
	if img.Key() == after {
		t.Error("undo should restore the pre-edit state")
	}
	if !h.Redo() {
		t.Fatal("redo should succeed after an undo")
	}
	if img.Key() != after {
		t.Error("undo then redo must restore bit-identical content")
	}
}

func TestUndoKeepsLivePointer(t *testing.T) {
	img := New()
	h := NewHistory(img)

	h.Push()
	img.AddLayer(nil)

	before := h.Live()
	h.Undo()
	if h.Live() != before || h.Live() != img {
		t.Error("undo must not invalidate the live image pointer")
	}
	if len(img.Layers) != 1 {
		t.Errorf("undo should revert the layer count, got %d", len(img.Layers))
	}
}

func TestUndoNothingToUndo(t *testing.T) {
	img := New()
	h := NewHistory(img)

	k := img.Key()
	if h.Undo() {
		t.Error("undo with no history should report a no-op")
	}
	if img.Key() != k {
		t.Error("a no-op undo must leave state unchanged")
	}
	if h.Redo() {
		t.Error("redo with no future should report a no-op")
	}
}

func TestPushDiscardsRedoBranch(t *testing.T) {
	img := New()
	h := NewHistory(img)

	h.Push()
	img.AddLayer(nil) // state B
	h.Undo()          // back to A, B in redo slot
	if !h.CanRedo() {
		t.Fatal("expected a redo entry after undo")
	}

	h.Push()
	img.AddCamera(nil) // state C on a new branch

	if h.CanRedo() {
		t.Error("push must discard the redo branch")
	}
	if h.Redo() {
		t.Error("cannot redo past a push")
	}
}

func TestPushThenUndoRestoresPrePushExactly(t *testing.T) {
	img := New()
	h := NewHistory(img)

	img.ActiveLayer.Mesh.SetAt([3]int{1, 2, 3}, [4]uint8{4, 5, 6, 255})
	before := img.Key()

	h.Push()
	img.ActiveLayer.Mesh.SetAt([3]int{3, 2, 1}, [4]uint8{6, 5, 4, 255})

	h.Undo()
	if img.Key() != before {
		t.Error("push followed by undo must restore the pre-push state exactly")
	}
}

func TestMultiStepUndoRedo(t *testing.T) {
	img := New()
	h := NewHistory(img)

	var keys []uint32
	keys = append(keys, img.Key())
	for i := 0; i < 3; i++ {
		h.Push()
		img.AddLayer(nil)
		keys = append(keys, img.Key())
	}

	for i := 3; i > 0; i-- {
		if !h.Undo() {
			t.Fatalf("undo %d should succeed", i)
		}
		if img.Key() != keys[i-1] {
			t.Errorf("after undo to step %d: key mismatch", i-1)
		}
	}
	if h.Undo() {
		t.Error("no further undo expected")
	}
	for i := 1; i <= 3; i++ {
		if !h.Redo() {
			t.Fatalf("redo %d should succeed", i)
		}
		if img.Key() != keys[i] {
			t.Errorf("after redo to step %d: key mismatch", i)
		}
	}
}

func TestTrim(t *testing.T) {
	img := New()
	h := NewHistory(img)

	for i := 0; i < 5; i++ {
		h.Push()
		img.AddLayer(nil)
	}
	if h.UndoSteps() != 5 {
		t.Fatalf("expected 5 undo steps, got %d", h.UndoSteps())
	}

	h.Trim(2)
	if h.UndoSteps() != 2 {
		t.Errorf("expected 2 undo steps after trim, got %d", h.UndoSteps())
	}

	// Trim to zero: only the live node remains navigable.
	h.Trim(0)
	if h.CanUndo() {
		t.Error("trim to 0 should leave nothing to undo")
	}
	if h.Undo() {
		t.Error("undo after full trim should be a no-op")
	}

	// Trimming below zero clamps.
	h.Trim(-1)
	if h.UndoSteps() != 0 {
		t.Error("negative trim should clamp to zero")
	}
}

func TestTrimKeepsNewestEntries(t *testing.T) {
	img := New()
	h := NewHistory(img)

	h.Push() // snapshot with 1 layer
	img.AddLayer(nil)
	h.Push() // snapshot with 2 layers
	img.AddLayer(nil) // live has 3

	h.Trim(1)
	h.Undo()
	if len(img.Layers) != 2 {
		t.Errorf("trim should drop the oldest entries: got %d layers, want 2", len(img.Layers))
	}
}
