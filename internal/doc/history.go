package doc

/* The undo history is a sequence of frozen snapshots around one live
   image. After three committed operations A, B, C with the image now in
   state D:

       past: [A B C]   live: D   future: []

   Undo swaps the *content* of the live image with the newest past
   snapshot, so external holders of the live *Image keep a valid pointer:

       past: [A B]     live: C   future: [D]
*/

import "github.com/Faultbox/voxedit/internal/logger"

// History manages the undo/redo snapshots of one image lineage. The
// live image pointer never changes; undo and redo exchange content
// between the live image and a snapshot.
type History struct {
	live   *Image
	past   []*Image // oldest first
	future []*Image // nearest redo first
}

// NewHistory returns a history for the given live image with no
// entries: nothing to undo, nothing to redo.
func NewHistory(live *Image) *History {
	return &History{live: live}
}

// Live returns the live image.
func (h *History) Live() *Image {
	return h.live
}

// Push commits the live image's current state as a new snapshot and
// discards any redo entries, matching linear-undo semantics.
func (h *History) Push() {
	h.future = nil
	h.past = append(h.past, h.live.Snap())
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// UndoSteps returns the number of available undo steps.
func (h *History) UndoSteps() int { return len(h.past) }

// RedoSteps returns the number of available redo steps.
func (h *History) RedoSteps() int { return len(h.future) }

// Undo restores the previous snapshot's content into the live image.
// The displaced live content becomes the next redo target. Returns
// false when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		logger.Debug("no more undo")
		return false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	*h.live, *prev = *prev, *h.live
	h.future = append([]*Image{prev}, h.future...)
	return true
}

// Redo restores the next snapshot's content into the live image.
// Returns false when there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		logger.Debug("no more redo")
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	*h.live, *next = *next, *h.live
	h.past = append(h.past, next)
	return true
}

// Trim drops the oldest undo snapshots beyond max entries.
func (h *History) Trim(max int) {
	if max < 0 {
		max = 0
	}
	if excess := len(h.past) - max; excess > 0 {
		h.past = append([]*Image(nil), h.past[excess:]...)
	}
}
