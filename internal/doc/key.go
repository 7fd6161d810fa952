package doc

import (
	"encoding/binary"
	"hash/crc32"
	"math"
)

// keyHash folds entity state into a 32-bit change key. It is a plain
// crc32 fold: the contract is only that identical state always produces
// the identical key, and that changes are very likely to change it.
type keyHash struct {
	sum uint32
}

func (h *keyHash) addBytes(b []byte) {
	h.sum = crc32.Update(h.sum, crc32.IEEETable, b)
}

func (h *keyHash) addUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	h.addBytes(b[:])
}

func (h *keyHash) addInt(v int) {
	h.addUint32(uint32(int32(v)))
}

func (h *keyHash) addBool(v bool) {
	if v {
		h.addUint32(1)
	} else {
		h.addUint32(0)
	}
}

func (h *keyHash) addFloat(v float32) {
	h.addUint32(math.Float32bits(v))
}

func (h *keyHash) addString(s string) {
	h.addBytes([]byte(s))
}

func (h *keyHash) addFloats(vs ...float32) {
	for _, v := range vs {
		h.addFloat(v)
	}
}
