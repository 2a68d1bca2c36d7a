// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Packing/unpacking of (size, alloc) header/footer words.

package heap

const allocBit = 0x1

// packWord encodes a block's size and allocated bit into a header or
// footer word. size is always a multiple of 8, so the low 3 bits are
// free for flags; only the allocated bit is used.
func packWord(size int, alloc bool) uint32 {
	w := uint32(size)
	if alloc {
		w |= allocBit
	}

	return w
}

func wordSize(w uint32) int  { return int(w &^ 7) }
func wordAlloc(w uint32) bool { return w&allocBit != 0 }

func (h *Heap) getWord(addr int) uint32    { return h.sink.ReadWord(addr) }
func (h *Heap) putWord(addr int, w uint32) { h.sink.WriteWord(addr, w) }

func (h *Heap) sizeAt(addr int) int   { return wordSize(h.getWord(addr)) }
func (h *Heap) allocAt(addr int) bool { return wordAlloc(h.getWord(addr)) }
