// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Consuming a chosen free block for an allocation: splitting the
// remainder (explicit/segregated) or halving down to the target
// power-of-two (buddy).

package heap

// placeNonBuddy assumes bp is free with size(bp) >= asize. It removes
// bp from the index, writes the allocated prefix, and — if the
// remainder is at least MinBlockSize — splits off and indexes a free
// suffix; otherwise the remainder becomes internal fragmentation.
func (h *Heap) placeNonBuddy(bp, asize int) {
	h.freeIdx.remove(h, bp)
	size := h.sizeAt(h.hdr(bp))
	remainder := size - asize

	if remainder >= MinBlockSize {
		h.writeUsedBlock(bp, asize)
		rbp := h.next(bp)
		h.writeFreeBlockHdrFtr(rbp, remainder)
		h.freeIdx.insert(h, rbp)
		return
	}

	h.writeUsedBlock(bp, size)
}

// placeBuddy assumes bp is free with a power-of-two size >= asize
// (itself a power of two). It removes bp from the index and repeatedly
// halves it, indexing the discarded half each time, until it reaches
// asize.
func (h *Heap) placeBuddy(bp, asize int) {
	h.freeIdx.remove(h, bp)
	size := h.sizeAt(h.hdr(bp))

	for size > asize {
		size /= 2
		buddy := bp + size
		h.putWord(h.hdr(buddy), packWord(size, false))
		h.freeIdx.insert(h, buddy)
	}

	h.putWord(h.hdr(bp), packWord(size, true))
}
