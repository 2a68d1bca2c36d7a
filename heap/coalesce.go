// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Merging a newly freed block with its adjacent free neighbors.

package heap

// coalesceNonBuddy merges bp (already marked free in its header and
// footer, but not yet indexed) with any free neighbor, per the four
// cases of spec.md §4.5, and inserts the result into the free-list
// index. The prologue and epilogue sentinels are always marked
// allocated, so a block at either end of the heap naturally sees an
// "allocated" neighbor in that direction without any special-casing
// here.
func (h *Heap) coalesceNonBuddy(bp int) int {
	prevBlock := h.prev(bp)
	nextBlock := h.next(bp)
	prevAlloc := h.allocAt(h.ftr(prevBlock))
	nextAlloc := h.allocAt(h.hdr(nextBlock))
	size := h.sizeAt(h.hdr(bp))

	switch {
	case prevAlloc && nextAlloc:
		h.freeIdx.insert(h, bp)
		return bp
	case prevAlloc && !nextAlloc:
		h.freeIdx.remove(h, nextBlock)
		size += h.sizeAt(h.hdr(nextBlock))
		h.writeFreeBlockHdrFtr(bp, size)
		h.freeIdx.insert(h, bp)
		return bp
	case !prevAlloc && nextAlloc:
		h.freeIdx.remove(h, prevBlock)
		size += h.sizeAt(h.hdr(prevBlock))
		h.writeFreeBlockHdrFtr(prevBlock, size)
		h.freeIdx.insert(h, prevBlock)
		return prevBlock
	default: // both free
		h.freeIdx.remove(h, prevBlock)
		h.freeIdx.remove(h, nextBlock)
		size += h.sizeAt(h.hdr(prevBlock)) + h.sizeAt(h.hdr(nextBlock))
		h.writeFreeBlockHdrFtr(prevBlock, size)
		h.freeIdx.insert(h, prevBlock)
		return prevBlock
	}
}

// isFreeBuddyOf reports whether addr names a free block of exactly
// size csize. addr may name a position at or beyond the current heap
// end (the block being freed has no right buddy yet) or before the
// region base (impossible by construction, since offsets from base are
// always non-negative multiples of their own size) — both cases read
// as "not free" rather than panicking: addr > HeapHi() guards positions
// beyond the end, the epilogue's allocated bit guards addr == HeapHi(),
// and the prologue sentinel's allocated bit guards any in-bounds read
// that lands inside the prologue.
func (h *Heap) isFreeBuddyOf(addr, csize int) bool {
	if addr > h.sink.HeapHi() {
		return false
	}

	hdr := h.hdr(addr)
	if h.allocAt(hdr) {
		return false
	}

	return h.sizeAt(hdr) == csize
}

// coalesceBuddy inserts bp into its size class and then repeatedly
// merges it with its address-derived buddy for as long as that buddy
// is free and still exactly csize (a buddy that has since been split
// carries a smaller size and must not merge — spec.md's I3).
func (h *Heap) coalesceBuddy(bp int) int {
	csize := h.sizeAt(h.hdr(bp))
	h.freeIdx.insert(h, bp)

	for {
		isRight := (bp-h.base)&csize != 0

		var left, right int
		if isRight {
			left, right = bp-csize, bp
		} else {
			left, right = bp, bp+csize
		}

		if !h.isFreeBuddyOf(left, csize) || !h.isFreeBuddyOf(right, csize) {
			return bp
		}

		h.freeIdx.remove(h, left)
		h.freeIdx.remove(h, right)
		csize *= 2
		h.putWord(h.hdr(left), packWord(csize, false))
		bp = left
		h.freeIdx.insert(h, bp)
	}
}
