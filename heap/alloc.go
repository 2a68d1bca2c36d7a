// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The public API: Allocate, Free, Reallocate.

package heap

import "github.com/cznic/mathutil"

// align8 rounds n up to the nearest multiple of 8.
func align8(n int) int { return (n + 7) &^ 7 }

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// adjustSize turns a requested payload size into the block size
// Allocate must actually find or carve: payload + header (+ footer for
// organizations that carry one), 8-aligned, at least MinBlockSize; for
// BuddyOrg, the next power of two at least that large.
func (h *Heap) adjustSize(size int) int {
	if h.cfg.Organization == BuddyOrg {
		return nextPow2(mathutil.Max(size+WordSize, MinBlockSize))
	}

	return mathutil.Max(align8(size+DoubleWordSize), MinBlockSize)
}

// Allocate reserves size bytes and returns the payload address of the
// new block, or (0, nil) if size is not positive. It first asks the
// free-list index for a fit; failing that it extends the heap by
// max(asize, CHUNKSIZE) bytes and places into the resulting block.
func (h *Heap) Allocate(size int) (int, error) {
	if size <= 0 {
		return 0, nil
	}

	asize := h.adjustSize(size)
	if bp := h.freeIdx.search(h, asize); bp != 0 {
		h.place(bp, asize)
		return bp, nil
	}

	extend := mathutil.Max(asize, h.cfg.chunkBytes())
	bp, err := h.extendHeap(extend / WordSize)
	if err != nil {
		return 0, err
	}

	h.place(bp, asize)
	return bp, nil
}

// checkHandle reports the cheaply detectable ways bp can fail to be a
// live handle: out of heap bounds, misaligned, or already free. Passing
// an address that fails none of these but was never returned by
// Allocate remains undefined, as spec'd.
func (h *Heap) checkHandle(bp int) error {
	if bp < h.base || bp >= h.sink.HeapHi() {
		return &ErrInvalidHandle{Addr: bp, Reason: "address outside heap bounds"}
	}

	if bp%DoubleWordSize != 0 {
		return &ErrInvalidHandle{Addr: bp, Reason: "address not 8-byte aligned"}
	}

	if !h.allocAt(h.hdr(bp)) {
		return &ErrInvalidHandle{Addr: bp, Reason: "block is already free"}
	}

	return nil
}

// Free deallocates the block at bp. It is a no-op if bp is 0.
func (h *Heap) Free(bp int) error {
	if bp == 0 {
		return nil
	}

	if err := h.checkHandle(bp); err != nil {
		return err
	}

	size := h.sizeAt(h.hdr(bp))
	if h.cfg.Organization == BuddyOrg {
		h.putWord(h.hdr(bp), packWord(size, false))
		h.coalesceBuddy(bp)
		return nil
	}

	h.writeFreeBlockHdrFtr(bp, size)
	h.coalesceNonBuddy(bp)
	return nil
}

// Reallocate resizes the block at bp to size bytes, returning the
// payload address of the result (which may or may not equal bp). A nil
// bp behaves as Allocate; a zero size frees bp and returns 0.
func (h *Heap) Reallocate(bp int, size int) (int, error) {
	if bp == 0 {
		return h.Allocate(size)
	}

	if size == 0 {
		return 0, h.Free(bp)
	}

	if err := h.checkHandle(bp); err != nil {
		return 0, err
	}

	old := h.sizeAt(h.hdr(bp))

	if h.cfg.Organization == BuddyOrg {
		return h.reallocateBuddy(bp, size, old)
	}

	return h.reallocateNonBuddy(bp, size, old)
}

func (h *Heap) reallocateNonBuddy(bp, size, old int) (int, error) {
	need := mathutil.Max(align8(size+DoubleWordSize), MinBlockSize)
	if need <= old {
		return bp, nil // shrink fast-path: leaves the index untouched
	}

	// The epilogue's header always carries the allocated bit, so a
	// bp whose next block is the epilogue reads nxt as allocated here
	// and falls through to the fallback below rather than reading a
	// free block of size 0.
	nxt := h.next(bp)
	if !h.allocAt(h.hdr(nxt)) {
		nextSize := h.sizeAt(h.hdr(nxt))
		if old+nextSize >= need {
			h.freeIdx.remove(h, nxt)
			h.writeUsedBlock(bp, old+nextSize)
			return bp, nil
		}
	}

	return h.reallocateFallback(bp, size, old-DoubleWordSize)
}

func (h *Heap) reallocateBuddy(bp, size, old int) (int, error) {
	need := nextPow2(mathutil.Max(size+WordSize, MinBlockSize))
	if need <= old {
		return bp, nil
	}

	return h.reallocateFallback(bp, size, old-WordSize)
}

// reallocateFallback is the generic allocate-copy-free path, used
// whenever neither organization's in-place fast path applies. oldLen is
// the number of live payload bytes available to copy out of bp.
func (h *Heap) reallocateFallback(bp, size, oldLen int) (int, error) {
	nb, err := h.Allocate(size)
	if err != nil {
		return 0, err
	}

	n := mathutil.Min(oldLen, size)
	if n > 0 {
		h.sink.WriteBytes(nb, h.sink.ReadBytes(bp, n))
	}

	if err := h.Free(bp); err != nil {
		return 0, err
	}

	return nb, nil
}
