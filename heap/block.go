// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Block geometry: given a payload address, compute the addresses of
// its header, footer, and neighbors by boundary-tag walking.

package heap

// hdr returns the address of bp's header word.
func (h *Heap) hdr(bp int) int { return bp - WordSize }

// ftr returns the address of bp's footer word. Only meaningful for
// organizations that carry footers (Explicit, Segregated); BuddyOrg
// never calls it.
func (h *Heap) ftr(bp int) int { return bp + h.sizeAt(h.hdr(bp)) - DoubleWordSize }

// next returns the payload address of the block immediately following
// bp. Applied to the last real block, it returns the epilogue's
// payload address.
func (h *Heap) next(bp int) int { return bp + h.sizeAt(h.hdr(bp)) }

// prev returns the payload address of the block immediately preceding
// bp, read from that block's footer. BuddyOrg never calls it — a
// buddy's predecessor, when it matters at all, is derived from address
// arithmetic instead.
func (h *Heap) prev(bp int) int { return bp - h.sizeAt(bp-DoubleWordSize) }

// Free blocks store a doubly linked list node in their first two
// payload words: pred at offset 0, succ at offset 4. This is why
// MinBlockSize is 16 for organizations with footers (4 header + 4 pred
// + 4 succ + 4 footer).

func (h *Heap) getPred(bp int) int { return int(int32(h.getWord(bp))) }
func (h *Heap) getSucc(bp int) int { return int(int32(h.getWord(bp + WordSize))) }

func (h *Heap) setPred(bp, v int) { h.putWord(bp, uint32(int32(v))) }
func (h *Heap) setSucc(bp, v int) { h.putWord(bp+WordSize, uint32(int32(v))) }

// writeFreeBlockHdrFtr marks [hdr(bp), bp+size) as a free block of the
// given size, mirroring header and footer. It does not touch the
// free-list index; callers insert bp into the index separately.
func (h *Heap) writeFreeBlockHdrFtr(bp, size int) {
	w := packWord(size, false)
	h.putWord(h.hdr(bp), w)
	h.putWord(bp+size-DoubleWordSize, w)
}

// writeUsedBlock marks [hdr(bp), bp+size) as an allocated block of the
// given size. BuddyOrg carries no footer, so only the header is
// written there.
func (h *Heap) writeUsedBlock(bp, size int) {
	w := packWord(size, true)
	h.putWord(h.hdr(bp), w)
	if h.cfg.Organization != BuddyOrg {
		h.putWord(bp+size-DoubleWordSize, w)
	}
}
