// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The free-list index: explicit LIFO list, K=20 size-class segregated
// lists, or binary-buddy class lists, all threaded through the
// pred/succ words free blocks carry in their payload.

package heap

// segClass returns the smallest class i in [0, SegClasses) with
// size <= 2^(i+4); sizes past the last class's threshold fall into the
// open-ended last class.
func segClass(size int) int {
	for i := 0; i < SegClasses-1; i++ {
		if size <= 1<<(uint(i)+4) {
			return i
		}
	}

	return SegClasses - 1
}

// buddyClass returns the smallest class i with 2^i >= size.
func buddyClass(size int) int {
	i := 0
	for (1 << uint(i)) < size {
		i++
	}

	if i >= SegClasses {
		i = SegClasses - 1
	}

	return i
}

// fitSearch walks the singly-threaded (via succ) list starting at head
// and returns the block satisfying the configured Fit, or 0.
func (h *Heap) fitSearch(head, asize int) int {
	switch h.cfg.Fit {
	case BestFit:
		best, bestSize := 0, 0
		for bp := head; bp != 0; bp = h.getSucc(bp) {
			sz := h.sizeAt(h.hdr(bp))
			if sz >= asize && (best == 0 || sz < bestSize) {
				best, bestSize = bp, sz
			}
		}

		return best
	case WorstFit:
		worst, worstSize := 0, 0
		for bp := head; bp != 0; bp = h.getSucc(bp) {
			sz := h.sizeAt(h.hdr(bp))
			if sz >= asize && sz > worstSize {
				worst, worstSize = bp, sz
			}
		}

		return worst
	default: // FirstFit
		for bp := head; bp != 0; bp = h.getSucc(bp) {
			if h.sizeAt(h.hdr(bp)) >= asize {
				return bp
			}
		}

		return 0
	}
}

// explicitList is a single global LIFO list threaded through every
// free block regardless of size, rooted at Heap.freeListp.
type explicitList struct{}

func (*explicitList) insert(h *Heap, bp int) {
	h.setPred(bp, 0)
	h.setSucc(bp, h.freeListp)
	if h.freeListp != 0 {
		h.setPred(h.freeListp, bp)
	}

	h.freeListp = bp
}

func (*explicitList) remove(h *Heap, bp int) {
	pred, succ := h.getPred(bp), h.getSucc(bp)
	if bp == h.freeListp {
		h.freeListp = succ
		if succ != 0 {
			h.setPred(succ, 0)
		}

		return
	}

	h.setSucc(pred, succ)
	if succ != 0 {
		h.setPred(succ, pred)
	}
}

func (*explicitList) search(h *Heap, asize int) int {
	return h.fitSearch(h.freeListp, asize)
}

// segregatedList maintains SegClasses doubly linked lists rooted in the
// prologue block's payload, one per size class, class i holding the
// blocks segClass maps to it: 2^(i+3) < size <= 2^(i+4) (class 0 = size
// 16; the last class is open-ended).
type segregatedList struct{}

func (*segregatedList) insert(h *Heap, bp int) {
	class := segClass(h.sizeAt(h.hdr(bp)))
	head := h.getRoot(class)
	h.setPred(bp, 0)
	h.setSucc(bp, head)
	if head != 0 {
		h.setPred(head, bp)
	}

	h.setRoot(class, bp)
}

func (*segregatedList) remove(h *Heap, bp int) {
	class := segClass(h.sizeAt(h.hdr(bp)))
	pred, succ := h.getPred(bp), h.getSucc(bp)
	if pred == 0 {
		h.setRoot(class, succ)
	} else {
		h.setSucc(pred, succ)
	}

	if succ != 0 {
		h.setPred(succ, pred)
	}
}

func (*segregatedList) search(h *Heap, asize int) int {
	for class := segClass(asize); class < SegClasses; class++ {
		if bp := h.fitSearch(h.getRoot(class), asize); bp != 0 {
			return bp
		}
	}

	return 0
}

// buddyList maintains SegClasses class lists indexed by power-of-two
// size. Every block in a buddy class list below the last one has
// exactly that class's size, so the head is always an acceptable
// candidate there; the last class is open-ended (buddyClass clamps to
// it), so search walks a list until it finds a block large enough.
type buddyList struct{}

func (*buddyList) insert(h *Heap, bp int) {
	class := buddyClass(h.sizeAt(h.hdr(bp)))
	head := h.getRoot(class)
	h.setPred(bp, 0)
	h.setSucc(bp, head)
	if head != 0 {
		h.setPred(head, bp)
	}

	h.setRoot(class, bp)
}

func (*buddyList) remove(h *Heap, bp int) {
	class := buddyClass(h.sizeAt(h.hdr(bp)))
	pred, succ := h.getPred(bp), h.getSucc(bp)
	if pred == 0 {
		h.setRoot(class, succ)
	} else {
		h.setSucc(pred, succ)
	}

	if succ != 0 {
		h.setPred(succ, pred)
	}
}

func (*buddyList) search(h *Heap, asize int) int {
	for class := buddyClass(asize); class < SegClasses; class++ {
		for bp := h.getRoot(class); bp != 0; bp = h.getSucc(bp) {
			if h.sizeAt(h.hdr(bp)) >= asize {
				return bp
			}
		}
	}

	return 0
}

// walkFreeLists visits every block currently threaded into the index,
// used by Verify to cross-check free-list membership against the
// allocated bit (spec.md's I4).
func (h *Heap) walkFreeLists(visit func(bp, class int)) {
	switch h.freeIdx.(type) {
	case *explicitList:
		for bp := h.freeListp; bp != 0; bp = h.getSucc(bp) {
			visit(bp, 0)
		}
	case *segregatedList, *buddyList:
		for class := 0; class < SegClasses; class++ {
			for bp := h.getRoot(class); bp != 0; bp = h.getSucc(bp) {
				visit(bp, class)
			}
		}
	}
}
