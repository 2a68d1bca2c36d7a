// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heap initialization: the alignment pad, prologue/epilogue sentinels,
// class root array, and heap extension.

package heap

import "github.com/JeongJongMun/heaplab/sink"

// Heap is a dynamic memory allocator over a single contiguous region
// obtained from a Sink. It is not safe for concurrent use: the heap and
// its free-list roots are process-wide mutable state owned exclusively
// by the Heap value, mutated only through Allocate, Free and
// Reallocate.
type Heap struct {
	sink sink.Sink
	cfg  Config

	// base is the payload address of the first real (non-prologue)
	// block. It is the lower bound for every valid handle and, for
	// BuddyOrg, the address from which buddy offsets are measured.
	base int

	// rootsBase is the address of the K class-root words living
	// inside the prologue block's payload. Zero for Explicit, which
	// has no class roots.
	rootsBase int

	// freeListp is Explicit's single free-list head. It is plain
	// process state, not stored in the heap, because the Explicit
	// heap layout reserves no root slot for it.
	freeListp int

	freeIdx freeListIndex
}

// freeListIndex abstracts the three free-list organizations of
// spec.md §4.4 behind a common insert/remove/search surface, the
// runtime-selector redesign recorded in SPEC_FULL.md §9.6.
type freeListIndex interface {
	insert(h *Heap, bp int)
	remove(h *Heap, bp int)
	search(h *Heap, asize int) int
}

// New creates a Heap backed by sk, writing the fixed heap prefix (pad,
// prologue, class roots if any, epilogue) and performing the initial
// heap extension. sk must be empty.
func New(sk sink.Sink, cfg Config) (*Heap, error) {
	cfg = cfg.withDefaults()
	h := &Heap{sink: sk, cfg: cfg}
	if err := h.init(); err != nil {
		return nil, err
	}

	return h, nil
}

func (h *Heap) init() error {
	numRoots := 0
	if h.cfg.Organization != Explicit {
		numRoots = SegClasses
	}

	// pad(1) + prologue_hdr(1) + roots(numRoots) + prologue_ftr(1) + epilogue_hdr(1)
	prefixWords := 4 + numRoots
	base, err := h.sink.Extend(prefixWords * WordSize)
	if err != nil {
		return &ErrOutOfMemory{Size: prefixWords * WordSize}
	}

	prologueHdrAddr := base + WordSize
	prologueSize := DoubleWordSize + WordSize*numRoots
	h.putWord(prologueHdrAddr, packWord(prologueSize, true))

	rootsBase := prologueHdrAddr + WordSize
	prologueFtrAddr := rootsBase + WordSize*numRoots
	h.putWord(prologueFtrAddr, packWord(prologueSize, true))

	epilogueAddr := prologueFtrAddr + WordSize
	h.putWord(epilogueAddr, packWord(0, true))

	if numRoots > 0 {
		h.rootsBase = rootsBase
		for i := 0; i < numRoots; i++ {
			h.setRoot(i, 0)
		}
	}

	h.base = epilogueAddr + WordSize

	switch h.cfg.Organization {
	case Explicit:
		h.freeIdx = &explicitList{}
	case Segregated:
		h.freeIdx = &segregatedList{}
	case BuddyOrg:
		h.freeIdx = &buddyList{}
	}

	words := h.cfg.ChunkWords
	if h.cfg.Organization == Segregated {
		words += 2 * h.cfg.SegBias // SegBias counts double-words
	}

	_, err = h.extendHeap(words)
	return err
}

// extendHeap rounds words up to even, requests the corresponding bytes
// from the sink, turns them into one large free block immediately
// below a fresh epilogue, and coalesces that block with any free
// neighbor beneath the old epilogue.
func (h *Heap) extendHeap(words int) (int, error) {
	if words%2 != 0 {
		words++
	}

	size := words * WordSize
	base, err := h.sink.Extend(size)
	if err != nil {
		return 0, &ErrOutOfMemory{Size: size}
	}

	bp := base
	if h.cfg.Organization == BuddyOrg {
		h.putWord(h.hdr(bp), packWord(size, false))
	} else {
		h.writeFreeBlockHdrFtr(bp, size)
	}

	h.putWord(bp+size-WordSize, packWord(0, true)) // fresh epilogue header
	return h.coalesce(bp), nil
}

func (h *Heap) rootAddr(class int) int { return h.rootsBase + class*WordSize }
func (h *Heap) getRoot(class int) int  { return int(int32(h.getWord(h.rootAddr(class)))) }
func (h *Heap) setRoot(class, v int)   { h.putWord(h.rootAddr(class), uint32(int32(v))) }

func (h *Heap) coalesce(bp int) int {
	if h.cfg.Organization == BuddyOrg {
		return h.coalesceBuddy(bp)
	}

	return h.coalesceNonBuddy(bp)
}

func (h *Heap) place(bp, asize int) {
	if h.cfg.Organization == BuddyOrg {
		h.placeBuddy(bp, asize)
		return
	}

	h.placeNonBuddy(bp, asize)
}
