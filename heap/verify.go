// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Diagnostics: a block-by-block walk cross-checking the boundary-tag
// and free-list invariants, in the shape of the teacher's
// Allocator.Verify/AllocStats.

package heap

// ClassStats reports the number of free blocks held in one segregated
// or buddy class list.
type ClassStats struct {
	Class   int
	MinSize int
	Count   int
}

// Stats summarizes a Verify walk, the equivalent of the teacher's
// AllocStats for this in-memory heap.
type Stats struct {
	TotalBlocks int
	AllocBlocks int
	FreeBlocks  int
	AllocBytes  int64
	FreeBytes   int64
	LargestFree int64
	Classes     []ClassStats
}

// Verify walks every block from the first real block to the epilogue,
// checking:
//
//   - every block is 8-aligned and has a positive, 8-aligned size (I1);
//   - header and footer agree, for organizations that carry footers (I2);
//   - no two adjacent free blocks exist (I3);
//   - a block is indexed iff its allocated bit is clear, and, for
//     Segregated/BuddyOrg, in the class get_class(size) predicts (I4).
//
// onError is called with each violation found; if it returns false,
// Verify stops and returns that error. A nil onError treats every
// violation as fatal. Verify never mutates the heap.
func (h *Heap) Verify(onError func(error) bool) (Stats, error) {
	if onError == nil {
		onError = func(error) bool { return false }
	}

	indexed := map[int]int{} // bp -> class list it was found in
	h.walkFreeLists(func(bp, class int) { indexed[bp] = class })

	var st Stats
	var prevWasFree bool
	bp := h.base

	for {
		size := h.sizeAt(h.hdr(bp))
		if size == 0 {
			break // epilogue reached
		}

		alloc := h.allocAt(h.hdr(bp))

		if size <= 0 || size%DoubleWordSize != 0 || bp%DoubleWordSize != 0 {
			if err := (&ErrCorruption{Addr: bp, Detail: "misaligned or non-positive block size"}); !onError(err) {
				return st, err
			}
		}

		if h.cfg.Organization != BuddyOrg && h.getWord(h.hdr(bp)) != h.getWord(bp+size-DoubleWordSize) {
			if err := (&ErrCorruption{Addr: bp, Detail: "header/footer mismatch"}); !onError(err) {
				return st, err
			}
		}

		if !alloc && prevWasFree {
			if err := (&ErrCorruption{Addr: bp, Detail: "adjacent free blocks were not coalesced"}); !onError(err) {
				return st, err
			}
		}

		class, isIndexed := indexed[bp]
		if alloc == isIndexed {
			if err := (&ErrCorruption{Addr: bp, Detail: "free-list membership disagrees with allocated bit"}); !onError(err) {
				return st, err
			}
		}

		if isIndexed && h.cfg.Organization != Explicit {
			want := segClass(size)
			if h.cfg.Organization == BuddyOrg {
				want = buddyClass(size)
			}

			if class != want {
				if err := (&ErrCorruption{Addr: bp, Detail: "free block is in the wrong class list"}); !onError(err) {
					return st, err
				}
			}
		}

		st.TotalBlocks++
		if alloc {
			st.AllocBlocks++
			st.AllocBytes += int64(size)
		} else {
			st.FreeBlocks++
			st.FreeBytes += int64(size)
			if int64(size) > st.LargestFree {
				st.LargestFree = int64(size)
			}
		}

		prevWasFree = !alloc
		bp = h.next(bp)
	}

	if h.cfg.Organization != Explicit {
		for class := 0; class < SegClasses; class++ {
			count := 0
			for bp := h.getRoot(class); bp != 0; bp = h.getSucc(bp) {
				count++
			}

			minSize := 1 << (uint(class) + 4)
			if h.cfg.Organization == BuddyOrg {
				minSize = 1 << uint(class)
			}

			st.Classes = append(st.Classes, ClassStats{Class: class, MinSize: minSize, Count: count})
		}
	}

	return st, nil
}
