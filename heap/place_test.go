// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestPlaceNonBuddySplitsWhenRemainderLarge(t *testing.T) {
	h, _ := newTestHeap(t, Config{Organization: Explicit})

	a, err := h.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}

	// Immediately after a small block is split off the bulk chunk, there
	// should be a large free remainder reachable from a.
	next := h.next(a)
	if h.allocAt(h.hdr(next)) {
		t.Fatal("expected a free remainder block to follow the small allocation")
	}
}

func TestPlaceNonBuddyAbsorbsTinyRemainder(t *testing.T) {
	h, _ := newTestHeap(t, Config{Organization: Explicit})

	// Craft an exact-size free block so placing into it leaves a
	// remainder smaller than MinBlockSize, which must not be split off.
	a, err := h.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Free(a); err != nil {
		t.Fatal(err)
	}

	exact := h.sizeAt(h.hdr(a))

	c, err := h.Allocate(exact - DoubleWordSize)
	if err != nil {
		t.Fatal(err)
	}

	if c != a {
		t.Fatalf("expected exact-fit reuse of %#x, got %#x", a, c)
	}

	if got := h.sizeAt(h.hdr(c)); got != exact {
		t.Fatalf("remainder under MinBlockSize should become internal fragmentation: size = %d, want %d", got, exact)
	}

	_ = b
}

func TestPlaceBuddyHalvesUntilFit(t *testing.T) {
	h, _ := newTestHeap(t, Config{Organization: BuddyOrg})

	a, err := h.Allocate(17) // rounds to 32
	if err != nil {
		t.Fatal(err)
	}

	if g, e := h.sizeAt(h.hdr(a)), 32; g != e {
		t.Fatalf("size = %d, want %d", g, e)
	}

	st, err := h.Verify(nil)
	if err != nil {
		t.Fatal(err)
	}

	if st.FreeBlocks == 0 {
		t.Fatal("expected discarded buddy halves to be indexed as free blocks")
	}
}
