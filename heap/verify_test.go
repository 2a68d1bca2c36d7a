// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestVerifyCleanHeapReportsNoError(t *testing.T) {
	for _, cfg := range allOrgs() {
		h, _ := newTestHeap(t, cfg)

		a, err := h.Allocate(64)
		if err != nil {
			t.Fatal(err)
		}

		h.Allocate(32)

		if err := h.Free(a); err != nil {
			t.Fatal(err)
		}

		if _, err := h.Verify(nil); err != nil {
			t.Fatalf("%v: %v", cfg.Organization, err)
		}
	}
}

func TestVerifyDetectsFreeListDesync(t *testing.T) {
	h, _ := newTestHeap(t, Config{Organization: Explicit})

	a, err := h.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Free(a); err != nil {
		t.Fatal(err)
	}

	// Corrupt the allocated bit directly, bypassing Allocate/Free, to
	// desync it from free-list membership.
	h.putWord(h.hdr(a), packWord(h.sizeAt(h.hdr(a)), true))

	if _, err := h.Verify(nil); err == nil {
		t.Fatal("expected Verify to detect the desync")
	}
}

func TestVerifyOnErrorCanContinue(t *testing.T) {
	h, _ := newTestHeap(t, Config{Organization: Explicit})

	a, err := h.Allocate(16)
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Free(a); err != nil {
		t.Fatal(err)
	}

	h.putWord(h.hdr(a), packWord(h.sizeAt(h.hdr(a)), true))

	var seen int
	_, err = h.Verify(func(error) bool {
		seen++
		return true // keep walking
	})

	if err != nil {
		t.Fatalf("onError returning true should suppress the final error, got %v", err)
	}

	if seen == 0 {
		t.Fatal("expected onError to be invoked at least once")
	}
}

func TestVerifyStatsCountAllocatedAndFreeBytes(t *testing.T) {
	h, _ := newTestHeap(t, Config{Organization: Segregated})

	a, err := h.Allocate(64)
	if err != nil {
		t.Fatal(err)
	}

	st, err := h.Verify(nil)
	if err != nil {
		t.Fatal(err)
	}

	if st.AllocBlocks != 1 {
		t.Fatalf("AllocBlocks = %d, want 1", st.AllocBlocks)
	}

	wantAlloc := int64(h.sizeAt(h.hdr(a)))
	if st.AllocBytes != wantAlloc {
		t.Fatalf("AllocBytes = %d, want %d", st.AllocBytes, wantAlloc)
	}

	if len(st.Classes) != SegClasses {
		t.Fatalf("len(Classes) = %d, want %d", len(st.Classes), SegClasses)
	}
}
