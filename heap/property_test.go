// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Property-style checks run across every Organization/Fit combination,
// using testify/require for the denser assertion chains a cross-product
// sweep like this accumulates — justified in SPEC_FULL.md §8.4 as
// grounded on the wider retrieval corpus rather than on the teacher,
// whose own tests use plain testing throughout.

package heap

import (
	"bytes"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"
)

// No allocation ever returns an address below the heap's first real
// block, and every returned address is 8-byte aligned.
func TestPropertyAddressesAreInBoundsAndAligned(t *testing.T) {
	for _, cfg := range allOrgs() {
		h, sk := newTestHeap(t, cfg)

		var live []int
		for i := 0; i < 64; i++ {
			bp, err := h.Allocate(8 + i)
			require.NoError(t, err, cfg.Organization)
			require.Zero(t, bp%DoubleWordSize, "%v: address %#x not aligned", cfg.Organization, bp)
			require.GreaterOrEqual(t, bp, h.base, cfg.Organization)
			require.LessOrEqual(t, bp, sk.HeapHi(), cfg.Organization)
			live = append(live, bp)
		}

		for _, bp := range live {
			require.NoError(t, h.Free(bp), cfg.Organization)
		}
	}
}

// A round trip of written payload bytes through Free/Allocate of an
// unrelated block never corrupts a still-live block's content (P3).
func TestPropertyLiveBlocksSurviveUnrelatedTraffic(t *testing.T) {
	for _, cfg := range allOrgs() {
		h, sk := newTestHeap(t, cfg)

		keep, err := h.Allocate(128)
		require.NoError(t, err)

		want := bytes.Repeat([]byte{0xAB}, 128)
		sk.WriteBytes(keep, want)

		for i := 0; i < 32; i++ {
			bp, err := h.Allocate(16)
			require.NoError(t, err)
			require.NoError(t, h.Free(bp))
		}

		require.Equal(t, want, sk.ReadBytes(keep, 128), cfg.Organization)
	}
}

// Every allocation and free leaves Verify satisfied: no adjacent free
// blocks, header/footer agreement, and free-list membership matching
// the allocated bit (I1-I4).
func TestPropertyVerifyHoldsAfterRandomizedTraffic(t *testing.T) {
	for _, cfg := range allOrgs() {
		h, _ := newTestHeap(t, cfg)

		var live []int
		sizes := []int{1, 7, 8, 15, 16, 17, 63, 64, 65, 200, 1000}

		for round := 0; round < 3; round++ {
			for _, sz := range sizes {
				bp, err := h.Allocate(sz)
				require.NoError(t, err, cfg.Organization)
				live = append(live, bp)
			}

			// Free every other live block to produce interior free
			// blocks that exercise coalescing before the next round.
			var kept []int
			for i, bp := range live {
				if i%2 == 0 {
					require.NoError(t, h.Free(bp))
					continue
				}
				kept = append(kept, bp)
			}
			live = kept

			_, err := h.Verify(nil)
			require.NoError(t, err, "%v round %d", cfg.Organization, round)
		}

		for _, bp := range live {
			require.NoError(t, h.Free(bp))
		}

		_, err := h.Verify(nil)
		require.NoError(t, err, cfg.Organization)
	}
}

// DumpSnapshot never reports a larger live-byte total than Verify does,
// across every organization (P3's "diagnostics never corrupt state"
// extended to cross-check with the independent Stats accounting).
func TestPropertySnapshotAgreesWithVerify(t *testing.T) {
	for _, cfg := range allOrgs() {
		h, _ := newTestHeap(t, cfg)

		for i := 0; i < 16; i++ {
			_, err := h.Allocate(8 + i*4)
			require.NoError(t, err)
		}

		st, err := h.Verify(nil)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, h.DumpSnapshot(&buf))

		raw, err := snappy.Decode(nil, buf.Bytes())
		require.NoError(t, err)

		require.Equal(t, st.TotalBlocks, len(raw)/snapshotRecordSize, cfg.Organization)
	}
}
