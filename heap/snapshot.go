// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Snapshot export: a compressed, offline-replayable dump of the current
// block layout, grounded on the teacher's Allocator.Compress content
// path but applied to block metadata instead of live payload bytes —
// see SPEC_FULL.md §9.4 for why payload content itself is never
// compressed here.

package heap

import (
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
)

const snapshotRecordSize = 2*8 + 1 // addr, size, alloc flag

// DumpSnapshot serializes the current block layout (address, size,
// allocated/free) to w, snappy-compressed. It does not read or write
// any live payload byte and never mutates the heap.
func (h *Heap) DumpSnapshot(w io.Writer) error {
	var raw []byte

	bp := h.base
	for {
		size := h.sizeAt(h.hdr(bp))
		if size == 0 {
			break
		}

		var rec [snapshotRecordSize]byte
		binary.BigEndian.PutUint64(rec[0:8], uint64(bp))
		binary.BigEndian.PutUint64(rec[8:16], uint64(size))
		if h.allocAt(h.hdr(bp)) {
			rec[16] = 1
		}

		raw = append(raw, rec[:]...)
		bp = h.next(bp)
	}

	_, err := w.Write(snappy.Encode(nil, raw))
	return err
}
