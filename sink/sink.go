// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sink implements the brk/sbrk-style backing store that package
// heap grows against. A Sink is the allocator's only external
// collaborator: a monotonically growing, contiguous byte region with no
// shrink, no hole punching and no random seek — callers only ever
// append to it and then address what they appended by offset.
package sink

import "fmt"

// ErrOutOfMemory is returned by Extend when the region cannot grow any
// further.
type ErrOutOfMemory struct {
	Requested int
}

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("sink: cannot extend heap by %d bytes", e.Requested)
}

// Sink is the brk/sbrk analogue: a linear, contiguous sequence of bytes
// that grows only at its high end. Every address handed out by Extend,
// and every address derived from one, stays valid for the Sink's
// lifetime.
type Sink interface {
	// Extend grows the region by n bytes (n must be > 0) and returns
	// the address at which the new bytes begin, or an error if the
	// region refuses to grow further.
	Extend(n int) (base int, err error)

	// HeapLo is the address of the first byte of the region.
	HeapLo() int

	// HeapHi is one past the address of the last byte in the region.
	HeapHi() int

	// HeapSize is HeapHi - HeapLo.
	HeapSize() int

	// ReadWord and WriteWord perform the 32-bit loads and stores the
	// allocator's word codec needs. off must be 4-aligned and satisfy
	// HeapLo() <= off && off+4 <= HeapHi().
	ReadWord(off int) uint32
	WriteWord(off int, v uint32)

	// ReadBytes and WriteBytes give access to whole block payloads,
	// used by Reallocate's copy path and by diagnostics.
	ReadBytes(off, n int) []byte
	WriteBytes(off int, b []byte)
}
