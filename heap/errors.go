// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// ErrOutOfMemory is returned by Allocate/Reallocate when the backing
// Sink refuses to extend the heap any further.
type ErrOutOfMemory struct {
	Size int
}

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("heap: out of memory allocating %d bytes", e.Size)
}

// ErrInvalidHandle is returned by Free/Reallocate for the cheaply
// detectable subset of invalid handles: an address outside the current
// heap, a misaligned address, or one whose block is already free (a
// double free). Passing a handle that fails none of these checks but
// was never returned by Allocate is undefined, as spec'd.
type ErrInvalidHandle struct {
	Addr   int
	Reason string
}

func (e *ErrInvalidHandle) Error() string {
	return fmt.Sprintf("heap: invalid handle %#x: %s", e.Addr, e.Reason)
}

// ErrCorruption is raised only by Verify's diagnostic walk, never by
// the hot Allocate/Free/Reallocate paths.
type ErrCorruption struct {
	Addr   int
	Detail string
}

func (e *ErrCorruption) Error() string {
	return fmt.Sprintf("heap: corrupt heap at %#x: %s", e.Addr, e.Detail)
}
