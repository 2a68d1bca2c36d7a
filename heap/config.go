// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Geometry constants. WordSize and DoubleWordSize are the header/footer
// word size and the 8-byte payload alignment spec'd for this allocator.
// MinBlockSize is the smallest block any organization may produce
// (4 header + 4 pred + 4 succ + 4 footer, or the smallest buddy class).
// SegClasses is K, the number of segregated/buddy free-list roots.
const (
	WordSize          = 4
	DoubleWordSize    = 8
	MinBlockSize      = 16
	SegClasses        = 20
	DefaultChunkWords = 1024 // CHUNKSIZE(4096 bytes) / WordSize
)

// Organization selects the free-list index and block layout: a single
// explicit LIFO list, K size-class segregated lists, or a binary-buddy
// segregated structure. All three are compiled into every build;
// Organization picks one at Init time rather than at build time.
type Organization int

const (
	Explicit Organization = iota
	Segregated
	BuddyOrg
)

func (o Organization) String() string {
	switch o {
	case Explicit:
		return "explicit"
	case Segregated:
		return "segregated"
	case BuddyOrg:
		return "buddy"
	default:
		return "unknown"
	}
}

// Fit selects the placement policy used when walking a free list (or,
// for Segregated, each class list in turn). It has no effect on
// BuddyOrg, which always takes the head of the first non-empty class at
// or above the requested size.
type Fit int

const (
	FirstFit Fit = iota
	BestFit
	WorstFit
)

func (f Fit) String() string {
	switch f {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	default:
		return "unknown"
	}
}

// Config configures a Heap at New time, in the shape of the teacher's
// dbm.Options: a plain exported struct whose zero fields withDefaults
// fills in, not functional options.
type Config struct {
	// Organization selects the free-list index / block layout.
	Organization Organization

	// Fit selects the placement policy for Explicit and Segregated.
	// Ignored for BuddyOrg.
	Fit Fit

	// ChunkWords is the extend_heap granularity, in words. Zero
	// selects DefaultChunkWords (CHUNKSIZE/4).
	ChunkWords int

	// SegBias is the number of extra double-words folded into the
	// Segregated organization's first heap extension. The original
	// malloc-lab source hard-codes this bias to accommodate one
	// benchmark's allocation pattern; here it is a tunable left at its
	// default (0) unless a caller has a specific trace to match.
	SegBias int
}

func (c Config) withDefaults() Config {
	if c.ChunkWords <= 0 {
		c.ChunkWords = DefaultChunkWords
	}

	return c
}

func (c Config) chunkBytes() int {
	return c.ChunkWords * WordSize
}
