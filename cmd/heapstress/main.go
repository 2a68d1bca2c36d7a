// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heapstress drives a Heap through random Allocate/Free/Reallocate
// traffic, periodically running Verify, in the shape of the teacher's
// dbm crash-test dummie.
package main

import (
	"flag"
	"log"
	"log/syslog"
	"math/rand"
	"os"
	"time"

	"github.com/JeongJongMun/heaplab/heap"
	"github.com/JeongJongMun/heaplab/sink"
)

var (
	oOrg      = flag.String("org", "explicit", "organization: explicit, segregated, or buddy")
	oFit      = flag.String("fit", "first", "fit policy: first, best, or worst (ignored for buddy)")
	oDuration = flag.Duration("d", 30*time.Second, "how long to run before exiting")
	oMaxLive  = flag.Int("max-live", 4096, "maximum number of simultaneously live blocks")
	oMaxSize  = flag.Int("max-size", 4096, "maximum payload size requested per allocation")
	oVerify   = flag.Int("verify-every", 500, "run Verify after this many operations")
	oSeed     = flag.Int64("seed", 1, "PRNG seed")
)

func parseOrg(s string) heap.Organization {
	switch s {
	case "explicit":
		return heap.Explicit
	case "segregated":
		return heap.Segregated
	case "buddy":
		return heap.BuddyOrg
	default:
		log.Fatalf("unknown -org %q", s)
		panic("unreachable")
	}
}

func parseFit(s string) heap.Fit {
	switch s {
	case "first":
		return heap.FirstFit
	case "best":
		return heap.BestFit
	case "worst":
		return heap.WorstFit
	default:
		log.Fatalf("unknown -fit %q", s)
		panic("unreachable")
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Flags() | log.Lshortfile)

	slg, err := syslog.NewLogger(syslog.LOG_USER|syslog.LOG_DEBUG, log.Lshortfile)
	if err != nil {
		slg = log.Default() // no syslog daemon available, e.g. in a container
	}

	cfg := heap.Config{Organization: parseOrg(*oOrg), Fit: parseFit(*oFit)}
	sk := sink.NewMemSink(0)
	h, err := heap.New(sk, cfg)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*oSeed))
	live := map[int]int{} // address -> requested size

	deadline := time.After(*oDuration)
	ops, allocs, frees, reallocs, oom := 0, 0, 0, 0, 0

	for {
		select {
		case <-deadline:
			goto done
		default:
		}

		addrs := make([]int, 0, len(live))
		for a := range live {
			addrs = append(addrs, a)
		}

		switch {
		case len(addrs) == 0 || rng.Intn(3) == 0:
			size := 1 + rng.Intn(*oMaxSize)
			bp, err := h.Allocate(size)
			if err != nil {
				oom++
				break
			}
			live[bp] = size
			allocs++
		case rng.Intn(2) == 0 && len(live) > 0:
			bp := addrs[rng.Intn(len(addrs))]
			newSize := 1 + rng.Intn(*oMaxSize)
			nbp, err := h.Reallocate(bp, newSize)
			if err != nil {
				oom++
				break
			}
			delete(live, bp)
			live[nbp] = newSize
			reallocs++
		default:
			bp := addrs[rng.Intn(len(addrs))]
			if err := h.Free(bp); err != nil {
				slg.Fatal(err)
			}
			delete(live, bp)
			frees++
		}

		if len(live) > *oMaxLive {
			for a := range live {
				if err := h.Free(a); err != nil {
					slg.Fatal(err)
				}
				delete(live, a)
				break
			}
		}

		ops++
		if ops%*oVerify == 0 {
			if _, err := h.Verify(nil); err != nil {
				slg.Fatal(err)
			}
		}
	}

done:
	if _, err := h.Verify(nil); err != nil {
		slg.Fatal(err)
	}

	log.Printf("org=%s fit=%s ops=%d allocs=%d frees=%d reallocs=%d oom=%d live=%d heap=%d",
		cfg.Organization, cfg.Fit, ops, allocs, frees, reallocs, oom, len(live), sk.HeapSize())
	os.Exit(0)
}
