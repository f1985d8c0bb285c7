// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched runs one projection callback per island, either serially or
// fanned out across goroutines. This is the intra-process analogue of the
// teacher's (gofem) MPI rank fan-out in fem.Run: islands share no nodes, so
// projecting them concurrently cannot race, while projection within one
// island stays Gauss-Seidel and sequential to preserve determinism (spec.md
// 4.3, 5).
package sched

import "sync"

// IslandRange is a [Lo, Hi) range into the flat edges array, one per
// island, as produced by cook's flood-fill.
type IslandRange struct {
	Lo, Hi int
}

// Project is called once per island with that island's [lo, hi) edge range.
type Project func(lo, hi int)

// Sequential iterates islands in stored order, invoking project on each.
func Sequential(islands []IslandRange, project Project) {
	for _, isl := range islands {
		project(isl.Lo, isl.Hi)
	}
}

// Parallel submits one task per island to a bounded goroutine pool (a
// counting semaphore of size maxWorkers) and waits for all of them to
// finish before returning, so the caller never observes partial progress,
// matching spec.md 5's "internal parallel scheduler joins all island tasks
// before step returns". maxWorkers <= 0 means unbounded (one goroutine per
// island).
func Parallel(islands []IslandRange, maxWorkers int, project Project) {
	if len(islands) == 0 {
		return
	}
	if len(islands) == 1 {
		project(islands[0].Lo, islands[0].Hi)
		return
	}

	var sem chan struct{}
	if maxWorkers > 0 {
		sem = make(chan struct{}, maxWorkers)
	}

	var wg sync.WaitGroup
	wg.Add(len(islands))
	for _, isl := range islands {
		isl := isl
		if sem != nil {
			sem <- struct{}{}
		}
		go func() {
			defer wg.Done()
			if sem != nil {
				defer func() { <-sem }()
			}
			project(isl.Lo, isl.Hi)
		}()
	}
	wg.Wait()
}
