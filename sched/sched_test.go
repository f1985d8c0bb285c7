// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"sort"
	"sync"
	"testing"
)

func TestSequentialVisitsEveryIslandInOrder(t *testing.T) {
	islands := []IslandRange{{0, 2}, {2, 5}, {5, 9}}
	var visited []IslandRange
	Sequential(islands, func(lo, hi int) {
		visited = append(visited, IslandRange{lo, hi})
	})
	if len(visited) != len(islands) {
		t.Fatalf("got %d visits, want %d", len(visited), len(islands))
	}
	for i, isl := range islands {
		if visited[i] != isl {
			t.Fatalf("visit %d: got %v, want %v", i, visited[i], isl)
		}
	}
}

func TestParallelVisitsEveryIslandExactlyOnce(t *testing.T) {
	islands := []IslandRange{{0, 2}, {2, 5}, {5, 9}, {9, 12}, {12, 20}}
	var mu sync.Mutex
	var visited []IslandRange
	Parallel(islands, 2, func(lo, hi int) {
		mu.Lock()
		visited = append(visited, IslandRange{lo, hi})
		mu.Unlock()
	})
	if len(visited) != len(islands) {
		t.Fatalf("got %d visits, want %d", len(visited), len(islands))
	}
	sort.Slice(visited, func(i, j int) bool { return visited[i].Lo < visited[j].Lo })
	for i, isl := range islands {
		if visited[i] != isl {
			t.Fatalf("visit %d: got %v, want %v", i, visited[i], isl)
		}
	}
}

func TestParallelEmptyIslandsIsNoop(t *testing.T) {
	called := false
	Parallel(nil, 4, func(lo, hi int) { called = true })
	if called {
		t.Fatalf("project should not be called with zero islands")
	}
}

func TestParallelUnboundedWorkers(t *testing.T) {
	islands := []IslandRange{{0, 1}, {1, 2}, {2, 3}}
	count := 0
	var mu sync.Mutex
	Parallel(islands, 0, func(lo, hi int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	if count != 3 {
		t.Fatalf("got %d visits, want 3", count)
	}
}
