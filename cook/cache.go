// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import (
	"encoding/binary"
	"math"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// cacheVersion is bumped whenever the cooking pipeline's output shape
// changes in a way that would make an old cache entry stale even though
// its key inputs are unchanged.
const cacheVersion = 1

// cache is the process-wide content-addressed Model cache (spec.md 4.5,
// 5): a read-mostly map from hash key to a cooked Model, synchronized with
// a RWMutex since multiple Solvers may be cooked concurrently.
var cache = struct {
	mu sync.RWMutex
	m  map[uint64]*Model
}{m: make(map[uint64]*Model)}

func cacheGet(desc BuildDesc) (*Model, bool) {
	key := hashDesc(desc)
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	m, ok := cache.m[key]
	return m, ok
}

func cachePut(desc BuildDesc, m *Model) {
	key := hashDesc(desc)
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.m[key] = m
}

// ClearCache empties the process-wide cooking cache. Exposed for tests and
// for long-running hosts that want to bound cache memory; clearing it never
// changes observable behavior, only whether the next Cook recomputes
// islands from scratch (spec.md 9).
func ClearCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.m = make(map[uint64]*Model)
}

// hashDesc hashes the semantically relevant portions of a BuildDesc per
// spec.md 4.5: topology indices, operator declarations, parameters, policy
// flags affecting layout, space descriptor, pack options, validation
// level, and a version tag. Of the state fields, only the position and
// velocity fields (under any of their aliases) are hashed, values included;
// positions feed the rest-length and rest-angle computation. All other
// state fields are left out of the key.
func hashDesc(desc BuildDesc) uint64 {
	h := xxhash.New()
	writeU64(h, uint64(cacheVersion))
	writeU64(h, uint64(desc.Topology.NodeCount))

	for _, rel := range desc.Topology.Relations {
		writeString(h, rel.Tag)
		writeU64(h, uint64(rel.Arity))
		for _, idx := range rel.Indices {
			writeU64(h, uint64(idx))
		}
	}

	for _, f := range desc.State {
		if f.Name != "position" && f.Name != "pos" && f.Name != "positions" &&
			f.Name != "velocity" && f.Name != "vel" && f.Name != "velocities" {
			continue
		}
		writeString(h, f.Name)
		for _, v := range f.Data {
			writeF64(h, v)
		}
	}

	params := append([]Param(nil), desc.Params...)
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	for _, p := range params {
		writeString(h, p.Name)
		writeF64(h, p.Value)
	}

	writeU64(h, uint64(desc.Policy.Exec.Layout))
	writeU64(h, uint64(desc.Policy.Exec.Backend))

	spaceKeys := make([]string, 0, len(desc.Space))
	for k := range desc.Space {
		spaceKeys = append(spaceKeys, k)
	}
	sort.Strings(spaceKeys)
	for _, k := range spaceKeys {
		writeString(h, k)
		writeString(h, desc.Space[k])
	}

	opKeys := make([]string, 0, len(desc.Operators))
	for k := range desc.Operators {
		opKeys = append(opKeys, k)
	}
	sort.Strings(opKeys)
	for _, k := range opKeys {
		writeString(h, k)
		if desc.Operators[k] {
			writeU64(h, 1)
		} else {
			writeU64(h, 0)
		}
	}

	writeU64(h, uint64(desc.Pack.BlockSize))
	if desc.Pack.LazyPack {
		writeU64(h, 1)
	} else {
		writeU64(h, 0)
	}
	writeU64(h, uint64(desc.Validate))

	return h.Sum64()
}

func writeU64(h *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeF64(h *xxhash.Digest, v float64) {
	writeU64(h, math.Float64bits(v))
}

func writeString(h *xxhash.Digest, s string) {
	writeU64(h, uint64(len(s)))
	h.Write([]byte(s))
}
