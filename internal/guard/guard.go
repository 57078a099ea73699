// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package guard keeps track of the entities whose synchronization is in
// progress, so that a body write which synchronously re-triggers the same
// event does not recurse.
package guard

import "sync"

// Guard is a set of entity ids. The zero value is not usable; use New.
type Guard struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

// New returns an empty guard.
func New() *Guard {
	return &Guard{active: make(map[int64]struct{})}
}

// Acquire inserts id into the set. It returns ok == false, and a no-op
// release, when id is already held. The returned release removes id and may
// be called more than once.
func (g *Guard) Acquire(id int64) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.active[id]; held {
		return func() {}, false
	}
	g.active[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, id)
			g.mu.Unlock()
		})
	}, true
}

// Held reports whether id is currently held.
func (g *Guard) Held(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, held := g.active[id]
	return held
}

// Len returns how many ids are held.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.active)
}
