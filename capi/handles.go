package main

import (
	"slices"
	"sync"
)

// handleTable maps opaque ids handed to C onto Go values. Ids increase
// monotonically and are never reused, so a stale or foreign id simply misses.
type handleTable[T any] struct {
	mu     sync.RWMutex
	nextID uintptr
	items  map[uintptr]T
}

// put stores v and returns its id.
func (h *handleTable[T]) put(v T) uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.items == nil {
		h.items = make(map[uintptr]T)
	}
	h.nextID++
	h.items[h.nextID] = v
	return h.nextID
}

func (h *handleTable[T]) get(id uintptr) (T, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	v, ok := h.items[id]
	return v, ok
}

// take removes and returns the value stored under id.
func (h *handleTable[T]) take(id uintptr) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.items[id]
	if ok {
		delete(h.items, id)
	}
	return v, ok
}

// drain removes every value, in id order.
func (h *handleTable[T]) drain() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]uintptr, 0, len(h.items))
	for id := range h.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.items[id])
		delete(h.items, id)
	}
	return out
}

func (h *handleTable[T]) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
