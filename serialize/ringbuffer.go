// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

// SnapshotRing is a fixed-capacity holder of past snapshots, used for
// undo, replay, and desync recovery (spec.md §4.12). Index arithmetic
// over a pre-sized slice, the same single-consumer shape as
// event.ring, simplified further here since pushes and reads never
// interleave concurrently with a producer.
type SnapshotRing struct {
	entries    []Snapshot
	head       int
	count      int
	totalTaken int
}

// NewSnapshotRing returns a ring with room for capacity snapshots. A
// capacity of 0 disables the ring (spec.md §6: "0 disables").
func NewSnapshotRing(capacity int) *SnapshotRing {
	if capacity <= 0 {
		return &SnapshotRing{}
	}
	return &SnapshotRing{entries: make([]Snapshot, capacity)}
}

// Push inserts snap, evicting and returning the oldest entry if the
// ring was already full. ok is false if the ring has zero capacity
// (disabled) or nothing was evicted.
func (r *SnapshotRing) Push(snap Snapshot) (evicted Snapshot, ok bool) {
	if len(r.entries) == 0 {
		return Snapshot{}, false
	}
	idx := (r.head + r.count) % len(r.entries)
	if r.count == len(r.entries) {
		evicted = r.entries[r.head]
		ok = true
		r.head = (r.head + 1) % len(r.entries)
		r.count--
	}
	r.entries[idx] = snap
	r.count++
	r.totalTaken++
	return evicted, ok
}

// Latest returns the most recently pushed snapshot, if any.
func (r *SnapshotRing) Latest() (Snapshot, bool) {
	if r.count == 0 {
		return Snapshot{}, false
	}
	idx := (r.head + r.count - 1) % len(r.entries)
	return r.entries[idx], true
}

// Get returns the snapshot at logical index (0 = oldest retained),
// or false if index is out of range.
func (r *SnapshotRing) Get(index int) (Snapshot, bool) {
	if index < 0 || index >= r.count {
		return Snapshot{}, false
	}
	idx := (r.head + index) % len(r.entries)
	return r.entries[idx], true
}

// TotalTaken returns the lifetime count of snapshots pushed, including
// ones since evicted.
func (r *SnapshotRing) TotalTaken() int { return r.totalTaken }
