// Package pq implements the priority-queue family the router is
// parameterized over: binary heap, 4-ary heap, Fibonacci heap, and pairing
// heap, all sharing one capability set and one stability contract.
//
// Keys are float64 (including +Inf); values are node indices. Among
// entries with equal keys, extraction order is first-inserted-first-out —
// every variant implements this via a monotonically increasing per-queue
// insertion sequence compared lexicographically with the key, never by
// relying on a stable sort or insertion-order iteration.
package pq

import "math"

// Queue is the capability set every variant below implements.
type Queue interface {
	// Insert adds value with priority key.
	Insert(key float64, value uint32)
	// ExtractMin removes and returns the value with the minimum key. The
	// second return is false if the queue was empty.
	ExtractMin() (uint32, bool)
	// Size returns the number of live entries.
	Size() int
	// PeekMinKey returns the minimum key without extracting it, or +Inf if
	// the queue is empty.
	PeekMinKey() float64
	// Clear empties the queue while retaining its backing storage.
	Clear()
}

// Factory produces a fresh Queue. The router calls this once per search
// direction per query (or reuses a pooled instance via Clear).
type Factory func() Queue

// Inf is the sentinel PeekMinKey returns for an empty queue.
var Inf = math.Inf(1)

// less orders two (key, seq) pairs lexicographically: key first, then
// insertion sequence as a tiebreaker, giving FIFO behavior among equal keys.
func less(keyA float64, seqA uint64, keyB float64, seqB uint64) bool {
	if keyA != keyB {
		return keyA < keyB
	}
	return seqA < seqB
}
