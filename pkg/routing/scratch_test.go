package routing

import (
	"math"
	"testing"

	"github.com/azybler/routegraph/pkg/pq"
)

func newTestQueryState() *queryState {
	return newQueryState(func() pq.Queue { return pq.NewQuaternaryHeap() })
}

func TestQueryStateEnsureCapacityInitializesSentinels(t *testing.T) {
	qs := newTestQueryState()
	qs.ensureCapacity(5)

	for i := 0; i < 5; i++ {
		if qs.distFwd[i] != math.Inf(1) || qs.distRev[i] != math.Inf(1) {
			t.Fatalf("node %d not initialized to +Inf", i)
		}
		if qs.predFwd[i] != noNode || qs.predRev[i] != noNode {
			t.Fatalf("node %d predecessor not initialized to noNode", i)
		}
	}
}

func TestQueryStateEnsureCapacityGrowsWithoutClobbering(t *testing.T) {
	qs := newTestQueryState()
	qs.ensureCapacity(3)
	qs.distFwd[1] = 42
	qs.ensureCapacity(6)

	if qs.distFwd[1] != 42 {
		t.Fatalf("growing capacity clobbered existing entry: got %f, want 42", qs.distFwd[1])
	}
	if qs.distFwd[5] != math.Inf(1) {
		t.Fatalf("new slot 5 not initialized to +Inf")
	}
}

func TestQueryStateResetOnlyTouchesTouchedNodes(t *testing.T) {
	qs := newTestQueryState()
	qs.ensureCapacity(10)

	qs.touch(2)
	qs.distFwd[2] = 5
	qs.predFwd[2] = 0
	qs.settledFwd[2] = true
	qs.fwdPQ.Insert(5, 2)

	qs.reset()

	if qs.distFwd[2] != math.Inf(1) {
		t.Errorf("distFwd[2] after reset = %f, want +Inf", qs.distFwd[2])
	}
	if qs.predFwd[2] != noNode {
		t.Errorf("predFwd[2] after reset = %d, want noNode", qs.predFwd[2])
	}
	if qs.settledFwd[2] {
		t.Error("settledFwd[2] still true after reset")
	}
	if len(qs.touched) != 0 {
		t.Errorf("touched list not cleared: %v", qs.touched)
	}
	if qs.fwdPQ.Size() != 0 {
		t.Errorf("fwdPQ not cleared: size %d", qs.fwdPQ.Size())
	}
}

func TestQueryStateTouchDeduplicates(t *testing.T) {
	qs := newTestQueryState()
	qs.ensureCapacity(4)

	qs.touch(1)
	qs.distFwd[1] = 3
	qs.touch(1) // already finite, a second touch call must not re-append
	qs.distFwd[1] = 2

	if len(qs.touched) != 1 {
		t.Fatalf("touched = %v, want exactly one entry", qs.touched)
	}
}
