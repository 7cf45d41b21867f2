package routing

import (
	"math"

	"github.com/azybler/routegraph/pkg/graph"
	"github.com/azybler/routegraph/pkg/pq"
)

// noNode marks "no predecessor" in predFwd/predRev, mirroring the teacher's
// routing.noNode sentinel for the same purpose.
const noNode = graph.NodeIndex(math.MaxUint32)

// queryState holds everything one GetRoute call needs and nothing it
// doesn't: per-node tentative distances and predecessors for both search
// directions, settled flags for lazy PQ deletion, and the two PQ instances
// themselves. Grounded on the teacher's routing.QueryState, generalized from
// fixed-size uint32 arrays to float64 distances and a growable backing store
// (the graph can gain nodes between queries via query-time interning).
type queryState struct {
	distFwd, distRev       []float64
	predFwd, predRev       []graph.NodeIndex
	settledFwd, settledRev []bool
	touched                []graph.NodeIndex
	fwdPQ, revPQ           pq.Queue
}

func newQueryState(heap pq.Factory) *queryState {
	return &queryState{
		fwdPQ: heap(),
		revPQ: heap(),
	}
}

// ensureCapacity grows the scratch arrays to cover n nodes, initializing any
// newly added slots to their empty-query values.
func (qs *queryState) ensureCapacity(n int) {
	old := len(qs.distFwd)
	if old >= n {
		return
	}
	qs.distFwd = append(qs.distFwd, make([]float64, n-old)...)
	qs.distRev = append(qs.distRev, make([]float64, n-old)...)
	qs.predFwd = append(qs.predFwd, make([]graph.NodeIndex, n-old)...)
	qs.predRev = append(qs.predRev, make([]graph.NodeIndex, n-old)...)
	qs.settledFwd = append(qs.settledFwd, make([]bool, n-old)...)
	qs.settledRev = append(qs.settledRev, make([]bool, n-old)...)
	for i := old; i < n; i++ {
		qs.distFwd[i] = math.Inf(1)
		qs.distRev[i] = math.Inf(1)
		qs.predFwd[i] = noNode
		qs.predRev[i] = noNode
	}
}

// touch records node on the undo list so reset() restores it. Must be
// called before the first distance write to node on either side: the guard
// relies on both distances still holding +Inf to dedupe repeat touches.
func (qs *queryState) touch(node graph.NodeIndex) {
	if qs.distFwd[node] == math.Inf(1) && qs.distRev[node] == math.Inf(1) {
		qs.touched = append(qs.touched, node)
	}
}

// reset restores every touched node to its empty-query state instead of
// clearing the whole arrays, so reuse cost is proportional to the size of
// the last query, not the size of the graph.
func (qs *queryState) reset() {
	for _, node := range qs.touched {
		qs.distFwd[node] = math.Inf(1)
		qs.distRev[node] = math.Inf(1)
		qs.predFwd[node] = noNode
		qs.predRev[node] = noNode
		qs.settledFwd[node] = false
		qs.settledRev[node] = false
	}
	qs.touched = qs.touched[:0]
	qs.fwdPQ.Clear()
	qs.revPQ.Clear()
}
