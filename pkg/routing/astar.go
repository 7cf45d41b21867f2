package routing

import (
	"github.com/azybler/routegraph/pkg/graph"
)

// GetRouteAStar runs single-ended A* from start to end using heuristic as
// the admissible lower-bound estimate to the goal. It is an enrichment on
// top of the bidirectional core, not a replacement for it: the default
// GetRoute remains bidirectional Dijkstra, and nothing in the HTTP API or
// the bidirectional search calls this. Grounded on the same
// array-min-heap-driven relax loop as GetRoute, keyed by g(n)+heuristic(n)
// instead of g(n) alone.
func (r *Router) GetRouteAStar(start, end graph.Coordinate, heuristic graph.DistanceFunc) (*Path, error) {
	if !r.graph.Built() {
		return nil, graph.ErrNotBuilt
	}

	startIdx := r.graph.Intern(start)
	endIdx := r.graph.Intern(end)
	if startIdx == endIdx {
		return nil, nil
	}

	qs := r.qsPool.Get().(*queryState)
	defer func() {
		qs.reset()
		r.qsPool.Put(qs)
	}()
	qs.ensureCapacity(r.graph.NumNodes())

	qs.touch(startIdx)
	qs.distFwd[startIdx] = 0
	qs.predFwd[startIdx] = startIdx
	qs.fwdPQ.Insert(heuristic(start, end), startIdx)

	for qs.fwdPQ.Size() > 0 {
		u, ok := qs.fwdPQ.ExtractMin()
		if !ok || qs.settledFwd[u] {
			continue
		}
		qs.settledFwd[u] = true

		if u == endIdx {
			break
		}

		d := qs.distFwd[u]
		r.graph.VisitNeighbors(u, func(v graph.NodeIndex, w float64) {
			nd := d + w
			if nd < qs.distFwd[v] {
				qs.touch(v)
				qs.distFwd[v] = nd
				qs.predFwd[v] = u
				vCoord := r.graph.Interner.Coord(v)
				qs.fwdPQ.Insert(nd+heuristic(vCoord, end), v)
			}
		})
	}

	if !qs.settledFwd[endIdx] {
		return nil, nil
	}

	var nodes []graph.NodeIndex
	node := endIdx
	for {
		nodes = append(nodes, node)
		if node == startIdx {
			break
		}
		pred := qs.predFwd[node]
		if pred == noNode {
			return nil, nil
		}
		node = pred
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	coords := make([]graph.Coordinate, len(nodes))
	for i, n := range nodes {
		coords[i] = r.graph.Interner.Coord(n)
	}
	return &Path{Coordinates: coords, Cost: qs.distFwd[endIdx]}, nil
}
