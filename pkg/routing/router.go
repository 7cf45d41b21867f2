// Package routing implements the bidirectional shortest-path search over a
// graph.RouteGraph, run on a pluggable pq.Queue variant.
package routing

import (
	"math"
	"sync"

	"github.com/azybler/routegraph/pkg/graph"
)

// Path is the result of a successful GetRoute call: a polyline whose first
// coordinate is the query's start point and whose last is its end point,
// plus the total cost under the router's distance_measurement.
type Path struct {
	Coordinates []graph.Coordinate
	Cost        float64
}

// Router runs shortest-path queries against one RouteGraph. Each GetRoute
// call privately owns a pooled queryState, following the teacher's
// Engine.qsPool pattern, so concurrent GetRoute calls whose endpoints are
// already nodes of the graph only read it. An endpoint not yet in the graph
// is interned by the query, which writes to the graph without
// synchronization; such a query is not safe alongside other queries.
type Router struct {
	graph  *graph.RouteGraph
	config Config
	qsPool sync.Pool
}

// NewRouter creates a Router over g using the given Config.
func NewRouter(g *graph.RouteGraph, config Config) *Router {
	r := &Router{graph: g, config: config}
	r.qsPool.New = func() any { return newQueryState(config.Heap) }
	return r
}

// BuildRouteGraph builds r's graph from polylines using the router's
// configured distance_measurement. Delegates to graph.RouteGraph.Build.
func (r *Router) BuildRouteGraph(polylines []graph.Polyline) {
	r.graph.Build(polylines, r.config.DistanceMeasurement)
}

// ExpandRouteGraph extends r's graph with additional polylines, delegating
// to graph.RouteGraph.Expand with the same configured distance_measurement.
func (r *Router) ExpandRouteGraph(polylines []graph.Polyline) error {
	return r.graph.Expand(polylines, r.config.DistanceMeasurement)
}

// GetRoute returns the minimum-cost polyline between start and end, or a nil
// Path (with nil error) if no route connects them. A query whose start and
// end intern to the same node is the trivial case and also reports no route.
// The only error this returns is graph.ErrNotBuilt; an unreachable pair is
// an ordinary "no route" result, not an error.
func (r *Router) GetRoute(start, end graph.Coordinate) (*Path, error) {
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
	qs.fwdPQ.Insert(0, startIdx)

	qs.touch(endIdx)
	qs.distRev[endIdx] = 0
	qs.predRev[endIdx] = endIdx
	qs.revPQ.Insert(0, endIdx)

	best, meet := r.search(qs)
	if meet == noNode {
		return nil, nil
	}

	nodes, ok := reconstructPath(qs, meet, startIdx, endIdx)
	if !ok {
		return nil, nil
	}

	coords := make([]graph.Coordinate, len(nodes))
	for i, n := range nodes {
		coords[i] = r.graph.Interner.Coord(n)
	}
	return &Path{Coordinates: coords, Cost: best}, nil
}

// search runs the bidirectional Dijkstra loop: alternate expanding whichever
// frontier is smaller (ties favor forward), and stop once the sum of the two
// frontiers' minimum keys can no longer beat the best meeting cost found so
// far — the peek-based termination rule, which every pq.Queue variant
// supports via PeekMinKey without extra bookkeeping.
func (r *Router) search(qs *queryState) (float64, graph.NodeIndex) {
	best := math.Inf(1)
	meet := noNode

	for qs.fwdPQ.Size() > 0 || qs.revPQ.Size() > 0 {
		fwdMin := qs.fwdPQ.PeekMinKey()
		revMin := qs.revPQ.PeekMinKey()
		if fwdMin+revMin >= best {
			break
		}

		if qs.fwdPQ.Size() > 0 && (qs.revPQ.Size() == 0 || qs.fwdPQ.Size() <= qs.revPQ.Size()) {
			r.expand(qs, true, &best, &meet)
		} else {
			r.expand(qs, false, &best, &meet)
		}
	}

	return best, meet
}

// expand pops and settles one node from the forward (fwd=true) or reverse
// (fwd=false) frontier, checks it as a candidate meeting point, and relaxes
// its neighbors; an improved neighbor the other side has already reached is
// checked as a meeting point too. The graph is undirected, so both
// directions walk the same adjacency via VisitNeighbors.
func (r *Router) expand(qs *queryState, fwd bool, best *float64, meet *graph.NodeIndex) {
	dist, settled, predOwn, pq := qs.distFwd, qs.settledFwd, qs.predFwd, qs.fwdPQ
	otherDist := qs.distRev
	if !fwd {
		dist, settled, predOwn, pq = qs.distRev, qs.settledRev, qs.predRev, qs.revPQ
		otherDist = qs.distFwd
	}

	u, ok := pq.ExtractMin()
	if !ok || settled[u] {
		return
	}
	settled[u] = true
	d := dist[u]

	if otherDist[u] < math.Inf(1) {
		if candidate := d + otherDist[u]; candidate < *best {
			*best = candidate
			*meet = u
		}
	}

	r.graph.VisitNeighbors(u, func(v graph.NodeIndex, w float64) {
		nd := d + w
		if nd < dist[v] {
			qs.touch(v)
			dist[v] = nd
			predOwn[v] = u
			if od := otherDist[v]; od < math.Inf(1) {
				if candidate := nd + od; candidate < *best {
					*best = candidate
					*meet = v
				}
			}
			pq.Insert(nd, v)
		}
	})
}

// reconstructPath walks predFwd from meet back to start and predRev from
// meet forward to end, splicing them into one start-to-end node sequence. A
// broken predecessor chain (which should not happen given a consistent
// queryState) is reported defensively as "no path" rather than panicking.
func reconstructPath(qs *queryState, meet, start, end graph.NodeIndex) ([]graph.NodeIndex, bool) {
	var fwdHalf []graph.NodeIndex
	node := meet
	for {
		fwdHalf = append(fwdHalf, node)
		if node == start {
			break
		}
		pred := qs.predFwd[node]
		if pred == noNode {
			return nil, false
		}
		node = pred
	}
	for i, j := 0, len(fwdHalf)-1; i < j; i, j = i+1, j-1 {
		fwdHalf[i], fwdHalf[j] = fwdHalf[j], fwdHalf[i]
	}

	node = meet
	for node != end {
		pred := qs.predRev[node]
		if pred == noNode {
			return nil, false
		}
		fwdHalf = append(fwdHalf, pred)
		node = pred
	}

	return fwdHalf, true
}
