package graph

import "errors"

// ErrNotBuilt is returned by Expand and by router operations that require a
// prior call to Build.
var ErrNotBuilt = errors.New("route graph: build has not been called")

// OverlayEdge is a neighbor entry for a node added after the CSR was last
// (re)built.
type OverlayEdge struct {
	Neighbor NodeIndex
	Weight   float64
}

// RouteGraph bundles the coordinate interner, the CSR adjacency
// (Offsets/Neighbors/Weights), and the sparse overlay for nodes interned
// after the last build/expand. It is the single structure a Router owns
// exclusively; between builds a Router only writes to it when a query
// interns an endpoint that is not yet a node.
type RouteGraph struct {
	Interner *Interner

	Offsets   []uint32  // len N+1, monotonically non-decreasing, Offsets[0] == 0
	Neighbors []uint32  // len Offsets[N]
	Weights   []float64 // len Offsets[N]

	overlay [][]OverlayEdge // len N; only entries for nodes >= csrNodeCount are meaningful

	csrNodeCount uint32 // number of nodes covered by the last Build/Expand's Neighbors/Weights
	built        bool
}

// NewRouteGraph creates an empty, unbuilt RouteGraph.
func NewRouteGraph() *RouteGraph {
	return &RouteGraph{Interner: NewInterner()}
}

// NumNodes returns the number of distinct coordinates interned so far,
// including any interned after the last build/expand.
func (g *RouteGraph) NumNodes() int {
	return g.Interner.Len()
}

// Built reports whether Build has been called at least once.
func (g *RouteGraph) Built() bool {
	return g.built
}

// Intern assigns (or looks up) a node index for c. If the CSR has already
// been built, a brand-new coordinate gets a zero-length CSR slice (by
// duplicating the last Offsets entry) and an overlay slot, per spec §4.5;
// such a node is unreachable until a subsequent Expand connects it.
func (g *RouteGraph) Intern(c Coordinate) NodeIndex {
	if idx, ok := g.Interner.Lookup(c); ok {
		return idx
	}
	idx := g.Interner.Intern(c)
	if g.built {
		last := g.Offsets[len(g.Offsets)-1]
		g.Offsets = append(g.Offsets, last)
		g.overlay = append(g.overlay, nil)
	}
	return idx
}

// VisitNeighbors calls fn for every (neighbor, weight) pair reachable
// directly from u: from the CSR slice if u was covered by the last
// build/expand, otherwise from the sparse overlay (spec §4.5).
func (g *RouteGraph) VisitNeighbors(u NodeIndex, fn func(v NodeIndex, w float64)) {
	if u < g.csrNodeCount {
		start, end := g.Offsets[u], g.Offsets[u+1]
		for e := start; e < end; e++ {
			fn(g.Neighbors[e], g.Weights[e])
		}
		return
	}
	for _, oe := range g.overlay[u] {
		fn(oe.Neighbor, oe.Weight)
	}
}

// Build resets the interner, CSR, and overlay, then constructs a fresh CSR
// adjacency from polylines using dist as the edge-weight function. Per spec
// §4.2: polylines with fewer than 2 coordinates are ignored; consecutive
// duplicate coordinates yield zero-weight self-edges (harmless — the
// router's strict-less relaxation guard never follows them).
func (g *RouteGraph) Build(polylines []Polyline, dist DistanceFunc) {
	g.Interner.Reset()
	g.Offsets = nil
	g.Neighbors = nil
	g.Weights = nil
	g.overlay = nil
	g.csrNodeCount = 0
	g.built = false

	// Pass 1: intern endpoints, count directed degree per node.
	type segment struct {
		u, v NodeIndex
		a, b Coordinate
	}
	var segments []segment
	var degree []uint32

	internDuringBuild := func(c Coordinate) NodeIndex {
		idx, ok := g.Interner.Lookup(c)
		if ok {
			return idx
		}
		idx = g.Interner.Intern(c)
		degree = append(degree, 0)
		return idx
	}

	for _, pl := range polylines {
		if len(pl) < 2 {
			continue
		}
		for i := 0; i < len(pl)-1; i++ {
			a, b := pl[i], pl[i+1]
			u := internDuringBuild(a)
			v := internDuringBuild(b)
			degree[u]++
			degree[v]++
			segments = append(segments, segment{u, v, a, b})
		}
	}

	n := uint32(g.Interner.Len())

	// Prefix-sum offsets.
	offsets := make([]uint32, n+1)
	for i := uint32(0); i < n; i++ {
		offsets[i+1] = offsets[i] + degree[i]
	}

	neighbors := make([]uint32, offsets[n])
	weights := make([]float64, offsets[n])

	// Pass 2: write both directions using a per-node cursor.
	cursor := make([]uint32, n)
	copy(cursor, offsets[:n])
	for _, s := range segments {
		w := dist(s.a, s.b)
		neighbors[cursor[s.u]] = s.v
		weights[cursor[s.u]] = w
		cursor[s.u]++

		neighbors[cursor[s.v]] = s.u
		weights[cursor[s.v]] = w
		cursor[s.v]++
	}

	g.Offsets = offsets
	g.Neighbors = neighbors
	g.Weights = weights
	g.overlay = make([][]OverlayEdge, n)
	g.csrNodeCount = n
	g.built = true
}

// Expand merges additional polylines into an already-built graph. New
// coordinates are interned (extending Offsets with zero-length slices);
// every new segment is appended to the sparse overlay of both endpoints.
// The CSR is then rebuilt in full: existing CSR entries are copied first,
// then overlay entries are appended, and the overlay is cleared. Per spec
// §4.2, this trades a full rebuild for never having to consult an
// unbounded out-of-CSR structure on the common query path.
func (g *RouteGraph) Expand(polylines []Polyline, dist DistanceFunc) error {
	if !g.built {
		return ErrNotBuilt
	}

	for _, pl := range polylines {
		if len(pl) < 2 {
			continue
		}
		for i := 0; i < len(pl)-1; i++ {
			a, b := pl[i], pl[i+1]
			u := g.Intern(a)
			v := g.Intern(b)
			w := dist(a, b)
			g.overlay[u] = append(g.overlay[u], OverlayEdge{Neighbor: v, Weight: w})
			g.overlay[v] = append(g.overlay[v], OverlayEdge{Neighbor: u, Weight: w})
		}
	}

	n := uint32(g.Interner.Len())

	degree := make([]uint32, n)
	for u := uint32(0); u < n; u++ {
		if u < g.csrNodeCount {
			degree[u] += g.Offsets[u+1] - g.Offsets[u]
		}
		degree[u] += uint32(len(g.overlay[u]))
	}

	offsets := make([]uint32, n+1)
	for u := uint32(0); u < n; u++ {
		offsets[u+1] = offsets[u] + degree[u]
	}

	neighbors := make([]uint32, offsets[n])
	weights := make([]float64, offsets[n])

	cursor := make([]uint32, n)
	copy(cursor, offsets[:n])
	for u := uint32(0); u < n; u++ {
		if u < g.csrNodeCount {
			start, end := g.Offsets[u], g.Offsets[u+1]
			for e := start; e < end; e++ {
				neighbors[cursor[u]] = g.Neighbors[e]
				weights[cursor[u]] = g.Weights[e]
				cursor[u]++
			}
		}
		for _, oe := range g.overlay[u] {
			neighbors[cursor[u]] = oe.Neighbor
			weights[cursor[u]] = oe.Weight
			cursor[u]++
		}
	}

	g.Offsets = offsets
	g.Neighbors = neighbors
	g.Weights = weights
	g.overlay = make([][]OverlayEdge, n)
	g.csrNodeCount = n
	return nil
}
