package graph

import "sort"

// UnionFind implements a disjoint-set data structure with path halving and
// union by rank, used to find the graph's largest weakly connected
// component before serving queries against it.
type UnionFind struct {
	parent []uint32
	rank   []byte // byte is sufficient -- max rank ~30 for realistic graphs
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already the same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// LargestComponent returns the node indices belonging to the largest weakly
// connected component of g (both CSR and overlay edges, treated as
// undirected). Out of scope for the routing core per spec §1, but useful
// as a pre-serving hygiene pass: routing against a graph with many tiny
// disconnected slivers wastes most bidirectional Dijkstra queries on an
// immediate NoRoute.
func LargestComponent(g *RouteGraph) []NodeIndex {
	n := uint32(g.NumNodes())
	if n == 0 {
		return nil
	}

	uf := NewUnionFind(n)
	for u := uint32(0); u < n; u++ {
		g.VisitNeighbors(u, func(v NodeIndex, _ float64) {
			uf.Union(u, v)
		})
	}

	bestRoot := uint32(0)
	bestSize := uint32(0)
	for i := uint32(0); i < n; i++ {
		root := uf.Find(i)
		if uf.size[root] > bestSize {
			bestRoot = root
			bestSize = uf.size[root]
		}
	}

	nodes := make([]NodeIndex, 0, bestSize)
	for i := uint32(0); i < n; i++ {
		if uf.Find(i) == bestRoot {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

// ComponentSizes returns the size of every weakly connected component of g,
// largest first. A singleton node (interned but never connected) counts as
// its own component of size 1.
func ComponentSizes(g *RouteGraph) []int {
	n := uint32(g.NumNodes())
	if n == 0 {
		return nil
	}

	uf := NewUnionFind(n)
	for u := uint32(0); u < n; u++ {
		g.VisitNeighbors(u, func(v NodeIndex, _ float64) {
			uf.Union(u, v)
		})
	}

	var sizes []int
	for i := uint32(0); i < n; i++ {
		if uf.Find(i) == i {
			sizes = append(sizes, int(uf.size[i]))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

// FilterToComponent builds a fresh RouteGraph containing only the given
// node indices and the edges fully within that set. Weights are carried
// over from the source graph's CSR/overlay rather than recomputed, since
// the edge-weight function that produced them may no longer be in scope.
func FilterToComponent(g *RouteGraph, nodes []NodeIndex) *RouteGraph {
	out := NewRouteGraph()
	if len(nodes) == 0 {
		out.built = true
		return out
	}

	oldToNew := make(map[NodeIndex]NodeIndex, len(nodes))
	for newIdx, oldIdx := range nodes {
		oldToNew[oldIdx] = NodeIndex(newIdx)
	}
	for _, oldIdx := range nodes {
		out.Interner.Intern(g.Interner.Coord(oldIdx))
	}

	type edge struct {
		from, to NodeIndex
		weight   float64
	}
	var edges []edge
	for _, oldU := range nodes {
		newU := oldToNew[oldU]
		g.VisitNeighbors(oldU, func(oldV NodeIndex, w float64) {
			if newV, ok := oldToNew[oldV]; ok {
				edges = append(edges, edge{from: newU, to: newV, weight: w})
			}
		})
	}

	n := uint32(len(nodes))
	numEdges := uint32(len(edges))
	offsets := make([]uint32, n+1)
	for _, e := range edges {
		offsets[e.from+1]++
	}
	for i := uint32(1); i <= n; i++ {
		offsets[i] += offsets[i-1]
	}

	neighbors := make([]uint32, numEdges)
	weights := make([]float64, numEdges)
	cursor := make([]uint32, n)
	copy(cursor, offsets[:n])
	for _, e := range edges {
		idx := cursor[e.from]
		neighbors[idx] = e.to
		weights[idx] = e.weight
		cursor[e.from]++
	}

	out.Offsets = offsets
	out.Neighbors = neighbors
	out.Weights = weights
	out.overlay = make([][]OverlayEdge, n)
	out.csrNodeCount = n
	out.built = true
	return out
}
