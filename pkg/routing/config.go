package routing

import (
	"github.com/azybler/routegraph/pkg/geo"
	"github.com/azybler/routegraph/pkg/graph"
	"github.com/azybler/routegraph/pkg/pq"
)

// Config selects the pluggable pieces a Router is built from: the edge-weight
// function applied when building the graph, and the priority-queue variant
// used for every query's forward and reverse frontiers.
type Config struct {
	// DistanceMeasurement weighs a graph edge from its two endpoints. Applied
	// once per segment at build/expand time, not re-evaluated per query.
	DistanceMeasurement graph.DistanceFunc
	// Heap constructs the Queue used for each search direction. The router
	// allocates two per pooled queryState (one forward, one reverse).
	Heap pq.Factory
}

// DefaultConfig returns great-circle (Haversine) distance in kilometers and
// the 4-ary heap, the defaults named in the router's specification.
func DefaultConfig() Config {
	return Config{
		DistanceMeasurement: geo.Haversine,
		Heap:                func() pq.Queue { return pq.NewQuaternaryHeap() },
	}
}
