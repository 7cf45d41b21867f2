package routing

import (
	"errors"
	"math"
	"testing"

	"github.com/azybler/routegraph/pkg/graph"
	"github.com/azybler/routegraph/pkg/pq"
)

// planarDist is a simple Euclidean distance used throughout so expected
// costs are easy to hand-compute.
func planarDist(a, b graph.Coordinate) float64 {
	dx := a.Lng - b.Lng
	dy := a.Lat - b.Lat
	return math.Sqrt(dx*dx + dy*dy)
}

func newTestRouter(polylines []graph.Polyline, heap pq.Factory) *Router {
	g := graph.NewRouteGraph()
	cfg := Config{DistanceMeasurement: planarDist, Heap: heap}
	if heap == nil {
		cfg.Heap = func() pq.Queue { return pq.NewQuaternaryHeap() }
	}
	r := NewRouter(g, cfg)
	r.BuildRouteGraph(polylines)
	return r
}

func TestGetRouteBeforeBuildFails(t *testing.T) {
	g := graph.NewRouteGraph()
	r := NewRouter(g, DefaultConfig())
	_, err := r.GetRoute(graph.Coordinate{}, graph.Coordinate{Lng: 1})
	if !errors.Is(err, graph.ErrNotBuilt) {
		t.Fatalf("GetRoute before build = %v, want ErrNotBuilt", err)
	}
}

// TestLShapedRoute: an L-shaped network where the only path from corner to
// corner runs through the bend.
func TestLShapedRoute(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
		{{Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}},
	}, nil)

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 1, Lat: 1})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path == nil {
		t.Fatal("expected a path, got none")
	}
	want := []graph.Coordinate{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}}
	if len(path.Coordinates) != len(want) {
		t.Fatalf("Coordinates = %v, want %v", path.Coordinates, want)
	}
	for i := range want {
		if path.Coordinates[i] != want[i] {
			t.Fatalf("Coordinates[%d] = %v, want %v", i, path.Coordinates[i], want[i])
		}
	}
	if math.Abs(path.Cost-2) > 1e-9 {
		t.Errorf("Cost = %f, want 2", path.Cost)
	}
}

// TestDirectVsDetour: a direct short edge competes with a longer detour
// through an intermediate node; the router must prefer the cheaper option.
func TestDirectVsDetour(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 10, Lat: 0}}, // direct, cost 10
		{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 20}},
		{{Lng: 0, Lat: 20}, {Lng: 10, Lat: 0}}, // detour, cost 20 + sqrt(500) > 10
	}, nil)

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 10, Lat: 0})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path == nil {
		t.Fatal("expected a path")
	}
	if len(path.Coordinates) != 2 {
		t.Fatalf("expected the direct 2-point path, got %v", path.Coordinates)
	}
	if math.Abs(path.Cost-10) > 1e-9 {
		t.Errorf("Cost = %f, want 10", path.Cost)
	}
}

// TestDisconnectedComponents: no edge connects the two components, so
// GetRoute must return a nil Path and a nil error (absence is not an error).
func TestDisconnectedComponents(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
		{{Lng: 100, Lat: 100}, {Lng: 101, Lat: 100}},
	}, nil)

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 100, Lat: 100})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path != nil {
		t.Fatalf("expected no path, got %v", path)
	}
}

// TestIdenticalEndpoints: start equals end is the trivial case and reports
// no route, without ever touching the search machinery.
func TestIdenticalEndpoints(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
	}, nil)

	p := graph.Coordinate{Lng: 0, Lat: 0}
	path, err := r.GetRoute(p, p)
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path != nil {
		t.Fatalf("expected no route for identical endpoints, got %v", path)
	}
}

// TestReversibility: get_route(e, s) returns the exact reverse coordinate
// sequence of get_route(s, e), with equal cost.
func TestReversibility(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
		{{Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}},
		{{Lng: 1, Lat: 1}, {Lng: 2, Lat: 1}},
	}, nil)

	s := graph.Coordinate{Lng: 0, Lat: 0}
	e := graph.Coordinate{Lng: 2, Lat: 1}

	forward, err := r.GetRoute(s, e)
	if err != nil || forward == nil {
		t.Fatalf("GetRoute(s,e) = %v, %v", forward, err)
	}
	backward, err := r.GetRoute(e, s)
	if err != nil || backward == nil {
		t.Fatalf("GetRoute(e,s) = %v, %v", backward, err)
	}

	if math.Abs(forward.Cost-backward.Cost) > 1e-9 {
		t.Errorf("costs differ: forward=%f backward=%f", forward.Cost, backward.Cost)
	}
	if len(forward.Coordinates) != len(backward.Coordinates) {
		t.Fatalf("coordinate counts differ: %d vs %d", len(forward.Coordinates), len(backward.Coordinates))
	}
	n := len(forward.Coordinates)
	for i := 0; i < n; i++ {
		if forward.Coordinates[i] != backward.Coordinates[n-1-i] {
			t.Fatalf("backward path is not the exact reverse at index %d", i)
		}
	}
}

// TestSelfLoopTolerated: a degenerate zero-length segment at a node must not
// break routing through that node, nor leak duplicate coordinates into the
// returned polyline.
func TestSelfLoopTolerated(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 2, Lat: 0}},
	}, nil)

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 2, Lat: 0})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path == nil {
		t.Fatal("expected a path through the self-looped node")
	}
	if math.Abs(path.Cost-2) > 1e-9 {
		t.Errorf("Cost = %f, want 2", path.Cost)
	}
	for i := 1; i < len(path.Coordinates); i++ {
		if path.Coordinates[i] == path.Coordinates[i-1] {
			t.Errorf("consecutive duplicate coordinate at %d: %v", i, path.Coordinates[i])
		}
	}
}

// TestReverseSegmentOrientation: segment direction in the input is
// irrelevant; the graph is undirected regardless of how each polyline was
// digitized.
func TestReverseSegmentOrientation(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 1, Lat: 0}, {Lng: 0, Lat: 0}},
		{{Lng: 2, Lat: 0}, {Lng: 1, Lat: 0}},
	}, nil)

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 2, Lat: 0})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path == nil {
		t.Fatal("expected a path")
	}
	want := []graph.Coordinate{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 2, Lat: 0}}
	if len(path.Coordinates) != len(want) {
		t.Fatalf("Coordinates = %v, want %v", path.Coordinates, want)
	}
	for i := range want {
		if path.Coordinates[i] != want[i] {
			t.Fatalf("Coordinates[%d] = %v, want %v", i, path.Coordinates[i], want[i])
		}
	}
	if math.Abs(path.Cost-2) > 1e-9 {
		t.Errorf("Cost = %f, want 2", path.Cost)
	}
}

// TestQueryTimeInternUnreachable: a point with no nearby segment interns to
// a fresh, edgeless node, so every route to/from it is absent.
func TestQueryTimeInternUnreachable(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
	}, nil)

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 99, Lat: 99})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path != nil {
		t.Fatalf("expected no path to an isolated point, got %v", path)
	}
}

// TestPQEquivalence: every PQ variant must agree on total route cost for the
// same query against the same graph.
func TestPQEquivalence(t *testing.T) {
	polylines := []graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
		{{Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}},
		{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 1}},
		{{Lng: 0, Lat: 1}, {Lng: 1, Lat: 1}},
	}
	start := graph.Coordinate{Lng: 0, Lat: 0}
	end := graph.Coordinate{Lng: 1, Lat: 1}

	variants := map[string]pq.Factory{
		"binary":     func() pq.Queue { return pq.NewBinaryHeap() },
		"quaternary": func() pq.Queue { return pq.NewQuaternaryHeap() },
		"fibonacci":  func() pq.Queue { return pq.NewFibonacciHeap() },
		"pairing":    func() pq.Queue { return pq.NewPairingHeap() },
	}

	var reference float64
	first := true
	for name, heap := range variants {
		r := newTestRouter(polylines, heap)
		path, err := r.GetRoute(start, end)
		if err != nil || path == nil {
			t.Fatalf("%s: GetRoute = %v, %v", name, path, err)
		}
		if first {
			reference = path.Cost
			first = false
			continue
		}
		if math.Abs(path.Cost-reference) > 1e-9 {
			t.Errorf("%s: cost = %f, want %f", name, path.Cost, reference)
		}
	}
}

// TestExpandThenRoute verifies that a route crossing a node added via
// Expand after the initial Build works as if it had always been present.
func TestExpandThenRoute(t *testing.T) {
	g := graph.NewRouteGraph()
	r := NewRouter(g, Config{DistanceMeasurement: planarDist, Heap: func() pq.Queue { return pq.NewQuaternaryHeap() }})
	r.BuildRouteGraph([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
	})
	if err := r.ExpandRouteGraph([]graph.Polyline{
		{{Lng: 1, Lat: 0}, {Lng: 2, Lat: 0}},
	}); err != nil {
		t.Fatalf("ExpandRouteGraph: %v", err)
	}

	path, err := r.GetRoute(graph.Coordinate{Lng: 0, Lat: 0}, graph.Coordinate{Lng: 2, Lat: 0})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if path == nil {
		t.Fatal("expected a path spanning the expanded segment")
	}
	if math.Abs(path.Cost-2) > 1e-9 {
		t.Errorf("Cost = %f, want 2", path.Cost)
	}
}

// TestConcurrentQueries exercises the sync.Pool-backed queryState sharing:
// many goroutines issuing GetRoute against one Router must not corrupt each
// other's scratch state.
func TestConcurrentQueries(t *testing.T) {
	r := newTestRouter([]graph.Polyline{
		{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}},
		{{Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}},
	}, nil)

	start := graph.Coordinate{Lng: 0, Lat: 0}
	end := graph.Coordinate{Lng: 1, Lat: 1}

	done := make(chan error, 32)
	for i := 0; i < 32; i++ {
		go func() {
			path, err := r.GetRoute(start, end)
			if err != nil {
				done <- err
				return
			}
			if path == nil || math.Abs(path.Cost-2) > 1e-9 {
				done <- errBadConcurrentResult
				return
			}
			done <- nil
		}()
	}
	for i := 0; i < 32; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent GetRoute failed: %v", err)
		}
	}
}

var errBadConcurrentResult = errors.New("unexpected concurrent route result")
