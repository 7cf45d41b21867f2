// Command server loads a road network from a GeoJSON feature collection or
// an OSM PBF extract, builds the route graph, and serves shortest-path
// queries over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/azybler/routegraph/pkg/api"
	"github.com/azybler/routegraph/pkg/geo"
	"github.com/azybler/routegraph/pkg/geojson"
	"github.com/azybler/routegraph/pkg/graph"
	"github.com/azybler/routegraph/pkg/osm"
	"github.com/azybler/routegraph/pkg/pq"
	"github.com/azybler/routegraph/pkg/routing"
)

func main() {
	geojsonPath := flag.String("geojson", "", "Path to a GeoJSON feature collection")
	pbfPath := flag.String("osm-pbf", "", "Path to an OSM PBF extract")
	bboxFlag := flag.String("bbox", "", "Bounding box minLat,minLng,maxLat,maxLng (OSM only)")
	heapName := flag.String("heap", "quaternary", "Priority queue: binary, quaternary, fibonacci, pairing")
	distName := flag.String("distance", "haversine", "Distance function: haversine, equirectangular")
	largestOnly := flag.Bool("largest-component", false, "Serve only the largest connected component")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	if (*geojsonPath == "") == (*pbfPath == "") {
		log.Fatal("exactly one of -geojson or -osm-pbf is required")
	}

	cfg := routing.DefaultConfig()
	var err error
	if cfg.Heap, err = heapFactory(*heapName); err != nil {
		log.Fatal(err)
	}
	if cfg.DistanceMeasurement, err = distanceFunc(*distName); err != nil {
		log.Fatal(err)
	}

	start := time.Now()

	polylines, err := loadPolylines(*geojsonPath, *pbfPath, *bboxFlag)
	if err != nil {
		log.Fatalf("Failed to load network: %v", err)
	}
	log.Printf("Loaded %d polylines", len(polylines))

	g := graph.NewRouteGraph()
	g.Build(polylines, cfg.DistanceMeasurement)
	log.Printf("Built graph: %d nodes, %d edges", g.NumNodes(), len(g.Neighbors)/2)

	if *largestOnly {
		nodes := graph.LargestComponent(g)
		g = graph.FilterToComponent(g, nodes)
		log.Printf("Kept largest component: %d nodes", g.NumNodes())
	}

	router := routing.NewRouter(g, cfg)

	// Reclaim memory from build-time temporaries before serving.
	runtime.GC()
	debug.FreeOSMemory()

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	serverCfg := api.DefaultConfig(addr)
	serverCfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes: g.NumNodes(),
		NumEdges: len(g.Neighbors) / 2,
	}

	handlers := api.NewHandlers(router, stats)
	srv := api.NewServer(serverCfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

func heapFactory(name string) (pq.Factory, error) {
	switch name {
	case "binary":
		return func() pq.Queue { return pq.NewBinaryHeap() }, nil
	case "quaternary":
		return func() pq.Queue { return pq.NewQuaternaryHeap() }, nil
	case "fibonacci":
		return func() pq.Queue { return pq.NewFibonacciHeap() }, nil
	case "pairing":
		return func() pq.Queue { return pq.NewPairingHeap() }, nil
	}
	return nil, fmt.Errorf("unknown heap %q", name)
}

func distanceFunc(name string) (graph.DistanceFunc, error) {
	switch name {
	case "haversine":
		return geo.Haversine, nil
	case "equirectangular":
		return geo.Equirectangular, nil
	}
	return nil, fmt.Errorf("unknown distance function %q", name)
}

func loadPolylines(geojsonPath, pbfPath, bboxFlag string) ([]graph.Polyline, error) {
	if geojsonPath != "" {
		f, err := os.Open(geojsonPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return geojson.ParseReader(f)
	}

	bbox, err := parseBBox(bboxFlag)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return osm.Parse(context.Background(), f, osm.ParseOptions{BBox: bbox})
}

func parseBBox(s string) (osm.BBox, error) {
	if s == "" {
		return osm.BBox{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return osm.BBox{}, fmt.Errorf("bbox must be minLat,minLng,maxLat,maxLng")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return osm.BBox{}, fmt.Errorf("bbox component %d: %w", i, err)
		}
		vals[i] = v
	}
	return osm.BBox{MinLat: vals[0], MinLng: vals[1], MaxLat: vals[2], MaxLng: vals[3]}, nil
}
