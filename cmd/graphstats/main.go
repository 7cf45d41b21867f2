// Command graphstats builds the route graph from a network file and prints
// connectivity and edge-length statistics, a quick sanity check on an
// extract before serving it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/azybler/routegraph/pkg/geo"
	"github.com/azybler/routegraph/pkg/geojson"
	"github.com/azybler/routegraph/pkg/graph"
	"github.com/azybler/routegraph/pkg/osm"
)

func main() {
	geojsonPath := flag.String("geojson", "", "Path to a GeoJSON feature collection")
	pbfPath := flag.String("osm-pbf", "", "Path to an OSM PBF extract")
	bboxFlag := flag.String("bbox", "", "Bounding box minLat,minLng,maxLat,maxLng (OSM only)")
	flag.Parse()

	if (*geojsonPath == "") == (*pbfPath == "") {
		log.Fatal("exactly one of -geojson or -osm-pbf is required")
	}

	polylines, err := loadPolylines(*geojsonPath, *pbfPath, *bboxFlag)
	if err != nil {
		log.Fatalf("Failed to load network: %v", err)
	}

	g := graph.NewRouteGraph()
	g.Build(polylines, geo.Haversine)

	numEdges := len(g.Neighbors) / 2
	fmt.Printf("polylines:  %d\n", len(polylines))
	fmt.Printf("nodes:      %d\n", g.NumNodes())
	fmt.Printf("edges:      %d\n", numEdges)

	sizes := graph.ComponentSizes(g)
	fmt.Printf("components: %d\n", len(sizes))
	if len(sizes) > 0 {
		fmt.Printf("largest:    %d nodes (%.1f%%)\n",
			sizes[0], 100*float64(sizes[0])/float64(g.NumNodes()))
	}

	if numEdges > 0 {
		// Each undirected edge appears twice in the CSR; summing every
		// directed entry and halving counts each once.
		var total float64
		minLen, maxLen := math.Inf(1), 0.0
		for _, w := range g.Weights {
			total += w
			if w < minLen {
				minLen = w
			}
			if w > maxLen {
				maxLen = w
			}
		}
		total /= 2
		fmt.Printf("total length: %.3f km\n", total)
		fmt.Printf("edge length:  mean %.4f km, min %.4f km, max %.4f km\n",
			total/float64(numEdges), minLen, maxLen)
	}
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
