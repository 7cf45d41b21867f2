// Package geojson extracts routable polylines from GeoJSON feature
// collections. Like the osm package it is an input collaborator: it only
// hands coordinates over, leaving edge weighting to the router.
package geojson

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/azybler/routegraph/pkg/graph"
)

// Parse extracts every LineString and MultiLineString in the feature
// collection as polylines. Other geometry types (points, polygons) are
// skipped: they carry no routable segments. Line strings with fewer than
// two positions are dropped here for symmetry with the graph builder,
// which would ignore them anyway.
func Parse(data []byte) ([]graph.Polyline, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	var polylines []graph.Polyline
	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.LineString:
			if pl := toPolyline(geom); pl != nil {
				polylines = append(polylines, pl)
			}
		case orb.MultiLineString:
			for _, ls := range geom {
				if pl := toPolyline(ls); pl != nil {
					polylines = append(polylines, pl)
				}
			}
		}
	}
	return polylines, nil
}

// ParseReader reads the full contents of r and parses them as a feature
// collection.
func ParseReader(r io.Reader) ([]graph.Polyline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return Parse(data)
}

func toPolyline(ls orb.LineString) graph.Polyline {
	if len(ls) < 2 {
		return nil
	}
	pl := make(graph.Polyline, len(ls))
	for i, p := range ls {
		pl[i] = graph.Coordinate{Lng: p.Lon(), Lat: p.Lat()}
	}
	return pl
}
