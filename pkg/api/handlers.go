package api

import (
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"github.com/azybler/routegraph/pkg/graph"
	"github.com/azybler/routegraph/pkg/routing"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router *routing.Router
	stats  StatsResponse
}

// NewHandlers creates handlers with the given router.
func NewHandlers(router *routing.Router, stats StatsResponse) *Handlers {
	return &Handlers{
		router: router,
		stats:  stats,
	}
}

// HandleRoute handles POST /api/v1/route. The router itself offers no
// cancellation, so the handler acts as the watchdog: the synchronous
// GetRoute call runs in its own goroutine and races the request context's
// deadline. If the deadline wins, the response is request_timeout and the
// in-flight search is discarded (its pooled query state returns to the pool
// when the goroutine eventually finishes).
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Validate coordinates.
	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	start := graph.Coordinate{Lng: req.Start.Lng, Lat: req.Start.Lat}
	end := graph.Coordinate{Lng: req.End.Lng, Lat: req.End.Lat}

	type routeResult struct {
		path *routing.Path
		err  error
	}
	done := make(chan routeResult, 1)
	go func() {
		path, err := h.router.GetRoute(start, end)
		done <- routeResult{path: path, err: err}
	}()

	var result routeResult
	select {
	case result = <-done:
	case <-r.Context().Done():
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		return
	}

	if result.err != nil {
		if errors.Is(result.err, graph.ErrNotBuilt) {
			writeError(w, http.StatusServiceUnavailable, "graph_not_built", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if result.path == nil {
		writeError(w, http.StatusNotFound, "no_route_found", "")
		return
	}

	resp := RouteResponse{
		TotalDistanceKm: result.path.Cost,
		Geometry:        make([]LatLngJSON, len(result.path.Coordinates)),
	}
	for i, c := range result.path.Coordinates {
		resp.Geometry[i] = LatLngJSON{Lat: c.Lat, Lng: c.Lng}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
