package service

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TripPlan is the routing oracle's answer: a visitation order over the
// submitted coordinates plus path geometry and totals.
type TripPlan struct {
	// WaypointOrder holds, for each submitted coordinate (same indexing as
	// the request), its position in the optimized visit sequence. Index 0 is
	// the fixed start point.
	WaypointOrder []int
	// Geometry is the full path as GeoJSON; nil when the oracle gave none.
	Geometry *geojson.Geometry
	// TotalDistance is the trip length in meters.
	TotalDistance float64
	// TotalDuration is the estimated travel time in seconds.
	TotalDuration float64
}

// RouteOracle asks an external trip-optimization service for a visit order
// over a coordinate list. The first coordinate is the fixed start position.
// Oracle failures must never block a collector from seeing pickups; callers
// degrade to an unordered stop list.
type RouteOracle interface {
	OptimizeTrip(ctx context.Context, coords []orb.Point) (*TripPlan, error)
}
