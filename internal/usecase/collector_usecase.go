package usecase

import (
	"context"

	"edrop/internal/domain/entity"

	"github.com/paulmach/orb/geojson"
)

// Stop tags distinguish how a pickup ended up in the plan.
const (
	// StopTagOptimized marks a stop ordered by the routing oracle.
	StopTagOptimized = "optimized"
	// StopTagFarAway marks a stop outside the collector's radius, appended
	// unordered after the optimized leg.
	StopTagFarAway = "far_away"
	// StopTagRaw marks a stop returned without any ordering, used when the
	// oracle is unavailable or nothing is in range.
	StopTagRaw = "raw"
)

// RouteQuery describes the collector's position and route preferences.
type RouteQuery struct {
	Latitude  float64
	Longitude float64

	// RadiusKm bounds the in-route partition. Zero means the configured
	// default radius.
	RadiusKm float64

	// IncludeIDs forces specific pickups into the route regardless of
	// distance.
	IncludeIDs []uint64
}

// RouteStop is one planned visit.
type RouteStop struct {
	ID       uint64              `json:"id"`
	Address  string              `json:"address"`
	Lat      float64             `json:"lat"`
	Lng      float64             `json:"lng"`
	ImageURL string              `json:"image_url,omitempty"`
	Status   entity.PickupStatus `json:"status"`
	Tag      string              `json:"tag"`
}

// RoutePlan is the planned tour over open pickups. Geometry is nil whenever
// the routing oracle could not produce a path; the stops are still returned.
type RoutePlan struct {
	Geometry      *geojson.Geometry `json:"route_geometry"`
	Stops         []*RouteStop      `json:"stops"`
	TotalDistance float64           `json:"total_distance"`
	TotalDuration float64           `json:"total_duration"`
	Message       string            `json:"message,omitempty"`
}

// SettlementResult reports what one pickup completion produced.
type SettlementResult struct {
	CreditsAwarded   int
	InventoryCreated int
	NewStatus        entity.PickupStatus
}

// CollectorUsecase defines the collector-facing fulfillment use cases.
type CollectorUsecase interface {
	// GetPendingPickups lists every pickup still waiting for collection.
	GetPendingPickups(ctx context.Context) ([]*entity.Pickup, error)

	// OptimizeRoute plans a visit order over open pickups. Routing is
	// advisory: oracle failure degrades to an unordered stop list.
	OptimizeRoute(ctx context.Context, query *RouteQuery) (*RoutePlan, error)

	// CompletePickup settles a pickup: transitions it to collected, clones
	// the manifest into warehouse inventory, credits the owning wallet and
	// appends an earn ledger entry, all atomically. A pickup settles at
	// most once; a second attempt fails with a conflict.
	CompletePickup(ctx context.Context, pickupID uint64) (*SettlementResult, error)
}
