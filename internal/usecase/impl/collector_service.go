package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"edrop/config"
	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/domain/service"
	"edrop/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// co2PerCredit converts credits to estimated kg of CO2 saved. A modeling
	// simplification, not a measured figure.
	co2PerCredit = 0.1

	// kmPerDegree approximates one degree of latitude. Only good enough for
	// the coarse in-range filter, never for navigation.
	kmPerDegree = 111.0

	// fallbackRadiusKm applies when neither the query nor the config carries
	// a radius.
	fallbackRadiusKm = 50.0
)

// collectorService implements the CollectorUsecase interface.
type collectorService struct {
	txManager   repository.TransactionManager
	routeOracle service.RouteOracle
	publisher   service.EventPublisher
	config      *config.Config
	logger      *slog.Logger
}

// CollectorServiceParams holds dependencies for CollectorService, injected by Fx.
type CollectorServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	RouteOracle service.RouteOracle
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCollectorService creates a new collector service instance.
func NewCollectorService(params CollectorServiceParams) usecase.CollectorUsecase {
	return &collectorService{
		txManager:   params.TxManager,
		routeOracle: params.RouteOracle,
		publisher:   params.Publisher,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// GetPendingPickups lists every pickup still waiting for collection.
func (srv *collectorService) GetPendingPickups(ctx context.Context) ([]*entity.Pickup, error) {
	var pickups []*entity.Pickup

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewPickupRepository().FindPickupsByStatus(ctx, entity.PickupScheduled)
		if err != nil {
			return errors.Wrap(err, "failed to find scheduled pickups")
		}
		pickups = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending pickups")
	}

	return pickups, nil
}

// OptimizeRoute plans a visit order over open pickups. Pickups inside the
// radius, plus any manually forced ids, go to the routing oracle; the rest
// are appended unordered. Oracle failure degrades to raw markers.
func (srv *collectorService) OptimizeRoute(ctx context.Context, query *usecase.RouteQuery) (*usecase.RoutePlan, error) {
	candidates, err := srv.GetPendingPickups(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &usecase.RoutePlan{
			Stops:   []*usecase.RouteStop{},
			Message: "No scheduled pickups found.",
		}, nil
	}

	inRoute, outOfRoute := srv.partition(candidates, query)
	if len(inRoute) == 0 {
		return rawPlan(outOfRoute, "No pickups within range. Showing locations without path."), nil
	}

	// The coordinate list starts at the collector's position. Co-located
	// pickups share one coordinate, so each coordinate maps to a queue of
	// pickups rather than a single one.
	coords := make([]orb.Point, 0, len(inRoute)+1)
	coords = append(coords, orb.Point{query.Longitude, query.Latitude})

	queues := make(map[orb.Point][]*entity.Pickup, len(inRoute))
	for _, pickup := range inRoute {
		point := orb.Point{pickup.Longitude, pickup.Latitude}
		coords = append(coords, point)
		queues[point] = append(queues[point], pickup)
	}

	trip, err := srv.routeOracle.OptimizeTrip(ctx, coords)
	if err != nil {
		srv.logger.Warn("routing oracle failed, returning unordered stops", "error", err)

		return rawPlan(candidates, "Routing service busy. Showing locations without path."), nil
	}

	// Invert the order table: visitOrder[p] is the input index visited at
	// position p.
	visitOrder := make([]int, len(trip.WaypointOrder))
	for inputIdx, position := range trip.WaypointOrder {
		if position >= 0 && position < len(visitOrder) {
			visitOrder[position] = inputIdx
		}
	}

	stops := make([]*usecase.RouteStop, 0, len(candidates))
	for _, inputIdx := range visitOrder {
		if inputIdx == 0 || inputIdx >= len(coords) {
			// Skip the collector's own start point.
			continue
		}

		point := coords[inputIdx]
		queue := queues[point]
		if len(queue) == 0 {
			continue
		}
		queues[point] = queue[1:]

		stops = append(stops, routeStop(queue[0], usecase.StopTagOptimized))
	}
	for _, pickup := range outOfRoute {
		stops = append(stops, routeStop(pickup, usecase.StopTagFarAway))
	}

	return &usecase.RoutePlan{
		Geometry:      trip.Geometry,
		Stops:         stops,
		TotalDistance: trip.TotalDistance,
		TotalDuration: trip.TotalDuration,
	}, nil
}

// CompletePickup settles a pickup atomically: inventory clone, status
// transition, wallet credit and earn ledger entry stand or fall together.
func (srv *collectorService) CompletePickup(ctx context.Context, pickupID uint64) (*usecase.SettlementResult, error) {
	var result *usecase.SettlementResult
	var owner *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		pickupRepo := repoFactory.NewPickupRepository()

		pickup, err := pickupRepo.FindPickupByID(ctx, pickupID)
		if err != nil {
			if errors.Is(err, repository.ErrPickupNotFound) {
				return domainerrors.ErrPickupNotFound
			}

			return errors.Wrap(err, "failed to find pickup")
		}

		// The conditional transition is the settlement guard: of two
		// concurrent completions only one observes scheduled -> collected.
		ok, err := pickupRepo.TransitionStatus(ctx, pickupID, entity.PickupScheduled, entity.PickupCollected)
		if err != nil {
			return errors.Wrap(err, "failed to transition pickup status")
		}
		if !ok {
			if pickup.Status.IsCollected() {
				return domainerrors.ErrPickupAlreadyCollected
			}

			return domainerrors.ErrConflict.WithDetails(
				fmt.Sprintf("pickup is %s", pickup.Status))
		}

		now := time.Now()
		logs := make([]*entity.InventoryLog, 0, len(pickup.Items))
		for _, item := range pickup.Items {
			logs = append(logs, &entity.InventoryLog{
				PickupID:  pickup.ID,
				ItemName:  item.ItemName,
				Category:  entity.CategoryForItem(item.ItemName),
				Value:     item.CreditValue,
				Status:    entity.InventoryReceived,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err := repoFactory.NewInventoryRepository().CreateInventoryLogs(ctx, logs); err != nil {
			return errors.Wrap(err, "failed to create inventory logs")
		}

		totalCredits := pickup.TotalCredits()

		profileRepo := repoFactory.NewProfileRepository()
		profile, err := profileRepo.FindProfileByID(ctx, pickup.ProfileID)
		if err != nil {
			return errors.Wrap(err, "failed to find owning profile")
		}
		profile.CarbonBalance += totalCredits
		profile.CO2Saved += float64(totalCredits) * co2PerCredit
		profile.UpdatedAt = now
		if err := profileRepo.UpdateProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to credit profile")
		}

		entry := &entity.LedgerEntry{
			ProfileID:   profile.ID,
			Amount:      totalCredits,
			Type:        entity.LedgerEarn,
			Description: fmt.Sprintf("Credits earned from pickup ORD-%03d (%d items)", pickup.ID, len(pickup.Items)),
			CreatedAt:   now,
		}
		if err := repoFactory.NewLedgerRepository().CreateLedgerEntry(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to append ledger entry")
		}

		owner = profile
		result = &usecase.SettlementResult{
			CreditsAwarded:   totalCredits,
			InventoryCreated: len(logs),
			NewStatus:        entity.PickupCollected,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.publishCollected(ctx, pickupID, owner.ID, result.CreditsAwarded)

	return result, nil
}

func (srv *collectorService) publishCollected(ctx context.Context, pickupID, profileID uint64, credits int) {
	event := &service.PickupEvent{
		EventType: service.EventPickupCollected,
		PickupID:  pickupID,
		ProfileID: profileID,
		Credits:   credits,
		Message:   fmt.Sprintf("Your pickup was collected. %d credits were added to your wallet.", credits),
	}
	if err := srv.publisher.PublishPickupEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish pickup event",
			"event_type", event.EventType,
			"pickup_id", event.PickupID,
			"error", err)
	}
}

// partition splits candidates into the in-route set (within radius, or
// manually forced in) and the rest.
func (srv *collectorService) partition(candidates []*entity.Pickup, query *usecase.RouteQuery) (inRoute, outOfRoute []*entity.Pickup) {
	radius := query.RadiusKm
	if radius <= 0 {
		radius = srv.defaultRadiusKm()
	}

	forced := make(map[uint64]struct{}, len(query.IncludeIDs))
	for _, id := range query.IncludeIDs {
		forced[id] = struct{}{}
	}

	for _, pickup := range candidates {
		dist := approxDistanceKm(query.Latitude, query.Longitude, pickup.Latitude, pickup.Longitude)
		if _, ok := forced[pickup.ID]; ok || dist <= radius {
			inRoute = append(inRoute, pickup)
		} else {
			outOfRoute = append(outOfRoute, pickup)
		}
	}

	return inRoute, outOfRoute
}

func (srv *collectorService) defaultRadiusKm() float64 {
	if srv.config != nil && srv.config.RouteOracle != nil && srv.config.RouteOracle.DefaultRadiusKm > 0 {
		return srv.config.RouteOracle.DefaultRadiusKm
	}

	return fallbackRadiusKm
}

// approxDistanceKm is a flat-earth estimate: Euclidean distance in degrees
// scaled by km-per-degree. Acceptable as a coarse local filter only.
func approxDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	return math.Sqrt(dLat*dLat+dLon*dLon) * kmPerDegree
}

func rawPlan(pickups []*entity.Pickup, message string) *usecase.RoutePlan {
	stops := make([]*usecase.RouteStop, 0, len(pickups))
	for _, pickup := range pickups {
		stops = append(stops, routeStop(pickup, usecase.StopTagRaw))
	}

	return &usecase.RoutePlan{
		Stops:   stops,
		Message: message,
	}
}

func routeStop(pickup *entity.Pickup, tag string) *usecase.RouteStop {
	return &usecase.RouteStop{
		ID:       pickup.ID,
		Address:  pickup.AddressText,
		Lat:      pickup.Latitude,
		Lng:      pickup.Longitude,
		ImageURL: pickup.ImageURL,
		Status:   pickup.Status,
		Tag:      tag,
	}
}
