package impl

import (
	"context"
	"testing"

	"edrop/config"
	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/domain/service"
	mockRepo "edrop/internal/mocks/repository"
	mockSvc "edrop/internal/mocks/service"
	"edrop/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCollectorService(
	factory *mockRepo.StubRepositoryFactory,
	oracle service.RouteOracle,
	publisher service.EventPublisher,
) usecase.CollectorUsecase {
	return NewCollectorService(CollectorServiceParams{
		TxManager:   &mockRepo.StubTransactionManager{Factory: factory},
		RouteOracle: oracle,
		Publisher:   publisher,
		Config: &config.Config{
			RouteOracle: &config.RouteOracleConfig{DefaultRadiusKm: 50},
		},
		Logger: newDiscardLogger(),
	})
}

func scheduledPickup(id, profileID uint64, lat, lng float64, items ...*entity.PickupItem) *entity.Pickup {
	return &entity.Pickup{
		ID:        id,
		ProfileID: profileID,
		Status:    entity.PickupScheduled,
		Latitude:  lat,
		Longitude: lng,
		Items:     items,
	}
}

func TestCollectorService_CompletePickup_Settlement(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	mockLedgerRepo := mockRepo.NewMockLedgerRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo:    mockPickupRepo,
		ProfileRepo:   mockProfileRepo,
		InventoryRepo: mockInventoryRepo,
		LedgerRepo:    mockLedgerRepo,
	}, nil, mockPublisher)

	ctx := context.Background()
	pickup := scheduledPickup(1, 10, 13.75, 100.50,
		&entity.PickupItem{ItemName: "laptop", CreditValue: 500},
		&entity.PickupItem{ItemName: "keyboard", CreditValue: 80},
	)

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(pickup, nil)
	mockPickupRepo.On("TransitionStatus", ctx, uint64(1), entity.PickupScheduled, entity.PickupCollected).
		Return(true, nil)
	mockInventoryRepo.On("CreateInventoryLogs", ctx, mock.MatchedBy(func(logs []*entity.InventoryLog) bool {
		return len(logs) == 2 &&
			logs[0].Category == "Laptop" && logs[0].Value == 500 &&
			logs[0].Status == entity.InventoryReceived &&
			logs[1].Category == "Electronics" && logs[1].Value == 80
	})).Return(nil)
	mockProfileRepo.On("FindProfileByID", ctx, uint64(10)).
		Return(&entity.Profile{ID: 10, CarbonBalance: 0, CO2Saved: 0}, nil)
	mockProfileRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.CarbonBalance == 580 && p.CO2Saved == 58.0
	})).Return(nil)
	mockLedgerRepo.On("CreateLedgerEntry", ctx, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
		return e.Type == entity.LedgerEarn && e.Amount == 580 && e.ProfileID == 10
	})).Return(nil)
	mockPublisher.On("PublishPickupEvent", ctx, mock.AnythingOfType("*service.PickupEvent")).
		Return(nil)

	result, err := svc.CompletePickup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 580, result.CreditsAwarded)
	assert.Equal(t, 2, result.InventoryCreated)
	assert.Equal(t, entity.PickupCollected, result.NewStatus)
}

func TestCollectorService_CompletePickup_AlreadyCollected(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, nil, nil)

	ctx := context.Background()
	collected := &entity.Pickup{ID: 1, ProfileID: 10, Status: entity.PickupCollected}

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(collected, nil)
	mockPickupRepo.On("TransitionStatus", ctx, uint64(1), entity.PickupScheduled, entity.PickupCollected).
		Return(false, nil)

	_, err := svc.CompletePickup(ctx, 1)
	assert.ErrorIs(t, err, domainerrors.ErrPickupAlreadyCollected)
}

func TestCollectorService_CompletePickup_NotFound(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, nil, nil)

	ctx := context.Background()
	mockPickupRepo.On("FindPickupByID", ctx, uint64(99)).
		Return(nil, repository.ErrPickupNotFound)

	_, err := svc.CompletePickup(ctx, 99)
	assert.ErrorIs(t, err, domainerrors.ErrPickupNotFound)
}

func TestCollectorService_OptimizeRoute_EmptyCandidates(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, nil, nil)

	ctx := context.Background()
	mockPickupRepo.On("FindPickupsByStatus", ctx, entity.PickupScheduled).
		Return([]*entity.Pickup{}, nil)

	plan, err := svc.OptimizeRoute(ctx, &usecase.RouteQuery{Latitude: 13.75, Longitude: 100.50})
	require.NoError(t, err)
	assert.Empty(t, plan.Stops)
	assert.Nil(t, plan.Geometry)
}

func TestCollectorService_OptimizeRoute_OrdersByOracle(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockOracle := mockSvc.NewMockRouteOracle(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, mockOracle, nil)

	ctx := context.Background()
	near1 := scheduledPickup(1, 10, 13.76, 100.51)
	near2 := scheduledPickup(2, 11, 13.74, 100.49)
	far := scheduledPickup(3, 12, 18.79, 98.98) // Chiang Mai, way out of range

	mockPickupRepo.On("FindPickupsByStatus", ctx, entity.PickupScheduled).
		Return([]*entity.Pickup{near1, near2, far}, nil)

	// The oracle visits near2 before near1.
	mockOracle.On("OptimizeTrip", ctx, mock.Anything).Return(&service.TripPlan{
		WaypointOrder: []int{0, 2, 1},
		TotalDistance: 4200,
		TotalDuration: 900,
	}, nil)

	plan, err := svc.OptimizeRoute(ctx, &usecase.RouteQuery{Latitude: 13.75, Longitude: 100.50})
	require.NoError(t, err)
	require.Len(t, plan.Stops, 3)
	assert.Equal(t, uint64(2), plan.Stops[0].ID)
	assert.Equal(t, usecase.StopTagOptimized, plan.Stops[0].Tag)
	assert.Equal(t, uint64(1), plan.Stops[1].ID)
	assert.Equal(t, uint64(3), plan.Stops[2].ID)
	assert.Equal(t, usecase.StopTagFarAway, plan.Stops[2].Tag)
	assert.Equal(t, 4200.0, plan.TotalDistance)
}

func TestCollectorService_OptimizeRoute_ManualIncludeOverridesDistance(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockOracle := mockSvc.NewMockRouteOracle(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, mockOracle, nil)

	ctx := context.Background()
	far := scheduledPickup(3, 12, 18.79, 98.98)

	mockPickupRepo.On("FindPickupsByStatus", ctx, entity.PickupScheduled).
		Return([]*entity.Pickup{far}, nil)
	mockOracle.On("OptimizeTrip", ctx, mock.Anything).Return(&service.TripPlan{
		WaypointOrder: []int{0, 1},
	}, nil)

	plan, err := svc.OptimizeRoute(ctx, &usecase.RouteQuery{
		Latitude:   13.75,
		Longitude:  100.50,
		IncludeIDs: []uint64{3},
	})
	require.NoError(t, err)
	require.Len(t, plan.Stops, 1)
	assert.Equal(t, uint64(3), plan.Stops[0].ID)
	assert.Equal(t, usecase.StopTagOptimized, plan.Stops[0].Tag)
}

func TestCollectorService_OptimizeRoute_CoLocatedPickupsAllKept(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockOracle := mockSvc.NewMockRouteOracle(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, mockOracle, nil)

	ctx := context.Background()
	// Two pickups at the exact same coordinate must both survive ordering.
	twinA := scheduledPickup(1, 10, 13.76, 100.51)
	twinB := scheduledPickup(2, 11, 13.76, 100.51)

	mockPickupRepo.On("FindPickupsByStatus", ctx, entity.PickupScheduled).
		Return([]*entity.Pickup{twinA, twinB}, nil)
	mockOracle.On("OptimizeTrip", ctx, mock.Anything).Return(&service.TripPlan{
		WaypointOrder: []int{0, 1, 2},
	}, nil)

	plan, err := svc.OptimizeRoute(ctx, &usecase.RouteQuery{Latitude: 13.75, Longitude: 100.50})
	require.NoError(t, err)
	require.Len(t, plan.Stops, 2)
	assert.Equal(t, uint64(1), plan.Stops[0].ID)
	assert.Equal(t, uint64(2), plan.Stops[1].ID)
}

func TestCollectorService_OptimizeRoute_OracleFailureDegrades(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockOracle := mockSvc.NewMockRouteOracle(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, mockOracle, nil)

	ctx := context.Background()
	near := scheduledPickup(1, 10, 13.76, 100.51)

	mockPickupRepo.On("FindPickupsByStatus", ctx, entity.PickupScheduled).
		Return([]*entity.Pickup{near}, nil)
	mockOracle.On("OptimizeTrip", ctx, mock.Anything).
		Return(nil, errors.New("osrm unreachable"))

	plan, err := svc.OptimizeRoute(ctx, &usecase.RouteQuery{Latitude: 13.75, Longitude: 100.50})
	require.NoError(t, err)
	require.Len(t, plan.Stops, 1)
	assert.Equal(t, usecase.StopTagRaw, plan.Stops[0].Tag)
	assert.Nil(t, plan.Geometry)
	assert.NotEmpty(t, plan.Message)
}

func TestCollectorService_GetPendingPickups(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newCollectorService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, nil, nil)

	ctx := context.Background()
	mockPickupRepo.On("FindPickupsByStatus", ctx, entity.PickupScheduled).
		Return([]*entity.Pickup{scheduledPickup(1, 10, 13.75, 100.50)}, nil)

	pickups, err := svc.GetPendingPickups(ctx)
	require.NoError(t, err)
	assert.Len(t, pickups, 1)
}
