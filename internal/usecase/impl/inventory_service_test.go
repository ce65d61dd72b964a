package impl

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	mockRepo "edrop/internal/mocks/repository"
	"edrop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService(factory *mockRepo.StubRepositoryFactory) usecase.InventoryUsecase {
	return NewInventoryService(InventoryServiceParams{
		TxManager: &mockRepo.StubTransactionManager{Factory: factory},
		Logger:    newDiscardLogger(),
	})
}

func TestInventoryService_GetInventory(t *testing.T) {
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	svc := newInventoryService(&mockRepo.StubRepositoryFactory{InventoryRepo: mockInventoryRepo})

	ctx := context.Background()
	mockInventoryRepo.On("ListInventory", ctx, repository.InventoryFilter{
		Status: entity.InventoryReceived,
		Search: "lap",
	}).Return([]*entity.InventoryLog{
		{ID: 42, ItemName: "laptop", Category: "Laptop", Status: entity.InventoryReceived, CustomerName: "Jane Doe"},
	}, nil)

	logs, err := svc.GetInventory(ctx, &usecase.InventoryQuery{Status: "received", Search: "lap"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "INV-0042", logs[0].FormattedID())
	assert.Equal(t, "Jane Doe", logs[0].CustomerName)
}

func TestInventoryService_GetInventory_AllStatuses(t *testing.T) {
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	svc := newInventoryService(&mockRepo.StubRepositoryFactory{InventoryRepo: mockInventoryRepo})

	ctx := context.Background()
	mockInventoryRepo.On("ListInventory", ctx, repository.InventoryFilter{}).
		Return([]*entity.InventoryLog{}, nil)

	_, err := svc.GetInventory(ctx, &usecase.InventoryQuery{Status: "all"})
	require.NoError(t, err)
}

func TestInventoryService_GetInventory_InvalidStatus(t *testing.T) {
	svc := newInventoryService(&mockRepo.StubRepositoryFactory{})

	_, err := svc.GetInventory(context.Background(), &usecase.InventoryQuery{Status: "melted"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATUS", appErr.ErrorCode())
}

func TestInventoryService_UpdateInventoryStatus(t *testing.T) {
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	svc := newInventoryService(&mockRepo.StubRepositoryFactory{InventoryRepo: mockInventoryRepo})

	ctx := context.Background()
	mockInventoryRepo.On("FindInventoryByID", ctx, uint64(5)).
		Return(&entity.InventoryLog{ID: 5, Status: entity.InventoryReceived}, nil)
	mockInventoryRepo.On("UpdateInventoryStatus", ctx, uint64(5), entity.InventoryRefurbishing).
		Return(nil)

	updated, err := svc.UpdateInventoryStatus(ctx, 5, entity.InventoryRefurbishing)
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryRefurbishing, updated.Status)
}

func TestInventoryService_UpdateInventoryStatus_NotFound(t *testing.T) {
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	svc := newInventoryService(&mockRepo.StubRepositoryFactory{InventoryRepo: mockInventoryRepo})

	ctx := context.Background()
	mockInventoryRepo.On("FindInventoryByID", ctx, uint64(404)).
		Return(nil, repository.ErrInventoryNotFound)

	_, err := svc.UpdateInventoryStatus(ctx, 404, entity.InventoryRecycled)
	assert.ErrorIs(t, err, domainerrors.ErrInventoryNotFound)
}

func TestInventoryService_UpdateInventoryStatus_InvalidStatus(t *testing.T) {
	svc := newInventoryService(&mockRepo.StubRepositoryFactory{})

	_, err := svc.UpdateInventoryStatus(context.Background(), 5, entity.InventoryStatus("exploded"))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATUS", appErr.ErrorCode())
}
