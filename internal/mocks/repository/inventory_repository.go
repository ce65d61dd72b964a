package repository

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"
	"edrop/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockInventoryRepository is a testify double for repository.InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

// NewMockInventoryRepository creates the mock and registers expectation
// checks on test cleanup.
func NewMockInventoryRepository(t *testing.T) *MockInventoryRepository {
	m := &MockInventoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInventoryRepository) CreateInventoryLogs(ctx context.Context, logs []*entity.InventoryLog) error {
	args := m.Called(ctx, logs)

	return args.Error(0)
}

func (m *MockInventoryRepository) FindInventoryByID(ctx context.Context, id uint64) (*entity.InventoryLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.InventoryLog), args.Error(1)
}

func (m *MockInventoryRepository) ListInventory(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.InventoryLog), args.Error(1)
}

func (m *MockInventoryRepository) CountByPickup(ctx context.Context, pickupID uint64) (int64, error) {
	args := m.Called(ctx, pickupID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) UpdateInventoryStatus(ctx context.Context, id uint64, status entity.InventoryStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}
