// Package repository provides test doubles for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockPickupRepository is a testify double for repository.PickupRepository.
type MockPickupRepository struct {
	mock.Mock
}

// NewMockPickupRepository creates the mock and registers expectation checks
// on test cleanup.
func NewMockPickupRepository(t *testing.T) *MockPickupRepository {
	m := &MockPickupRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPickupRepository) CreatePickup(ctx context.Context, pickup *entity.Pickup) error {
	args := m.Called(ctx, pickup)

	return args.Error(0)
}

func (m *MockPickupRepository) FindPickupByID(ctx context.Context, id uint64) (*entity.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Pickup), args.Error(1)
}

func (m *MockPickupRepository) FindPickupsByStatus(ctx context.Context, status entity.PickupStatus) ([]*entity.Pickup, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Pickup), args.Error(1)
}

func (m *MockPickupRepository) FindPickupsByProfile(ctx context.Context, profileID uint64) ([]*entity.Pickup, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Pickup), args.Error(1)
}

func (m *MockPickupRepository) TransitionStatus(ctx context.Context, id uint64, from, to entity.PickupStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)

	return args.Bool(0), args.Error(1)
}
