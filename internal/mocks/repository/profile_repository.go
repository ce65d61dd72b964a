package repository

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a testify double for repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

// NewMockProfileRepository creates the mock and registers expectation checks
// on test cleanup.
func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) CreateProfile(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, id uint64) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}
