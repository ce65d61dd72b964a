package repository

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a testify double for repository.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

// NewMockLedgerRepository creates the mock and registers expectation checks
// on test cleanup.
func NewMockLedgerRepository(t *testing.T) *MockLedgerRepository {
	m := &MockLedgerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLedgerRepository) CreateLedgerEntry(ctx context.Context, entry *entity.LedgerEntry) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntriesByProfile(ctx context.Context, profileID uint64) ([]*entity.LedgerEntry, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.LedgerEntry), args.Error(1)
}
