package repository

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockCertificateRepository is a testify double for repository.CertificateRepository.
type MockCertificateRepository struct {
	mock.Mock
}

// NewMockCertificateRepository creates the mock and registers expectation
// checks on test cleanup.
func NewMockCertificateRepository(t *testing.T) *MockCertificateRepository {
	m := &MockCertificateRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCertificateRepository) CreateCertificate(ctx context.Context, cert *entity.Certificate) error {
	args := m.Called(ctx, cert)

	return args.Error(0)
}

func (m *MockCertificateRepository) FindCertificateByPickup(ctx context.Context, pickupID uint64) (*entity.Certificate, error) {
	args := m.Called(ctx, pickupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindCertificateByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ListCertificates(ctx context.Context) ([]*entity.Certificate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) MaxCertificateID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	return args.Get(0).(uint64), args.Error(1)
}
