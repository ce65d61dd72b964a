// Package service provides test doubles for the external collaborator
// contracts.
package service

import (
	"context"
	"testing"

	"edrop/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
)

// MockObjectClassifier is a testify double for service.ObjectClassifier.
type MockObjectClassifier struct {
	mock.Mock
}

func NewMockObjectClassifier(t *testing.T) *MockObjectClassifier {
	m := &MockObjectClassifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockObjectClassifier) Detect(ctx context.Context, image []byte) ([]service.Detection, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]service.Detection), args.Error(1)
}

// MockRouteOracle is a testify double for service.RouteOracle.
type MockRouteOracle struct {
	mock.Mock
}

func NewMockRouteOracle(t *testing.T) *MockRouteOracle {
	m := &MockRouteOracle{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRouteOracle) OptimizeTrip(ctx context.Context, coords []orb.Point) (*service.TripPlan, error) {
	args := m.Called(ctx, coords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.TripPlan), args.Error(1)
}

// MockBlobStorage is a testify double for service.BlobStorage.
type MockBlobStorage struct {
	mock.Mock
}

func NewMockBlobStorage(t *testing.T) *MockBlobStorage {
	m := &MockBlobStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBlobStorage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	args := m.Called(ctx, data, filename, contentType)

	return args.String(0), args.Error(1)
}

// MockEventPublisher is a testify double for service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishPickupEvent(ctx context.Context, event *service.PickupEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockQRCodeService is a testify double for service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateCertificateQR(certificateCode string) ([]byte, error) {
	args := m.Called(certificateCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockTokenService is a testify double for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) ValidateToken(tokenString string, secret string) (*jwt.Token, error) {
	args := m.Called(tokenString, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*jwt.Token), args.Error(1)
}
