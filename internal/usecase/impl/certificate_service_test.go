package impl

import (
	"context"
	"testing"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	mockRepo "edrop/internal/mocks/repository"
	mockSvc "edrop/internal/mocks/service"
	"edrop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCertificateService(factory *mockRepo.StubRepositoryFactory, qr *mockSvc.MockQRCodeService) usecase.CertificateUsecase {
	params := CertificateServiceParams{
		TxManager: &mockRepo.StubTransactionManager{Factory: factory},
		Logger:    newDiscardLogger(),
	}
	if qr != nil {
		params.QRCodeService = qr
	}

	return NewCertificateService(params)
}

func collectedPickup() *entity.Pickup {
	return &entity.Pickup{
		ID:        1,
		ProfileID: 10,
		Status:    entity.PickupCollected,
		Items: []*entity.PickupItem{
			{ItemName: "laptop", CreditValue: 500},
			{ItemName: "keyboard", CreditValue: 80},
		},
	}
}

func TestCertificateService_IssueCertificate(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		PickupRepo:      mockPickupRepo,
		ProfileRepo:     mockProfileRepo,
		InventoryRepo:   mockInventoryRepo,
		CertificateRepo: mockCertRepo,
	}, nil)

	ctx := context.Background()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(collectedPickup(), nil)
	mockCertRepo.On("FindCertificateByPickup", ctx, uint64(1)).
		Return(nil, repository.ErrCertificateNotFound)
	mockProfileRepo.On("FindProfileByID", ctx, uint64(10)).
		Return(&entity.Profile{ID: 10, FullName: "Jane Doe"}, nil)
	mockInventoryRepo.On("CountByPickup", ctx, uint64(1)).Return(int64(2), nil)
	mockCertRepo.On("MaxCertificateID", ctx).Return(uint64(0), nil)
	mockCertRepo.On("CreateCertificate", ctx, mock.AnythingOfType("*entity.Certificate")).
		Return(nil)

	cert, err := svc.IssueCertificate(ctx, 1, entity.CertificateIndividual)
	require.NoError(t, err)
	assert.Equal(t, "CERT-001", cert.UniqueCode)
	assert.Equal(t, "ORD-001", cert.FormattedOrderID())
	assert.Equal(t, "Jane Doe", cert.RecipientName)
	assert.InDelta(t, 58.0, cert.CarbonOffset, 0.0001)
	assert.Equal(t, 2, cert.ItemsRecycled)
}

func TestCertificateService_IssueCertificate_FallbackRecipient(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		PickupRepo:      mockPickupRepo,
		ProfileRepo:     mockProfileRepo,
		InventoryRepo:   mockInventoryRepo,
		CertificateRepo: mockCertRepo,
	}, nil)

	ctx := context.Background()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(collectedPickup(), nil)
	mockCertRepo.On("FindCertificateByPickup", ctx, uint64(1)).
		Return(nil, repository.ErrCertificateNotFound)
	mockProfileRepo.On("FindProfileByID", ctx, uint64(10)).
		Return(nil, repository.ErrProfileNotFound)
	mockInventoryRepo.On("CountByPickup", ctx, uint64(1)).Return(int64(2), nil)
	mockCertRepo.On("MaxCertificateID", ctx).Return(uint64(41), nil)
	mockCertRepo.On("CreateCertificate", ctx, mock.Anything).Return(nil)

	cert, err := svc.IssueCertificate(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Valued Customer", cert.RecipientName)
	assert.Equal(t, "CERT-042", cert.UniqueCode)
	assert.Equal(t, entity.CertificateIndividual, cert.CertType)
}

func TestCertificateService_IssueCertificate_DuplicateReturnsExistingCode(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		PickupRepo:      mockPickupRepo,
		CertificateRepo: mockCertRepo,
	}, nil)

	ctx := context.Background()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(collectedPickup(), nil)
	mockCertRepo.On("FindCertificateByPickup", ctx, uint64(1)).
		Return(&entity.Certificate{UniqueCode: "CERT-001", PickupID: 1}, nil)

	_, err := svc.IssueCertificate(ctx, 1, entity.CertificateIndividual)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CERTIFICATE_EXISTS", appErr.ErrorCode())
	assert.Equal(t, "CERT-001", appErr.Details())
}

func TestCertificateService_IssueCertificate_NotCollected(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		PickupRepo: mockPickupRepo,
	}, nil)

	ctx := context.Background()
	scheduled := &entity.Pickup{ID: 1, ProfileID: 10, Status: entity.PickupScheduled}

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(scheduled, nil)

	_, err := svc.IssueCertificate(ctx, 1, entity.CertificateIndividual)
	assert.ErrorIs(t, err, domainerrors.ErrPickupNotCollected)
}

func TestCertificateService_IssueCertificate_RetriesCodeCollision(t *testing.T) {
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		PickupRepo:      mockPickupRepo,
		ProfileRepo:     mockProfileRepo,
		InventoryRepo:   mockInventoryRepo,
		CertificateRepo: mockCertRepo,
	}, nil)

	ctx := context.Background()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(1)).Return(collectedPickup(), nil)
	mockCertRepo.On("FindCertificateByPickup", ctx, uint64(1)).
		Return(nil, repository.ErrCertificateNotFound)
	mockProfileRepo.On("FindProfileByID", ctx, uint64(10)).
		Return(&entity.Profile{ID: 10, FullName: "Jane Doe"}, nil)
	mockInventoryRepo.On("CountByPickup", ctx, uint64(1)).Return(int64(2), nil)
	// A concurrent issuance takes CERT-001 first; the retry sees the new max.
	mockCertRepo.On("MaxCertificateID", ctx).Return(uint64(0), nil).Once()
	mockCertRepo.On("CreateCertificate", ctx, mock.MatchedBy(func(c *entity.Certificate) bool {
		return c.UniqueCode == "CERT-001"
	})).Return(repository.ErrDuplicateCertificateCode).Once()
	mockCertRepo.On("MaxCertificateID", ctx).Return(uint64(1), nil).Once()
	mockCertRepo.On("CreateCertificate", ctx, mock.MatchedBy(func(c *entity.Certificate) bool {
		return c.UniqueCode == "CERT-002"
	})).Return(nil).Once()

	cert, err := svc.IssueCertificate(ctx, 1, entity.CertificateIndividual)
	require.NoError(t, err)
	assert.Equal(t, "CERT-002", cert.UniqueCode)
}

func TestCertificateService_GetCertificateQR(t *testing.T) {
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		CertificateRepo: mockCertRepo,
	}, mockQR)

	ctx := context.Background()

	mockCertRepo.On("FindCertificateByCode", ctx, "CERT-001").
		Return(&entity.Certificate{UniqueCode: "CERT-001"}, nil)
	mockQR.On("GenerateCertificateQR", "CERT-001").
		Return([]byte("png-bytes"), nil)

	png, err := svc.GetCertificateQR(ctx, "CERT-001")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)
}

func TestCertificateService_GetCertificateQR_NotFound(t *testing.T) {
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		CertificateRepo: mockCertRepo,
	}, nil)

	ctx := context.Background()
	mockCertRepo.On("FindCertificateByCode", ctx, "CERT-404").
		Return(nil, repository.ErrCertificateNotFound)

	_, err := svc.GetCertificateQR(ctx, "CERT-404")
	assert.ErrorIs(t, err, domainerrors.ErrCertificateNotFound)
}

func TestCertificateService_GetCertificates(t *testing.T) {
	mockCertRepo := mockRepo.NewMockCertificateRepository(t)
	svc := newCertificateService(&mockRepo.StubRepositoryFactory{
		CertificateRepo: mockCertRepo,
	}, nil)

	ctx := context.Background()
	mockCertRepo.On("ListCertificates", ctx).Return([]*entity.Certificate{
		{ID: 2, UniqueCode: "CERT-002"},
		{ID: 1, UniqueCode: "CERT-001"},
	}, nil)

	certs, err := svc.GetCertificates(ctx)
	require.NoError(t, err)
	assert.Len(t, certs, 2)
}
