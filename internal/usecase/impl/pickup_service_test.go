package impl

import (
	"context"
	"testing"
	"time"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/domain/service"
	mockRepo "edrop/internal/mocks/repository"
	mockSvc "edrop/internal/mocks/service"
	"edrop/internal/pricing"
	"edrop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPickupService(
	factory *mockRepo.StubRepositoryFactory,
	classifier service.ObjectClassifier,
	storage service.BlobStorage,
	publisher service.EventPublisher,
) usecase.PickupUsecase {
	return NewPickupService(PickupServiceParams{
		TxManager:  &mockRepo.StubTransactionManager{Factory: factory},
		Classifier: classifier,
		Pricer:     pricing.New(0, 0, 0),
		Storage:    storage,
		Publisher:  publisher,
		Logger:     newDiscardLogger(),
	})
}

func validCreateInput() *usecase.CreatePickupInput {
	return &usecase.CreatePickupInput{
		Items: []usecase.PickupItemInput{
			{ItemName: "mouse", Condition: entity.ConditionWorking, CreditValue: 50},
		},
		PickupDate:  time.Now().Add(24 * time.Hour),
		Timeslot:    "Morning (9-12)",
		Latitude:    13.7563,
		Longitude:   100.5018,
		AddressText: "123 Sukhumvit Rd",
	}
}

func TestPickupService_ScanImage(t *testing.T) {
	mockClassifier := mockSvc.NewMockObjectClassifier(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{}, mockClassifier, nil, nil)

	ctx := context.Background()
	image := []byte("fake-image")

	mockClassifier.On("Detect", ctx, image).Return([]service.Detection{
		{Label: "laptop", Confidence: 0.91},
		{Label: "person", Confidence: 0.99},
		{Label: "keyboard", Confidence: 0.65},
	}, nil)

	result, err := svc.ScanImage(ctx, image)
	require.NoError(t, err)
	require.Len(t, result.DetectedItems, 2)
	assert.Equal(t, 580, result.TotalEstimatedCredits)
	assert.Equal(t, entity.ConditionWorking, result.DetectedItems[0].Condition)
	assert.Equal(t, entity.ConditionRepairable, result.DetectedItems[1].Condition)
}

func TestPickupService_ScanImage_ClassifierFailure(t *testing.T) {
	mockClassifier := mockSvc.NewMockObjectClassifier(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{}, mockClassifier, nil, nil)

	ctx := context.Background()
	mockClassifier.On("Detect", ctx, mock.Anything).Return(nil, errors.New("model timed out"))

	_, err := svc.ScanImage(ctx, []byte("fake-image"))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CLASSIFIER_UNAVAILABLE", appErr.ErrorCode())
}

func TestPickupService_UploadPickupImage_DegradesOnFailure(t *testing.T) {
	mockStorage := mockSvc.NewMockBlobStorage(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{}, nil, mockStorage, nil)

	ctx := context.Background()
	mockStorage.On("Upload", ctx, mock.Anything, "proof.jpg", "image/jpeg").
		Return("", errors.New("bucket unavailable"))

	url := svc.UploadPickupImage(ctx, []byte("img"), "proof.jpg", "image/jpeg")
	assert.Empty(t, url)
}

func TestPickupService_CreatePickup(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, mockPublisher)

	ctx := context.Background()
	userID := uuid.New()

	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(&entity.Profile{ID: 7, UserID: userID}, nil)
	mockPickupRepo.On("CreatePickup", ctx, mock.AnythingOfType("*entity.Pickup")).
		Return(nil)
	mockPublisher.On("PublishPickupEvent", ctx, mock.AnythingOfType("*service.PickupEvent")).
		Return(nil)

	pickup, err := svc.CreatePickup(ctx, userID, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), pickup.ProfileID)
	assert.Equal(t, entity.PickupScheduled, pickup.Status)
	assert.Equal(t, 50, pickup.TotalCredits())
}

func TestPickupService_CreatePickup_LazyProfileCreation(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, mockPublisher)

	ctx := context.Background()
	userID := uuid.New()

	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(nil, repository.ErrProfileNotFound)
	mockProfileRepo.On("CreateProfile", ctx, mock.AnythingOfType("*entity.Profile")).
		Return(nil)
	mockPickupRepo.On("CreatePickup", ctx, mock.AnythingOfType("*entity.Pickup")).
		Return(nil)
	mockPublisher.On("PublishPickupEvent", ctx, mock.Anything).Return(nil)

	_, err := svc.CreatePickup(ctx, userID, validCreateInput())
	require.NoError(t, err)
}

func TestPickupService_CreatePickup_DataWipeRequired(t *testing.T) {
	svc := newPickupService(&mockRepo.StubRepositoryFactory{}, nil, nil, nil)

	input := validCreateInput()
	input.Items = []usecase.PickupItemInput{
		{ItemName: "laptop", Condition: entity.ConditionWorking, CreditValue: 500},
	}
	input.DataWipeConfirmed = false

	_, err := svc.CreatePickup(context.Background(), uuid.New(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDataWipeRequired)
	assert.Contains(t, err.Error(), "data wipe")
}

func TestPickupService_CreatePickup_DataWipeConfirmed(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, mockPublisher)

	ctx := context.Background()
	userID := uuid.New()
	input := validCreateInput()
	input.Items = []usecase.PickupItemInput{
		{ItemName: "Old Laptop", Condition: entity.ConditionRepairable, CreditValue: 500},
	}
	input.DataWipeConfirmed = true

	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(&entity.Profile{ID: 1, UserID: userID}, nil)
	mockPickupRepo.On("CreatePickup", ctx, mock.Anything).Return(nil)
	mockPublisher.On("PublishPickupEvent", ctx, mock.Anything).Return(nil)

	pickup, err := svc.CreatePickup(ctx, userID, input)
	require.NoError(t, err)
	assert.Equal(t, 500, pickup.TotalCredits())
}

func TestPickupService_CreatePickup_EmptyManifest(t *testing.T) {
	svc := newPickupService(&mockRepo.StubRepositoryFactory{}, nil, nil, nil)

	input := validCreateInput()
	input.Items = nil

	_, err := svc.CreatePickup(context.Background(), uuid.New(), input)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyManifest)
}

func TestPickupService_CreatePickup_InvalidCoordinates(t *testing.T) {
	svc := newPickupService(&mockRepo.StubRepositoryFactory{}, nil, nil, nil)

	input := validCreateInput()
	input.Latitude = 91.0

	_, err := svc.CreatePickup(context.Background(), uuid.New(), input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCoordinates)
}

func TestPickupService_CreatePickup_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	mockPublisher := mockSvc.NewMockEventPublisher(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, mockPublisher)

	ctx := context.Background()
	userID := uuid.New()

	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(&entity.Profile{ID: 3, UserID: userID}, nil)
	mockPickupRepo.On("CreatePickup", ctx, mock.Anything).Return(nil)
	mockPublisher.On("PublishPickupEvent", ctx, mock.Anything).
		Return(errors.New("broker down"))

	_, err := svc.CreatePickup(ctx, userID, validCreateInput())
	require.NoError(t, err)
}

func TestPickupService_GetMyPickups_NoProfileYet(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
	}, nil, nil, nil)

	ctx := context.Background()
	userID := uuid.New()

	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(nil, repository.ErrProfileNotFound)

	pickups, err := svc.GetMyPickups(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, pickups)
}

func TestPickupService_CancelPickup(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, nil)

	ctx := context.Background()
	userID := uuid.New()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(9)).
		Return(&entity.Pickup{ID: 9, ProfileID: 4, Status: entity.PickupScheduled}, nil)
	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(&entity.Profile{ID: 4, UserID: userID}, nil)
	mockPickupRepo.On("TransitionStatus", ctx, uint64(9), entity.PickupScheduled, entity.PickupCancelled).
		Return(true, nil)

	pickup, err := svc.CancelPickup(ctx, userID, 9)
	require.NoError(t, err)
	assert.Equal(t, entity.PickupCancelled, pickup.Status)
}

func TestPickupService_CancelPickup_NotOwner(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, nil)

	ctx := context.Background()
	userID := uuid.New()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(9)).
		Return(&entity.Pickup{ID: 9, ProfileID: 4, Status: entity.PickupScheduled}, nil)
	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(&entity.Profile{ID: 5, UserID: userID}, nil)

	_, err := svc.CancelPickup(ctx, userID, 9)
	assert.ErrorIs(t, err, domainerrors.ErrNotPickupOwner)
}

func TestPickupService_CancelPickup_AlreadyCollected(t *testing.T) {
	mockProfileRepo := mockRepo.NewMockProfileRepository(t)
	mockPickupRepo := mockRepo.NewMockPickupRepository(t)
	svc := newPickupService(&mockRepo.StubRepositoryFactory{
		ProfileRepo: mockProfileRepo,
		PickupRepo:  mockPickupRepo,
	}, nil, nil, nil)

	ctx := context.Background()
	userID := uuid.New()

	mockPickupRepo.On("FindPickupByID", ctx, uint64(9)).
		Return(&entity.Pickup{ID: 9, ProfileID: 4, Status: entity.PickupCollected}, nil)
	mockProfileRepo.On("FindProfileByUserID", ctx, userID).
		Return(&entity.Profile{ID: 4, UserID: userID}, nil)
	mockPickupRepo.On("TransitionStatus", ctx, uint64(9), entity.PickupScheduled, entity.PickupCancelled).
		Return(false, nil)

	_, err := svc.CancelPickup(ctx, userID, 9)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PICKUP_NOT_CANCELLABLE", appErr.ErrorCode())
}
