// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/domain/service"
	"edrop/internal/pricing"
	"edrop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pickupService implements the PickupUsecase interface.
type pickupService struct {
	txManager  repository.TransactionManager
	classifier service.ObjectClassifier
	pricer     *pricing.Adapter
	storage    service.BlobStorage
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// PickupServiceParams holds dependencies for PickupService, injected by Fx.
type PickupServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Classifier service.ObjectClassifier
	Pricer     *pricing.Adapter
	Storage    service.BlobStorage
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewPickupService creates a new pickup service instance.
func NewPickupService(params PickupServiceParams) usecase.PickupUsecase {
	return &pickupService{
		txManager:  params.TxManager,
		classifier: params.Classifier,
		pricer:     params.Pricer,
		storage:    params.Storage,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// ScanImage runs the object classifier over raw image bytes and prices the
// detections. Scanning is on the critical path: classifier failure surfaces
// to the caller.
func (srv *pickupService) ScanImage(ctx context.Context, image []byte) (*usecase.ScanResult, error) {
	detections, err := srv.classifier.Detect(ctx, image)
	if err != nil {
		srv.logger.Error("object classifier failed", "error", err)

		return nil, domainerrors.ErrClassifierUnavailable.WithDetails(err.Error())
	}

	estimates, total := srv.pricer.EstimateManifest(detections)

	result := &usecase.ScanResult{
		DetectedItems:         make([]usecase.DetectedItem, 0, len(estimates)),
		TotalEstimatedCredits: total,
	}
	for _, estimate := range estimates {
		result.DetectedItems = append(result.DetectedItems, usecase.DetectedItem{
			Item:           estimate.ItemName,
			Condition:      estimate.Condition,
			EstimatedValue: estimate.CreditValue,
			Confidence:     estimate.Confidence,
		})
	}

	return result, nil
}

// UploadPickupImage stores a booking photo. Storage is not on the critical
// path: failures are logged and degrade to an empty URL.
func (srv *pickupService) UploadPickupImage(ctx context.Context, data []byte, filename, contentType string) string {
	url, err := srv.storage.Upload(ctx, data, filename, contentType)
	if err != nil {
		srv.logger.Warn("pickup image upload failed", "filename", filename, "error", err)

		return ""
	}

	return url
}

// CreatePickup books a pickup in scheduled status with a credit-value
// snapshot per item.
func (srv *pickupService) CreatePickup(ctx context.Context, userID uuid.UUID, input *usecase.CreatePickupInput) (*entity.Pickup, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyManifest
	}
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	pickup := &entity.Pickup{
		Status:      entity.PickupScheduled,
		PickupDate:  input.PickupDate,
		Timeslot:    input.Timeslot,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		AddressText: input.AddressText,
		ImageURL:    input.ImageURL,
		Items:       make([]*entity.PickupItem, 0, len(input.Items)),
		CreatedAt:   time.Now(),
	}
	for _, item := range input.Items {
		pickup.Items = append(pickup.Items, &entity.PickupItem{
			ItemName:    item.ItemName,
			Condition:   item.Condition,
			CreditValue: item.CreditValue,
			Description: item.Description,
			YearsUsed:   item.YearsUsed,
		})
	}

	if pickup.RequiresDataWipe() && !input.DataWipeConfirmed {
		return nil, domainerrors.ErrDataWipeRequired
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := findOrCreateProfile(ctx, repoFactory.NewProfileRepository(), userID)
		if err != nil {
			return err
		}
		pickup.ProfileID = profile.ID

		if err := repoFactory.NewPickupRepository().CreatePickup(ctx, pickup); err != nil {
			return errors.Wrap(err, "failed to create pickup")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to book pickup")
	}

	srv.publishEvent(ctx, &service.PickupEvent{
		EventType: service.EventPickupBooked,
		PickupID:  pickup.ID,
		ProfileID: pickup.ProfileID,
		Message:   "Pickup scheduled successfully. A Collector will be assigned soon.",
	})

	return pickup, nil
}

// GetMyPickups lists the caller's pickups, newest first. A user without a
// wallet profile simply has no pickups yet.
func (srv *pickupService) GetMyPickups(ctx context.Context, userID uuid.UUID) ([]*entity.Pickup, error) {
	var pickups []*entity.Pickup

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.NewProfileRepository().FindProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				pickups = []*entity.Pickup{}

				return nil
			}

			return errors.Wrap(err, "failed to find profile")
		}

		pickups, err = repoFactory.NewPickupRepository().FindPickupsByProfile(ctx, profile.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find pickups by profile")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pickups")
	}

	return pickups, nil
}

// CancelPickup withdraws a scheduled booking. The conditional transition
// keeps cancellation from racing a concurrent settlement.
func (srv *pickupService) CancelPickup(ctx context.Context, userID uuid.UUID, pickupID uint64) (*entity.Pickup, error) {
	var cancelled *entity.Pickup

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		pickupRepo := repoFactory.NewPickupRepository()

		pickup, err := pickupRepo.FindPickupByID(ctx, pickupID)
		if err != nil {
			if errors.Is(err, repository.ErrPickupNotFound) {
				return domainerrors.ErrPickupNotFound
			}

			return errors.Wrap(err, "failed to find pickup")
		}

		profile, err := repoFactory.NewProfileRepository().FindProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrNotPickupOwner
			}

			return errors.Wrap(err, "failed to find profile")
		}
		if pickup.ProfileID != profile.ID {
			return domainerrors.ErrNotPickupOwner
		}

		ok, err := pickupRepo.TransitionStatus(ctx, pickupID, entity.PickupScheduled, entity.PickupCancelled)
		if err != nil {
			return errors.Wrap(err, "failed to transition pickup status")
		}
		if !ok {
			return domainerrors.ErrPickupNotCancellable.WithDetails(
				fmt.Sprintf("pickup is %s", pickup.Status))
		}

		pickup.Status = entity.PickupCancelled
		cancelled = pickup

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

// publishEvent pushes a lifecycle event to the notification channel.
// Best-effort: a publish failure never fails the business operation.
func (srv *pickupService) publishEvent(ctx context.Context, event *service.PickupEvent) {
	if err := srv.publisher.PublishPickupEvent(ctx, event); err != nil {
		srv.logger.Warn("failed to publish pickup event",
			"event_type", event.EventType,
			"pickup_id", event.PickupID,
			"error", err)
	}
}

// findOrCreateProfile resolves the wallet profile for a principal, creating
// it lazily on first touch.
func findOrCreateProfile(ctx context.Context, profileRepo repository.ProfileRepository, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := profileRepo.FindProfileByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to find profile by user")
	}

	profile = &entity.Profile{
		UserID:        userID,
		CarbonBalance: 0,
		CO2Saved:      0,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := profileRepo.CreateProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to create profile")
	}

	return profile, nil
}
