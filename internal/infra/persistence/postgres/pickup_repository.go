package postgres

import (
	"context"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// pickupRepository implements the repository.PickupRepository interface.
type pickupRepository struct {
	db *gorm.DB
}

// NewPickupRepository is the constructor for pickupRepository.
func NewPickupRepository(db *gorm.DB) repository.PickupRepository {
	return &pickupRepository{
		db: db,
	}
}

// CreatePickup persists a new pickup together with its manifest items.
func (repo *pickupRepository) CreatePickup(ctx context.Context, pickup *entity.Pickup) error {
	pickupM := fromPickupDomain(pickup)

	if err := repo.db.WithContext(ctx).Create(pickupM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProfileNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required pickup information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create pickup")
	}

	// Update the entity with generated values
	pickup.ID = pickupM.ID
	pickup.CreatedAt = pickupM.CreatedAt
	for i, itemM := range pickupM.Items {
		pickup.Items[i].ID = itemM.ID
		pickup.Items[i].PickupID = itemM.PickupID
	}

	return nil
}

// FindPickupByID retrieves a pickup with its manifest items.
func (repo *pickupRepository) FindPickupByID(ctx context.Context, id uint64) (*entity.Pickup, error) {
	var pickupM model.PickupModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&pickupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPickupNotFound
		}

		return nil, errors.Wrap(err, "failed to find pickup by ID")
	}

	return toPickupDomain(&pickupM), nil
}

// FindPickupsByStatus retrieves all pickups in a given status, oldest first.
func (repo *pickupRepository) FindPickupsByStatus(ctx context.Context, status entity.PickupStatus) ([]*entity.Pickup, error) {
	var pickupModels []*model.PickupModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&pickupModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pickups by status")
	}

	pickups := make([]*entity.Pickup, 0, len(pickupModels))
	for _, pickupM := range pickupModels {
		pickups = append(pickups, toPickupDomain(pickupM))
	}

	return pickups, nil
}

// FindPickupsByProfile retrieves all pickups owned by a profile, newest first.
func (repo *pickupRepository) FindPickupsByProfile(ctx context.Context, profileID uint64) ([]*entity.Pickup, error) {
	var pickupModels []*model.PickupModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&pickupModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pickups by profile")
	}

	pickups := make([]*entity.Pickup, 0, len(pickupModels))
	for _, pickupM := range pickupModels {
		pickups = append(pickups, toPickupDomain(pickupM))
	}

	return pickups, nil
}

// TransitionStatus flips a pickup's status with a conditional update.
// The WHERE clause on the source status makes concurrent transitions race
// on the same row: exactly one UPDATE matches.
func (repo *pickupRepository) TransitionStatus(ctx context.Context, id uint64, from, to entity.PickupStatus) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.PickupModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to transition pickup status")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper Functions ---

// toPickupDomain converts a GORM PickupModel to a domain Pickup entity.
func toPickupDomain(data *model.PickupModel) *entity.Pickup {
	if data == nil {
		return nil
	}

	items := make([]*entity.PickupItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toPickupItemDomain(&data.Items[i]))
	}

	return &entity.Pickup{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Status:      entity.PickupStatus(data.Status),
		PickupDate:  data.PickupDate,
		Timeslot:    data.Timeslot,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		AddressText: data.AddressText,
		ImageURL:    data.ImageURL,
		Items:       items,
		CreatedAt:   data.CreatedAt,
	}
}

// toPickupItemDomain converts a GORM PickupItemModel to a domain PickupItem entity.
func toPickupItemDomain(data *model.PickupItemModel) *entity.PickupItem {
	if data == nil {
		return nil
	}

	return &entity.PickupItem{
		ID:          data.ID,
		PickupID:    data.PickupID,
		ItemName:    data.ItemName,
		Condition:   entity.ItemCondition(data.Condition),
		CreditValue: data.CreditValue,
		Description: data.Description,
		YearsUsed:   data.YearsUsed,
	}
}

// fromPickupDomain converts a domain Pickup entity to a GORM PickupModel.
func fromPickupDomain(data *entity.Pickup) *model.PickupModel {
	if data == nil {
		return nil
	}

	items := make([]model.PickupItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.PickupItemModel{
			ID:          item.ID,
			PickupID:    item.PickupID,
			ItemName:    item.ItemName,
			Condition:   string(item.Condition),
			CreditValue: item.CreditValue,
			Description: item.Description,
			YearsUsed:   item.YearsUsed,
		})
	}

	return &model.PickupModel{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Status:      string(data.Status),
		PickupDate:  data.PickupDate,
		Timeslot:    data.Timeslot,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		AddressText: data.AddressText,
		ImageURL:    data.ImageURL,
		Items:       items,
		CreatedAt:   data.CreatedAt,
	}
}
