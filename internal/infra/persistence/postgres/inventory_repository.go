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

// inventoryRepository implements the repository.InventoryRepository interface.
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository is the constructor for inventoryRepository.
func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepository{
		db: db,
	}
}

// inventoryRow carries an inventory record plus the owning customer's name
// resolved through pickups and profiles.
type inventoryRow struct {
	model.InventoryLogModel
	CustomerName string
}

// CreateInventoryLogs persists one batch of inventory records.
func (repo *inventoryRepository) CreateInventoryLogs(ctx context.Context, logs []*entity.InventoryLog) error {
	if len(logs) == 0 {
		return nil
	}

	logModels := make([]*model.InventoryLogModel, 0, len(logs))
	for _, log := range logs {
		logModels = append(logModels, fromInventoryDomain(log))
	}

	if err := repo.db.WithContext(ctx).Create(&logModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPickupNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create inventory logs")
	}

	// Update the entities with generated values
	for i, logM := range logModels {
		logs[i].ID = logM.ID
		logs[i].CreatedAt = logM.CreatedAt
		logs[i].UpdatedAt = logM.UpdatedAt
	}

	return nil
}

// FindInventoryByID retrieves one inventory record with its customer name.
func (repo *inventoryRepository) FindInventoryByID(ctx context.Context, id uint64) (*entity.InventoryLog, error) {
	var row inventoryRow

	if err := repo.inventoryQuery(ctx).
		Where("inventory_logs.id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInventoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find inventory by ID")
	}

	return toInventoryDomain(&row), nil
}

// ListInventory retrieves inventory records matching the filter, newest first.
func (repo *inventoryRepository) ListInventory(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryLog, error) {
	query := repo.inventoryQuery(ctx)

	if filter.Status != "" {
		query = query.Where("inventory_logs.status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		query = query.Where("inventory_logs.item_name ILIKE ?", "%"+filter.Search+"%")
	}

	var rows []*inventoryRow
	if err := query.
		Order("inventory_logs.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	logs := make([]*entity.InventoryLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, toInventoryDomain(row))
	}

	return logs, nil
}

// CountByPickup returns how many inventory records trace back to a pickup.
func (repo *inventoryRepository) CountByPickup(ctx context.Context, pickupID uint64) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.InventoryLogModel{}).
		Where("pickup_id = ?", pickupID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count inventory by pickup")
	}

	return count, nil
}

// UpdateInventoryStatus advances the warehouse lifecycle of one record.
func (repo *inventoryRepository) UpdateInventoryStatus(ctx context.Context, id uint64, status entity.InventoryStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.InventoryLogModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update inventory status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrInventoryNotFound
	}

	return nil
}

// inventoryQuery builds the base query joining through pickups to the owning
// profile so listings can show who dropped the item off.
func (repo *inventoryRepository) inventoryQuery(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.InventoryLogModel{}).
		Select("inventory_logs.*, profiles.full_name AS customer_name").
		Joins("LEFT JOIN pickups ON pickups.id = inventory_logs.pickup_id").
		Joins("LEFT JOIN profiles ON profiles.id = pickups.profile_id")
}

// --- Mapper Functions ---

// toInventoryDomain converts a joined inventory row to a domain InventoryLog entity.
func toInventoryDomain(data *inventoryRow) *entity.InventoryLog {
	if data == nil {
		return nil
	}

	return &entity.InventoryLog{
		ID:           data.ID,
		PickupID:     data.PickupID,
		ItemName:     data.ItemName,
		Category:     data.Category,
		Value:        data.Value,
		Status:       entity.InventoryStatus(data.Status),
		CustomerName: data.CustomerName,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromInventoryDomain converts a domain InventoryLog entity to a GORM InventoryLogModel.
func fromInventoryDomain(data *entity.InventoryLog) *model.InventoryLogModel {
	if data == nil {
		return nil
	}

	return &model.InventoryLogModel{
		ID:        data.ID,
		PickupID:  data.PickupID,
		ItemName:  data.ItemName,
		Category:  data.Category,
		Value:     data.Value,
		Status:    string(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
