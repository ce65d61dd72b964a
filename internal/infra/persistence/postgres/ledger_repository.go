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

// ledgerRepository implements the repository.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository is the constructor for ledgerRepository.
func NewLedgerRepository(db *gorm.DB) repository.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// CreateLedgerEntry appends one ledger entry.
func (repo *ledgerRepository) CreateLedgerEntry(ctx context.Context, entry *entity.LedgerEntry) error {
	entryM := fromLedgerDomain(entry)

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProfileNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create ledger entry")
	}

	// Update the entity with generated values
	entry.ID = entryM.ID
	entry.CreatedAt = entryM.CreatedAt

	return nil
}

// FindEntriesByProfile retrieves a profile's ledger, newest first.
func (repo *ledgerRepository) FindEntriesByProfile(ctx context.Context, profileID uint64) ([]*entity.LedgerEntry, error) {
	var entryModels []*model.LedgerEntryModel

	if err := repo.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find ledger entries by profile")
	}

	entries := make([]*entity.LedgerEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, toLedgerDomain(entryM))
	}

	return entries, nil
}

// --- Mapper Functions ---

// toLedgerDomain converts a GORM LedgerEntryModel to a domain LedgerEntry entity.
func toLedgerDomain(data *model.LedgerEntryModel) *entity.LedgerEntry {
	if data == nil {
		return nil
	}

	return &entity.LedgerEntry{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Amount:      data.Amount,
		Type:        entity.LedgerEntryType(data.Type),
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
	}
}

// fromLedgerDomain converts a domain LedgerEntry entity to a GORM LedgerEntryModel.
func fromLedgerDomain(data *entity.LedgerEntry) *model.LedgerEntryModel {
	if data == nil {
		return nil
	}

	return &model.LedgerEntryModel{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Amount:      data.Amount,
		Type:        string(data.Type),
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
	}
}
