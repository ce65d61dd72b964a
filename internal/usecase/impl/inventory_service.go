package impl

import (
	"context"
	"log/slog"
	"time"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// inventoryService implements the InventoryUsecase interface.
type inventoryService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// InventoryServiceParams holds dependencies for InventoryService, injected by Fx.
type InventoryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewInventoryService creates a new inventory service instance.
func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// GetInventory lists warehouse inventory records matching the query, newest
// first.
func (srv *inventoryService) GetInventory(ctx context.Context, query *usecase.InventoryQuery) ([]*entity.InventoryLog, error) {
	filter := repository.InventoryFilter{Search: query.Search}
	if query.Status != "" && query.Status != "all" {
		status := entity.InventoryStatus(query.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrInvalidStatus.WithDetails(query.Status)
		}
		filter.Status = status
	}

	var logs []*entity.InventoryLog

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewInventoryRepository().ListInventory(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list inventory")
		}
		logs = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get inventory")
	}

	return logs, nil
}

// UpdateInventoryStatus moves an item through the warehouse lifecycle.
func (srv *inventoryService) UpdateInventoryStatus(ctx context.Context, inventoryID uint64, status entity.InventoryStatus) (*entity.InventoryLog, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidStatus.WithDetails(status.String())
	}

	var updated *entity.InventoryLog

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		inventoryRepo := repoFactory.NewInventoryRepository()

		item, err := inventoryRepo.FindInventoryByID(ctx, inventoryID)
		if err != nil {
			if errors.Is(err, repository.ErrInventoryNotFound) {
				return domainerrors.ErrInventoryNotFound
			}

			return errors.Wrap(err, "failed to find inventory item")
		}

		if err := inventoryRepo.UpdateInventoryStatus(ctx, inventoryID, status); err != nil {
			return errors.Wrap(err, "failed to update inventory status")
		}

		item.Status = status
		item.UpdatedAt = time.Now()
		updated = item

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
