package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"edrop/internal/delivery/http/response"
	"edrop/internal/domain/entity"
	"edrop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// InventoryHandlerParams holds dependencies for InventoryHandler, injected by Fx.
type InventoryHandlerParams struct {
	fx.In

	InventoryUC usecase.InventoryUsecase
	Logger      *slog.Logger
}

// InventoryHandler holds dependencies for warehouse inventory handlers
type InventoryHandler struct {
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

// NewInventoryHandler is the constructor for InventoryHandler
func NewInventoryHandler(params InventoryHandlerParams) *InventoryHandler {
	return &InventoryHandler{
		inventoryUC: params.InventoryUC,
		logger:      params.Logger,
	}
}

// InventoryLogResponse is the API view of one warehouse inventory record.
type InventoryLogResponse struct {
	ID           uint64    `json:"id"`
	FormattedID  string    `json:"formatted_id"`
	PickupID     uint64    `json:"pickup_id"`
	ItemName     string    `json:"item_name"`
	Category     string    `json:"category"`
	Value        int       `json:"value"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toInventoryLogResponse(log *entity.InventoryLog) InventoryLogResponse {
	customerName := log.CustomerName
	if customerName == "" {
		customerName = "Unknown"
	}

	return InventoryLogResponse{
		ID:           log.ID,
		FormattedID:  log.FormattedID(),
		PickupID:     log.PickupID,
		ItemName:     log.ItemName,
		Category:     log.Category,
		Value:        log.Value,
		Status:       string(log.Status),
		CustomerName: customerName,
		CreatedAt:    log.CreatedAt,
		UpdatedAt:    log.UpdatedAt,
	}
}

// UpdateInventoryStatusRequest represents the request body for a status change
type UpdateInventoryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GetInventory handles listing warehouse inventory
func (h *InventoryHandler) GetInventory(c echo.Context) error {
	query := &usecase.InventoryQuery{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	logs, err := h.inventoryUC.GetInventory(c.Request().Context(), query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]InventoryLogResponse, 0, len(logs))
	for _, log := range logs {
		views = append(views, toInventoryLogResponse(log))
	}

	return response.Success(c, http.StatusOK, views, "Inventory retrieved successfully")
}

// UpdateInventoryStatus handles advancing an item through the warehouse lifecycle
func (h *InventoryHandler) UpdateInventoryStatus(c echo.Context) error {
	inventoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid inventory ID")
	}

	var req UpdateInventoryStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	updated, err := h.inventoryUC.UpdateInventoryStatus(c.Request().Context(), inventoryID, entity.InventoryStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toInventoryLogResponse(updated), "Inventory status updated successfully")
}
