package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"edrop/internal/delivery/http/response"
	"edrop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CollectorHandlerParams holds dependencies for CollectorHandler, injected by Fx.
type CollectorHandlerParams struct {
	fx.In

	CollectorUC usecase.CollectorUsecase
	Logger      *slog.Logger
}

// CollectorHandler holds dependencies for collector-facing handlers
type CollectorHandler struct {
	collectorUC usecase.CollectorUsecase
	logger      *slog.Logger
}

// NewCollectorHandler is the constructor for CollectorHandler
func NewCollectorHandler(params CollectorHandlerParams) *CollectorHandler {
	return &CollectorHandler{
		collectorUC: params.CollectorUC,
		logger:      params.Logger,
	}
}

// SettlementResponse reports what one pickup completion produced.
type SettlementResponse struct {
	CreditsAwarded   int    `json:"credits_awarded"`
	InventoryCreated int    `json:"inventory_created"`
	NewStatus        string `json:"new_status"`
}

// GetPendingPickups handles listing pickups waiting for collection
func (h *CollectorHandler) GetPendingPickups(c echo.Context) error {
	pickups, err := h.collectorUC.GetPendingPickups(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]*PickupResponse, 0, len(pickups))
	for _, pickup := range pickups {
		views = append(views, ToPickupResponse(pickup))
	}

	return response.Success(c, http.StatusOK, views, "Pending pickups retrieved successfully")
}

// OptimizeRoute handles planning a visit order over open pickups
func (h *CollectorHandler) OptimizeRoute(c echo.Context) error {
	latitude, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATES", "Query parameter 'latitude' must be a number")
	}
	longitude, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATES", "Query parameter 'longitude' must be a number")
	}

	query := &usecase.RouteQuery{
		Latitude:  latitude,
		Longitude: longitude,
	}

	if raw := c.QueryParam("radius_km"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 {
			return response.BadRequest(c, "VALIDATION_ERROR", "Query parameter 'radius_km' must be a non-negative number")
		}
		query.RadiusKm = radius
	}

	if raw := c.QueryParam("include_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return response.BadRequest(c, "VALIDATION_ERROR", "Query parameter 'include_ids' must be a comma-separated list of IDs")
			}
			query.IncludeIDs = append(query.IncludeIDs, id)
		}
	}

	plan, err := h.collectorUC.OptimizeRoute(c.Request().Context(), query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, plan, "Route planned successfully")
}

// CompletePickup handles settling a pickup after collection
func (h *CollectorHandler) CompletePickup(c echo.Context) error {
	pickupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid pickup ID")
	}

	result, err := h.collectorUC.CompletePickup(c.Request().Context(), pickupID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, SettlementResponse{
		CreditsAwarded:   result.CreditsAwarded,
		InventoryCreated: result.InventoryCreated,
		NewStatus:        string(result.NewStatus),
	}, "Pickup completed successfully")
}
