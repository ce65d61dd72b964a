package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"edrop/internal/delivery/http/middleware"
	"edrop/internal/delivery/http/response"
	"edrop/internal/domain/entity"
	"edrop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PickupHandlerParams holds dependencies for PickupHandler, injected by Fx.
type PickupHandlerParams struct {
	fx.In

	PickupUC usecase.PickupUsecase
	Logger   *slog.Logger
}

// PickupHandler holds dependencies for dropper-facing pickup handlers
type PickupHandler struct {
	pickupUC usecase.PickupUsecase
	logger   *slog.Logger
}

// NewPickupHandler is the constructor for PickupHandler
func NewPickupHandler(params PickupHandlerParams) *PickupHandler {
	return &PickupHandler{
		pickupUC: params.PickupUC,
		logger:   params.Logger,
	}
}

// PickupItemResponse is one manifest line in API responses.
type PickupItemResponse struct {
	ID          uint64 `json:"id"`
	ItemName    string `json:"item_name"`
	Condition   string `json:"condition"`
	CreditValue int    `json:"credit_value"`
	Description string `json:"description,omitempty"`
	YearsUsed   int    `json:"years_used,omitempty"`
}

// PickupResponse is the API view of a pickup with its computed totals.
type PickupResponse struct {
	ID           uint64               `json:"id"`
	Status       string               `json:"status"`
	PickupDate   time.Time            `json:"pickup_date"`
	Timeslot     string               `json:"timeslot"`
	Latitude     float64              `json:"latitude"`
	Longitude    float64              `json:"longitude"`
	AddressText  string               `json:"address_text"`
	ImageURL     string               `json:"image_url,omitempty"`
	Items        []PickupItemResponse `json:"items"`
	TotalCredits int                  `json:"total_credits"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ToPickupResponse maps a pickup entity onto its API view.
func ToPickupResponse(pickup *entity.Pickup) *PickupResponse {
	items := make([]PickupItemResponse, 0, len(pickup.Items))
	for _, item := range pickup.Items {
		items = append(items, PickupItemResponse{
			ID:          item.ID,
			ItemName:    item.ItemName,
			Condition:   string(item.Condition),
			CreditValue: item.CreditValue,
			Description: item.Description,
			YearsUsed:   item.YearsUsed,
		})
	}

	return &PickupResponse{
		ID:           pickup.ID,
		Status:       string(pickup.Status),
		PickupDate:   pickup.PickupDate,
		Timeslot:     pickup.Timeslot,
		Latitude:     pickup.Latitude,
		Longitude:    pickup.Longitude,
		AddressText:  pickup.AddressText,
		ImageURL:     pickup.ImageURL,
		Items:        items,
		TotalCredits: pickup.TotalCredits(),
		CreatedAt:    pickup.CreatedAt,
	}
}

// ScanImage handles running the object classifier over an uploaded photo
func (h *PickupHandler) ScanImage(c echo.Context) error {
	data, _, err := readUploadedFile(c, "image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "An image file is required")
	}

	result, err := h.pickupUC.ScanImage(c.Request().Context(), data)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Image scanned successfully")
}

// UploadImage handles storing a booking photo; storage failure degrades to a
// null URL instead of blocking the booking flow
func (h *PickupHandler) UploadImage(c echo.Context) error {
	data, fileHeader, err := readUploadedFile(c, "image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "An image file is required")
	}

	url := h.pickupUC.UploadPickupImage(
		c.Request().Context(),
		data,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)

	var imageURL *string
	if url != "" {
		imageURL = &url
	}

	return response.Success(c, http.StatusOK, map[string]*string{"image_url": imageURL}, "Image processed")
}

// CreatePickup handles booking a new pickup
func (h *PickupHandler) CreatePickup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req usecase.CreatePickupInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pickup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	pickup, err := h.pickupUC.CreatePickup(c.Request().Context(), userID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, ToPickupResponse(pickup), "Pickup scheduled successfully")
}

// GetMyPickups handles listing the caller's pickups
func (h *PickupHandler) GetMyPickups(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	pickups, err := h.pickupUC.GetMyPickups(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]*PickupResponse, 0, len(pickups))
	for _, pickup := range pickups {
		views = append(views, ToPickupResponse(pickup))
	}

	return response.Success(c, http.StatusOK, views, "Pickups retrieved successfully")
}

// CancelPickup handles withdrawing a scheduled booking
func (h *PickupHandler) CancelPickup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	pickupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid pickup ID")
	}

	pickup, err := h.pickupUC.CancelPickup(c.Request().Context(), userID, pickupID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ToPickupResponse(pickup), "Pickup cancelled successfully")
}

// readUploadedFile pulls one multipart file out of the request.
func readUploadedFile(c echo.Context, field string) ([]byte, *multipart.FileHeader, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}

	return data, fileHeader, nil
}
