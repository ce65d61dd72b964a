package usecase

import (
	"context"
	"time"

	"edrop/internal/domain/entity"

	"github.com/google/uuid"
)

// DetectedItem is one priced line of a scan estimate.
type DetectedItem struct {
	Item           string               `json:"item"`
	Condition      entity.ItemCondition `json:"condition"`
	EstimatedValue int                  `json:"estimated_value"`
	Confidence     float64              `json:"confidence"`
}

// ScanResult is the full estimate produced from one scanned image.
type ScanResult struct {
	DetectedItems         []DetectedItem `json:"detected_items"`
	TotalEstimatedCredits int            `json:"total_estimated_credits"`
}

// PickupItemInput is one manifest line claimed at booking time.
type PickupItemInput struct {
	ItemName    string               `json:"item_name" validate:"required"`
	Condition   entity.ItemCondition `json:"condition" validate:"required,oneof=working repairable scrap"`
	CreditValue int                  `json:"credit_value" validate:"gte=0"`
	Description string               `json:"description"`
	YearsUsed   int                  `json:"years_used" validate:"gte=0"`
}

// CreatePickupInput carries everything needed to book a pickup.
type CreatePickupInput struct {
	Items             []PickupItemInput `json:"items" validate:"required,min=1,dive"`
	PickupDate        time.Time         `json:"pickup_date" validate:"required"`
	Timeslot          string            `json:"timeslot" validate:"required"`
	Latitude          float64           `json:"latitude" validate:"required,latitude"`
	Longitude         float64           `json:"longitude" validate:"required,longitude"`
	AddressText       string            `json:"address_text" validate:"required"`
	ImageURL          string            `json:"image_url"`
	DataWipeConfirmed bool              `json:"data_wipe_confirmed"`
}

// PickupUsecase defines the dropper-facing pickup use cases.
type PickupUsecase interface {
	// ScanImage runs the object classifier over raw image bytes and prices
	// the detections. Classifier failure is fatal to the scan.
	ScanImage(ctx context.Context, image []byte) (*ScanResult, error)

	// UploadPickupImage stores a booking photo and returns its public URL.
	// Storage failure degrades to an empty URL, never an error.
	UploadPickupImage(ctx context.Context, data []byte, filename, contentType string) string

	// CreatePickup books a pickup in scheduled status with a credit-value
	// snapshot per item. The owning profile is created lazily if missing.
	CreatePickup(ctx context.Context, userID uuid.UUID, input *CreatePickupInput) (*entity.Pickup, error)

	// GetMyPickups lists the caller's pickups, newest first.
	GetMyPickups(ctx context.Context, userID uuid.UUID) ([]*entity.Pickup, error)

	// CancelPickup withdraws a booking. Only the owner may cancel, and only
	// while the pickup is still scheduled.
	CancelPickup(ctx context.Context, userID uuid.UUID, pickupID uint64) (*entity.Pickup, error)
}
