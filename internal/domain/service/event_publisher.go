package service

import (
	"context"
)

// Pickup event types published to the notification channel.
const (
	EventPickupBooked    = "pickup_booked"
	EventPickupCollected = "pickup_collected"
)

// PickupEvent is the payload published when a pickup changes state. The
// downstream worker turns it into a user-facing notification (SMS/email).
type PickupEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	EventType string `json:"event_type"`
	PickupID  uint64 `json:"pickup_id"`
	ProfileID uint64 `json:"profile_id"`
	Credits   int    `json:"credits,omitempty"`
	Message   string `json:"message"`
}

// EventPublisher defines the interface for publishing pickup events to a
// message queue. Publishing is best-effort from the booking and settlement
// paths: failures are logged, never surfaced to the caller.
type EventPublisher interface {
	// PublishPickupEvent publishes a pickup lifecycle event for async processing.
	PublishPickupEvent(ctx context.Context, event *PickupEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
