// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"edrop/internal/domain/entity"
	"edrop/internal/errors"
)

// Domain-specific errors for pickup persistence.
var (
	// ErrPickupNotFound is returned when a pickup is not found.
	ErrPickupNotFound = errors.New("pickup not found")
)

// PickupRepository defines the interface for pickup-related database operations.
type PickupRepository interface {
	// CreatePickup persists a new pickup together with its manifest items.
	CreatePickup(ctx context.Context, pickup *entity.Pickup) error

	// FindPickupByID retrieves a pickup with its manifest items.
	// Returns ErrPickupNotFound when no such pickup exists.
	FindPickupByID(ctx context.Context, id uint64) (*entity.Pickup, error)

	// FindPickupsByStatus retrieves all pickups in a given status, manifest
	// included, oldest first.
	FindPickupsByStatus(ctx context.Context, status entity.PickupStatus) ([]*entity.Pickup, error)

	// FindPickupsByProfile retrieves all pickups owned by a profile, newest first.
	FindPickupsByProfile(ctx context.Context, profileID uint64) ([]*entity.Pickup, error)

	// TransitionStatus flips a pickup from one status to another with a
	// conditional update. It reports false when the pickup was not in the
	// expected source status, which is how concurrent settlements are
	// serialized: only one caller observes true.
	TransitionStatus(ctx context.Context, id uint64, from, to entity.PickupStatus) (bool, error)
}
