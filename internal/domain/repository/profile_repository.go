package repository

import (
	"context"

	"edrop/internal/domain/entity"
	"edrop/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for profile persistence.
var (
	// ErrProfileNotFound is returned when a wallet profile is not found.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when creating a second profile for the same user.
	ErrProfileExists = errors.New("profile already exists for this user")
)

// ProfileRepository defines the interface for wallet-profile database operations.
type ProfileRepository interface {
	// CreateProfile persists a new wallet profile.
	CreateProfile(ctx context.Context, profile *entity.Profile) error

	// FindProfileByID retrieves a profile by its surrogate id.
	FindProfileByID(ctx context.Context, id uint64) (*entity.Profile, error)

	// FindProfileByUserID retrieves the profile owned by an identity-provider
	// principal. Returns ErrProfileNotFound when the user has no wallet yet.
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// UpdateProfile saves balance/impact changes. Callers mutating the
	// balance must append a ledger entry within the same transaction.
	UpdateProfile(ctx context.Context, profile *entity.Profile) error
}
