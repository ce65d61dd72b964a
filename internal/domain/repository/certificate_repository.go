package repository

import (
	"context"

	"edrop/internal/domain/entity"
	"edrop/internal/errors"
)

// Domain-specific errors for certificate persistence.
var (
	// ErrCertificateNotFound is returned when a certificate is not found.
	ErrCertificateNotFound = errors.New("certificate not found")
	// ErrDuplicatePickupCertificate is returned when a certificate already
	// exists for the pickup (unique constraint on pickup_id).
	ErrDuplicatePickupCertificate = errors.New("certificate already exists for this pickup")
	// ErrDuplicateCertificateCode is returned when the generated sequential
	// code collided under concurrency; callers retry with the next sequence.
	ErrDuplicateCertificateCode = errors.New("certificate code already taken")
)

// CertificateRepository defines the interface for certificate persistence.
type CertificateRepository interface {
	// CreateCertificate persists an immutable certificate snapshot. Unique
	// constraints on both pickup_id and unique_code back the dedup and the
	// sequential code allocation.
	CreateCertificate(ctx context.Context, cert *entity.Certificate) error

	// FindCertificateByPickup retrieves the certificate issued for a pickup.
	FindCertificateByPickup(ctx context.Context, pickupID uint64) (*entity.Certificate, error)

	// FindCertificateByCode retrieves a certificate by its unique code.
	FindCertificateByCode(ctx context.Context, code string) (*entity.Certificate, error)

	// ListCertificates retrieves all issued certificates, newest first.
	ListCertificates(ctx context.Context) ([]*entity.Certificate, error)

	// MaxCertificateID returns the highest certificate id, zero when none
	// exist. Used as the base for sequential code allocation.
	MaxCertificateID(ctx context.Context) (uint64, error)
}
