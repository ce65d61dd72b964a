package usecase

import (
	"context"

	"edrop/internal/domain/entity"
)

// CertificateUsecase defines proof-of-recycling certificate use cases.
type CertificateUsecase interface {
	// IssueCertificate creates the certificate for a collected pickup. At
	// most one certificate exists per pickup; a duplicate attempt fails
	// with a conflict carrying the existing code.
	IssueCertificate(ctx context.Context, pickupID uint64, certType entity.CertificateType) (*entity.Certificate, error)

	// GetCertificates lists issued certificates, newest first.
	GetCertificates(ctx context.Context) ([]*entity.Certificate, error)

	// GetCertificateQR renders a verification QR code for an issued
	// certificate.
	GetCertificateQR(ctx context.Context, uniqueCode string) ([]byte, error)
}
