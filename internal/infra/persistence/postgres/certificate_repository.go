package postgres

import (
	"context"
	"strings"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// certificateRepository implements the repository.CertificateRepository interface.
type certificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository is the constructor for certificateRepository.
func NewCertificateRepository(db *gorm.DB) repository.CertificateRepository {
	return &certificateRepository{
		db: db,
	}
}

// CreateCertificate persists an immutable certificate snapshot.
func (repo *certificateRepository) CreateCertificate(ctx context.Context, cert *entity.Certificate) error {
	certM := fromCertificateDomain(cert)

	if err := repo.db.WithContext(ctx).Create(certM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Two unique indexes can fire here. A code collision is
			// retryable with the next sequence number; a pickup
			// collision means a certificate already exists.
			if strings.Contains(strings.ToLower(err.Error()), "unique_code") {
				return repository.ErrDuplicateCertificateCode
			}

			return repository.ErrDuplicatePickupCertificate
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPickupNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create certificate")
	}

	// Update the entity with generated values
	cert.ID = certM.ID

	return nil
}

// FindCertificateByPickup retrieves the certificate issued for a pickup.
func (repo *certificateRepository) FindCertificateByPickup(ctx context.Context, pickupID uint64) (*entity.Certificate, error) {
	var certM model.CertificateModel

	if err := repo.db.WithContext(ctx).
		Where("pickup_id = ?", pickupID).
		First(&certM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCertificateNotFound
		}

		return nil, errors.Wrap(err, "failed to find certificate by pickup")
	}

	return toCertificateDomain(&certM), nil
}

// FindCertificateByCode retrieves a certificate by its unique code.
func (repo *certificateRepository) FindCertificateByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	var certM model.CertificateModel

	if err := repo.db.WithContext(ctx).
		Where("unique_code = ?", code).
		First(&certM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCertificateNotFound
		}

		return nil, errors.Wrap(err, "failed to find certificate by code")
	}

	return toCertificateDomain(&certM), nil
}

// ListCertificates retrieves all issued certificates, newest first.
func (repo *certificateRepository) ListCertificates(ctx context.Context) ([]*entity.Certificate, error) {
	var certModels []*model.CertificateModel

	if err := repo.db.WithContext(ctx).
		Order("id DESC").
		Find(&certModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list certificates")
	}

	certs := make([]*entity.Certificate, 0, len(certModels))
	for _, certM := range certModels {
		certs = append(certs, toCertificateDomain(certM))
	}

	return certs, nil
}

// MaxCertificateID returns the highest certificate id, zero when none exist.
func (repo *certificateRepository) MaxCertificateID(ctx context.Context) (uint64, error) {
	var maxID uint64

	if err := repo.db.WithContext(ctx).
		Model(&model.CertificateModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return 0, errors.Wrap(err, "failed to query max certificate ID")
	}

	return maxID, nil
}

// --- Mapper Functions ---

// toCertificateDomain converts a GORM CertificateModel to a domain Certificate entity.
func toCertificateDomain(data *model.CertificateModel) *entity.Certificate {
	if data == nil {
		return nil
	}

	return &entity.Certificate{
		ID:            data.ID,
		UniqueCode:    data.UniqueCode,
		PickupID:      data.PickupID,
		RecipientName: data.RecipientName,
		CertType:      entity.CertificateType(data.CertType),
		IssueDate:     data.IssueDate,
		CarbonOffset:  data.CarbonOffset,
		ItemsRecycled: data.ItemsRecycled,
	}
}

// fromCertificateDomain converts a domain Certificate entity to a GORM CertificateModel.
func fromCertificateDomain(data *entity.Certificate) *model.CertificateModel {
	if data == nil {
		return nil
	}

	return &model.CertificateModel{
		ID:            data.ID,
		UniqueCode:    data.UniqueCode,
		PickupID:      data.PickupID,
		RecipientName: data.RecipientName,
		CertType:      string(data.CertType),
		IssueDate:     data.IssueDate,
		CarbonOffset:  data.CarbonOffset,
		ItemsRecycled: data.ItemsRecycled,
	}
}
