package impl

import (
	"context"
	"log/slog"
	"time"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/domain/service"
	"edrop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	// fallbackRecipient is printed when the pickup owner has no display name.
	fallbackRecipient = "Valued Customer"

	// maxCodeRetries bounds how often code allocation is retried after losing
	// a unique-constraint race to a concurrent issuance.
	maxCodeRetries = 3
)

// certificateService implements the CertificateUsecase interface.
type certificateService struct {
	txManager     repository.TransactionManager
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// CertificateServiceParams holds dependencies for CertificateService, injected by Fx.
type CertificateServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewCertificateService creates a new certificate service instance.
func NewCertificateService(params CertificateServiceParams) usecase.CertificateUsecase {
	return &certificateService{
		txManager:     params.TxManager,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

// IssueCertificate creates the proof-of-recycling certificate for a
// collected pickup. The sequential code comes from max-id + 1; losing the
// unique-constraint race to a concurrent issuance retries with a fresh
// sequence in a new transaction.
func (srv *certificateService) IssueCertificate(ctx context.Context, pickupID uint64, certType entity.CertificateType) (*entity.Certificate, error) {
	if certType == "" {
		certType = entity.CertificateIndividual
	}
	if !certType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown certificate type")
	}

	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		cert, err := srv.tryIssue(ctx, pickupID, certType)
		if err != nil && errors.Is(err, repository.ErrDuplicateCertificateCode) {
			srv.logger.Warn("certificate code collision, retrying", "pickup_id", pickupID, "attempt", attempt+1)

			continue
		}

		return cert, err
	}

	return nil, domainerrors.ErrConflict.WithDetails("certificate code allocation kept colliding")
}

func (srv *certificateService) tryIssue(ctx context.Context, pickupID uint64, certType entity.CertificateType) (*entity.Certificate, error) {
	var cert *entity.Certificate

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		pickup, err := repoFactory.NewPickupRepository().FindPickupByID(ctx, pickupID)
		if err != nil {
			if errors.Is(err, repository.ErrPickupNotFound) {
				return domainerrors.ErrPickupNotFound
			}

			return errors.Wrap(err, "failed to find pickup")
		}
		if !pickup.Status.IsCollected() {
			return domainerrors.ErrPickupNotCollected
		}

		certRepo := repoFactory.NewCertificateRepository()

		existing, err := certRepo.FindCertificateByPickup(ctx, pickupID)
		if err == nil {
			return domainerrors.ErrCertificateExists.WithDetails(existing.UniqueCode)
		}
		if !errors.Is(err, repository.ErrCertificateNotFound) {
			return errors.Wrap(err, "failed to check for existing certificate")
		}

		recipient := fallbackRecipient
		profile, err := repoFactory.NewProfileRepository().FindProfileByID(ctx, pickup.ProfileID)
		if err == nil && profile.FullName != "" {
			recipient = profile.FullName
		} else if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(err, "failed to find owning profile")
		}

		// Carbon offset is recomputed from the manifest, not copied from the
		// wallet, so the certificate stays auditable on its own.
		offset := float64(pickup.TotalCredits()) * co2PerCredit

		// The recycled count comes from the warehouse records settlement
		// created, not the booking manifest.
		itemCount, err := repoFactory.NewInventoryRepository().CountByPickup(ctx, pickup.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count inventory records")
		}

		maxID, err := certRepo.MaxCertificateID(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to read certificate sequence")
		}

		cert = &entity.Certificate{
			UniqueCode:    entity.CertificateCode(maxID + 1),
			PickupID:      pickup.ID,
			RecipientName: recipient,
			CertType:      certType,
			IssueDate:     time.Now(),
			CarbonOffset:  offset,
			ItemsRecycled: int(itemCount),
		}

		// Duplicate-pickup and duplicate-code violations bubble up so the
		// caller can recover outside this aborted transaction.
		return certRepo.CreateCertificate(ctx, cert)
	})
	if err != nil {
		// A concurrent issuance may have won the pickup_id race after our
		// existence check; surface its code so the caller can recover.
		if errors.Is(err, repository.ErrDuplicatePickupCertificate) {
			if existing, findErr := srv.findByPickup(ctx, pickupID); findErr == nil {
				return nil, domainerrors.ErrCertificateExists.WithDetails(existing.UniqueCode)
			}

			return nil, domainerrors.ErrCertificateExists
		}

		return nil, err
	}

	return cert, nil
}

// GetCertificates lists issued certificates, newest first.
func (srv *certificateService) GetCertificates(ctx context.Context) ([]*entity.Certificate, error) {
	var certs []*entity.Certificate

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewCertificateRepository().ListCertificates(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list certificates")
		}
		certs = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get certificates")
	}

	return certs, nil
}

// GetCertificateQR renders a verification QR code for an issued certificate.
func (srv *certificateService) GetCertificateQR(ctx context.Context, uniqueCode string) ([]byte, error) {
	cert, err := srv.findByCode(ctx, uniqueCode)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateCertificateQR(cert.UniqueCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate certificate QR")
	}

	return png, nil
}

func (srv *certificateService) findByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	var cert *entity.Certificate

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewCertificateRepository().FindCertificateByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrCertificateNotFound) {
				return domainerrors.ErrCertificateNotFound
			}

			return errors.Wrap(err, "failed to find certificate by code")
		}
		cert = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cert, nil
}

func (srv *certificateService) findByPickup(ctx context.Context, pickupID uint64) (*entity.Certificate, error) {
	var cert *entity.Certificate

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewCertificateRepository().FindCertificateByPickup(ctx, pickupID)
		if err != nil {
			return err
		}
		cert = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cert, nil
}
