package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"edrop/internal/domain/entity"
	domainerrors "edrop/internal/domain/errors"
	"edrop/internal/domain/repository"
	"edrop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// walletService implements the WalletUsecase interface.
type walletService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// WalletServiceParams holds dependencies for WalletService, injected by Fx.
type WalletServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewWalletService creates a new wallet service instance.
func NewWalletService(params WalletServiceParams) usecase.WalletUsecase {
	return &walletService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// GetMyWallet returns the caller's wallet stats, creating the profile lazily
// on first access.
func (srv *walletService) GetMyWallet(ctx context.Context, userID uuid.UUID) (*usecase.WalletStats, error) {
	var stats *usecase.WalletStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := findOrCreateProfile(ctx, repoFactory.NewProfileRepository(), userID)
		if err != nil {
			return err
		}
		stats = walletStats(profile)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get wallet")
	}

	return stats, nil
}

// Redeem spends credits on a reward. The deduction and its redeem ledger
// entry are written in one transaction.
func (srv *walletService) Redeem(ctx context.Context, userID uuid.UUID, input *usecase.RedeemInput) (*usecase.RedeemResult, error) {
	var result *usecase.RedeemResult

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		profile, err := profileRepo.FindProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}

		if profile.CarbonBalance < input.PointsCost {
			return domainerrors.ErrInsufficientFunds.WithDetails(
				fmt.Sprintf("You have %d credits", profile.CarbonBalance))
		}

		profile.CarbonBalance -= input.PointsCost
		profile.UpdatedAt = time.Now()
		if err := profileRepo.UpdateProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update profile balance")
		}

		entry := &entity.LedgerEntry{
			ProfileID:   profile.ID,
			Amount:      -input.PointsCost,
			Type:        entity.LedgerRedeem,
			Description: fmt.Sprintf("Redeemed %s", input.RewardTitle),
			CreatedAt:   time.Now(),
		}
		if err := repoFactory.NewLedgerRepository().CreateLedgerEntry(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to append ledger entry")
		}

		result = &usecase.RedeemResult{
			Message:          fmt.Sprintf("Successfully redeemed %s", input.RewardTitle),
			RemainingBalance: profile.CarbonBalance,
			BadgeLevel:       profile.BadgeLevel(),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetTransactions lists the caller's ledger entries, newest first. A user
// without a wallet simply has no movements yet.
func (srv *walletService) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*entity.LedgerEntry, error) {
	var entries []*entity.LedgerEntry

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.NewProfileRepository().FindProfileByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				entries = []*entity.LedgerEntry{}

				return nil
			}

			return errors.Wrap(err, "failed to find profile")
		}

		entries, err = repoFactory.NewLedgerRepository().FindEntriesByProfile(ctx, profile.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find ledger entries")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return entries, nil
}

// InitWallet creates a wallet for a specific user, for fixing legacy
// accounts that never got one.
func (srv *walletService) InitWallet(ctx context.Context, targetUserID uuid.UUID) (*usecase.WalletStats, error) {
	var stats *usecase.WalletStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		if _, err := profileRepo.FindProfileByUserID(ctx, targetUserID); err == nil {
			return domainerrors.ErrWalletExists
		} else if !errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(err, "failed to find profile")
		}

		profile := &entity.Profile{
			UserID:    targetUserID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := profileRepo.CreateProfile(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrProfileExists) {
				return domainerrors.ErrWalletExists
			}

			return errors.Wrap(err, "failed to create profile")
		}
		stats = walletStats(profile)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetWallet returns any user's wallet stats.
func (srv *walletService) GetWallet(ctx context.Context, targetUserID uuid.UUID) (*usecase.WalletStats, error) {
	var stats *usecase.WalletStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.NewProfileRepository().FindProfileByUserID(ctx, targetUserID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}
		stats = walletStats(profile)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// UpdateWallet manually overrides balance or CO2 stats. Balance overrides
// are mirrored into the ledger as an adjustment so the trail stays complete.
func (srv *walletService) UpdateWallet(ctx context.Context, targetUserID uuid.UUID, input *usecase.WalletUpdateInput) (*usecase.WalletStats, error) {
	var stats *usecase.WalletStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		profile, err := profileRepo.FindProfileByUserID(ctx, targetUserID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}

		delta := 0
		if input.CarbonBalance != nil {
			delta = *input.CarbonBalance - profile.CarbonBalance
			profile.CarbonBalance = *input.CarbonBalance
		}
		if input.CO2Saved != nil {
			profile.CO2Saved = *input.CO2Saved
		}
		profile.UpdatedAt = time.Now()

		if err := profileRepo.UpdateProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		if delta != 0 {
			entry := &entity.LedgerEntry{
				ProfileID:   profile.ID,
				Amount:      delta,
				Type:        entity.LedgerAdjustment,
				Description: "Manual balance override",
				CreatedAt:   time.Now(),
			}
			if err := repoFactory.NewLedgerRepository().CreateLedgerEntry(ctx, entry); err != nil {
				return errors.Wrap(err, "failed to append ledger entry")
			}
		}
		stats = walletStats(profile)

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("wallet manually updated", "user_id", targetUserID)

	return stats, nil
}

// ResetWallet zeroes a wallet. The profile row is kept so the user relation
// stays valid.
func (srv *walletService) ResetWallet(ctx context.Context, targetUserID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		profile, err := profileRepo.FindProfileByUserID(ctx, targetUserID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound
			}

			return errors.Wrap(err, "failed to find profile")
		}

		delta := -profile.CarbonBalance
		profile.CarbonBalance = 0
		profile.CO2Saved = 0
		profile.UpdatedAt = time.Now()

		if err := profileRepo.UpdateProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to reset profile")
		}

		if delta != 0 {
			entry := &entity.LedgerEntry{
				ProfileID:   profile.ID,
				Amount:      delta,
				Type:        entity.LedgerAdjustment,
				Description: "Wallet reset",
				CreatedAt:   time.Now(),
			}
			if err := repoFactory.NewLedgerRepository().CreateLedgerEntry(ctx, entry); err != nil {
				return errors.Wrap(err, "failed to append ledger entry")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.logger.Info("wallet reset", "user_id", targetUserID)

	return nil
}

func walletStats(profile *entity.Profile) *usecase.WalletStats {
	return &usecase.WalletStats{
		UserID:        profile.UserID,
		CarbonBalance: profile.CarbonBalance,
		CO2Saved:      profile.CO2Saved,
		BadgeLevel:    profile.BadgeLevel(),
	}
}
