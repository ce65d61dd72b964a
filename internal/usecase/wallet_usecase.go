package usecase

import (
	"context"

	"edrop/internal/domain/entity"

	"github.com/google/uuid"
)

// WalletStats is the wallet view returned to callers.
type WalletStats struct {
	UserID        uuid.UUID `json:"user_id"`
	CarbonBalance int       `json:"carbon_balance"`
	CO2Saved      float64   `json:"co2_saved"`
	BadgeLevel    string    `json:"badge_level"`
}

// RedeemInput is a reward redemption request.
type RedeemInput struct {
	RewardTitle string `json:"reward_title" validate:"required"`
	PointsCost  int    `json:"points_cost" validate:"required,gt=0"`
}

// RedeemResult reports a successful redemption.
type RedeemResult struct {
	Message          string `json:"message"`
	RemainingBalance int    `json:"remaining_balance"`
	BadgeLevel       string `json:"badge_level"`
}

// WalletUpdateInput carries an admin balance override. Nil fields are left
// untouched.
type WalletUpdateInput struct {
	CarbonBalance *int     `json:"carbon_balance"`
	CO2Saved      *float64 `json:"co2_saved"`
}

// WalletUsecase defines wallet and gamification use cases.
type WalletUsecase interface {
	// GetMyWallet returns the caller's wallet stats, creating the profile
	// lazily if it does not exist yet.
	GetMyWallet(ctx context.Context, userID uuid.UUID) (*WalletStats, error)

	// Redeem spends credits on a reward. Fails with insufficient funds when
	// the balance does not cover the cost; the deduction and its redeem
	// ledger entry are written atomically.
	Redeem(ctx context.Context, userID uuid.UUID, input *RedeemInput) (*RedeemResult, error)

	// GetTransactions lists the caller's ledger entries, newest first.
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]*entity.LedgerEntry, error)

	// InitWallet creates a wallet for a specific user. Fails with a conflict
	// when one already exists.
	InitWallet(ctx context.Context, targetUserID uuid.UUID) (*WalletStats, error)

	// GetWallet returns any user's wallet stats.
	GetWallet(ctx context.Context, targetUserID uuid.UUID) (*WalletStats, error)

	// UpdateWallet manually overrides balance or CO2 stats. The override is
	// recorded as an adjustment ledger entry.
	UpdateWallet(ctx context.Context, targetUserID uuid.UUID, input *WalletUpdateInput) (*WalletStats, error)

	// ResetWallet zeroes a wallet. The row is kept so the user relation
	// stays valid.
	ResetWallet(ctx context.Context, targetUserID uuid.UUID) error
}
