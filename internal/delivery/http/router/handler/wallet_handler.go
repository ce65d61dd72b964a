package handler

import (
	"log/slog"
	"net/http"
	"time"

	"edrop/internal/delivery/http/middleware"
	"edrop/internal/delivery/http/response"
	"edrop/internal/domain/entity"
	"edrop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WalletHandlerParams holds dependencies for WalletHandler, injected by Fx.
type WalletHandlerParams struct {
	fx.In

	WalletUC usecase.WalletUsecase
	Logger   *slog.Logger
}

// WalletHandler holds dependencies for wallet-related handlers
type WalletHandler struct {
	walletUC usecase.WalletUsecase
	logger   *slog.Logger
}

// NewWalletHandler is the constructor for WalletHandler
func NewWalletHandler(params WalletHandlerParams) *WalletHandler {
	return &WalletHandler{
		walletUC: params.WalletUC,
		logger:   params.Logger,
	}
}

// LedgerEntryResponse is the API view of one ledger entry.
type LedgerEntryResponse struct {
	ID          uint64    `json:"id"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toLedgerEntryResponse(entry *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          entry.ID,
		Amount:      entry.Amount,
		Type:        string(entry.Type),
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}

// GetMyWallet handles retrieving the caller's wallet stats
func (h *WalletHandler) GetMyWallet(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	stats, err := h.walletUC.GetMyWallet(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats, "Wallet retrieved successfully")
}

// Redeem handles spending credits on a reward
func (h *WalletHandler) Redeem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req usecase.RedeemInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redemption input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.walletUC.Redeem(c.Request().Context(), userID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Reward redeemed successfully")
}

// GetTransactions handles listing the caller's ledger entries
func (h *WalletHandler) GetTransactions(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	entries, err := h.walletUC.GetTransactions(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toLedgerEntryResponse(entry))
	}

	return response.Success(c, http.StatusOK, views, "Transactions retrieved successfully")
}

// InitWallet handles creating a wallet for a specific user (admin)
func (h *WalletHandler) InitWallet(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	stats, err := h.walletUC.InitWallet(c.Request().Context(), targetUserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, stats, "Wallet initialized successfully")
}

// GetWallet handles retrieving any user's wallet stats (admin)
func (h *WalletHandler) GetWallet(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	stats, err := h.walletUC.GetWallet(c.Request().Context(), targetUserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats, "Wallet retrieved successfully")
}

// UpdateWallet handles a manual balance or CO2 override (admin)
func (h *WalletHandler) UpdateWallet(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	var req usecase.WalletUpdateInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wallet update input")
	}

	stats, err := h.walletUC.UpdateWallet(c.Request().Context(), targetUserID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats, "Wallet updated successfully")
}

// ResetWallet handles zeroing a user's wallet (admin)
func (h *WalletHandler) ResetWallet(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	if err := h.walletUC.ResetWallet(c.Request().Context(), targetUserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Wallet reset"}, "Wallet reset successfully")
}
