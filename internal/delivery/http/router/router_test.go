package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edrop/config"
	"edrop/internal/delivery/http/middleware"
	"edrop/internal/delivery/http/router/handler"
	"edrop/internal/domain/entity"
	"edrop/internal/infra/auth"
	"edrop/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "router-test-secret"

// stubWalletUsecase satisfies usecase.WalletUsecase with canned answers so
// the route registration and role guards can be exercised end to end.
type stubWalletUsecase struct{}

func (stubWalletUsecase) GetMyWallet(_ context.Context, userID uuid.UUID) (*usecase.WalletStats, error) {
	return &usecase.WalletStats{UserID: userID, BadgeLevel: "Eco Starter"}, nil
}

func (stubWalletUsecase) Redeem(_ context.Context, _ uuid.UUID, _ *usecase.RedeemInput) (*usecase.RedeemResult, error) {
	return &usecase.RedeemResult{}, nil
}

func (stubWalletUsecase) GetTransactions(_ context.Context, _ uuid.UUID) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (stubWalletUsecase) InitWallet(_ context.Context, targetUserID uuid.UUID) (*usecase.WalletStats, error) {
	return &usecase.WalletStats{UserID: targetUserID, BadgeLevel: "Eco Starter"}, nil
}

func (stubWalletUsecase) GetWallet(_ context.Context, targetUserID uuid.UUID) (*usecase.WalletStats, error) {
	return &usecase.WalletStats{UserID: targetUserID, BadgeLevel: "Eco Starter"}, nil
}

func (stubWalletUsecase) UpdateWallet(_ context.Context, targetUserID uuid.UUID, _ *usecase.WalletUpdateInput) (*usecase.WalletStats, error) {
	return &usecase.WalletStats{UserID: targetUserID, BadgeLevel: "Eco Starter"}, nil
}

func (stubWalletUsecase) ResetWallet(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret

	return cfg
}

// newTestEcho registers the real router behind the real JWT middleware. Only
// the wallet usecase is backed by a stub; the remaining handlers are never
// reached by these tests.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	params := RouterParams{
		PickupHandler:      handler.NewPickupHandler(handler.PickupHandlerParams{Logger: logger}),
		CollectorHandler:   handler.NewCollectorHandler(handler.CollectorHandlerParams{Logger: logger}),
		WalletHandler:      handler.NewWalletHandler(handler.WalletHandlerParams{WalletUC: stubWalletUsecase{}, Logger: logger}),
		InventoryHandler:   handler.NewInventoryHandler(handler.InventoryHandlerParams{Logger: logger}),
		CertificateHandler: handler.NewCertificateHandler(handler.CertificateHandlerParams{Logger: logger}),
		AuthMiddleware:     middleware.NewAuthMiddleware(tokenSvc, cfg),
	}

	e := echo.New()
	NewRouter(params).RegisterRoutes(e)

	return e
}

func signToken(t *testing.T, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	return signed
}

func doRequest(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestWalletAdminRoutes_CollectorRoleAllowed(t *testing.T) {
	e := newTestEcho(t)
	token := signToken(t, entity.RoleCollector.String())
	targetUserID := uuid.NewString()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"Init wallet", http.MethodPost, "/api/wallet/admin/init/" + targetUserID, http.StatusCreated},
		{"Get wallet", http.MethodGet, "/api/wallet/admin/" + targetUserID, http.StatusOK},
		{"Reset wallet", http.MethodDelete, "/api/wallet/admin/" + targetUserID, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.method, tt.target, token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":true`)
		})
	}
}

func TestWalletAdminRoutes_DropperRoleForbidden(t *testing.T) {
	e := newTestEcho(t)
	token := signToken(t, entity.RoleDropper.String())

	rec := doRequest(e, http.MethodGet, "/api/wallet/admin/"+uuid.NewString(), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "COLLECTOR_ROLE_REQUIRED")
}

func TestWalletAdminRoutes_MissingTokenUnauthorized(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodGet, "/api/wallet/admin/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestCollectorRoutesRequireCollectorRole(t *testing.T) {
	e := newTestEcho(t)
	token := signToken(t, entity.RoleDropper.String())

	targets := []string{
		"/api/collector/pending",
		"/api/inventory",
		"/api/certificates",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, target, token)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), "COLLECTOR_ROLE_REQUIRED")
		})
	}
}
