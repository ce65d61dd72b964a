// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"edrop/internal/delivery/http/middleware"
	"edrop/internal/delivery/http/router/handler"
	"edrop/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PickupHandler      *handler.PickupHandler
	CollectorHandler   *handler.CollectorHandler
	WalletHandler      *handler.WalletHandler
	InventoryHandler   *handler.InventoryHandler
	CertificateHandler *handler.CertificateHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	pickupHandler      *handler.PickupHandler
	collectorHandler   *handler.CollectorHandler
	walletHandler      *handler.WalletHandler
	inventoryHandler   *handler.InventoryHandler
	certificateHandler *handler.CertificateHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		pickupHandler:      params.PickupHandler,
		collectorHandler:   params.CollectorHandler,
		walletHandler:      params.WalletHandler,
		inventoryHandler:   params.InventoryHandler,
		certificateHandler: params.CertificateHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Dropper-facing pickup routes
	pickupGroup := e.Group("/api/v1/pickups")
	pickupGroup.Use(r.authMiddleware.Authenticate)
	{
		pickupGroup.POST("/scan", r.pickupHandler.ScanImage)
		pickupGroup.POST("/image", r.pickupHandler.UploadImage)
		pickupGroup.POST("", r.pickupHandler.CreatePickup)
		pickupGroup.GET("", r.pickupHandler.GetMyPickups)
		pickupGroup.POST("/:id/cancel", r.pickupHandler.CancelPickup)
	}

	// Wallet routes for the authenticated user
	walletGroup := e.Group("/api/wallet")
	walletGroup.Use(r.authMiddleware.Authenticate)
	{
		walletGroup.GET("/me", r.walletHandler.GetMyWallet)
		walletGroup.POST("/redeem", r.walletHandler.Redeem)
		walletGroup.GET("/transactions", r.walletHandler.GetTransactions)
	}

	// Wallet admin CRUD is a collector capability; there is no separate
	// admin role in the identity contract.
	walletAdminGroup := walletGroup.Group("/admin")
	walletAdminGroup.Use(r.authMiddleware.RequireRole(entity.RoleCollector.String()))
	{
		walletAdminGroup.POST("/init/:userID", r.walletHandler.InitWallet)
		walletAdminGroup.GET("/:userID", r.walletHandler.GetWallet)
		walletAdminGroup.PUT("/:userID", r.walletHandler.UpdateWallet)
		walletAdminGroup.DELETE("/:userID", r.walletHandler.ResetWallet)
	}

	// Collector routes require authentication and the "collector" role
	collectorGroup := e.Group("/api/collector")
	collectorGroup.Use(r.authMiddleware.Authenticate)
	collectorGroup.Use(r.authMiddleware.RequireRole(entity.RoleCollector.String()))
	{
		collectorGroup.GET("/pending", r.collectorHandler.GetPendingPickups)
		collectorGroup.GET("/optimize-route", r.collectorHandler.OptimizeRoute)
		collectorGroup.POST("/pickups/:id/complete", r.collectorHandler.CompletePickup)
	}

	// Warehouse inventory routes, collector-only
	inventoryGroup := e.Group("/api/inventory")
	inventoryGroup.Use(r.authMiddleware.Authenticate)
	inventoryGroup.Use(r.authMiddleware.RequireRole(entity.RoleCollector.String()))
	{
		inventoryGroup.GET("", r.inventoryHandler.GetInventory)
		inventoryGroup.PUT("/:id/status", r.inventoryHandler.UpdateInventoryStatus)
	}

	// Certificate routes, collector-only
	certificateGroup := e.Group("/api/certificates")
	certificateGroup.Use(r.authMiddleware.Authenticate)
	certificateGroup.Use(r.authMiddleware.RequireRole(entity.RoleCollector.String()))
	{
		certificateGroup.POST("/pickups/:id", r.certificateHandler.IssueCertificate)
		certificateGroup.GET("", r.certificateHandler.GetCertificates)
		certificateGroup.GET("/:code/qr", r.certificateHandler.GetCertificateQR)
	}
}
