package main

import (
	"context"
	"log/slog"
	"os"

	"edrop/config"
	"edrop/internal/delivery"
	"edrop/internal/delivery/http"
	"edrop/internal/delivery/http/middleware"
	"edrop/internal/delivery/http/router/handler"
	"edrop/internal/infra/auth"
	"edrop/internal/infra/classifier"
	logs "edrop/internal/infra/log"
	"edrop/internal/infra/persistence/postgres"
	"edrop/internal/infra/pubsub"
	"edrop/internal/infra/qrcode"
	"edrop/internal/infra/routing/osrm"
	"edrop/internal/infra/storage"
	"edrop/internal/pricing"
	"edrop/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewPickupRepository,
			postgres.NewProfileRepository,
			postgres.NewInventoryRepository,
			postgres.NewLedgerRepository,
			postgres.NewCertificateRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			classifier.NewHuggingFaceClassifier,
			osrm.NewRouteOracle,
			storage.NewBlobStorage,
			pubsub.NewEventPublisher,
			newPricingAdapter,
		),
	)
}

// newPricingAdapter creates the pricing adapter with dependency injection
func newPricingAdapter(cfg *config.Config) *pricing.Adapter {
	if cfg.Pricing == nil {
		// Use default policy values if not configured
		return pricing.New(0, 0, 0)
	}

	return pricing.New(cfg.Pricing.DefaultValue, cfg.Pricing.ScrapBelow, cfg.Pricing.WorkingFrom)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewPickupService,
			impl.NewCollectorService,
			impl.NewWalletService,
			impl.NewInventoryService,
			impl.NewCertificateService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPickupHandler,
			handler.NewCollectorHandler,
			handler.NewWalletHandler,
			handler.NewInventoryHandler,
			handler.NewCertificateHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
