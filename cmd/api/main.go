package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/steno/caribbean-tees-pod/api/routes"
	"github.com/steno/caribbean-tees-pod/internal/cart"
	"github.com/steno/caribbean-tees-pod/internal/catalog"
	"github.com/steno/caribbean-tees-pod/internal/checkout"
	"github.com/steno/caribbean-tees-pod/internal/orders"
	stripewebhook "github.com/steno/caribbean-tees-pod/internal/webhooks/stripe"
	"github.com/steno/caribbean-tees-pod/pkg/config"
	"github.com/steno/caribbean-tees-pod/pkg/db"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
	"github.com/steno/caribbean-tees-pod/pkg/metrics"
	"github.com/steno/caribbean-tees-pod/pkg/migrate"
	"github.com/steno/caribbean-tees-pod/pkg/printify"
	"github.com/steno/caribbean-tees-pod/pkg/redis"
	"github.com/steno/caribbean-tees-pod/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	printifyClient, err := printify.NewClient(cfg.Printify, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap printify", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewRedisStore(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.Params{
		Sessions: stripeClient.API().V1CheckoutSessions,
		Config:   cfg.Checkout,
		BaseURL:  cfg.App.BaseURL,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogSync, err := catalog.NewService(catalog.ServiceParams{
		Repo:     catalogRepo,
		Remote:   printifyClient,
		TxRunner: dbClient,
		Metrics:  metrics.NewSyncMetrics(prometheus.DefaultRegisterer),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog sync service", err)
		os.Exit(1)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		OrdersRepo:     orders.NewRepository(dbClient.DB()),
		Sessions:       stripeClient.API().V1CheckoutSessions,
		Fulfillment:    printifyClient,
		Sandbox:        stripeClient.IsTestMode(),
		ShippingMethod: cfg.Printify.ShippingMethod,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stripe webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Stripe.EventIdempotencyTTL, "stripe")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook idempotency guard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:             cfg,
			Logger:             logg,
			DB:                 dbClient,
			Redis:              redisClient,
			CartStore:          cartStore,
			CheckoutService:    checkoutService,
			CatalogRepo:        catalogRepo,
			CatalogSync:        catalogSync,
			StripeClient:       stripeClient,
			StripeWebhookSvc:   webhookService,
			StripeWebhookGuard: webhookGuard,
			MetricsGatherer:    prometheus.DefaultGatherer,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
