package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/steno/caribbean-tees-pod/api/controllers"
	webhookcontrollers "github.com/steno/caribbean-tees-pod/api/controllers/webhooks"
	"github.com/steno/caribbean-tees-pod/api/middleware"
	"github.com/steno/caribbean-tees-pod/internal/cart"
	"github.com/steno/caribbean-tees-pod/internal/catalog"
	checkoutsvc "github.com/steno/caribbean-tees-pod/internal/checkout"
	stripewebhook "github.com/steno/caribbean-tees-pod/internal/webhooks/stripe"
	"github.com/steno/caribbean-tees-pod/pkg/config"
	"github.com/steno/caribbean-tees-pod/pkg/db"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
	"github.com/steno/caribbean-tees-pod/pkg/redis"
	"github.com/steno/caribbean-tees-pod/pkg/stripe"
)

// Params carries everything the router wires into handlers.
type Params struct {
	Config             *config.Config
	Logger             *logger.Logger
	DB                 db.Pinger
	Redis              redis.Pinger
	CartStore          cart.Store
	CheckoutService    checkoutsvc.Service
	CatalogRepo        catalog.Repository
	CatalogSync        *catalog.Service
	StripeClient       *stripe.Client
	StripeWebhookSvc   *stripewebhook.Service
	StripeWebhookGuard *stripewebhook.IdempotencyGuard
	MetricsGatherer    prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, p.Redis))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", controllers.CreateCheckoutSession(p.CheckoutService, p.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", controllers.CreateCart(p.CartStore, p.Logger))
			r.Get("/{cartID}", controllers.GetCart(p.CartStore, p.Logger))
			r.Post("/{cartID}/items", controllers.AddCartItem(p.CartStore, p.Logger))
			r.Delete("/{cartID}/items/{productID}/{variantID}", controllers.RemoveCartItem(p.CartStore, p.Logger))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(p.CatalogRepo, p.Logger))
			r.Get("/{productID}", controllers.GetProduct(p.CatalogRepo, p.Logger))
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/stripe", webhookcontrollers.StripeWebhook(p.StripeWebhookSvc, p.StripeClient, p.StripeWebhookGuard, p.Logger))
		})

		r.With(middleware.BearerToken(p.Config.Sync.Token, p.Logger)).
			Post("/sync", controllers.TriggerSync(p.CatalogSync, p.Logger))
	})

	if p.MetricsGatherer != nil {
		r.Get("/metrics", promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}

	return r
}
