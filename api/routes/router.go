package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ordena-app/ordena-backend/api/controllers"
	"github.com/ordena-app/ordena-backend/api/middleware"
	"github.com/ordena-app/ordena-backend/internal/menu"
	"github.com/ordena-app/ordena-backend/internal/orders"
	"github.com/ordena-app/ordena-backend/internal/stats"
	"github.com/ordena-app/ordena-backend/internal/stores"
	"github.com/ordena-app/ordena-backend/pkg/config"
	"github.com/ordena-app/ordena-backend/pkg/db"
	"github.com/ordena-app/ordena-backend/pkg/logger"
	"github.com/ordena-app/ordena-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	storeService stores.Service,
	menuService menu.Service,
	ordersService orders.Service,
	statsService stats.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// A nil *redis.Client must not end up as a non-nil interface downstream.
	var redisP redis.Pinger
	var idemStore redis.IdempotencyStore
	if redisClient != nil {
		redisP = redisClient
		idemStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/stores/{slug}", controllers.StoreBySlug(storeService, logg))
		r.Get("/stores/{storeID}/menu", controllers.StorefrontMenu(menuService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.MerchantContext(logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Post("/items/validate", controllers.ItemValidate(menuService, logg))

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoreList(storeService, logg))
			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", controllers.StoreDetail(storeService, logg))
				r.Put("/", controllers.StoreUpdate(storeService, logg))
				r.Get("/menu", controllers.StorefrontMenu(menuService, logg))
				r.Get("/kitchen", controllers.KitchenQueue(ordersService, logg))
				r.Route("/items", func(r chi.Router) {
					r.Get("/issues", controllers.ItemIssues(menuService, logg))
					r.Get("/{itemID}/validate", controllers.ItemValidateByID(menuService, logg))
				})
				r.Get("/stats", controllers.StoreStats(statsService, logg))
				r.Get("/stats/daily", controllers.StoreDailyStats(statsService, logg))
				r.Get("/orders/export", controllers.OrdersExport(statsService, logg))
			})
		})

		r.Post("/orders", controllers.OrderCreate(ordersService, logg))
		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.Get("/", controllers.OrderDetail(ordersService, logg))
			r.Post("/status", controllers.OrderUpdateStatus(ordersService, logg))
			r.Post("/cancel", controllers.OrderCancel(ordersService, logg))
		})
	})

	return r
}
