package httpapi

import (
	"net/http"

	"loyalty-order-services/internal/config"
	"loyalty-order-services/internal/dashboard"
	"loyalty-order-services/internal/http/handlers"
	"loyalty-order-services/internal/middleware"
	"loyalty-order-services/internal/queue"
	"loyalty-order-services/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewRouter(db *pgxpool.Pool, logger *zap.Logger, cfg config.Config, queueClient *queue.Client, store *storage.ObjectStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
				"Pragma",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	h := &handlers.Handler{
		DB:        db,
		Logger:    logger,
		Config:    cfg,
		Queue:     queueClient,
		Dashboard: dashboard.NewService(dashboard.NewPostgresDataset(db), cfg.Location()),
		Store:     store,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/webhooks", func(r chi.Router) {
			r.Use(middleware.WebhookSecret(cfg.WebhookSecret))
			r.Post("/order-status", h.OrderStatusWebhook)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Get("/dashboard/stats", h.GetDashboardStats)
			r.Get("/dashboard/comprehensive-stats", h.GetComprehensiveStats)

			r.Get("/orders/bank", h.GetBankOrders)
			r.Get("/orders/bip", h.GetBipOrders)
			r.Get("/banks", h.GetBanks)
			r.Get("/shipments", h.GetShipments)

			r.Post("/invoices/generate", h.GenerateInvoice)
			r.Get("/invoices/{bankId}/archive", h.GetInvoiceArchive)
			r.Delete("/invoices/archive", h.DeleteInvoiceArchive)
		})
	})

	return r
}
