package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakhallsupply/stockroom-backend/api/controllers"
	"github.com/oakhallsupply/stockroom-backend/api/middleware"
	inventorysvc "github.com/oakhallsupply/stockroom-backend/internal/inventory"
	ledgersvc "github.com/oakhallsupply/stockroom-backend/internal/ledger"
	reservationsvc "github.com/oakhallsupply/stockroom-backend/internal/reservation"
	streamsvc "github.com/oakhallsupply/stockroom-backend/internal/stream"
	"github.com/oakhallsupply/stockroom-backend/pkg/config"
	"github.com/oakhallsupply/stockroom-backend/pkg/db"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP controllers.Pinger,
	inventoryService inventorysvc.Service,
	reservationService reservationsvc.Service,
	ledgerService ledgersvc.Service,
	notifier *streamsvc.Notifier,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS())
			r.Get("/", controllers.InventoryQuery(inventoryService, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).Post("/", controllers.InventoryAction(inventoryService, reservationService, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).Get("/{productId}/movements", controllers.ProductMovements(ledgerService, logg))
		})

		// The storefront widget subscribes from arbitrary origins, so the
		// stream route carries its own wide-open CORS policy.
		r.Group(func(r chi.Router) {
			r.Use(middleware.StreamCORS())
			r.Get("/{productId}/subscribe", controllers.SubscribeStock(notifier, logg))
		})
	})

	return r
}
