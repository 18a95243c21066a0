package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hotelworks/hotelstock-backend/api/controllers"
	"github.com/hotelworks/hotelstock-backend/api/middleware"
	"github.com/hotelworks/hotelstock-backend/internal/checklists"
	"github.com/hotelworks/hotelstock-backend/internal/inventory"
	"github.com/hotelworks/hotelstock-backend/internal/ledger"
	"github.com/hotelworks/hotelstock-backend/internal/reports"
	"github.com/hotelworks/hotelstock-backend/internal/stock"
	"github.com/hotelworks/hotelstock-backend/pkg/config"
	"github.com/hotelworks/hotelstock-backend/pkg/db"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	inventoryService inventory.Service,
	ledgerService ledger.Service,
	checklistService checklists.Service,
	reportService reports.Service,
	engine *stock.Engine,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
		middleware.Actor(logg),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
	)

	manageRoles := middleware.RequireAnyRole(logg, enums.ActorRoleAdmin, enums.ActorRoleManager)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/items", func(r chi.Router) {
		r.Get("/", controllers.ListItems(inventoryService, logg))
		r.With(manageRoles).Post("/", controllers.CreateItem(inventoryService, logg))
		r.Get("/{itemID}", controllers.GetItem(inventoryService, logg))
		r.With(manageRoles).Put("/{itemID}", controllers.UpdateItem(inventoryService, logg))
		r.With(manageRoles).Delete("/{itemID}", controllers.DeleteItem(inventoryService, logg))
		r.Get("/{itemID}/transactions", controllers.ListItemTransactions(ledgerService, logg))
	})

	r.Route("/api/v1/transactions", func(r chi.Router) {
		r.Get("/", controllers.ListTransactions(ledgerService, logg))
		r.Post("/", controllers.ApplyTransaction(engine, logg))
		r.With(manageRoles).Post("/bulk", controllers.BulkUpdateStock(engine, logg))
	})

	r.Route("/api/v1/checklists", func(r chi.Router) {
		r.Get("/", controllers.GetRoomChecklist(checklistService, logg))
		r.Post("/", controllers.CreateChecklist(checklistService, logg))
		r.Put("/{checklistID}", controllers.UpdateChecklist(checklistService, logg))
	})

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/low-stock", controllers.LowStockReport(reportService, logg))
		r.Get("/category-summary", controllers.CategorySummaryReport(reportService, logg))
		r.Get("/reorder", controllers.ReorderReport(reportService, logg))
	})

	return r
}
