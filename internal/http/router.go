package http

import (
	"net/http"

	"resto-backend/internal/handlers"
	"resto-backend/internal/middleware"
	"resto-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(
	analyticsHandler *handlers.AnalyticsHandler,
	tableHandler *handlers.TableHandler,
	menuHandler *handlers.MenuHandler,
	billHandler *handlers.BillHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	logger *zap.Logger,
) *mux.Router {
	r := mux.NewRouter()

	// Route-level middleware sees the matched path template.
	r.Use(middleware.MetricsMiddleware, middleware.RequestLogger(logger))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Sales analytics
	api.HandleFunc("/calendar-status", analyticsHandler.CalendarStatus).Methods("GET")
	api.HandleFunc("/daily-sales", analyticsHandler.DailySales).Methods("GET")
	api.HandleFunc("/monthly-stats", analyticsHandler.MonthlyStats).Methods("GET")
	api.HandleFunc("/top-selling", analyticsHandler.TopSelling).Methods("GET")
	api.HandleFunc("/weekly-sales", analyticsHandler.WeeklySales).Methods("GET")

	// Tables
	api.HandleFunc("/tables", tableHandler.ListTables).Methods("GET")
	api.HandleFunc("/tables", tableHandler.CreateTable).Methods("POST")
	api.HandleFunc("/tables/ws", tableHandler.Stream).Methods("GET")
	api.HandleFunc("/tables/{id}", tableHandler.UpdateTable).Methods("PUT")
	api.HandleFunc("/tables/{id}", tableHandler.DeleteTable).Methods("DELETE")

	// Menu
	api.HandleFunc("/menu-items", menuHandler.ListMenuItems).Methods("GET")
	api.HandleFunc("/menu-items", menuHandler.CreateMenuItem).Methods("POST")
	api.HandleFunc("/menu-items/{id}", menuHandler.UpdateMenuItem).Methods("PUT")
	api.HandleFunc("/menu-items/{id}", menuHandler.DeleteMenuItem).Methods("DELETE")

	// Bills
	api.HandleFunc("/bills", billHandler.ListBills).Methods("GET")
	api.HandleFunc("/bills", billHandler.CreateBill).Methods("POST")
	api.HandleFunc("/bills/{id}", billHandler.GetBill).Methods("GET")

	// Reports
	reports := api.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/daily-sales/pdf", reportHandler.DailySalesPDF).Methods("GET")
	reports.HandleFunc("/daily-sales/csv", reportHandler.DailySalesCSV).Methods("GET")
	reports.HandleFunc("/daily-sales/archive", reportHandler.ArchiveDailySales).Methods("POST")

	return r
}
