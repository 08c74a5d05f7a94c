package handlers

import (
	"net/http"

	"resto-backend/internal/services"
	"resto-backend/pkg/utils"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
	logger  *zap.Logger
}

func NewAnalyticsHandler(s *services.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s, logger: logger}
}

// CalendarStatus handles GET /api/calendar-status?month=YYYY-MM
func (h *AnalyticsHandler) CalendarStatus(w http.ResponseWriter, r *http.Request) {
	days, err := h.Service.CalendarStatus(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, days)
}

// DailySales handles GET /api/daily-sales?date=YYYY-MM-DD
func (h *AnalyticsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.DailySales(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, data)
}

// MonthlyStats handles GET /api/monthly-stats?month=YYYY-MM
func (h *AnalyticsHandler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.MonthlyStats(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, stats)
}

// TopSelling handles GET /api/top-selling?month=YYYY-MM&limit=N
func (h *AnalyticsHandler) TopSelling(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.TopSelling(r.Context(), r.URL.Query().Get("month"), queryInt(r, "limit"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, items)
}

// WeeklySales handles GET /api/weekly-sales?days=N
func (h *AnalyticsHandler) WeeklySales(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.WeeklySales(r.Context(), queryInt(r, "days"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, data)
}
