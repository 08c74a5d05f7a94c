package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resto-backend/internal/services"
	"resto-backend/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	Service *services.ReportService
	logger  *zap.Logger
}

func NewReportHandler(s *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{Service: s, logger: logger}
}

// DailySalesPDF handles GET /api/reports/daily-sales/pdf?date=YYYY-MM-DD
func (h *ReportHandler) DailySalesPDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	pdfData, data, err := h.Service.DailySalesPDF(ctx, r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Attachment(w, "application/pdf", fmt.Sprintf("daily_sales_%s.pdf", data.Date), pdfData)
}

// DailySalesCSV handles GET /api/reports/daily-sales/csv?date=YYYY-MM-DD
func (h *ReportHandler) DailySalesCSV(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	csvData, err := h.Service.DailySalesCSV(ctx, date)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Attachment(w, "text/csv", fmt.Sprintf("daily_sales_%s.csv", date), csvData)
}

// ArchiveDailySales handles POST /api/reports/daily-sales/archive?date=YYYY-MM-DD
func (h *ReportHandler) ArchiveDailySales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	result, err := h.Service.ArchiveDailySales(ctx, r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusCreated, result)
}
