package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"resto-backend/internal/apperr"
	"resto-backend/internal/models"
	"resto-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"go.uber.org/zap"
)

// Archiver stores a finished report and returns where it went.
type Archiver interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

type ArchiveResult struct {
	Date  string `json:"date"`
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
}

// ReportService renders the daily sales detail as PDF or CSV.
type ReportService struct {
	analytics *AnalyticsService
	archiver  Archiver
	logger    *zap.Logger
}

// NewReportService builds the service. A nil archiver disables archiving.
func NewReportService(analytics *AnalyticsService, archiver Archiver, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{analytics: analytics, archiver: archiver, logger: logger}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// DailySalesPDF returns the PDF and the data it was drawn from.
func (s *ReportService) DailySalesPDF(ctx context.Context, date string) ([]byte, *models.DailySales, error) {
	data, err := s.analytics.DailySales(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	out, err := renderDailySalesPDF(data)
	if err != nil {
		return nil, nil, err
	}
	return out, data, nil
}

func renderDailySalesPDF(data *models.DailySales) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Daily Sales Report - "+data.Date, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	sum := data.Summary
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, "Revenue: Rs. "+money(sum.TotalRevenue), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Bills: %d", sum.TotalBills), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, "Avg order: Rs. "+money(sum.AvgOrderValue), "1", 1, "C", false, 0, "")
	types := make([]string, 0, len(sum.PaymentBreakdown))
	for t := range sum.PaymentBreakdown {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		pdf.CellFormat(190, 6, fmt.Sprintf("%s: %d bills", t, sum.PaymentBreakdown[t]), "LR", 1, "L", false, 0, "")
	}
	pdf.CellFormat(190, 0, "", "T", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Items Sold", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Category", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Revenue", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range data.TopItems {
		pdf.CellFormat(80, 6, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, it.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(it.TotalQuantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, money(it.TotalRevenue), "1", 1, "R", false, 0, "")
	}
	if len(data.TopItems) == 0 {
		pdf.CellFormat(190, 6, "No sales recorded", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// DailySalesCSV lists every bill of the day followed by the item totals.
func (s *ReportService) DailySalesCSV(ctx context.Context, date string) ([]byte, error) {
	data, err := s.analytics.DailySales(ctx, date)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Bill ID", "Time", "Payment Type", "Amount"})
	for _, b := range data.Bills {
		paymentType := models.DefaultPaymentType
		if b.PaymentType != nil && *b.PaymentType != "" {
			paymentType = *b.PaymentType
		}
		w.Write([]string{
			b.ID.String(),
			b.Time.In(timeutil.Local).Format("15:04:05"),
			paymentType,
			money(b.Amount),
		})
	}

	w.Write(nil)
	w.Write([]string{"Item", "Category", "Quantity", "Revenue"})
	for _, it := range data.TopItems {
		w.Write([]string{it.Name, it.Category, strconv.Itoa(it.TotalQuantity), money(it.TotalRevenue)})
	}

	w.Write(nil)
	w.Write([]string{"Total Revenue", money(data.Summary.TotalRevenue)})
	w.Write([]string{"Total Bills", strconv.Itoa(data.Summary.TotalBills)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveDailySales renders the day's PDF and uploads it.
func (s *ReportService) ArchiveDailySales(ctx context.Context, date string) (*ArchiveResult, error) {
	if s.archiver == nil {
		return nil, &apperr.DisabledError{Feature: "report archive"}
	}
	pdfData, data, err := s.DailySalesPDF(ctx, date)
	if err != nil {
		return nil, err
	}
	key, err := s.archiver.Put(ctx, "daily-sales-"+data.Date+".pdf", pdfData, "application/pdf")
	if err != nil {
		return nil, apperr.Store("archive report", err)
	}
	s.logger.Info("daily sales report archived", zap.String("date", data.Date), zap.String("key", key))
	return &ArchiveResult{Date: data.Date, Key: key, Bytes: len(pdfData)}, nil
}
