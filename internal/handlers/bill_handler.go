package handlers

import (
	"net/http"

	"resto-backend/internal/models"
	"resto-backend/internal/services"
	"resto-backend/pkg/utils"

	"go.uber.org/zap"
)

type BillHandler struct {
	Service *services.BillService
	logger  *zap.Logger
}

func NewBillHandler(s *services.BillService, logger *zap.Logger) *BillHandler {
	return &BillHandler{Service: s, logger: logger}
}

// ListBills handles GET /api/bills?date=YYYY-MM-DD (today when omitted)
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.Service.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, bills)
}

func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	bill, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, bill)
}

func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	bill, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusCreated, bill)
}
