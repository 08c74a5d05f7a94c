package handlers

import (
	"net/http"

	"resto-backend/internal/models"
	"resto-backend/internal/realtime"
	"resto-backend/internal/services"
	"resto-backend/pkg/utils"

	"go.uber.org/zap"
)

type TableHandler struct {
	Service *services.TableService
	hub     *realtime.Hub
	logger  *zap.Logger
}

func NewTableHandler(s *services.TableService, hub *realtime.Hub, logger *zap.Logger) *TableHandler {
	return &TableHandler{Service: s, hub: hub, logger: logger}
}

func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, tables)
}

func (h *TableHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req models.TableRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	table, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusCreated, table)
}

func (h *TableHandler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req models.TableRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	table, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, table)
}

func (h *TableHandler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, map[string]string{"message": "Table deleted successfully"})
}

// Stream upgrades to a websocket that receives table events.
func (h *TableHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
