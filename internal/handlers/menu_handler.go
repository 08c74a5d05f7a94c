package handlers

import (
	"net/http"

	"resto-backend/internal/models"
	"resto-backend/internal/services"
	"resto-backend/pkg/utils"

	"go.uber.org/zap"
)

type MenuHandler struct {
	Service *services.MenuService
	logger  *zap.Logger
}

func NewMenuHandler(s *services.MenuService, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{Service: s, logger: logger}
}

func (h *MenuHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, items)
}

func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusCreated, item)
}

func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req models.MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	utils.Data(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
}
