// internal/interactions/handlers.go
package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bridgeup/bridgeup-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type toggleRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	TargetType string `json:"target_type" validate:"required,oneof=snapshot bridge"`
	TargetID   string `json:"target_id" validate:"required"`
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleLike, "liked")
}

func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleSave, "saved")
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, targetType, targetID string) (bool, error), field string) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	active, err := op(r.Context(), req.UserID, req.TargetType, req.TargetID)
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.ErrorResponse(w, "Failed to toggle", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, map[string]bool{field: active}, http.StatusOK)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("user_id")
	targetType := query.Get("target_type")
	targetID := query.Get("target_id")
	if userID == "" || targetType == "" || targetID == "" {
		utils.ErrorResponse(w, "user_id, target_type and target_id are required", http.StatusBadRequest)
		return
	}

	liked, err := h.service.IsLiked(r.Context(), userID, targetType, targetID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load status", http.StatusInternalServerError)
		return
	}
	saved, err := h.service.IsSaved(r.Context(), userID, targetType, targetID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to load status", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, map[string]bool{"liked": liked, "saved": saved}, http.StatusOK)
}

func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	counts, err := h.service.GetCounts(r.Context(), vars["targetType"], vars["targetId"])
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.ErrorResponse(w, "Failed to load counts", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, counts, http.StatusOK)
}

func (h *Handler) GetSavedItems(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	saves, err := h.service.GetSavedItems(r.Context(), vars["id"])
	if err != nil {
		utils.ErrorResponse(w, "Failed to load saved items", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, saves, http.StatusOK)
}
