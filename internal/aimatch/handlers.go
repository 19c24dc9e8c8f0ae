// internal/aimatch/handlers.go
package aimatch

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bridgeup/bridgeup-backend/internal/common/utils"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type matchRequest struct {
	Themes []string `json:"themes" validate:"max=3"`
	Text   string   `json:"text" validate:"max=500"`
}

func (h *Handler) FindBestMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, err := h.service.FindBestMatch(r.Context(), &models.Snapshot{
		Themes: req.Themes,
		Text:   req.Text,
	})
	if err != nil {
		utils.ErrorResponse(w, "Failed to find match", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, match, http.StatusOK)
}

func (h *Handler) GetShowcasePool(w http.ResponseWriter, r *http.Request) {
	utils.SuccessResponse(w, h.service.ShowcasePool(), http.StatusOK)
}

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/aimatch", handler.FindBestMatch).Methods("POST")
	api.HandleFunc("/aimatch/showcase", handler.GetShowcasePool).Methods("GET")
}
