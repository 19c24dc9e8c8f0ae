// internal/bridges/handlers.go
package bridges

import (
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

func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, bridge, err := h.service.CreateSnapshot(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidMediaType) {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.ErrorResponse(w, "Failed to create snapshot", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, map[string]interface{}{
		"snapshot": snapshot,
		"bridge":   bridge,
	}, http.StatusCreated)
}

func (h *Handler) GetPendingSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.service.GetPendingSnapshots(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to list pending snapshots", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, snapshots, http.StatusOK)
}

func (h *Handler) RetryMatching(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.RetryMatching(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Matching sweep failed", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, map[string]int{"bridgesCreated": created}, http.StatusOK)
}

func (h *Handler) GetBridges(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	bridges, err := h.service.GetBridges(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to list bridges", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, bridges, http.StatusOK)
}

func (h *Handler) GetBridge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bridge, err := h.service.GetBridgeWithSnapshots(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, ErrBridgeNotFound) {
			utils.ErrorResponse(w, "Bridge not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to load bridge", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, bridge, http.StatusOK)
}

func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.RecordView(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, ErrBridgeNotFound) {
			utils.ErrorResponse(w, "Bridge not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to record view", http.StatusInternalServerError)
		return
	}
	utils.MessageResponse(w, "View recorded", http.StatusOK)
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	suggestions, err := h.service.GetSuggestions(r.Context(), vars["id"])
	if err != nil {
		utils.ErrorResponse(w, "Failed to build suggestions", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, suggestions, http.StatusOK)
}
