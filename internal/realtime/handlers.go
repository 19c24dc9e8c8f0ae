// internal/realtime/handlers.go
package realtime

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/bridgeup/bridgeup-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub   *Hub
	store *NotificationStore
}

func NewHandler(hub *Hub, store *NotificationStore) *Handler {
	return &Handler{hub: hub, store: store}
}

// ServeWS upgrades the connection and attaches the client to the hub.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.ErrorResponse(w, "user_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	NewClient(h.hub, conn, userID).Start()
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	utils.SuccessResponse(w, h.store.List(vars["id"]), http.StatusOK)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	utils.SuccessResponse(w, map[string]int{"unread": h.store.UnreadCount(vars["id"])}, http.StatusOK)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if !h.store.MarkRead(vars["id"], vars["notificationId"]) {
		utils.ErrorResponse(w, "Notification not found", http.StatusNotFound)
		return
	}
	utils.MessageResponse(w, "Marked read", http.StatusOK)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	h.store.MarkAllRead(vars["id"])
	utils.MessageResponse(w, "All marked read", http.StatusOK)
}
