// internal/realtime/routes.go
package realtime

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	router.HandleFunc("/ws", handler.ServeWS)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/users/{id}/notifications", handler.ListNotifications).Methods("GET")
	api.HandleFunc("/users/{id}/notifications/unread", handler.UnreadCount).Methods("GET")
	api.HandleFunc("/users/{id}/notifications/read-all", handler.MarkAllRead).Methods("POST")
	api.HandleFunc("/users/{id}/notifications/{notificationId}/read", handler.MarkRead).Methods("POST")
}
