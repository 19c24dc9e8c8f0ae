// internal/interactions/routes.go
package interactions

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/interactions/like", handler.ToggleLike).Methods("POST")
	api.HandleFunc("/interactions/save", handler.ToggleSave).Methods("POST")
	api.HandleFunc("/interactions/status", handler.GetStatus).Methods("GET")
	api.HandleFunc("/interactions/{targetType}/{targetId}/counts", handler.GetCounts).Methods("GET")
	api.HandleFunc("/users/{id}/saved", handler.GetSavedItems).Methods("GET")
}
