// internal/bridges/routes.go
package bridges

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Snapshot lifecycle
	api.HandleFunc("/snapshots", handler.CreateSnapshot).Methods("POST")
	api.HandleFunc("/snapshots/pending", handler.GetPendingSnapshots).Methods("GET")
	api.HandleFunc("/snapshots/retry-matching", handler.RetryMatching).Methods("POST")

	// Bridges
	api.HandleFunc("/bridges", handler.GetBridges).Methods("GET")
	api.HandleFunc("/bridges/{id}", handler.GetBridge).Methods("GET")
	api.HandleFunc("/bridges/{id}/view", handler.RecordView).Methods("POST")

	// Personalized suggestions
	api.HandleFunc("/users/{id}/suggestions", handler.GetSuggestions).Methods("GET")
}
