// internal/users/routes.go
package users

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users", handler.CreateUser).Methods("POST")
	api.HandleFunc("/users", handler.ListUsers).Methods("GET")
	api.HandleFunc("/users/{id}", handler.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}", handler.UpdateUser).Methods("PUT")
	api.HandleFunc("/users/{id}/stats", handler.GetStats).Methods("GET")
}
