package dating

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/soulbond-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/dating").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Swipes & matches
	api.HandleFunc("/swipes", handler.Swipe).Methods("POST")
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")

	// Compatibility
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")
	api.HandleFunc("/discover", handler.Discover).Methods("GET")
	api.HandleFunc("/stats", handler.GetStats).Methods("GET")

	if hub != nil {
		router.Handle("/ws", authMiddleware.Authenticate(http.HandlerFunc(hub.ServeWS))).Methods("GET")
	}
}
