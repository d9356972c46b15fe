// internal/assessment/routes.go

package assessment

import (
	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/soulbond-backend/internal/auth"
)

// RegisterRoutes registers the quiz routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/api/v1/assessment/questions", handler.GetQuestions)
		r.Post("/api/v1/assessment", handler.Submit)
	})
}
