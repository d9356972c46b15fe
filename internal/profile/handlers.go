// internal/profile/handlers.go

package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/soulbond-backend/internal/auth"
	"github.com/imadgeboyega/soulbond-backend/internal/common/utils"
)

// Handler handles profile-related HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new profile handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyProfile handles getting current user's profile
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetMyProfile(r.Context(), userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	utils.SuccessResponse(w, user, http.StatusOK)
}

// GetUserProfile handles getting another user's public profile
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserIDFromContext(r.Context()); !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.GetPublicProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		utils.ErrorResponse(w, "Profile not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidID):
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
	default:
		utils.ErrorResponse(w, "Failed to get profile", http.StatusInternalServerError)
	}
}
