// internal/assessment/handlers.go

package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/imadgeboyega/soulbond-backend/internal/auth"
	"github.com/imadgeboyega/soulbond-backend/internal/common/utils"
)

// Handler handles assessment HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new assessment handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetQuestions returns a freshly drawn question set
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	utils.SuccessResponse(w, h.service.Questions(r.Context()), http.StatusOK)
}

// Submit handles a completed quiz
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySubmission), errors.Is(err, ErrUnknownQuestion), errors.Is(err, ErrInvalidOption):
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		default:
			utils.ErrorResponse(w, "Failed to save assessment", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, result, http.StatusOK)
}
