package dating

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/soulbond-backend/internal/auth"
	"github.com/imadgeboyega/soulbond-backend/internal/common/utils"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

type Handler struct {
	service Service
	admin   *AdminService
}

func NewHandler(service Service, admin *AdminService) *Handler {
	return &Handler{service: service, admin: admin}
}

func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Swipe(r.Context(), userID, &req)
	if err != nil {
		h.handleError(w, err, "Failed to record swipe")
		return
	}

	status := http.StatusOK
	if result.Outcome == OutcomeMatched {
		status = http.StatusCreated
	}
	utils.SuccessResponse(w, result, status)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		h.handleError(w, err, "Failed to get matches")
		return
	}

	utils.SuccessResponse(w, matches, http.StatusOK)
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	targetID := mux.Vars(r)["userId"]
	result, err := h.service.GetCompatibility(r.Context(), userID, targetID)
	if err != nil {
		h.handleError(w, err, "Failed to calculate compatibility")
		return
	}

	utils.SuccessResponse(w, result, http.StatusOK)
}

func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := &DiscoverParams{}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil || l < 1 {
			utils.ErrorResponse(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		params.Limit = l
	}
	params.Refresh = r.URL.Query().Get("refresh") == "true"

	picks, err := h.service.Discover(r.Context(), userID, params)
	if err != nil {
		h.handleError(w, err, "Failed to load discover feed")
		return
	}

	utils.SuccessResponse(w, picks, http.StatusOK)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.GetMatchStats(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to get stats", http.StatusInternalServerError)
		return
	}
	utils.SuccessResponse(w, stats, http.StatusOK)
}

func (h *Handler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCannotSwipeSelf), errors.Is(err, ErrCannotScoreSelf), errors.Is(err, ErrInvalidDirection):
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, profile.ErrUserNotFound):
		utils.ErrorResponse(w, "User not found", http.StatusNotFound)
	default:
		utils.ErrorResponse(w, fallback, http.StatusInternalServerError)
	}
}
