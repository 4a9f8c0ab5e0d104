package create_profile

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/profiles"
	"github.com/heavyrent/rental-service/internal/service/profiles/models"
)

const (
	msgMissingSession     = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "invalid profile"
	msgProfileExists      = "profile already exists"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/profiles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.CreateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /profiles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.Create(r.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrProfileExists):
			h.logger.Warn("POST /profiles - Profile exists: user_id=%s", session.UserID)
			handlers.RespondConflict(w, msgProfileExists)

		case handlers.IsBusinessError(err):
			h.logger.Warn("POST /profiles - Rejected: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("POST /profiles - Failed to create profile: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /profiles - Profile created: profile_id=%s, role=%s", profile.ID, profile.Role)
	handlers.RespondOK(w, http.StatusCreated, handlers.Envelope{"profile": profile})
}
