package get_my_profile

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	msgMissingSession  = "authentication required"
	msgProfileNotFound = "profile not found"
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

// Handle GET /api/v1/profiles/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	profile, err := h.service.Me(r.Context(), session)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			h.logger.Warn("GET /profiles/me - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)
			return
		}
		h.logger.Error("GET /profiles/me - Failed to get profile: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"profile": profile})
}
