package list_notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	defaultPageLimit = 20

	msgMissingSession  = "authentication required"
	msgInvalidUnread   = "unread must be true or false"
	msgProfileNotFound = "profile not found"
)

type Handler struct {
	service  NotificationService
	profiles ProfileResolver
	logger   Logger
}

func NewHandler(service NotificationService, profiles ProfileResolver, logger Logger) *Handler {
	return &Handler{
		service:  service,
		profiles: profiles,
		logger:   logger,
	}
}

// Handle GET /api/v1/notifications?unread=true&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	page, limit, err := handlers.ParsePagination(r, defaultPageLimit)
	if err != nil {
		h.logger.Warn("GET /notifications - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	var unreadOnly bool
	if v := r.URL.Query().Get("unread"); v != "" {
		if unreadOnly, err = strconv.ParseBool(v); err != nil {
			handlers.RespondBadRequest(w, msgInvalidUnread)
			return
		}
	}

	profile, err := h.profiles.ResolveIdentity(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			h.logger.Warn("GET /notifications - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)
			return
		}
		h.logger.Error("GET /notifications - Failed to resolve profile: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.List(r.Context(), profile.ID, unreadOnly, page, limit)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: profile_id=%s, error=%v", profile.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	pagination := handlers.Pagination{
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	}
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{
		"notifications": result.Notifications,
		"pagination":    pagination,
	})
}
