package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/notifications"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	msgMissingSession        = "authentication required"
	msgInvalidNotificationID = "invalid notification id"
	msgNotificationNotFound  = "notification not found"
	msgProfileNotFound       = "profile not found"
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

// Handle PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["notificationId"])
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	profile, err := h.profiles.ResolveIdentity(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			handlers.RespondNotFound(w, msgProfileNotFound)
			return
		}
		h.logger.Error("PATCH /notifications/{id}/read - Failed to resolve profile: user_id=%s, error=%v", session.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	// Someone else's notification is reported as not found.
	if err := h.service.MarkRead(r.Context(), profile.ID, id); err != nil {
		if errors.Is(err, notifications.ErrNotificationNotFound) {
			h.logger.Warn("PATCH /notifications/{id}/read - Not found: notification_id=%s, profile_id=%s", id, profile.ID)
			handlers.RespondNotFound(w, msgNotificationNotFound)
			return
		}
		h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: notification_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"id": id})
}
