package list_bookings

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/bookings/models"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	msgMissingSession  = "authentication required"
	msgInvalidQuery    = "invalid query parameters"
	msgProfileNotFound = "profile not found"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?role=client|operator&status=...&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	page, limit, err := handlers.ParsePagination(r, domain.DefaultBookingsPageLimit)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	q := r.URL.Query()
	req := &models.ListBookingsRequest{
		Role:  q.Get("role"),
		Page:  page,
		Limit: limit,
	}
	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("GET /bookings - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case handlers.IsBusinessError(err):
			h.logger.Warn("GET /bookings - Rejected: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondCategorized(w, err, msgInvalidQuery)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Found %d bookings: user_id=%s, total=%d", len(result.Bookings), session.UserID, result.Total)
	pagination := handlers.Pagination{
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	}
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{
		"bookings":   result.Bookings,
		"pagination": pagination,
	})
}
