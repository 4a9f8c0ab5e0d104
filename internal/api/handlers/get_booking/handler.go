package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/bookings"
	"github.com/heavyrent/rental-service/internal/service/profiles"
)

const (
	msgMissingSession   = "authentication required"
	msgInvalidBookingID = "invalid booking id"
	msgBookingNotFound  = "booking not found"
	msgAccessDenied     = "you do not have access to this booking"
	msgProfileNotFound  = "profile not found"
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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), session, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, session.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("GET /bookings/{id} - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%s, status=%s", booking.ID, booking.Status)
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"booking": booking})
}
