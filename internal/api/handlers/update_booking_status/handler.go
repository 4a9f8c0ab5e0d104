package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/profiles"
	updateStatus "github.com/heavyrent/rental-service/internal/usecase/update_booking_status"
)

const (
	msgMissingSession     = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgValidationFailed   = "invalid status update"
	msgBookingNotFound    = "booking not found"
	msgProfileNotFound    = "profile not found"
	msgNotParticipant     = "you are not a participant of this booking"
	msgTerminalStatus     = "booking is already completed or cancelled"
	msgSameStatus         = "booking already has this status"
	msgTransitionDenied   = "this status change is not allowed"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req updateStatus.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = session.UserID
	req.BookingID = bookingID

	booking, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Profile not found: user_id=%s", session.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, domain.ErrNotParticipant):
			h.logger.Warn("PATCH /bookings/{id}/status - Not a participant: booking_id=%s, user_id=%s", bookingID, session.UserID)
			handlers.RespondForbidden(w, msgNotParticipant)

		case errors.Is(err, domain.ErrTerminalStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Terminal status: booking_id=%s, target=%s", bookingID, req.Status)
			handlers.RespondForbidden(w, msgTerminalStatus)

		case errors.Is(err, domain.ErrSameStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Same status: booking_id=%s, target=%s", bookingID, req.Status)
			handlers.RespondForbidden(w, msgSameStatus)

		case errors.Is(err, domain.ErrTransitionForbidden):
			h.logger.Warn("PATCH /bookings/{id}/status - Transition denied: booking_id=%s, target=%s", bookingID, req.Status)
			handlers.RespondForbidden(w, msgTransitionDenied)

		case handlers.IsBusinessError(err):
			h.logger.Warn("PATCH /bookings/{id}/status - Rejected: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking updated: booking_id=%s, status=%s", booking.ID, booking.Status)
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{"booking": booking})
}
