package create_booking

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/profiles"
	createBooking "github.com/heavyrent/rental-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgMissingSession       = "authentication required"
	msgValidationFailed     = "invalid booking request"
	msgProfileNotFound      = "create a profile before booking equipment"
	msgEquipmentNotFound    = "equipment not found"
	msgBookingOverlap       = "equipment is already booked for the selected period"
	msgBookingContention    = "too many concurrent booking requests, please retry"
	msgEquipmentUnavailable = "equipment is not available for booking"
	msgOwnEquipment         = "you cannot book your own equipment"
	msgBookingFailed        = "failed to create booking"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = session.UserID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingOverlap):
			h.logger.Warn("POST /bookings - Overlap: equipment_id=%s, start=%s, end=%s",
				req.EquipmentID, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgBookingOverlap)

		case errors.Is(err, createBooking.ErrBookingContention):
			h.logger.Warn("POST /bookings - Contention: equipment_id=%s", req.EquipmentID)
			handlers.RespondConflict(w, msgBookingContention)

		case errors.Is(err, createBooking.ErrEquipmentNotFound):
			h.logger.Warn("POST /bookings - Equipment not found: equipment_id=%s", req.EquipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, createBooking.ErrEquipmentUnavailable):
			h.logger.Warn("POST /bookings - Equipment unavailable: equipment_id=%s", req.EquipmentID)
			handlers.RespondConflict(w, msgEquipmentUnavailable)

		case errors.Is(err, createBooking.ErrOwnEquipment):
			h.logger.Warn("POST /bookings - Own equipment: user_id=%s, equipment_id=%s", req.UserID, req.EquipmentID)
			handlers.RespondForbidden(w, msgOwnEquipment)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("POST /bookings - Profile not found: user_id=%s", req.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case handlers.IsBusinessError(err):
			h.logger.Warn("POST /bookings - Rejected: user_id=%s, error=%v", req.UserID, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, equipment_id=%s, error=%v",
				req.UserID, req.EquipmentID, err)
			handlers.RespondCategorized(w, err, msgBookingFailed)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, equipment_id=%s, total=%.2f",
		result.ID, result.EquipmentID, result.TotalAmount)
	handlers.RespondOK(w, http.StatusCreated, handlers.Envelope{"booking": result})
}
