package create_payment_order

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/profiles"
	createOrder "github.com/heavyrent/rental-service/internal/usecase/create_payment_order"
)

const (
	msgMissingSession       = "authentication required"
	msgInvalidRequestBody   = "invalid request body"
	msgValidationFailed     = "invalid payment order"
	msgProfileNotFound      = "profile not found"
	msgBookingNotFound      = "booking not found"
	msgNotBookingClient     = "unauthorized to pay for this booking"
	msgBookingClosed        = "booking is completed or cancelled"
	msgAlreadyPaid          = "booking is already paid"
	msgGatewayFailed        = "payment order creation failed"
	msgGatewayNotConfigured = "payment gateway configuration missing"
)

type Handler struct {
	useCase CreatePaymentOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req createOrder.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = session.UserID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrBookingNotFound):
			h.logger.Warn("POST /payments/orders - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createOrder.ErrNotBookingClient):
			h.logger.Warn("POST /payments/orders - Not the client: booking_id=%s, user_id=%s", req.BookingID, req.UserID)
			handlers.RespondForbidden(w, msgNotBookingClient)

		case errors.Is(err, createOrder.ErrBookingClosed):
			h.logger.Warn("POST /payments/orders - Booking closed: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgBookingClosed)

		case errors.Is(err, createOrder.ErrAlreadyPaid):
			h.logger.Warn("POST /payments/orders - Already paid: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, createOrder.ErrGatewayNotConfigured):
			h.logger.Error("POST /payments/orders - Gateway not configured")
			handlers.RespondCategorized(w, err, msgGatewayNotConfigured)

		case errors.Is(err, createOrder.ErrGatewayFailed):
			h.logger.Error("POST /payments/orders - Gateway failure: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondCategorized(w, err, msgGatewayFailed)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("POST /payments/orders - Profile not found: user_id=%s", req.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case handlers.IsBusinessError(err):
			h.logger.Warn("POST /payments/orders - Rejected: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("POST /payments/orders - Failed to create order: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/orders - Order created: booking_id=%s, order_id=%s, amount=%d",
		req.BookingID, result.Order.ID, result.Order.Amount)
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{
		"order":   result.Order,
		"payment": result.Payment,
		"key":     result.Key,
	})
}
