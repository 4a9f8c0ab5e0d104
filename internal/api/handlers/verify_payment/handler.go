package verify_payment

import (
	"errors"
	"net/http"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/service/profiles"
	verifyPayment "github.com/heavyrent/rental-service/internal/usecase/verify_payment"
)

const (
	msgMissingSession       = "authentication required"
	msgInvalidRequestBody   = "invalid request body"
	msgValidationFailed     = "invalid verification request"
	msgProfileNotFound      = "profile not found"
	msgPaymentNotFound      = "payment not found"
	msgBookingNotFound      = "booking not found"
	msgBookingMismatch      = "payment does not belong to this booking"
	msgNotBookingClient     = "unauthorized to verify payment for this booking"
	msgAlreadyCaptured      = "booking already has a captured payment"
	msgSignatureMismatch    = "payment verification failed"
	msgGatewayNotConfigured = "payment gateway configuration missing"
	msgVerified             = "Payment verified successfully"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req verifyPayment.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = session.UserID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrSignatureMismatch):
			// Possible forgery: keep it at error level.
			h.logger.Error("POST /payments/verify - Signature mismatch: order_id=%s, booking_id=%s, user_id=%s",
				req.GatewayOrderID, req.BookingID, req.UserID)
			handlers.RespondCategorized(w, err, msgSignatureMismatch)

		case errors.Is(err, verifyPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/verify - Payment not found: order_id=%s", req.GatewayOrderID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, verifyPayment.ErrBookingNotFound):
			h.logger.Warn("POST /payments/verify - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, verifyPayment.ErrBookingMismatch):
			h.logger.Warn("POST /payments/verify - Booking mismatch: order_id=%s, booking_id=%s", req.GatewayOrderID, req.BookingID)
			handlers.RespondBadRequest(w, msgBookingMismatch)

		case errors.Is(err, verifyPayment.ErrNotBookingClient):
			h.logger.Warn("POST /payments/verify - Not the client: booking_id=%s, user_id=%s", req.BookingID, req.UserID)
			handlers.RespondForbidden(w, msgNotBookingClient)

		case errors.Is(err, verifyPayment.ErrAlreadyCaptured):
			h.logger.Warn("POST /payments/verify - Already captured: booking_id=%s, payment_id=%s", req.BookingID, req.GatewayPaymentID)
			handlers.RespondConflict(w, msgAlreadyCaptured)

		case errors.Is(err, verifyPayment.ErrGatewayNotConfigured):
			h.logger.Error("POST /payments/verify - Gateway not configured")
			handlers.RespondCategorized(w, err, msgGatewayNotConfigured)

		case errors.Is(err, profiles.ErrProfileNotFound):
			h.logger.Warn("POST /payments/verify - Profile not found: user_id=%s", req.UserID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case handlers.IsBusinessError(err):
			h.logger.Warn("POST /payments/verify - Rejected: order_id=%s, error=%v", req.GatewayOrderID, err)
			handlers.RespondCategorized(w, err, msgValidationFailed)

		default:
			h.logger.Error("POST /payments/verify - Failed to verify payment: order_id=%s, error=%v", req.GatewayOrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/verify - Payment verified: booking_id=%s, payment_id=%s, already_verified=%t",
		req.BookingID, req.GatewayPaymentID, result.AlreadyVerified)
	handlers.RespondOK(w, http.StatusOK, handlers.Envelope{
		"message":         msgVerified,
		"payment":         result.Payment,
		"booking":         result.Booking,
		"alreadyVerified": result.AlreadyVerified,
	})
}
