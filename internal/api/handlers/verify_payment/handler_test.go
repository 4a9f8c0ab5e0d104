package verify_payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heavyrent/rental-service/internal/api/handlers"
	"github.com/heavyrent/rental-service/internal/api/middleware"
	"github.com/heavyrent/rental-service/internal/domain"
	bookingModels "github.com/heavyrent/rental-service/internal/service/bookings/models"
	paymentModels "github.com/heavyrent/rental-service/internal/service/payments/models"
	verifyPayment "github.com/heavyrent/rental-service/internal/usecase/verify_payment"
	"github.com/heavyrent/rental-service/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *verifyPayment.Request) (*verifyPayment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verifyPayment.Response), args.Error(1)
}

func payload(bookingID uuid.UUID) string {
	return fmt.Sprintf(`{
		"razorpay_payment_id": "pay_N5pA",
		"razorpay_order_id": "order_N5p8",
		"razorpay_signature": "c0ffee",
		"booking_id": %q
	}`, bookingID)
}

func serve(uc *MockUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
	req = req.WithContext(middleware.WithSession(req.Context(), &domain.Session{UserID: uuid.New()}))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Verified(t *testing.T) {
	uc := new(MockUseCase)
	bookingID := uuid.New()
	paymentID := "pay_N5pA"
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *verifyPayment.Request) bool {
		return r.GatewayPaymentID == "pay_N5pA" && r.GatewayOrderID == "order_N5p8" &&
			r.Signature == "c0ffee" && r.BookingID == bookingID
	})).Return(&verifyPayment.Response{
		Payment: &paymentModels.PaymentResponse{BookingID: bookingID, GatewayPaymentID: &paymentID, Status: "paid"},
		Booking: &bookingModels.BookingResponse{ID: bookingID, Status: "confirmed"},
	}, nil)

	rec := serve(uc, payload(bookingID))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool                           `json:"success"`
		Message string                         `json:"message"`
		Payment *paymentModels.PaymentResponse `json:"payment"`
		Booking *bookingModels.BookingResponse `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Payment verified successfully", resp.Message)
	assert.Equal(t, "paid", resp.Payment.Status)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"signature", verifyPayment.ErrSignatureMismatch, http.StatusOK, handlers.CodeSignatureMismatch},
		{"payment not found", verifyPayment.ErrPaymentNotFound, http.StatusOK, handlers.CodeNotFound},
		{"booking not found", verifyPayment.ErrBookingNotFound, http.StatusOK, handlers.CodeNotFound},
		{"mismatch", verifyPayment.ErrBookingMismatch, http.StatusBadRequest, handlers.CodeValidation},
		{"not the client", verifyPayment.ErrNotBookingClient, http.StatusOK, handlers.CodeForbidden},
		{"already captured", verifyPayment.ErrAlreadyCaptured, http.StatusOK, handlers.CodeConflict},
		{"not configured", verifyPayment.ErrGatewayNotConfigured, http.StatusOK, handlers.CodeConfiguration},
		{"internal", errors.New("deadlock"), http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, payload(uuid.New()))

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestHandle_RejectsCamelCaseKeys(t *testing.T) {
	uc := new(MockUseCase)

	rec := serve(uc, `{"razorpayPaymentId":"pay_N5pA"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
