package create_payment_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	"github.com/heavyrent/rental-service/internal/integrations/razorpay"
	"github.com/heavyrent/rental-service/internal/service/payments/models"
)

type UseCase struct {
	bookingRepo   BookingReader
	equipmentRepo EquipmentReader
	paymentRepo   PaymentRepository
	profiles      ProfileResolver
	gateway       PaymentGateway
	currency      string
	maxAmount     float64
	metrics       Metrics
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingReader,
	equipmentRepo EquipmentReader,
	paymentRepo PaymentRepository,
	profiles ProfileResolver,
	gateway PaymentGateway,
	currency string,
	maxAmount float64,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		paymentRepo:   paymentRepo,
		profiles:      profiles,
		gateway:       gateway,
		currency:      currency,
		maxAmount:     maxAmount,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute opens a gateway order for the advance or the full amount of a booking.
// The pending payment row is written only once the gateway has accepted the order.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentOrder: user=%s, booking=%s, amount=%.2f", req.UserID, req.BookingID, req.Amount)

	// 1. Validate input
	if req.Currency == "" {
		req.Currency = uc.currency
	}
	if err := validateRequest(req, uc.maxAmount); err != nil {
		uc.logger.Warn("CreatePaymentOrder: validation failed: %v", err)
		uc.metrics.PaymentOrderResult("invalid")
		return nil, err
	}

	// 2. Resolve caller and booking
	caller, err := uc.profiles.ResolveIdentity(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreatePaymentOrder: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreatePaymentOrder: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Only the client pays, and only for an open booking
	if booking.ClientID != caller.ID {
		uc.logger.Warn("CreatePaymentOrder: profile=%s is not the client of booking id=%s", caller.ID, booking.ID)
		uc.metrics.PaymentOrderResult("forbidden")
		return nil, ErrNotBookingClient
	}
	if booking.Status.IsTerminal() {
		uc.logger.Warn("CreatePaymentOrder: booking id=%s is %s", booking.ID, booking.Status)
		return nil, ErrBookingClosed
	}

	// 4. Nothing paid yet and the amount fits the total
	if err := uc.checkPayable(ctx, booking, req.Amount); err != nil {
		return nil, err
	}

	equipmentName := ""
	if equipment, err := uc.equipmentRepo.GetByID(ctx, booking.EquipmentID); err == nil {
		equipmentName = equipment.Name
	} else {
		uc.logger.Warn("CreatePaymentOrder: failed to load equipment id=%s: %v", booking.EquipmentID, err)
	}

	// 5. Open the gateway order
	order, err := uc.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   domain.ToMinorUnits(req.Amount),
		Currency: req.Currency,
		Receipt:  domain.ReceiptFor(booking.ID),
		Notes: map[string]string{
			"booking_id":     booking.ID.String(),
			"equipment_name": equipmentName,
			"client_name":    booking.ContactName,
		},
	})
	if err != nil {
		if errors.Is(err, razorpay.ErrNotConfigured) {
			uc.logger.Error("CreatePaymentOrder: gateway credentials are missing")
			uc.metrics.PaymentOrderResult("not_configured")
			return nil, ErrGatewayNotConfigured
		}
		uc.logger.Error("CreatePaymentOrder: gateway rejected order for booking id=%s: %v", booking.ID, err)
		uc.metrics.PaymentOrderResult("gateway_error")
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}

	// 6. Record the pending payment
	payment, err := uc.paymentRepo.Create(ctx, &domain.Payment{
		BookingID:      booking.ID,
		GatewayOrderID: order.ID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         domain.PaymentPending,
	})
	if err != nil {
		// The gateway order stays unused; it expires on the gateway side.
		uc.logger.Error("CreatePaymentOrder: failed to store payment for order=%s: %v", order.ID, err)
		uc.metrics.PaymentOrderResult("error")
		return nil, fmt.Errorf("%w: failed to create payment record: %v", ErrInternal, err)
	}
	uc.metrics.PaymentOrderResult("created")

	uc.logger.Info("CreatePaymentOrder: created order=%s payment id=%s", order.ID, payment.ID)
	return &Response{
		Order:   models.FromGatewayOrder(order),
		Payment: models.FromDomainPayment(payment),
		Key:     uc.gateway.KeyID(),
	}, nil
}

// checkPayable allows one captured payment per booking, either the advance or the full total.
func (uc *UseCase) checkPayable(ctx context.Context, booking *domain.Booking, amount float64) error {
	paid, err := uc.paymentRepo.HasPaid(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("CreatePaymentOrder: failed to check payments of booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to check payments: %v", ErrInternal, err)
	}
	if paid {
		uc.logger.Warn("CreatePaymentOrder: booking id=%s is already paid", booking.ID)
		uc.metrics.PaymentOrderResult("already_paid")
		return ErrAlreadyPaid
	}
	if domain.ToMinorUnits(amount) > domain.ToMinorUnits(booking.Price.TotalAmount) {
		return domain.FieldError("amount", fmt.Sprintf("must not exceed the booking total %.2f", booking.Price.TotalAmount))
	}
	return nil
}
