package verify_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	paymentRepo "github.com/heavyrent/rental-service/internal/infra/storage/payment"
	"github.com/heavyrent/rental-service/internal/integrations/razorpay"
	bookingModels "github.com/heavyrent/rental-service/internal/service/bookings/models"
	paymentModels "github.com/heavyrent/rental-service/internal/service/payments/models"
)

type UseCase struct {
	paymentRepo   PaymentRepository
	bookingRepo   BookingRepository
	equipmentRepo EquipmentReader
	profiles      ProfileResolver
	verifier      SignatureVerifier
	notifier      Notifier
	txManager     TransactionManager
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	equipmentRepo EquipmentReader,
	profiles ProfileResolver,
	verifier SignatureVerifier,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:   paymentRepo,
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		profiles:      profiles,
		verifier:      verifier,
		notifier:      notifier,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute checks the checkout signature and, when it holds, captures the payment and
// confirms a pending booking in one transaction. A repeated call for a captured payment
// succeeds with AlreadyVerified and sends no notifications.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifyPayment: user=%s, order=%s, payment=%s, booking=%s",
		req.UserID, req.GatewayOrderID, req.GatewayPaymentID, req.BookingID)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyPayment: validation failed: %v", err)
		uc.metrics.PaymentVerificationResult("invalid")
		return nil, err
	}

	caller, err := uc.profiles.ResolveIdentity(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 2. Check the signature
	valid, err := uc.verifier.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		if errors.Is(err, razorpay.ErrNotConfigured) {
			uc.logger.Error("VerifyPayment: gateway secret is missing")
			uc.metrics.PaymentVerificationResult("not_configured")
			return nil, ErrGatewayNotConfigured
		}
		return nil, fmt.Errorf("%w: failed to verify signature: %v", ErrInternal, err)
	}

	// 3. Apply the outcome under row locks
	var (
		payment         *domain.Payment
		booking         *domain.Booking
		alreadyVerified bool
	)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Lock payment and booking
		payment, err = uc.paymentRepo.GetByOrderID(txCtx, req.GatewayOrderID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
		}
		if payment.BookingID != req.BookingID {
			return ErrBookingMismatch
		}

		booking, err = uc.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if booking.ClientID != caller.ID {
			return ErrNotBookingClient
		}

		// 3.2. Invalid signature: remember the attempt, keep the booking untouched
		if !valid {
			if err := uc.paymentRepo.MarkFailed(txCtx, payment.ID, req.GatewayPaymentID); err != nil {
				return fmt.Errorf("%w: failed to mark payment failed: %w", ErrInternal, err)
			}
			return nil
		}

		// 3.3. Already captured
		if payment.Status == domain.PaymentPaid {
			if payment.GatewayPaymentID != nil && *payment.GatewayPaymentID == req.GatewayPaymentID {
				alreadyVerified = true
				return nil
			}
			return ErrAlreadyCaptured
		}

		// 3.4. Capture and confirm
		paidAt := uc.timeProvider.Now().UTC()
		if err := uc.paymentRepo.MarkPaid(txCtx, payment.ID, req.GatewayPaymentID, paidAt); err != nil {
			if errors.Is(err, paymentRepo.ErrAlreadyPaid) {
				return ErrAlreadyCaptured
			}
			return fmt.Errorf("%w: failed to mark payment paid: %w", ErrInternal, err)
		}
		payment.Status = domain.PaymentPaid
		payment.GatewayPaymentID = &req.GatewayPaymentID
		payment.PaidAt = &paidAt

		if booking.Status == domain.StatusPending {
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed, nil); err != nil {
				return fmt.Errorf("%w: failed to confirm booking: %w", ErrInternal, err)
			}
			booking.Status = domain.StatusConfirmed
		} else {
			uc.logger.Warn("VerifyPayment: booking id=%s is %s, status left unchanged", booking.ID, booking.Status)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("VerifyPayment: transaction failed: %v", err)
			uc.metrics.PaymentVerificationResult("error")
			return nil, err
		}
		if bookingRepo.IsConflict(err) {
			uc.logger.Warn("VerifyPayment: concurrent update for order=%s: %v", req.GatewayOrderID, err)
			uc.metrics.PaymentVerificationResult("conflict")
			return nil, ErrAlreadyCaptured
		}
		uc.logger.Warn("VerifyPayment: rejected order=%s: %v", req.GatewayOrderID, err)
		uc.metrics.PaymentVerificationResult("rejected")
		return nil, err
	}

	if !valid {
		uc.logger.Warn("VerifyPayment: signature mismatch for order=%s", req.GatewayOrderID)
		uc.metrics.PaymentVerificationResult("signature_mismatch")
		return nil, ErrSignatureMismatch
	}

	resp := &Response{
		Payment:         paymentModels.FromDomainPayment(payment),
		Booking:         bookingModels.FromDomainBooking(booking),
		AlreadyVerified: alreadyVerified,
	}
	if alreadyVerified {
		uc.logger.Info("VerifyPayment: order=%s was already verified", req.GatewayOrderID)
		uc.metrics.PaymentVerificationResult("already_verified")
		return resp, nil
	}
	uc.metrics.PaymentVerificationResult("verified")

	// 4. Tell both parties
	uc.notifyParties(ctx, booking, payment)

	uc.logger.Info("VerifyPayment: payment id=%s captured, booking id=%s is %s", payment.ID, booking.ID, booking.Status)
	return resp, nil
}

func (uc *UseCase) notifyParties(ctx context.Context, booking *domain.Booking, payment *domain.Payment) {
	name := "your equipment booking"
	if equipment, err := uc.equipmentRepo.GetByID(ctx, booking.EquipmentID); err == nil {
		name = equipment.Name
	} else {
		uc.logger.Warn("VerifyPayment: failed to load equipment id=%s: %v", booking.EquipmentID, err)
	}

	data := map[string]string{
		"booking_id": booking.ID.String(),
		"payment_id": payment.ID.String(),
	}
	uc.notifier.Notify(ctx, &domain.Notification{
		RecipientID: booking.ClientID,
		Title:       "Payment Successful",
		Message:     fmt.Sprintf("Payment confirmed for %s. Your booking is now confirmed.", name),
		Type:        domain.NotificationPaymentSuccess,
		Data:        data,
	})
	uc.notifier.Notify(ctx, &domain.Notification{
		RecipientID: booking.OperatorID,
		Title:       "Booking Confirmed",
		Message:     fmt.Sprintf("Payment received for %s. Booking is now confirmed.", name),
		Type:        domain.NotificationBookingConfirmed,
		Data:        data,
	})
}
