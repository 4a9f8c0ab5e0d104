package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	"github.com/heavyrent/rental-service/internal/service/bookings/models"
)

type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentReader
	profiles      ProfileResolver
	notifier      Notifier
	txManager     TransactionManager
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentReader,
	profiles ProfileResolver,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		profiles:      profiles,
		notifier:      notifier,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute moves a booking along its lifecycle on behalf of one of its parties
// and notifies the other one.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBookingStatus: user=%s, booking=%s, status=%s", req.UserID, req.BookingID, req.Status)

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}
	target := domain.BookingStatus(req.Status)
	notes := trimNotes(req.Notes)

	// 2. Resolve caller and role
	caller, err := uc.profiles.ResolveIdentity(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	role, err := uc.profiles.ResolveRole(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	// 3. Check and apply the transition on the locked row
	var (
		booking *domain.Booking
		party   domain.Party
	)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		party = booking.PartyOf(caller.ID, role)
		if err := domain.CheckTransition(booking.Status, target, party); err != nil {
			return err
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, target, notes); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("UpdateBookingStatus: booking id=%s not found", req.BookingID)
		case domain.IsTransitionError(err):
			uc.logger.Warn("UpdateBookingStatus: profile=%s rejected for booking id=%s: %v", caller.ID, req.BookingID, err)
		default:
			uc.logger.Error("UpdateBookingStatus: transaction failed for booking id=%s: %v", req.BookingID, err)
		}
		return nil, err
	}

	previous := booking.Status
	booking.Status = target
	if notes != nil {
		booking.Notes = notes
	}

	// 4. Tell the other side
	uc.notifyCounterparty(ctx, booking, party)

	uc.logger.Info("UpdateBookingStatus: booking id=%s %s -> %s by %s", booking.ID, previous, target, party)
	return models.FromDomainBooking(booking), nil
}

func (uc *UseCase) notifyCounterparty(ctx context.Context, booking *domain.Booking, party domain.Party) {
	notificationType, ok := domain.NotificationTypeForStatus(booking.Status)
	if !ok {
		return
	}

	name := "your booking"
	if equipment, err := uc.equipmentRepo.GetByID(ctx, booking.EquipmentID); err == nil {
		name = equipment.Name
	} else {
		uc.logger.Warn("UpdateBookingStatus: failed to load equipment id=%s: %v", booking.EquipmentID, err)
	}

	title, message := statusMessage(booking.Status, party, name)
	uc.notifier.Notify(ctx, &domain.Notification{
		RecipientID: booking.Counterparty(party),
		Title:       title,
		Message:     message,
		Type:        notificationType,
		Data:        map[string]string{"booking_id": booking.ID.String()},
	})
}

func statusMessage(status domain.BookingStatus, party domain.Party, name string) (string, string) {
	switch status {
	case domain.StatusConfirmed:
		return "Booking Confirmed", fmt.Sprintf("Your booking for %s has been confirmed by the operator.", name)
	case domain.StatusActive:
		return "Equipment Active", fmt.Sprintf("Your booking for %s is now active.", name)
	case domain.StatusCompleted:
		return "Booking Completed", fmt.Sprintf("Your booking for %s has been completed. Please rate your experience.", name)
	}

	if party == domain.PartyClient {
		return "Booking Cancelled", fmt.Sprintf("Booking for %s has been cancelled by the client.", name)
	}
	return "Booking Cancelled", fmt.Sprintf("Your booking for %s has been cancelled by the operator.", name)
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
