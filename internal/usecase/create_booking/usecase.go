package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	equipmentRepo "github.com/heavyrent/rental-service/internal/infra/storage/equipment"
	"github.com/heavyrent/rental-service/internal/service/bookings/models"
)

// maxTxAttempts bounds how often a booking transaction is run when it keeps losing serialization races.
const maxTxAttempts = 3

type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentReader
	profiles      ProfileResolver
	notifier      Notifier
	txManager     TransactionManager
	pricing       domain.Pricing
	phone         domain.PhoneFormat
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentReader,
	profiles ProfileResolver,
	notifier Notifier,
	txManager TransactionManager,
	pricing domain.Pricing,
	phone domain.PhoneFormat,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		profiles:      profiles,
		notifier:      notifier,
		txManager:     txManager,
		pricing:       pricing,
		phone:         phone,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute creates a pending booking. The overlap check and the insert share one serializable
// transaction, and the bookings_no_overlap constraint rejects whatever still slips through.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%s, equipment=%s, period=%s..%s",
		req.UserID, req.EquipmentID, req.StartTime.Format("2006-01-02T15:04Z07:00"), req.EndTime.Format("2006-01-02T15:04Z07:00"))

	// 1. Validate input
	now := uc.timeProvider.Now()
	if err := validateRequest(req, uc.phone, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.BookingResult("invalid")
		return nil, err
	}

	// 2. Resolve the caller's profile
	client, err := uc.profiles.ResolveIdentity(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Load equipment
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("CreateBooking: equipment id=%s not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get equipment id=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
	}
	if equipment.OwnerID == client.ID {
		uc.logger.Warn("CreateBooking: profile=%s tried to book own equipment id=%s", client.ID, equipment.ID)
		return nil, ErrOwnEquipment
	}
	if equipment.Status == domain.EquipmentMaintenance || equipment.Status == domain.EquipmentUnavailable {
		uc.logger.Warn("CreateBooking: equipment id=%s is %s", equipment.ID, equipment.Status)
		return nil, ErrEquipmentUnavailable
	}

	// 4. Price the booking
	price := uc.pricing.Compute(equipment.DailyRate, req.DurationHours)

	booking := &domain.Booking{
		EquipmentID:         equipment.ID,
		ClientID:            client.ID,
		OperatorID:          equipment.OwnerID,
		StartTime:           req.StartTime.UTC(),
		EndTime:             req.EndTime.UTC(),
		DurationHours:       req.DurationHours,
		Price:               price,
		ContactName:         strings.TrimSpace(req.ContactName),
		ContactPhone:        req.ContactPhone,
		PickupAddress:       strings.TrimSpace(req.PickupAddress),
		DeliveryAddress:     strings.TrimSpace(req.DeliveryAddress),
		SpecialRequirements: req.SpecialRequirements,
		Status:              domain.StatusPending,
	}

	// 5. Check overlap and insert atomically, rerunning transactions that lost a serialization race
	var created *domain.Booking
	insert := func(txCtx context.Context) error {
		// 5.1. Lock live bookings intersecting the period
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, booking.EquipmentID, booking.StartTime, booking.EndTime)
		if err != nil {
			return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: equipment=%s already booked by booking id=%s (%s)",
				booking.EquipmentID, overlapping[0].ID, overlapping[0].Status)
			return ErrBookingOverlap
		}

		// 5.2. Insert
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return nil
	}
	for attempt := 1; ; attempt++ {
		err = uc.txManager.DoSerializable(ctx, insert)
		if err == nil || !bookingRepo.IsRetryable(err) || attempt == maxTxAttempts {
			break
		}
		uc.logger.Warn("CreateBooking: serialization failure for equipment=%s, attempt %d: %v",
			booking.EquipmentID, attempt, err)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingOverlap) || bookingRepo.IsOverlap(err):
			uc.logger.Warn("CreateBooking: conflict for equipment=%s: %v", booking.EquipmentID, err)
			uc.metrics.BookingResult("conflict")
			return nil, ErrBookingOverlap
		case bookingRepo.IsRetryable(err):
			uc.logger.Warn("CreateBooking: giving up on equipment=%s after %d attempts: %v",
				booking.EquipmentID, maxTxAttempts, err)
			uc.metrics.BookingResult("contention")
			return nil, ErrBookingContention
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		uc.metrics.BookingResult("error")
		return nil, err
	}
	uc.metrics.BookingResult("created")

	// 6. Tell the operator
	uc.notifier.Notify(ctx, &domain.Notification{
		RecipientID: created.OperatorID,
		Title:       "New Booking Request",
		Message:     fmt.Sprintf("New booking request for %s from %s", equipment.Name, created.ContactName),
		Type:        domain.NotificationBookingRequest,
		Data:        map[string]string{"booking_id": created.ID.String()},
	})

	uc.logger.Info("CreateBooking: created booking id=%s total=%.2f advance=%.2f",
		created.ID, created.Price.TotalAmount, created.Price.AdvanceAmount)
	return models.FromDomainBooking(created), nil
}
