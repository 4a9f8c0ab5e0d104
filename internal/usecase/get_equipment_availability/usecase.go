package get_equipment_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
	equipmentRepo "github.com/heavyrent/rental-service/internal/infra/storage/equipment"
)

type UseCase struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentReader
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(bookingRepo BookingRepository, equipmentRepo EquipmentReader, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute returns the booked and free windows of one equipment item over a range of days.
// Free windows never start in the past and are empty while the owner keeps the item out of service.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now().UTC()

	// 1. Validate input
	normalize(req, now)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetEquipmentAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetEquipmentAvailability: equipment=%s, range=%s..%s",
		req.EquipmentID, req.From.Format("2006-01-02"), req.To.Format("2006-01-02"))

	// 2. Load equipment
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("GetEquipmentAvailability: equipment id=%s not found", req.EquipmentID)
			return nil, ErrEquipmentNotFound
		}
		uc.logger.Error("GetEquipmentAvailability: failed to get equipment id=%s: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
	}

	// 3. Live bookings in range
	bookings, err := uc.bookingRepo.FindOverlapping(ctx, equipment.ID, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetEquipmentAvailability: failed to get bookings of equipment id=%s: %v", equipment.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Build windows
	booked := bookedWindows(bookings, req.From, req.To)
	bookable := equipment.Status != domain.EquipmentMaintenance && equipment.Status != domain.EquipmentUnavailable

	free := []Window{}
	openFrom := req.From
	if now.After(openFrom) {
		openFrom = now
	}
	if bookable && openFrom.Before(req.To) {
		free = freeWindows(mergeWindows(booked), openFrom, req.To)
	}

	uc.logger.Info("GetEquipmentAvailability: equipment=%s has %d booked and %d free windows",
		equipment.ID, len(booked), len(free))

	return &Response{
		EquipmentID: equipment.ID,
		Status:      string(equipment.Status),
		Bookable:    bookable,
		From:        req.From,
		To:          req.To,
		Booked:      booked,
		Free:        free,
	}, nil
}
