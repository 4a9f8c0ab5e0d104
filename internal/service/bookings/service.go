package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	bookingRepo "github.com/heavyrent/rental-service/internal/infra/storage/booking"
	"github.com/heavyrent/rental-service/internal/service/bookings/models"
	paymentModels "github.com/heavyrent/rental-service/internal/service/payments/models"
	"github.com/heavyrent/rental-service/internal/validation"
)

// Service serves booking reads. Writes go through the booking usecases.
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentLister
	profiles    ProfileResolver
	logger      Logger
}

func NewService(bookingRepo BookingRepository, paymentRepo PaymentLister, profiles ProfileResolver, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		profiles:    profiles,
		logger:      logger,
	}
}

// GetByID returns a booking with its payment attempts to its client, its operator or an admin.
func (s *Service) GetByID(ctx context.Context, session *domain.Session, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetBooking: fetching booking id=%s for user=%s", id, session.UserID)

	caller, err := s.profiles.ResolveIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	role, err := s.profiles.ResolveRole(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if booking.PartyOf(caller.ID, role) == domain.PartyNone {
		s.logger.Warn("GetBooking: access denied for profile=%s to booking id=%s", caller.ID, id)
		return nil, ErrAccessDenied
	}

	payments, err := s.paymentRepo.ListByBookingID(ctx, booking.ID)
	if err != nil {
		s.logger.Error("GetBooking: failed to list payments of booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list payments: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking)
	resp.Payments = make([]*paymentModels.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp.Payments = append(resp.Payments, paymentModels.FromDomainPayment(p))
	}
	return resp, nil
}

// List returns the caller's bookings newest first. Without an explicit role operators see the
// bookings of their equipment and everyone else sees the bookings they made.
func (s *Service) List(ctx context.Context, session *domain.Session, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: user=%s, role=%q, status=%v, page=%d", session.UserID, req.Role, req.Status, req.Page)

	if verr := validation.Struct(req); verr != nil {
		return nil, verr
	}

	caller, err := s.profiles.ResolveIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	party := domain.PartyClient
	switch req.Role {
	case string(domain.RoleOperator):
		party = domain.PartyOperator
	case "":
		role, err := s.profiles.ResolveRole(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if role == domain.RoleOperator {
			party = domain.PartyOperator
		}
	}

	filter := domain.BookingsFilter{
		ProfileID: caller.ID,
		AsParty:   party,
		Page:      req.Page,
		Limit:     req.Limit,
	}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		filter.Status = &status
	}

	items, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error for profile=%s: %v", caller.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d of %d bookings for profile=%s as %s", len(items), total, caller.ID, party)
	return models.FromDomainBookingList(items, total, req.Page, req.Limit), nil
}
