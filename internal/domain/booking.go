package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// LiveStatuses hold their interval on the equipment calendar.
var LiveStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusActive, StatusCompleted}

// Booking of one equipment item by a client over the half-open interval [StartTime, EndTime).
type Booking struct {
	ID          uuid.UUID
	EquipmentID uuid.UUID
	ClientID    uuid.UUID
	OperatorID  uuid.UUID

	StartTime     time.Time
	EndTime       time.Time
	DurationHours int

	Price PriceBreakdown

	// Contact snapshot at booking time
	ContactName         string
	ContactPhone        string
	PickupAddress       string
	DeliveryAddress     string
	SpecialRequirements *string
	Notes               *string

	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the booking interval intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Overlaps reports whether half-open intervals [s1,e1) and [s2,e2) share an instant.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Party is the relation of a caller to a booking.
type Party string

const (
	PartyNone     Party = "none"
	PartyClient   Party = "client"
	PartyOperator Party = "operator"
	PartyAdmin    Party = "admin"
)

// PartyOf resolves how profileID with the given role relates to b.
// The equipment owner is the operator even if they hold the admin role.
func (b *Booking) PartyOf(profileID uuid.UUID, role Role) Party {
	switch {
	case profileID == b.OperatorID:
		return PartyOperator
	case profileID == b.ClientID:
		return PartyClient
	case role == RoleAdmin:
		return PartyAdmin
	default:
		return PartyNone
	}
}

// Counterparty returns the profile to notify when party changes the booking.
func (b *Booking) Counterparty(party Party) uuid.UUID {
	if party == PartyClient {
		return b.OperatorID
	}
	return b.ClientID
}

var (
	ErrTerminalStatus      = fmt.Errorf("%w: booking is in a terminal status", ErrForbidden)
	ErrSameStatus          = fmt.Errorf("%w: booking already has this status", ErrForbidden)
	ErrTransitionForbidden = fmt.Errorf("%w: status transition not allowed", ErrForbidden)
	ErrNotParticipant      = fmt.Errorf("%w: caller is not a participant of the booking", ErrForbidden)
)

// transitions lists, per source status, the allowed targets and who may request them.
// Only the booking's own parties change its status; admins may read it but not move it.
var transitions = map[BookingStatus]map[BookingStatus][]Party{
	StatusPending: {
		StatusConfirmed: {PartyOperator},
		StatusCancelled: {PartyOperator, PartyClient},
	},
	StatusConfirmed: {
		StatusActive:    {PartyOperator},
		StatusCancelled: {PartyOperator, PartyClient},
	},
	StatusActive: {
		StatusCompleted: {PartyOperator},
		StatusCancelled: {PartyOperator, PartyClient},
	},
}

// CheckTransition returns nil when party may move a booking from one status to another.
// All rejections wrap ErrForbidden.
func CheckTransition(from, to BookingStatus, party Party) error {
	if party == PartyNone {
		return ErrNotParticipant
	}
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, from)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrSameStatus, from)
	}

	allowed, ok := transitions[from][to]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionForbidden, from, to)
	}
	for _, p := range allowed {
		if p == party {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not set %s", ErrTransitionForbidden, party, to)
}

// IsTransitionError reports whether err came from CheckTransition.
func IsTransitionError(err error) bool {
	return errors.Is(err, ErrTerminalStatus) ||
		errors.Is(err, ErrSameStatus) ||
		errors.Is(err, ErrTransitionForbidden) ||
		errors.Is(err, ErrNotParticipant)
}

// BookingsFilter of the user bookings list.
type BookingsFilter struct {
	ProfileID uuid.UUID
	AsParty   Party // PartyClient or PartyOperator
	Status    *BookingStatus
	Page      int
	Limit     int
}

func (f BookingsFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
