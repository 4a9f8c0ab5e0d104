package domain

import (
	"time"

	"github.com/google/uuid"
)

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentRented      EquipmentStatus = "rented"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentUnavailable EquipmentStatus = "unavailable"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentRented, EquipmentMaintenance, EquipmentUnavailable:
		return true
	}
	return false
}

type Equipment struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Category       string
	Description    *string
	DailyRate      float64
	City           string
	Address        string
	Latitude       *float64
	Longitude      *float64
	Status         EquipmentStatus
	Specifications Specifications
	Images         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Owner is filled by catalog queries joining profiles.
	Owner *OwnerSummary
}

// HasCoordinates reports whether the item was geocoded.
func (e *Equipment) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

type OwnerSummary struct {
	ID          uuid.UUID
	FullName    string
	Rating      float64
	ReviewCount int
}

// EquipmentFilter of a catalog query. Nil fields are not applied.
type EquipmentFilter struct {
	Category      *string
	City          *string
	MinPrice      *float64
	MaxPrice      *float64
	AvailableOnly bool
	Latitude      *float64
	Longitude     *float64
	RadiusKm      float64
	Page          int
	Limit         int
}

// HasGeo reports whether the filter asks for a radius search.
func (f EquipmentFilter) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil
}

func (f EquipmentFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
