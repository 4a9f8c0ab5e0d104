package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type CreateEquipmentRequest struct {
	Name           string                `json:"name" validate:"required,runes=2-100"`
	Category       string                `json:"category" validate:"required,max=100"`
	Description    *string               `json:"description" validate:"omitempty,max=5000"`
	DailyRate      float64               `json:"dailyRate" validate:"gt=0,lte=10000000"`
	City           string                `json:"city" validate:"required,max=100"`
	Address        string                `json:"address" validate:"required,runes=10-500"`
	Latitude       *float64              `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude      *float64              `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	Specifications domain.Specifications `json:"specifications"`
	Images         []string              `json:"images" validate:"max=20,dive,url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available rented maintenance unavailable"`
}

type OwnerResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"fullName"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
}

type EquipmentResponse struct {
	ID             uuid.UUID             `json:"id"`
	OwnerID        uuid.UUID             `json:"ownerId"`
	Name           string                `json:"name"`
	Category       string                `json:"category"`
	Description    *string               `json:"description,omitempty"`
	DailyRate      float64               `json:"dailyRate"`
	City           string                `json:"city"`
	Address        string                `json:"address"`
	Latitude       *float64              `json:"latitude,omitempty"`
	Longitude      *float64              `json:"longitude,omitempty"`
	Status         string                `json:"status"`
	Specifications domain.Specifications `json:"specifications"`
	Images         []string              `json:"images"`
	Owner          *OwnerResponse        `json:"owner,omitempty"`
	DistanceKm     *float64              `json:"distanceKm,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type EquipmentListResponse struct {
	Equipment []*EquipmentResponse `json:"equipment"`
	Total     int                  `json:"total"`
	Page      int                  `json:"page"`
	Limit     int                  `json:"limit"`
	HasMore   bool                 `json:"hasMore"`
}

func FromDomainEquipment(e *domain.Equipment) *EquipmentResponse {
	resp := &EquipmentResponse{
		ID:             e.ID,
		OwnerID:        e.OwnerID,
		Name:           e.Name,
		Category:       e.Category,
		Description:    e.Description,
		DailyRate:      e.DailyRate,
		City:           e.City,
		Address:        e.Address,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Status:         string(e.Status),
		Specifications: e.Specifications,
		Images:         e.Images,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if resp.Specifications == nil {
		resp.Specifications = domain.Specifications{}
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if e.Owner != nil {
		resp.Owner = &OwnerResponse{
			ID:          e.Owner.ID,
			FullName:    e.Owner.FullName,
			Rating:      e.Owner.Rating,
			ReviewCount: e.Owner.ReviewCount,
		}
	}
	return resp
}
