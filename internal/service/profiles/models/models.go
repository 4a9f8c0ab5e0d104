package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

// CreateProfileRequest is the sign-up form. Admin is never self-assigned.
type CreateProfileRequest struct {
	FullName string  `json:"fullName" validate:"required,runes=2-100,personname"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     string  `json:"role" validate:"required,oneof=client operator"`
}

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	FullName    string    `json:"fullName"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Role        string    `json:"role"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromDomainProfile(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		FullName:    p.FullName,
		Phone:       p.Phone,
		Email:       p.Email,
		Role:        string(p.Role),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
