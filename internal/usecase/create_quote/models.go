package create_quote

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type Request struct {
	Name               string  `json:"name" validate:"required,runes=2-100,personname"`
	Phone              string  `json:"phone" validate:"required"`
	Email              string  `json:"email" validate:"omitempty,email,max=255"`
	EquipmentType      string  `json:"equipmentType" validate:"required,max=100"`
	ProjectDescription string  `json:"projectDescription" validate:"required,runes=10-2000"`
	Location           string  `json:"location" validate:"required,max=255"`
	Duration           string  `json:"duration" validate:"required,max=100"`
	BudgetRange        *string `json:"budgetRange" validate:"omitempty,max=100"`
}

type QuoteResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ProfileID          *uuid.UUID `json:"clientId,omitempty"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email,omitempty"`
	EquipmentType      string     `json:"equipmentType"`
	ProjectDescription string     `json:"projectDescription"`
	Location           string     `json:"location"`
	Duration           string     `json:"duration"`
	BudgetRange        *string    `json:"budgetRange,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func fromDomainQuote(q *domain.CustomQuote) *QuoteResponse {
	return &QuoteResponse{
		ID:                 q.ID,
		ProfileID:          q.ProfileID,
		Name:               q.Name,
		Phone:              q.Phone,
		Email:              q.Email,
		EquipmentType:      q.EquipmentType,
		ProjectDescription: q.ProjectDescription,
		Location:           q.Location,
		Duration:           q.Duration,
		BudgetRange:        q.BudgetRange,
		Status:             string(q.Status),
		CreatedAt:          q.CreatedAt,
	}
}
