package get_equipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/service/equipment/models"
)

type EquipmentService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
