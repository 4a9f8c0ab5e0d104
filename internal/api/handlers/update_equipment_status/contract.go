package update_equipment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
)

type EquipmentService interface {
	UpdateStatus(ctx context.Context, session *domain.Session, id uuid.UUID, req *models.UpdateStatusRequest) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
