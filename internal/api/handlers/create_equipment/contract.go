package create_equipment

import (
	"context"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/equipment/models"
)

type EquipmentService interface {
	Create(ctx context.Context, session *domain.Session, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
