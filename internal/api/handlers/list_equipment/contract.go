package list_equipment

import (
	"context"

	"github.com/heavyrent/rental-service/internal/service/equipment/models"
	listEquipment "github.com/heavyrent/rental-service/internal/usecase/list_equipment"
)

type ListEquipmentUseCase interface {
	Execute(ctx context.Context, req *listEquipment.Request) (*models.EquipmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
