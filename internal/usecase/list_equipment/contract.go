package list_equipment

import (
	"context"

	"github.com/heavyrent/rental-service/internal/domain"
)

type EquipmentRepository interface {
	List(ctx context.Context, filter domain.EquipmentFilter, paginate bool) ([]*domain.Equipment, error)
	Count(ctx context.Context, filter domain.EquipmentFilter) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
