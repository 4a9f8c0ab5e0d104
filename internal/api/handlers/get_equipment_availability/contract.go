package get_equipment_availability

import (
	"context"

	getAvailability "github.com/heavyrent/rental-service/internal/usecase/get_equipment_availability"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
