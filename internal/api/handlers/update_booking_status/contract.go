package update_booking_status

import (
	"context"

	"github.com/heavyrent/rental-service/internal/service/bookings/models"
	updateStatus "github.com/heavyrent/rental-service/internal/usecase/update_booking_status"
)

type UpdateBookingStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
