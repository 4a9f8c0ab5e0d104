package list_bookings

import (
	"context"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, session *domain.Session, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
