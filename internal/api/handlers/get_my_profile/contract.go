package get_my_profile

import (
	"context"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/service/profiles/models"
)

type ProfileService interface {
	Me(ctx context.Context, session *domain.Session) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
