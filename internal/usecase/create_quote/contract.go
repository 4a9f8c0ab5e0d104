package create_quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/heavyrent/rental-service/internal/domain"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *domain.CustomQuote) (*domain.CustomQuote, error)
}

type ProfileResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type AdminAlerter interface {
	AlertAdmin(ctx context.Context, subject, text string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
