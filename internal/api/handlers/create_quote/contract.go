package create_quote

import (
	"context"

	"github.com/heavyrent/rental-service/internal/domain"
	createQuote "github.com/heavyrent/rental-service/internal/usecase/create_quote"
)

type CreateQuoteUseCase interface {
	Execute(ctx context.Context, session *domain.Session, req *createQuote.Request) (*createQuote.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
