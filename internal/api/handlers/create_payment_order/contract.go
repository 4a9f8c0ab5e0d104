package create_payment_order

import (
	"context"

	createOrder "github.com/heavyrent/rental-service/internal/usecase/create_payment_order"
)

type CreatePaymentOrderUseCase interface {
	Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
