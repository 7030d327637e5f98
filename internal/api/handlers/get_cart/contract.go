package get_cart

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/service/cart/models"
)

type CartService interface {
	Get(ctx context.Context, sessionID string) *models.CartResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
