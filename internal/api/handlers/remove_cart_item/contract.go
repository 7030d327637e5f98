package remove_cart_item

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/service/cart/models"
)

type CartService interface {
	RemoveItem(ctx context.Context, sessionID string, serviceID int64) (*models.CartResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
