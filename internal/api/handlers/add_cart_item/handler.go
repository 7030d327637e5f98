package add_cart_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
	cartService "github.com/m04kA/SMC-CleaningService/internal/service/cart"
	"github.com/m04kA/SMC-CleaningService/internal/service/cart/models"
)

const (
	msgNoSession          = "отсутствует сессия корзины"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidQuantity    = "некорректное количество"
	msgInvalidSelection   = "некорректный выбор параметров услуги"
)

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/cart/items
// Повторное добавление той же услуги заменяет позицию целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /cart/items - No session in context")
		handlers.RespondBadRequest(w, msgNoSession)
		return
	}

	var req models.AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddItem(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrServiceNotFound):
			h.logger.Warn("POST /cart/items - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, cartService.ErrInvalidQuantity):
			h.logger.Warn("POST /cart/items - Invalid quantity: service_id=%d, quantity=%d",
				req.ServiceID, req.Quantity)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		case errors.Is(err, cartService.ErrInvalidSelection):
			h.logger.Warn("POST /cart/items - Invalid selection: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		default:
			h.logger.Error("POST /cart/items - Failed: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/items - Item added: service_id=%d", req.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
