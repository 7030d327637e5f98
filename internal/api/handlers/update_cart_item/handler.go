package update_cart_item

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
	cartService "github.com/m04kA/SMC-CleaningService/internal/service/cart"
)

const (
	msgNoSession          = "отсутствует сессия корзины"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgItemNotFound       = "позиция не найдена в корзине"
	msgInvalidQuantity    = "некорректное количество"
)

// UpdateQuantityRequest HTTP request model
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

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

// Handle PATCH /api/cart/items/{serviceId}
// Цена позиции пересчитывается пропорционально новому количеству
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /cart/items/{id} - No session in context")
		handlers.RespondBadRequest(w, msgNoSession)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /cart/items/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req UpdateQuantityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cart/items/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateQuantity(r.Context(), sessionID, serviceID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrItemNotFound):
			h.logger.Warn("PATCH /cart/items/{id} - Item not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, cartService.ErrInvalidQuantity):
			h.logger.Warn("PATCH /cart/items/{id} - Invalid quantity: service_id=%d, quantity=%d",
				serviceID, req.Quantity)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		default:
			h.logger.Error("PATCH /cart/items/{id} - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cart/items/{id} - Quantity updated: service_id=%d, quantity=%d", serviceID, req.Quantity)
	handlers.RespondJSON(w, http.StatusOK, result)
}
