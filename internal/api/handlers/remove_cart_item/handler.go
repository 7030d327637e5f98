package remove_cart_item

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
)

const (
	msgNoSession        = "отсутствует сессия корзины"
	msgInvalidServiceID = "некорректный ID услуги"
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

// Handle DELETE /api/cart/items/{serviceId}
// Удаление отсутствующей позиции не считается ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /cart/items/{id} - No session in context")
		handlers.RespondBadRequest(w, msgNoSession)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /cart/items/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.RemoveItem(r.Context(), sessionID, serviceID)
	if err != nil {
		h.logger.Error("DELETE /cart/items/{id} - Failed: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /cart/items/{id} - Item removed: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
