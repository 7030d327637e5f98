package get_cart

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
)

const msgNoSession = "отсутствует сессия корзины"

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

// Handle GET /api/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /cart - No session in context")
		handlers.RespondBadRequest(w, msgNoSession)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.service.Get(r.Context(), sessionID))
}
