package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	getMonthAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/get_month_availability"
)

const (
	msgInvalidYear     = "некорректный параметр year"
	msgInvalidMonth    = "некорректный параметр month"
	msgInvalidDuration = "некорректная длительность totalDurationMinutes"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/availability/month?year=Y&month=M&totalDurationMinutes=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get("totalDurationMinutes"))
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{
		Year:                 year,
		Month:                month,
		TotalDurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMonthAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/month - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability/month - Failed: year=%d, month=%d, error=%v", year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Клиент получает плоскую карту дата -> доступность
	handlers.RespondJSON(w, http.StatusOK, result.Days)
}
