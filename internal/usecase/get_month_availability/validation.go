package get_month_availability

import (
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Year < 2000 || req.Year > 2200 {
		return fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}

	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be within [1, 12]", ErrInvalidInput)
	}

	if req.TotalDurationMinutes <= 0 {
		return fmt.Errorf("%w: totalDurationMinutes must be positive", ErrInvalidInput)
	}

	if req.TotalDurationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: totalDurationMinutes exceeds %d",
			ErrInvalidInput, domain.MaxBookingDurationMinutes)
	}

	return nil
}
