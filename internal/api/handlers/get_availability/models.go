package get_availability

import (
	getAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/get_availability"
)

// SlotResponse слот в HTTP-ответе
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в плоский массив слотов
func FromUseCaseResponse(resp *getAvailability.Response) []SlotResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}
	return slots
}
