package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Request модель запроса дневного представления доступности
type Request struct {
	Date                 time.Time // Календарная дата (без времени)
	TotalDurationMinutes int       // Суммарная длительность корзины
}

// Response модель ответа с упорядоченным списком слотов
type Response struct {
	Date  time.Time
	Slots []Slot
}

// Slot кандидат времени начала с признаком доступности
type Slot struct {
	Time      types.TimeString // Время начала, например "10:00"
	Available bool
}
