// Package availability чистый движок доступности слотов
// Используется usecase'ами просмотра доступности и создания бронирования -
// проверка пересечений при чтении и при записи обязана совпадать
package availability

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Slot кандидат времени начала с признаком доступности
type Slot struct {
	Time      types.TimeString
	Available bool
}

// BuildDaySlots строит упорядоченный список слотов на день
// Кандидаты генерируются с шагом granularity от начала рабочего дня;
// кандидат, чей конец выходит за время закрытия, не существует как слот
// (он исключается, а не помечается недоступным)
// Если день закрыт, список пуст независимо от Start/End
func BuildDaySlots(
	day domain.DaySchedule,
	granularityMinutes int,
	totalDurationMinutes int,
	bookings []*domain.Booking,
) ([]Slot, error) {
	if !day.IsOpen || day.Start.IsZero() || day.End.IsZero() {
		return []Slot{}, nil
	}

	if err := day.Start.Validate(); err != nil {
		return nil, err
	}
	if err := day.End.Validate(); err != nil {
		return nil, err
	}

	slots := make([]Slot, 0)
	current := day.Start

	for current.IsBefore(day.End) {
		// Конец интервала считаем в минутах: AddMinutes не представляет 24:00,
		// а закрытие ровно в конце суток допустимо
		startMin, err := current.Minutes()
		if err != nil {
			return nil, err
		}
		endMin, err := day.End.Minutes()
		if err != nil {
			return nil, err
		}

		// Кандидат должен целиком помещаться до закрытия
		if startMin+totalDurationMinutes > endMin {
			break
		}

		free, err := IsIntervalFree(current, totalDurationMinutes, bookings)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{Time: current, Available: free})

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			// Следующий шаг вышел за пределы суток - кандидатов больше нет
			break
		}
		current = next
	}

	return slots, nil
}

// HasFreeSlot возвращает true, если на день есть хотя бы один свободный слот
// Используется месячным представлением: день доступен <=> есть свободный слот
func HasFreeSlot(
	day domain.DaySchedule,
	granularityMinutes int,
	totalDurationMinutes int,
	bookings []*domain.Booking,
) (bool, error) {
	slots, err := BuildDaySlots(day, granularityMinutes, totalDurationMinutes, bookings)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.Available {
			return true, nil
		}
	}
	return false, nil
}

// IsIntervalFree проверяет, что интервал [start, start+duration) не пересекается
// ни с одним блокирующим бронированием
//
// Интервалы полуоткрытые, пересечение проверяется строгими неравенствами:
// бронирование, заканчивающееся ровно в момент начала кандидата, не конфликтует
//
// Примеры:
// - Кандидат 11:00-12:00, бронирование 10:00-11:00 -> НЕТ пересечения (граничат)
// - Кандидат 11:00-12:00, бронирование 11:30-12:30 -> ЕСТЬ пересечение
func IsIntervalFree(start types.TimeString, durationMinutes int, bookings []*domain.Booking) (bool, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return false, err
	}
	endMin := startMin + durationMinutes

	for _, booking := range bookings {
		// Отмененные и завершенные бронирования слот не занимают
		if !booking.IsBlocking() {
			continue
		}

		bookingStart, err := booking.StartTime.Minutes()
		if err != nil {
			// Некорректное время в хранилище - бронирование пропускаем
			continue
		}
		bookingEnd := bookingStart + booking.TotalDurationMinutes

		// candidateStart < bookingEnd AND bookingStart < candidateEnd
		if startMin < bookingEnd && bookingStart < endMin {
			return false, nil
		}
	}

	return true, nil
}
