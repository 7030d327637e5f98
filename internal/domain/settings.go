package domain

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// DaySchedule рабочие часы одного дня недели
// Инвариант: если IsOpen = false, день не дает ни одного слота
// независимо от значений Start/End
type DaySchedule struct {
	IsOpen bool             `json:"isOpen"`
	Start  types.TimeString `json:"start,omitempty"`
	End    types.TimeString `json:"end,omitempty"`
}

// BusinessHours расписание работы по дням недели
type BusinessHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание на указанный день недели
func (h BusinessHours) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	case time.Sunday:
		return h.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// CompanySettings настройки компании (singleton, одна строка в БД)
// Потребляются движком доступности и проверками при создании бронирования
type CompanySettings struct {
	ID                      int64
	BusinessHours           BusinessHours
	Timezone                string // IANA-имя, например "Europe/Moscow"
	SlotGranularityMinutes  int
	MinBookingValue         float64 // минимальная сумма корзины для оформления
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничения

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location возвращает часовой пояс компании
// При некорректном имени пояса возвращает UTC - расчеты не должны падать
func (s *CompanySettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultSettings настройки по умолчанию, если строка еще не создана
func DefaultSettings() *CompanySettings {
	workday := DaySchedule{IsOpen: true, Start: "08:00", End: "18:00"}
	return &CompanySettings{
		BusinessHours: BusinessHours{
			Monday:    workday,
			Tuesday:   workday,
			Wednesday: workday,
			Thursday:  workday,
			Friday:    workday,
			Saturday:  DaySchedule{IsOpen: false},
			Sunday:    DaySchedule{IsOpen: false},
		},
		Timezone:                DefaultTimezone,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		MinBookingValue:         DefaultMinBookingValue,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
