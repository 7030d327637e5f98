package models

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// DayScheduleDTO рабочие часы одного дня недели
type DayScheduleDTO struct {
	IsOpen bool   `json:"isOpen"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

// BusinessHoursDTO расписание работы по дням недели
type BusinessHoursDTO struct {
	Monday    DayScheduleDTO `json:"monday"`
	Tuesday   DayScheduleDTO `json:"tuesday"`
	Wednesday DayScheduleDTO `json:"wednesday"`
	Thursday  DayScheduleDTO `json:"thursday"`
	Friday    DayScheduleDTO `json:"friday"`
	Saturday  DayScheduleDTO `json:"saturday"`
	Sunday    DayScheduleDTO `json:"sunday"`
}

// SettingsRequest запрос на обновление настроек компании
type SettingsRequest struct {
	BusinessHours           BusinessHoursDTO `json:"businessHours"`
	Timezone                string           `json:"timezone"`
	SlotGranularityMinutes  int              `json:"slotGranularityMinutes"`
	MinBookingValue         float64          `json:"minBookingValue"`
	MinBookingNoticeMinutes int              `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int              `json:"advanceBookingDays"`
}

// SettingsResponse настройки компании в ответе API
type SettingsResponse struct {
	BusinessHours           BusinessHoursDTO `json:"businessHours"`
	Timezone                string           `json:"timezone"`
	SlotGranularityMinutes  int              `json:"slotGranularityMinutes"`
	MinBookingValue         float64          `json:"minBookingValue"`
	MinBookingNoticeMinutes int              `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int              `json:"advanceBookingDays"`
}

func toDomainDay(d DayScheduleDTO) domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen: d.IsOpen,
		Start:  types.TimeString(d.Start),
		End:    types.TimeString(d.End),
	}
}

func fromDomainDay(d domain.DaySchedule) DayScheduleDTO {
	return DayScheduleDTO{
		IsOpen: d.IsOpen,
		Start:  d.Start.String(),
		End:    d.End.String(),
	}
}

// ToDomainSettings преобразует запрос в доменные настройки
func (r *SettingsRequest) ToDomainSettings() *domain.CompanySettings {
	return &domain.CompanySettings{
		BusinessHours: domain.BusinessHours{
			Monday:    toDomainDay(r.BusinessHours.Monday),
			Tuesday:   toDomainDay(r.BusinessHours.Tuesday),
			Wednesday: toDomainDay(r.BusinessHours.Wednesday),
			Thursday:  toDomainDay(r.BusinessHours.Thursday),
			Friday:    toDomainDay(r.BusinessHours.Friday),
			Saturday:  toDomainDay(r.BusinessHours.Saturday),
			Sunday:    toDomainDay(r.BusinessHours.Sunday),
		},
		Timezone:                r.Timezone,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingValue:         r.MinBookingValue,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// FromDomainSettings преобразует доменные настройки в ответ API
func FromDomainSettings(s *domain.CompanySettings) *SettingsResponse {
	return &SettingsResponse{
		BusinessHours: BusinessHoursDTO{
			Monday:    fromDomainDay(s.BusinessHours.Monday),
			Tuesday:   fromDomainDay(s.BusinessHours.Tuesday),
			Wednesday: fromDomainDay(s.BusinessHours.Wednesday),
			Thursday:  fromDomainDay(s.BusinessHours.Thursday),
			Friday:    fromDomainDay(s.BusinessHours.Friday),
			Saturday:  fromDomainDay(s.BusinessHours.Saturday),
			Sunday:    fromDomainDay(s.BusinessHours.Sunday),
		},
		Timezone:                s.Timezone,
		SlotGranularityMinutes:  s.SlotGranularityMinutes,
		MinBookingValue:         s.MinBookingValue,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}
}
