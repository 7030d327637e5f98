package models

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// ServiceRequest запрос на создание или обновление услуги
type ServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	PricingType     string  `json:"pricingType"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          *bool   `json:"active,omitempty"`

	AreaBased   *domain.AreaBasedConfig   `json:"areaConfig,omitempty"`
	Addons      *domain.AddonsConfig      `json:"addonsConfig,omitempty"`
	CustomQuote *domain.CustomQuoteConfig `json:"quoteConfig,omitempty"`
}

// ServiceResponse услуга в ответе API
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	PricingType     string  `json:"pricingType"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"active"`

	AreaBased   *domain.AreaBasedConfig   `json:"areaConfig,omitempty"`
	Addons      *domain.AddonsConfig      `json:"addonsConfig,omitempty"`
	CustomQuote *domain.CustomQuoteConfig `json:"quoteConfig,omitempty"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ToDomainService преобразует запрос в доменную услугу
func (r *ServiceRequest) ToDomainService() *domain.Service {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		PricingType:     domain.PricingType(r.PricingType),
		BasePrice:       r.BasePrice,
		DurationMinutes: r.DurationMinutes,
		Active:          active,
		AreaBased:       r.AreaBased,
		Addons:          r.Addons,
		CustomQuote:     r.CustomQuote,
	}
}

// FromDomainService преобразует доменную услугу в ответ API
func FromDomainService(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		Description:     svc.Description,
		PricingType:     string(svc.PricingType),
		BasePrice:       svc.BasePrice,
		DurationMinutes: svc.DurationMinutes,
		Active:          svc.Active,
		AreaBased:       svc.AreaBased,
		Addons:          svc.Addons,
		CustomQuote:     svc.CustomQuote,
	}
}

// FromDomainServiceList преобразует список доменных услуг в ответ API
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	out := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, svc := range services {
		out.Services = append(out.Services, *FromDomainService(svc))
	}
	return out
}
