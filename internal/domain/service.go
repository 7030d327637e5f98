package domain

import (
	"errors"
	"fmt"
	"time"
)

// PricingType модель ценообразования услуги
type PricingType string

const (
	PricingFixedItem      PricingType = "fixed_item"
	PricingAreaBased      PricingType = "area_based"
	PricingBasePlusAddons PricingType = "base_plus_addons"
	PricingCustomQuote    PricingType = "custom_quote"
)

// ErrInvalidPricingConfig возвращается, когда конфигурация услуги
// не соответствует её модели ценообразования
var ErrInvalidPricingConfig = errors.New("domain: pricing config does not match pricing type")

// Service услуга клининговой компании
// Конфигурация ценообразования оформлена как размеченное объединение:
// заполнен ровно тот указатель, который соответствует PricingType
// (инвариант проверяется в Validate)
type Service struct {
	ID              int64
	Name            string
	Description     string
	PricingType     PricingType
	BasePrice       float64
	DurationMinutes int
	Active          bool

	AreaBased   *AreaBasedConfig
	Addons      *AddonsConfig
	CustomQuote *CustomQuoteConfig

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AreaPreset предустановленный размер площади с фиксированной ценой
type AreaPreset struct {
	Name  string  `json:"name"`
	Sqft  float64 `json:"sqft"`
	Price float64 `json:"price"`
}

// AreaBasedConfig конфигурация модели area_based
// MinimumPrice - нижняя граница цены для любого выбора
type AreaBasedConfig struct {
	PricePerUnit float64      `json:"pricePerUnit"`
	MinimumPrice float64      `json:"minimumPrice"`
	Presets      []AreaPreset `json:"presets"`
}

// AddonOption дополнительная опция для модели base_plus_addons
// MaxQuantity nil означает клам по умолчанию (MaxAddonQuantityFallback)
type AddonOption struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	MaxQuantity *int    `json:"maxQuantity,omitempty"`
}

// FrequencyOption периодичность уборки со скидкой в процентах от подытога
type FrequencyOption struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	DiscountPercent float64 `json:"discountPercent"`
}

// AddonsConfig конфигурация модели base_plus_addons
type AddonsConfig struct {
	Addons      []AddonOption     `json:"addons"`
	Frequencies []FrequencyOption `json:"frequencies,omitempty"`
}

// CustomQuoteConfig конфигурация модели custom_quote
// Минимальная цена показывается клиенту, но не участвует в расчете
type CustomQuoteConfig struct {
	MinimumPrice *float64 `json:"minimumPrice,omitempty"`
}

// Validate проверяет согласованность модели ценообразования и конфигурации:
// специфичные поля присутствуют тогда и только тогда, когда того требует модель
func (s *Service) Validate() error {
	switch s.PricingType {
	case PricingFixedItem:
		if s.AreaBased != nil || s.Addons != nil || s.CustomQuote != nil {
			return fmt.Errorf("%w: fixed_item must not carry model-specific config", ErrInvalidPricingConfig)
		}
	case PricingAreaBased:
		if s.AreaBased == nil {
			return fmt.Errorf("%w: area_based requires area config", ErrInvalidPricingConfig)
		}
		if s.Addons != nil || s.CustomQuote != nil {
			return fmt.Errorf("%w: area_based must not carry addon or quote config", ErrInvalidPricingConfig)
		}
	case PricingBasePlusAddons:
		if s.Addons == nil {
			return fmt.Errorf("%w: base_plus_addons requires addons config", ErrInvalidPricingConfig)
		}
		if s.AreaBased != nil || s.CustomQuote != nil {
			return fmt.Errorf("%w: base_plus_addons must not carry area or quote config", ErrInvalidPricingConfig)
		}
	case PricingCustomQuote:
		if s.CustomQuote == nil {
			return fmt.Errorf("%w: custom_quote requires quote config", ErrInvalidPricingConfig)
		}
		if s.AreaBased != nil || s.Addons != nil {
			return fmt.Errorf("%w: custom_quote must not carry area or addons config", ErrInvalidPricingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown pricing type %q", ErrInvalidPricingConfig, s.PricingType)
	}
	return nil
}

// FindAddon находит опцию по коду
func (c *AddonsConfig) FindAddon(code string) *AddonOption {
	for i := range c.Addons {
		if c.Addons[i].Code == code {
			return &c.Addons[i]
		}
	}
	return nil
}

// FindFrequency находит периодичность по коду
func (c *AddonsConfig) FindFrequency(code string) *FrequencyOption {
	for i := range c.Frequencies {
		if c.Frequencies[i].Code == code {
			return &c.Frequencies[i]
		}
	}
	return nil
}

// FindPreset находит предустановленный размер по имени
func (c *AreaBasedConfig) FindPreset(name string) *AreaPreset {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i]
		}
	}
	return nil
}

// Selection выбор клиента при конфигурировании услуги
// Интерпретация полей зависит от модели ценообразования услуги
type Selection struct {
	AreaPresetName *string        `json:"areaPresetName,omitempty"` // area_based: имя пресета
	CustomSqft     *float64       `json:"customSqft,omitempty"`     // area_based: произвольная площадь
	Addons         map[string]int `json:"addons,omitempty"`         // base_plus_addons: код -> количество
	Frequency      *string        `json:"frequency,omitempty"`      // base_plus_addons: код периодичности
	Notes          *string        `json:"notes,omitempty"`          // custom_quote: описание работ
}
