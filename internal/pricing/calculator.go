// Package pricing чистый калькулятор цены и длительности услуги
// Без побочных эффектов: одинаковые входы всегда дают одинаковый результат
package pricing

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// Quote результат расчета: цена, детализация и суммарная длительность
// Для custom_quote цена не рассчитывается (0), минимальная цена
// возвращается отдельно только для отображения клиенту
type Quote struct {
	Price           float64
	Breakdown       domain.PriceBreakdown
	DurationMinutes int
	DisplayMinimum  *float64
}

// Calculate вычисляет цену и длительность для пары (услуга, выбор)
// Контракты по моделям:
//   - fixed_item: цена = базовая цена x количество
//   - area_based: max(цена пресета | площадь x цена за единицу, минимальная цена)
//   - base_plus_addons: база + сумма аддонов, затем скидка за периодичность
//   - custom_quote: цена не считается, клиент оставляет описание работ
//
// Длительность во всех моделях = длительность услуги x количество
func Calculate(svc *domain.Service, sel domain.Selection, quantity int) (*Quote, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	if err := svc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidService, err)
	}

	duration := svc.DurationMinutes * quantity

	switch svc.PricingType {
	case domain.PricingFixedItem:
		price := round2(svc.BasePrice * float64(quantity))
		return &Quote{
			Price:           price,
			Breakdown:       domain.PriceBreakdown{Subtotal: price, Discount: 0, FinalPrice: price},
			DurationMinutes: duration,
		}, nil

	case domain.PricingAreaBased:
		return calculateAreaBased(svc.AreaBased, sel, duration)

	case domain.PricingBasePlusAddons:
		return calculateBasePlusAddons(svc.BasePrice, svc.Addons, sel, duration)

	case domain.PricingCustomQuote:
		return &Quote{
			Price:           0,
			Breakdown:       domain.PriceBreakdown{},
			DurationMinutes: duration,
			DisplayMinimum:  svc.CustomQuote.MinimumPrice,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown pricing type %q", ErrInvalidService, svc.PricingType)
	}
}

// calculateAreaBased считает цену по площади
// Пресет имеет приоритет над произвольной площадью; в обоих случаях
// применяется нижняя граница MinimumPrice
func calculateAreaBased(cfg *domain.AreaBasedConfig, sel domain.Selection, duration int) (*Quote, error) {
	var price float64

	switch {
	case sel.AreaPresetName != nil:
		preset := cfg.FindPreset(*sel.AreaPresetName)
		if preset == nil {
			return nil, fmt.Errorf("%w: unknown area preset %q", ErrInvalidSelection, *sel.AreaPresetName)
		}
		price = math.Max(preset.Price, cfg.MinimumPrice)

	case cfg.PricePerUnit > 0:
		if sel.CustomSqft == nil || *sel.CustomSqft <= 0 {
			return nil, fmt.Errorf("%w: custom area must be a positive number", ErrInvalidSelection)
		}
		price = math.Max(*sel.CustomSqft*cfg.PricePerUnit, cfg.MinimumPrice)

	default:
		return nil, fmt.Errorf("%w: area preset is required", ErrInvalidSelection)
	}

	price = round2(price)
	return &Quote{
		Price:           price,
		Breakdown:       domain.PriceBreakdown{Subtotal: price, Discount: 0, FinalPrice: price},
		DurationMinutes: duration,
	}, nil
}

// calculateBasePlusAddons считает цену по модели база + аддоны
// Количество каждого аддона ограничивается [0, maxQuantity ?? 10],
// скидка за периодичность применяется к подытогу в процентах
func calculateBasePlusAddons(basePrice float64, cfg *domain.AddonsConfig, sel domain.Selection, duration int) (*Quote, error) {
	subtotal := basePrice

	for code, qty := range sel.Addons {
		if qty <= 0 {
			continue
		}

		addon := cfg.FindAddon(code)
		if addon == nil {
			return nil, fmt.Errorf("%w: unknown addon %q", ErrInvalidSelection, code)
		}

		maxQty := domain.MaxAddonQuantityFallback
		if addon.MaxQuantity != nil {
			maxQty = *addon.MaxQuantity
		}
		if qty > maxQty {
			qty = maxQty
		}

		subtotal += addon.Price * float64(qty)
	}

	discountPercent := 0.0
	if sel.Frequency != nil {
		freq := cfg.FindFrequency(*sel.Frequency)
		if freq == nil {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidSelection, *sel.Frequency)
		}
		discountPercent = freq.DiscountPercent
	}

	subtotal = round2(subtotal)
	final := round2(subtotal * (1 - discountPercent/100))
	discount := round2(subtotal - final)

	return &Quote{
		Price: final,
		Breakdown: domain.PriceBreakdown{
			Subtotal:   subtotal,
			Discount:   discount,
			FinalPrice: final,
		},
		DurationMinutes: duration,
	}, nil
}

// RescaleByQuantity пересчитывает цену строки пропорционально изменению количества:
// новая цена = цена / старое количество x новое количество
func RescaleByQuantity(price float64, previousQty, newQty int) (float64, error) {
	if previousQty <= 0 || newQty <= 0 {
		return 0, fmt.Errorf("%w: got %d -> %d", ErrInvalidQuantity, previousQty, newQty)
	}
	return round2(price / float64(previousQty) * float64(newQty)), nil
}

// round2 округляет до 2 знаков (валюта)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
