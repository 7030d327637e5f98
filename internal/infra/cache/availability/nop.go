package availability

import (
	"context"
	"time"

	engine "github.com/m04kA/SMC-CleaningService/internal/availability"
)

// NopCache заглушка кеша для выключенного Redis
// Всегда отвечает промахом: доступность считается по базе
type NopCache struct{}

// NewNopCache создает заглушку кеша
func NewNopCache() *NopCache {
	return &NopCache{}
}

func (c *NopCache) GetDaySlots(_ context.Context, _ time.Time, _ int) ([]engine.Slot, bool) {
	return nil, false
}

func (c *NopCache) SetDaySlots(_ context.Context, _ time.Time, _ int, _ []engine.Slot) {}

func (c *NopCache) GetMonth(_ context.Context, _, _, _ int) (map[string]bool, bool) {
	return nil, false
}

func (c *NopCache) SetMonth(_ context.Context, _, _, _ int, _ map[string]bool) {}

func (c *NopCache) InvalidateDate(_ context.Context, _ time.Time) {}

func (c *NopCache) InvalidateAll(_ context.Context) {}

func (c *NopCache) Close() error { return nil }
